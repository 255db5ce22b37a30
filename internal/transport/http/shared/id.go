package shared

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrdocs/internal/transport/http/api"
	"hrdocs/internal/transport/http/middleware"
)

// URLID pulls a path parameter and rejects anything that is not a UUID
// before it reaches the database.
func URLID(w http.ResponseWriter, r *http.Request, param string) (string, bool) {
	raw := chi.URLParam(r, param)
	if _, err := uuid.Parse(raw); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_id", param+" must be a valid UUID", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return raw, true
}
