package employeehandler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrdocs/internal/domain/document"
	"hrdocs/internal/domain/employee"
	"hrdocs/internal/transport/http/api"
	"hrdocs/internal/transport/http/middleware"
	"hrdocs/internal/transport/http/shared"
)

// Enricher annotates employees with documentation counters for the
// overview listing.
type Enricher interface {
	Enrich(ctx context.Context, employees []employee.Employee) ([]document.EmployeeDocumentation, error)
}

type Handler struct {
	Service  *employee.Service
	Enricher Enricher
	MaxLimit int
}

func NewHandler(service *employee.Service, enricher Enricher) *Handler {
	return &Handler{Service: service, Enricher: enricher, MaxLimit: 100}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/employees", h.handleCreate)
	r.Get("/employees", h.handleList)
	r.Get("/employees/search", h.handleSearch)
	r.Get("/employees/documentation-overview", h.handleDocumentationOverview)
	r.Get("/employees/{employeeID}", h.handleGet)
	r.Put("/employees/{employeeID}", h.handleUpdate)
	r.Delete("/employees/{employeeID}", h.handleDelete)
	r.Post("/employees/{employeeID}/restore", h.handleRestore)
}

type createEmployeeRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	HiredAt  string `json:"hiredAt"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("document", payload.Document, "document is required")
	var hiredAt *time.Time
	if payload.HiredAt != "" {
		if parsed, ok := v.Date("hiredAt", payload.HiredAt); ok {
			hiredAt = &parsed
		}
	}
	if v.Reject(w, r, reqID) {
		return
	}

	emp, err := h.Service.Create(r.Context(), employee.CreateInput{
		Name:     payload.Name,
		Document: payload.Document,
		HiredAt:  hiredAt,
	})
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Created(w, emp, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, r.URL.Query().Get("q"))
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	query := r.URL.Query().Get("q")
	if query == "" {
		api.Fail(w, r, http.StatusBadRequest, "validation_error", "q is required", reqID)
		return
	}
	h.list(w, r, query)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, query string) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePageQuery(r, h.MaxLimit)

	result, err := h.Service.List(r.Context(), employee.ListOptions{
		Status: r.URL.Query().Get("status"),
		Name:   r.URL.Query().Get("name"),
		Query:  query,
		Page:   page.Page,
		Limit:  page.Limit,
	})
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}

	api.SuccessPaginated(w, result.Employees, api.Pagination{
		Page:       result.Page,
		Limit:      result.Limit,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	}, reqID)
}

func (h *Handler) handleDocumentationOverview(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePageQuery(r, h.MaxLimit)

	result, err := h.Service.List(r.Context(), employee.ListOptions{
		Status: r.URL.Query().Get("status"),
		Query:  r.URL.Query().Get("q"),
		Page:   page.Page,
		Limit:  page.Limit,
	})
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}

	enriched, err := h.Enricher.Enrich(r.Context(), result.Employees)
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}

	api.SuccessPaginated(w, enriched, api.Pagination{
		Page:       result.Page,
		Limit:      result.Limit,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	}, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.URLID(w, r, "employeeID")
	if !ok {
		return
	}

	emp, err := h.Service.Get(r.Context(), id)
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
}

type updateEmployeeRequest struct {
	Name     *string `json:"name"`
	Document *string `json:"document"`
	HiredAt  *string `json:"hiredAt"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.URLID(w, r, "employeeID")
	if !ok {
		return
	}

	var payload updateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	input := employee.UpdateInput{Name: payload.Name, Document: payload.Document}
	if payload.HiredAt != nil {
		v := shared.NewValidator()
		parsed, ok := v.Date("hiredAt", *payload.HiredAt)
		if v.Reject(w, r, reqID) {
			return
		}
		if ok {
			input.HiredAt = &parsed
		}
	}

	emp, err := h.Service.Update(r.Context(), id, input)
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.URLID(w, r, "employeeID")
	if !ok {
		return
	}

	emp, err := h.Service.SoftDelete(r.Context(), id)
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleRestore(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.URLID(w, r, "employeeID")
	if !ok {
		return
	}

	emp, err := h.Service.Restore(r.Context(), id)
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Success(w, emp, reqID)
}
