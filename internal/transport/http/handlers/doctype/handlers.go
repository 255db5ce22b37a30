package doctypehandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrdocs/internal/domain/doctype"
	"hrdocs/internal/transport/http/api"
	"hrdocs/internal/transport/http/middleware"
	"hrdocs/internal/transport/http/shared"
)

type Handler struct {
	Service  *doctype.Service
	MaxLimit int
}

func NewHandler(service *doctype.Service) *Handler {
	return &Handler{Service: service, MaxLimit: 100}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/document-types", h.handleCreate)
	r.Get("/document-types", h.handleList)
	r.Get("/document-types/{documentTypeID}", h.handleGet)
	r.Put("/document-types/{documentTypeID}", h.handleUpdate)
	r.Delete("/document-types/{documentTypeID}", h.handleDelete)
	r.Post("/document-types/{documentTypeID}/restore", h.handleRestore)
}

type createTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload createTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, r, reqID) {
		return
	}

	dt, err := h.Service.Create(r.Context(), doctype.CreateInput{
		Name:        payload.Name,
		Description: payload.Description,
		Category:    payload.Category,
	})
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Created(w, dt, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePageQuery(r, h.MaxLimit)

	result, err := h.Service.List(r.Context(), doctype.ListOptions{
		Status: r.URL.Query().Get("status"),
		Name:   r.URL.Query().Get("name"),
		Page:   page.Page,
		Limit:  page.Limit,
	})
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}

	api.SuccessPaginated(w, result.DocumentTypes, api.Pagination{
		Page:       result.Page,
		Limit:      result.Limit,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	}, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.URLID(w, r, "documentTypeID")
	if !ok {
		return
	}

	dt, err := h.Service.Get(r.Context(), id)
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Success(w, dt, reqID)
}

type updateTypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.URLID(w, r, "documentTypeID")
	if !ok {
		return
	}

	var payload updateTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	dt, err := h.Service.Update(r.Context(), id, doctype.UpdateInput{
		Name:        payload.Name,
		Description: payload.Description,
		Category:    payload.Category,
	})
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Success(w, dt, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.URLID(w, r, "documentTypeID")
	if !ok {
		return
	}

	dt, err := h.Service.SoftDelete(r.Context(), id)
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Success(w, dt, reqID)
}

func (h *Handler) handleRestore(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, ok := shared.URLID(w, r, "documentTypeID")
	if !ok {
		return
	}

	dt, err := h.Service.Restore(r.Context(), id)
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Success(w, dt, reqID)
}
