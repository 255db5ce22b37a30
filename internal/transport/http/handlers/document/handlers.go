package documenthandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrdocs/internal/domain/document"
	"hrdocs/internal/domain/report"
	"hrdocs/internal/transport/http/api"
	"hrdocs/internal/transport/http/middleware"
	"hrdocs/internal/transport/http/shared"
)

type Handler struct {
	Service *document.Service
	Reports *report.Service
}

func NewHandler(service *document.Service, reports *report.Service) *Handler {
	return &Handler{Service: service, Reports: reports}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/employees/{employeeID}/documents", h.handleSend)
	r.Get("/employees/{employeeID}/documents/sent", h.handleSent)
	r.Get("/employees/{employeeID}/documents/pending", h.handlePending)
	r.Get("/employees/{employeeID}/documentation-status", h.handleStatus)
	r.Get("/employees/{employeeID}/documentation/report", h.handleReport)
}

type sendDocumentRequest struct {
	DocumentTypeID string `json:"documentTypeId"`
	Value          string `json:"value"`
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.URLID(w, r, "employeeID")
	if !ok {
		return
	}

	var payload sendDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if _, err := uuid.Parse(payload.DocumentTypeID); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_id", "documentTypeId must be a valid UUID", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("value", payload.Value, "value is required")
	if v.Reject(w, r, reqID) {
		return
	}

	doc, err := h.Service.Send(r.Context(), employeeID, payload.DocumentTypeID, payload.Value)
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Created(w, doc, reqID)
}

func (h *Handler) handleSent(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.URLID(w, r, "employeeID")
	if !ok {
		return
	}

	sent, err := h.Service.Sent(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Success(w, sent, reqID)
}

func (h *Handler) handlePending(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.URLID(w, r, "employeeID")
	if !ok {
		return
	}

	pending, err := h.Service.Pending(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Success(w, pending, reqID)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.URLID(w, r, "employeeID")
	if !ok {
		return
	}

	summary, err := h.Service.Status(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Success(w, summary, reqID)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.URLID(w, r, "employeeID")
	if !ok {
		return
	}

	pdf, err := h.Reports.DocumentationStatusPDF(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="documentation-status.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
