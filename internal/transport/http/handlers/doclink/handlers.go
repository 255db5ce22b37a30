package doclinkhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrdocs/internal/domain/doclink"
	"hrdocs/internal/transport/http/api"
	"hrdocs/internal/transport/http/middleware"
	"hrdocs/internal/transport/http/shared"
)

type Handler struct {
	Service *doclink.Service
}

func NewHandler(service *doclink.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/employees/{employeeID}/document-types", h.handleLink)
	r.Delete("/employees/{employeeID}/document-types", h.handleUnlink)
	r.Post("/employees/{employeeID}/document-types/deduplicate", h.handleDeduplicate)
	r.Post("/employees/{employeeID}/document-types/{documentTypeID}/restore", h.handleRestore)
	r.Get("/employees/{employeeID}/required-documents", h.handleRequiredDocuments)
}

type linkRequest struct {
	DocumentTypeIDs []string `json:"documentTypeIds"`
}

func (h *Handler) handleLink(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.URLID(w, r, "employeeID")
	if !ok {
		return
	}

	payload, ok := decodeLinkRequest(w, r, reqID)
	if !ok {
		return
	}

	links, err := h.Service.Link(r.Context(), employeeID, payload.DocumentTypeIDs)
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Created(w, links, reqID)
}

func (h *Handler) handleUnlink(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.URLID(w, r, "employeeID")
	if !ok {
		return
	}

	payload, ok := decodeLinkRequest(w, r, reqID)
	if !ok {
		return
	}

	if err := h.Service.Unlink(r.Context(), employeeID, payload.DocumentTypeIDs); err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Success(w, map[string]any{"unlinked": payload.DocumentTypeIDs}, reqID)
}

func (h *Handler) handleRestore(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.URLID(w, r, "employeeID")
	if !ok {
		return
	}
	typeID, ok := shared.URLID(w, r, "documentTypeID")
	if !ok {
		return
	}

	link, err := h.Service.Restore(r.Context(), employeeID, typeID)
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Success(w, link, reqID)
}

func (h *Handler) handleRequiredDocuments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.URLID(w, r, "employeeID")
	if !ok {
		return
	}

	docs, err := h.Service.RequiredDocuments(r.Context(), employeeID, r.URL.Query().Get("status"))
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	if docs == nil {
		docs = []doclink.RequiredDocument{}
	}
	api.Success(w, docs, reqID)
}

func (h *Handler) handleDeduplicate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID, ok := shared.URLID(w, r, "employeeID")
	if !ok {
		return
	}

	removed, err := h.Service.Deduplicate(r.Context(), employeeID)
	if err != nil {
		api.FailError(w, r, err, reqID)
		return
	}
	api.Success(w, map[string]any{"removed": removed}, reqID)
}

func decodeLinkRequest(w http.ResponseWriter, r *http.Request, reqID string) (*linkRequest, bool) {
	var payload linkRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return nil, false
	}
	for _, id := range payload.DocumentTypeIDs {
		if _, err := uuid.Parse(id); err != nil {
			api.Fail(w, r, http.StatusBadRequest, "invalid_id", "documentTypeIds must contain valid UUIDs", reqID)
			return nil, false
		}
	}
	return &payload, true
}
