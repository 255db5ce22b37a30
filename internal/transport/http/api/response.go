package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"hrdocs/internal/domain/apperror"
)

type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Details    any    `json:"details,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type Envelope struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *Error      `json:"error,omitempty"`
	Timestamp  string      `json:"timestamp,omitempty"`
	Path       string      `json:"path,omitempty"`
	RequestID  string      `json:"requestId,omitempty"`
}

// exposeErrors controls whether unclassified errors reach the wire verbatim.
// Set once at startup; production masks them.
var exposeErrors = true

func ExposeErrors(expose bool) {
	exposeErrors = expose
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func SuccessPaginated(w http.ResponseWriter, data any, pagination Pagination, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: &pagination, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, r *http.Request, status int, code, message, requestID string) {
	WriteJSON(w, status, failEnvelope(r, &Error{Code: code, Message: message, StatusCode: status}, requestID))
}

func FailWithDetails(w http.ResponseWriter, r *http.Request, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, failEnvelope(r, &Error{Code: code, Message: message, StatusCode: status, Details: details}, requestID))
}

// FailError maps a service error onto the wire. Errors without an embedded
// code become a 500; the raw message is passed through only while
// ExposeErrors is on.
func FailError(w http.ResponseWriter, r *http.Request, err error, requestID string) {
	if appErr := apperror.From(err); appErr != nil {
		Fail(w, r, appErr.Status, appErr.Code, appErr.Message, requestID)
		return
	}
	slog.Warn("unclassified error", "err", err)
	message := "unexpected error"
	if exposeErrors && err != nil {
		message = err.Error()
	}
	Fail(w, r, http.StatusInternalServerError, "internal_error", message, requestID)
}

func failEnvelope(r *http.Request, errObj *Error, requestID string) Envelope {
	env := Envelope{
		Success:   false,
		Error:     errObj,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
	if r != nil {
		env.Path = r.URL.Path
	}
	return env
}
