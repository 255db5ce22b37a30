package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrdocs/internal/domain/apperror"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestFailEnvelopeFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/bogus", nil)

	Fail(rec, req, http.StatusNotFound, "employee_not_found", "employee not found", "req-1")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Fatal("expected success=false")
	}
	if env.Error == nil {
		t.Fatal("expected error object")
	}
	if env.Error.Code != "employee_not_found" {
		t.Fatalf("unexpected code %q", env.Error.Code)
	}
	if env.Error.StatusCode != http.StatusNotFound {
		t.Fatalf("expected statusCode 404, got %d", env.Error.StatusCode)
	}
	if env.Path != "/api/v1/employees/bogus" {
		t.Fatalf("unexpected path %q", env.Path)
	}
	if env.RequestID != "req-1" {
		t.Fatalf("unexpected requestId %q", env.RequestID)
	}
	if _, err := time.Parse(time.RFC3339, env.Timestamp); err != nil {
		t.Fatalf("timestamp not RFC3339: %q", env.Timestamp)
	}
}

func TestFailErrorClassified(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/document-types", nil)

	FailError(rec, req, apperror.Conflict("duplicate_name", "name already in use"), "req-2")

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error.Code != "duplicate_name" {
		t.Fatalf("unexpected code %q", env.Error.Code)
	}
	if env.Error.StatusCode != http.StatusConflict {
		t.Fatalf("expected statusCode 409, got %d", env.Error.StatusCode)
	}
}

func TestFailErrorMasksWhenNotExposed(t *testing.T) {
	defer ExposeErrors(true)
	ExposeErrors(false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)

	FailError(rec, req, errors.New("pq: connection refused at 10.0.0.5"), "req-3")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error.Code != "internal_error" {
		t.Fatalf("unexpected code %q", env.Error.Code)
	}
	if env.Error.Message != "unexpected error" {
		t.Fatalf("raw error leaked: %q", env.Error.Message)
	}
}

func TestFailErrorExposesWhenEnabled(t *testing.T) {
	defer ExposeErrors(true)
	ExposeErrors(true)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)

	FailError(rec, req, errors.New("boom"), "req-4")

	env := decodeEnvelope(t, rec)
	if env.Error.Message != "boom" {
		t.Fatalf("expected raw message, got %q", env.Error.Message)
	}
}
