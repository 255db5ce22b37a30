package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"hrdocs/internal/app/server"
	"hrdocs/internal/platform/config"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestDocumentationJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := config.Config{
		Addr:                      ":0",
		DatabaseURL:               dbURL,
		Environment:               "test",
		MigrationsDir:             "../../../../migrations",
		RunMigrations:             true,
		RunSeed:                   true,
		MaxBodyBytes:              1048576,
		RateLimitPerMinute:        1000,
		MetricsEnabled:            true,
		EmployeeDefaultStatus:     "all",
		DocumentTypeDefaultStatus: "active",
		EmployeePageSize:          20,
		DocumentTypePageSize:      10,
	}

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	document := fmt.Sprintf("%011d", time.Now().UnixNano()%100000000000)
	employeeID := createEmployee(t, client, ts.URL, "Ana Souza", document)

	rgTypeID := createDocumentType(t, client, ts.URL, fmt.Sprintf("RG-%d", time.Now().UnixNano()), "general")
	cpfTypeID := createDocumentType(t, client, ts.URL, fmt.Sprintf("CPF-%d", time.Now().UnixNano()), "tax_id")

	linkTypes(t, client, ts.URL, employeeID, []string{rgTypeID, cpfTypeID})

	// The tax-ID type auto-fills a SENT document from the employee's own
	// document value, so only the RG should be pending.
	pending := getList(t, client, ts.URL+"/api/v1/employees/"+employeeID+"/documents/pending")
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending document, got %d", len(pending))
	}

	sendDocument(t, client, ts.URL, employeeID, rgTypeID, "MG-12.345.678")

	sent := getList(t, client, ts.URL+"/api/v1/employees/"+employeeID+"/documents/sent")
	if len(sent) != 2 {
		t.Fatalf("expected 2 sent documents, got %d", len(sent))
	}
	pending = getList(t, client, ts.URL+"/api/v1/employees/"+employeeID+"/documents/pending")
	if len(pending) != 0 {
		t.Fatalf("expected no pending documents, got %d", len(pending))
	}

	var summary struct {
		Sent    []json.RawMessage `json:"sent"`
		Pending []json.RawMessage `json:"pending"`
	}
	getJSON(t, client, ts.URL+"/api/v1/employees/"+employeeID+"/documentation-status", &summary)
	if len(summary.Sent) != 2 || len(summary.Pending) != 0 {
		t.Fatalf("unexpected status partition: sent=%d pending=%d", len(summary.Sent), len(summary.Pending))
	}

	// Re-linking an already linked type must fail without side effects.
	resp := postJSON(t, client, ts.URL+"/api/v1/employees/"+employeeID+"/document-types", map[string]any{
		"documentTypeIds": []string{rgTypeID},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate link, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()

	// Soft delete then restore keeps the employee queryable.
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/employees/"+employeeID, nil)
	res, err := client.Do(req)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	_ = res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", res.StatusCode)
	}

	res = postJSONOK(t, client, ts.URL+"/api/v1/employees/"+employeeID+"/restore", nil)
	_ = res.Body.Close()

	var emp struct {
		ID       string `json:"id"`
		IsActive bool   `json:"isActive"`
	}
	getJSON(t, client, ts.URL+"/api/v1/employees/"+employeeID, &emp)
	if !emp.IsActive {
		t.Fatal("expected restored employee to be active")
	}
}

func createEmployee(t *testing.T, client *http.Client, baseURL, name, document string) string {
	t.Helper()
	res := postJSONOK(t, client, baseURL+"/api/v1/employees", map[string]any{
		"name":     name,
		"document": document,
		"hiredAt":  "2024-01-01",
	})
	return decodeID(t, res)
}

func createDocumentType(t *testing.T, client *http.Client, baseURL, name, category string) string {
	t.Helper()
	res := postJSONOK(t, client, baseURL+"/api/v1/document-types", map[string]any{
		"name":     name,
		"category": category,
	})
	return decodeID(t, res)
}

func linkTypes(t *testing.T, client *http.Client, baseURL, employeeID string, typeIDs []string) {
	t.Helper()
	res := postJSONOK(t, client, baseURL+"/api/v1/employees/"+employeeID+"/document-types", map[string]any{
		"documentTypeIds": typeIDs,
	})
	_ = res.Body.Close()
}

func sendDocument(t *testing.T, client *http.Client, baseURL, employeeID, typeID, value string) {
	t.Helper()
	res := postJSONOK(t, client, baseURL+"/api/v1/employees/"+employeeID+"/documents", map[string]any{
		"documentTypeId": typeID,
		"value":          value,
	})
	_ = res.Body.Close()
}

func postJSON(t *testing.T, client *http.Client, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	res, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return res
}

func postJSONOK(t *testing.T, client *http.Client, url string, payload any) *http.Response {
	t.Helper()
	res := postJSON(t, client, url, payload)
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(res.Body)
		_ = res.Body.Close()
		t.Fatalf("POST %s returned %d: %s", url, res.StatusCode, raw)
	}
	return res
}

func decodeID(t *testing.T, res *http.Response) string {
	t.Helper()
	defer func() { _ = res.Body.Close() }()
	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode data failed: %v", err)
	}
	if payload.ID == "" {
		t.Fatal("expected an id in the response")
	}
	return payload.ID
}

func getJSON(t *testing.T, client *http.Client, url string, out any) {
	t.Helper()
	res, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(res.Body)
		t.Fatalf("GET %s returned %d: %s", url, res.StatusCode, raw)
	}
	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data failed: %v", err)
	}
}

func getList(t *testing.T, client *http.Client, url string) []json.RawMessage {
	t.Helper()
	var list []json.RawMessage
	getJSON(t, client, url, &list)
	return list
}
