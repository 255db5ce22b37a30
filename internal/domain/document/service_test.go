package document

import (
	"context"
	"errors"
	"testing"
	"time"

	"hrdocs/internal/domain/apperror"
	"hrdocs/internal/domain/doclink"
	"hrdocs/internal/domain/doctype"
	"hrdocs/internal/domain/employee"
)

type fakeStore struct {
	docs   []Document
	nextID int
}

func (f *fakeStore) ActiveSent(_ context.Context, employeeID string) ([]Document, error) {
	var out []Document
	for _, d := range f.docs {
		if d.EmployeeID == employeeID && d.IsActive && d.Status == StatusSent {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeStore) ActiveSentWithTypes(ctx context.Context, employeeID string) ([]SentDocument, error) {
	docs, _ := f.ActiveSent(ctx, employeeID)
	out := make([]SentDocument, 0, len(docs))
	for _, d := range docs {
		out = append(out, SentDocument{Document: d, DocumentTypeName: "RG"})
	}
	return out, nil
}

func (f *fakeStore) UpsertSent(_ context.Context, employeeID, typeID, value string) (*Document, error) {
	for i := range f.docs {
		d := &f.docs[i]
		if d.EmployeeID == employeeID && d.DocumentTypeID == typeID && d.IsActive {
			d.Value = value
			d.Status = StatusSent
			d.UpdatedAt = time.Now()
			return d, nil
		}
	}
	f.nextID++
	doc := Document{
		ID:             "doc-" + typeID,
		EmployeeID:     employeeID,
		DocumentTypeID: typeID,
		Value:          value,
		Status:         StatusSent,
		IsActive:       true,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	f.docs = append(f.docs, doc)
	return &doc, nil
}

type fakeEmployees struct {
	employees map[string]*employee.Employee
}

func (f *fakeEmployees) GetActive(_ context.Context, id string) (*employee.Employee, error) {
	if emp, ok := f.employees[id]; ok && emp.IsActive {
		return emp, nil
	}
	return nil, employee.ErrNotFound
}

type fakeTypes struct {
	types map[string]doctype.DocumentType
}

func (f *fakeTypes) GetActive(_ context.Context, id string) (*doctype.DocumentType, error) {
	if dt, ok := f.types[id]; ok && dt.IsActive {
		out := dt
		return &out, nil
	}
	return nil, doctype.ErrNotFound
}

func (f *fakeTypes) GetMany(_ context.Context, ids []string) ([]doctype.DocumentType, error) {
	var out []doctype.DocumentType
	for _, id := range ids {
		if dt, ok := f.types[id]; ok {
			out = append(out, dt)
		}
	}
	return out, nil
}

type fakeLinks struct {
	links []doclink.Link
}

func (f *fakeLinks) ActiveLinks(_ context.Context, employeeID string) ([]doclink.Link, error) {
	var out []doclink.Link
	for _, l := range f.links {
		if l.EmployeeID == employeeID && l.IsActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func newDocumentService() (*Service, *fakeStore, *fakeLinks) {
	store := &fakeStore{}
	links := &fakeLinks{}
	employees := &fakeEmployees{employees: map[string]*employee.Employee{
		"emp-1": {ID: "emp-1", Name: "Ana", Document: "52998224725", IsActive: true},
	}}
	types := &fakeTypes{types: map[string]doctype.DocumentType{
		"type-rg":   {ID: "type-rg", Name: "RG", Description: "Registro Geral", IsActive: true},
		"type-ctps": {ID: "type-ctps", Name: "Carteira de Trabalho", IsActive: true},
		"type-cpf":  {ID: "type-cpf", Name: "CPF", Category: doctype.CategoryTaxID, IsActive: true},
	}}
	return NewService(store, employees, types, links), store, links
}

func link(employeeID, typeID string, createdAt time.Time) doclink.Link {
	return doclink.Link{
		ID:             "link-" + typeID,
		EmployeeID:     employeeID,
		DocumentTypeID: typeID,
		IsActive:       true,
		CreatedAt:      createdAt,
	}
}

func TestSendNormalizesValue(t *testing.T) {
	svc, store, links := newDocumentService()
	links.links = []doclink.Link{link("emp-1", "type-rg", time.Now())}

	doc, err := svc.Send(context.Background(), "emp-1", "type-rg", "MG-12.345.67")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if doc.Value != "MG1234567" {
		t.Fatalf("Send() value = %q, want normalized %q", doc.Value, "MG1234567")
	}
	if doc.Status != StatusSent {
		t.Fatalf("Send() status = %q, want SENT", doc.Status)
	}
	if len(store.docs) != 1 {
		t.Fatalf("store has %d documents, want 1", len(store.docs))
	}
}

func TestSendUpdatesExistingDocument(t *testing.T) {
	svc, store, links := newDocumentService()
	links.links = []doclink.Link{link("emp-1", "type-rg", time.Now())}

	if _, err := svc.Send(context.Background(), "emp-1", "type-rg", "first1"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	doc, err := svc.Send(context.Background(), "emp-1", "type-rg", "second2")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if doc.Value != "second2" {
		t.Fatalf("Send() value = %q, want replaced value", doc.Value)
	}
	if len(store.docs) != 1 {
		t.Fatalf("resubmission created %d documents, want 1 updated in place", len(store.docs))
	}
}

func TestSendTaxIDRejectsMismatchedValue(t *testing.T) {
	svc, store, links := newDocumentService()
	links.links = []doclink.Link{link("emp-1", "type-cpf", time.Now())}

	_, err := svc.Send(context.Background(), "emp-1", "type-cpf", "999.999.999-99")
	appErr := apperror.From(err)
	if appErr == nil || appErr.Code != "cpf_mismatch" {
		t.Fatalf("Send() error = %v, want cpf_mismatch", err)
	}
	if len(store.docs) != 0 {
		t.Fatal("mismatched tax-ID value must not be stored")
	}
}

func TestSendTaxIDAcceptsOwnDocument(t *testing.T) {
	svc, _, links := newDocumentService()
	links.links = []doclink.Link{link("emp-1", "type-cpf", time.Now())}

	doc, err := svc.Send(context.Background(), "emp-1", "type-cpf", "529.982.247-25")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if doc.Value != "52998224725" {
		t.Fatalf("Send() value = %q, want the employee's document", doc.Value)
	}
}

func TestSendWithoutLinkRejected(t *testing.T) {
	svc, _, _ := newDocumentService()

	_, err := svc.Send(context.Background(), "emp-1", "type-rg", "MG1234567")
	appErr := apperror.From(err)
	if appErr == nil || appErr.Code != "link_required" {
		t.Fatalf("Send() error = %v, want link_required", err)
	}
}

func TestSendUnknownTypeDistinctFromMissingLink(t *testing.T) {
	svc, _, _ := newDocumentService()

	_, err := svc.Send(context.Background(), "emp-1", "missing", "MG1234567")
	if !errors.Is(err, doctype.ErrNotFound) {
		t.Fatalf("Send() error = %v, want document type not found", err)
	}
}

func TestSendEmptyValueRejected(t *testing.T) {
	svc, _, links := newDocumentService()
	links.links = []doclink.Link{link("emp-1", "type-rg", time.Now())}

	_, err := svc.Send(context.Background(), "emp-1", "type-rg", "--..--")
	appErr := apperror.From(err)
	if appErr == nil || appErr.Code != "validation_error" {
		t.Fatalf("Send() error = %v, want validation_error", err)
	}
}

func TestStatusPartitionsLinks(t *testing.T) {
	svc, _, links := newDocumentService()
	links.links = []doclink.Link{
		link("emp-1", "type-rg", time.Now()),
		link("emp-1", "type-ctps", time.Now()),
	}

	if _, err := svc.Send(context.Background(), "emp-1", "type-rg", "MG1234567"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	summary, err := svc.Status(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if len(summary.Sent) != 1 || len(summary.Pending) != 1 {
		t.Fatalf("Status() sent=%d pending=%d, want 1/1", len(summary.Sent), len(summary.Pending))
	}
	if len(summary.Sent)+len(summary.Pending) != 2 {
		t.Fatal("sent + pending must cover every active link")
	}
	if summary.Sent[0].Value != "MG1234567" {
		t.Fatalf("sent entry value = %q, want submitted value", summary.Sent[0].Value)
	}
	if summary.Pending[0].DocumentTypeID != "type-ctps" {
		t.Fatalf("pending entry type = %q, want type-ctps", summary.Pending[0].DocumentTypeID)
	}
}

func TestStatusNoLinksReturnsEmptyLists(t *testing.T) {
	svc, _, _ := newDocumentService()

	summary, err := svc.Status(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if summary.Sent == nil || summary.Pending == nil {
		t.Fatal("Status() lists must be non-nil")
	}
	if len(summary.Sent) != 0 || len(summary.Pending) != 0 {
		t.Fatal("Status() with no links must return empty lists")
	}
}

func TestPendingDeduplicatesByType(t *testing.T) {
	svc, _, links := newDocumentService()
	newer := time.Now()
	older := newer.Add(-time.Hour)
	// Duplicate active links for the same type, most recent first.
	links.links = []doclink.Link{
		link("emp-1", "type-rg", newer),
		{ID: "link-old", EmployeeID: "emp-1", DocumentTypeID: "type-rg", IsActive: true, CreatedAt: older},
	}

	pending, err := svc.Pending(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("Pending() returned %d entries, want 1 after dedup", len(pending))
	}
	if !pending[0].RequiredSince.Equal(newer) {
		t.Fatal("Pending() should keep the most recent link's creation date")
	}
	if pending[0].DocumentTypeName != "RG" {
		t.Fatalf("Pending() type name = %q, want RG", pending[0].DocumentTypeName)
	}
}

func TestPendingPlaceholderForMissingType(t *testing.T) {
	svc, _, links := newDocumentService()
	links.links = []doclink.Link{link("emp-1", "type-gone", time.Now())}

	pending, err := svc.Pending(context.Background(), "emp-1")
	if err != nil {
		t.Fatalf("Pending() error = %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("Pending() returned %d entries, want 1", len(pending))
	}
	if pending[0].DocumentTypeName != doclink.PlaceholderTypeName {
		t.Fatalf("Pending() type name = %q, want placeholder", pending[0].DocumentTypeName)
	}
}

func TestSentUnknownEmployee(t *testing.T) {
	svc, _, _ := newDocumentService()

	if _, err := svc.Sent(context.Background(), "missing"); !errors.Is(err, employee.ErrNotFound) {
		t.Fatalf("Sent() error = %v, want employee not found", err)
	}
}

func TestBuildDocumentationInfo(t *testing.T) {
	tests := []struct {
		name        string
		required    int
		sent        int
		wantPct     int
		wantDone    bool
		wantPending int
	}{
		{"complete", 3, 3, 100, true, 0},
		{"partial", 3, 1, 33, false, 2},
		{"two thirds", 3, 2, 67, false, 1},
		{"nothing required", 0, 0, 0, false, 0},
		{"nothing sent", 4, 0, 0, false, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := buildDocumentationInfo(tt.required, tt.sent)
			if info.CompletionPercentage != tt.wantPct {
				t.Fatalf("completion = %d, want %d", info.CompletionPercentage, tt.wantPct)
			}
			if info.IsComplete != tt.wantDone {
				t.Fatalf("isComplete = %v, want %v", info.IsComplete, tt.wantDone)
			}
			if info.Pending != tt.wantPending {
				t.Fatalf("pending = %d, want %d", info.Pending, tt.wantPending)
			}
		})
	}
}

func TestEnrichCountsPerEmployee(t *testing.T) {
	svc, _, links := newDocumentService()
	links.links = []doclink.Link{
		link("emp-1", "type-rg", time.Now()),
		link("emp-1", "type-ctps", time.Now()),
	}
	if _, err := svc.Send(context.Background(), "emp-1", "type-rg", "MG1234567"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	enriched, err := svc.Enrich(context.Background(), []employee.Employee{
		{ID: "emp-1", Name: "Ana"},
		{ID: "emp-2", Name: "Bruno"},
	})
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if len(enriched) != 2 {
		t.Fatalf("Enrich() returned %d entries, want 2", len(enriched))
	}
	first := enriched[0].Documentation
	if first.Required != 2 || first.Sent != 1 || first.Pending != 1 || first.CompletionPercentage != 50 {
		t.Fatalf("Enrich() first = %+v, want required=2 sent=1 pending=1 pct=50", first)
	}
	second := enriched[1].Documentation
	if second.Required != 0 || second.IsComplete || second.CompletionPercentage != 0 {
		t.Fatalf("Enrich() second = %+v, want zeroes and incomplete", second)
	}
}
