package document

import (
	"context"
	"math"

	"hrdocs/internal/domain/apperror"
	"hrdocs/internal/domain/doclink"
	"hrdocs/internal/domain/doctype"
	"hrdocs/internal/domain/employee"
)

type EmployeeGetter interface {
	GetActive(ctx context.Context, id string) (*employee.Employee, error)
}

type TypeResolver interface {
	GetActive(ctx context.Context, id string) (*doctype.DocumentType, error)
	GetMany(ctx context.Context, ids []string) ([]doctype.DocumentType, error)
}

type LinkReader interface {
	ActiveLinks(ctx context.Context, employeeID string) ([]doclink.Link, error)
}

type Service struct {
	store     StoreAPI
	employees EmployeeGetter
	types     TypeResolver
	links     LinkReader
}

func NewService(store StoreAPI, employees EmployeeGetter, types TypeResolver, links LinkReader) *Service {
	return &Service{store: store, employees: employees, types: types, links: links}
}

// EmployeeDocumentation is an employee annotated with completion counters
// for the overview listing.
type EmployeeDocumentation struct {
	employee.Employee
	Documentation DocumentationInfo `json:"documentation"`
}

// Send records a submission for an actively linked pair. The value keeps
// only letters and digits; resubmitting replaces the stored value in place.
// For tax-ID types the value must match the employee's own document, so the
// auto-filled submission cannot be overwritten with a diverging one.
func (s *Service) Send(ctx context.Context, employeeID, typeID, value string) (*Document, error) {
	emp, err := s.employees.GetActive(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	typ, err := s.types.GetActive(ctx, typeID)
	if err != nil {
		return nil, err
	}

	normalized := employee.NormalizeDocument(value)
	if normalized == "" {
		return nil, apperror.Invalid("validation_error", "value must contain at least one letter or digit")
	}
	if typ.IsTaxID() && normalized != emp.Document {
		return nil, apperror.Invalid("cpf_mismatch", "value must match the employee's document for tax-ID document types")
	}

	active, err := s.links.ActiveLinks(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	linked := false
	for _, link := range active {
		if link.DocumentTypeID == typeID {
			linked = true
			break
		}
	}
	if !linked {
		return nil, ErrLinkRequired
	}

	return s.store.UpsertSent(ctx, employeeID, typeID, normalized)
}

// Status partitions the employee's deduplicated active links into sent and
// pending entries. No active links means two empty lists, not an error.
func (s *Service) Status(ctx context.Context, employeeID string) (*StatusSummary, error) {
	if _, err := s.employees.GetActive(ctx, employeeID); err != nil {
		return nil, err
	}

	links, err := s.activeLinksByType(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	sentDocs, err := s.store.ActiveSent(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	sentByType := make(map[string]Document, len(sentDocs))
	for _, doc := range sentDocs {
		if _, ok := sentByType[doc.DocumentTypeID]; !ok {
			sentByType[doc.DocumentTypeID] = doc
		}
	}

	names, err := s.typeInfo(ctx, typeIDs(links))
	if err != nil {
		return nil, err
	}

	summary := &StatusSummary{
		EmployeeID: employeeID,
		Sent:       []SentDocument{},
		Pending:    []PendingDocument{},
	}
	for _, link := range links {
		info := names[link.DocumentTypeID]
		if doc, ok := sentByType[link.DocumentTypeID]; ok {
			summary.Sent = append(summary.Sent, SentDocument{
				Document:                doc,
				DocumentTypeName:        info.name,
				DocumentTypeDescription: info.description,
			})
			continue
		}
		summary.Pending = append(summary.Pending, PendingDocument{
			DocumentTypeID:          link.DocumentTypeID,
			DocumentTypeName:        info.name,
			DocumentTypeDescription: info.description,
			RequiredSince:           link.CreatedAt,
		})
	}
	return summary, nil
}

// Sent lists every active SENT document with resolved type info.
func (s *Service) Sent(ctx context.Context, employeeID string) ([]SentDocument, error) {
	if _, err := s.employees.GetActive(ctx, employeeID); err != nil {
		return nil, err
	}
	sent, err := s.store.ActiveSentWithTypes(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if sent == nil {
		sent = []SentDocument{}
	}
	return sent, nil
}

// Pending lists the active links still waiting for a submission, one entry
// per document type with requiredSince taken from the link.
func (s *Service) Pending(ctx context.Context, employeeID string) ([]PendingDocument, error) {
	if _, err := s.employees.GetActive(ctx, employeeID); err != nil {
		return nil, err
	}

	links, err := s.activeLinksByType(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	sentDocs, err := s.store.ActiveSent(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	sent := make(map[string]bool, len(sentDocs))
	for _, doc := range sentDocs {
		sent[doc.DocumentTypeID] = true
	}

	names, err := s.typeInfo(ctx, typeIDs(links))
	if err != nil {
		return nil, err
	}

	pending := []PendingDocument{}
	for _, link := range links {
		if sent[link.DocumentTypeID] {
			continue
		}
		info := names[link.DocumentTypeID]
		pending = append(pending, PendingDocument{
			DocumentTypeID:          link.DocumentTypeID,
			DocumentTypeName:        info.name,
			DocumentTypeDescription: info.description,
			RequiredSince:           link.CreatedAt,
		})
	}
	return pending, nil
}

// Enrich annotates each employee with required/sent/pending counters.
func (s *Service) Enrich(ctx context.Context, employees []employee.Employee) ([]EmployeeDocumentation, error) {
	out := make([]EmployeeDocumentation, 0, len(employees))
	for _, emp := range employees {
		links, err := s.activeLinksByType(ctx, emp.ID)
		if err != nil {
			return nil, err
		}
		sentDocs, err := s.store.ActiveSent(ctx, emp.ID)
		if err != nil {
			return nil, err
		}
		sent := make(map[string]bool, len(sentDocs))
		for _, doc := range sentDocs {
			sent[doc.DocumentTypeID] = true
		}

		sentCount := 0
		for _, link := range links {
			if sent[link.DocumentTypeID] {
				sentCount++
			}
		}
		out = append(out, EmployeeDocumentation{
			Employee:      emp,
			Documentation: buildDocumentationInfo(len(links), sentCount),
		})
	}
	return out, nil
}

func buildDocumentationInfo(required, sent int) DocumentationInfo {
	info := DocumentationInfo{
		Required: required,
		Sent:     sent,
		Pending:  required - sent,
	}
	if required == 0 {
		return info
	}
	info.IsComplete = sent == required
	info.CompletionPercentage = int(math.Round(float64(sent) / float64(required) * 100))
	return info
}

// activeLinksByType returns one active link per document type, most recent
// first, so repeated links from historical data count once.
func (s *Service) activeLinksByType(ctx context.Context, employeeID string) ([]doclink.Link, error) {
	links, err := s.links.ActiveLinks(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(links))
	out := make([]doclink.Link, 0, len(links))
	for _, link := range links {
		if seen[link.DocumentTypeID] {
			continue
		}
		seen[link.DocumentTypeID] = true
		out = append(out, link)
	}
	return out, nil
}

type typeDisplay struct {
	name        string
	description string
}

func (s *Service) typeInfo(ctx context.Context, ids []string) (map[string]typeDisplay, error) {
	out := make(map[string]typeDisplay, len(ids))
	for _, id := range ids {
		out[id] = typeDisplay{
			name:        doclink.PlaceholderTypeName,
			description: doclink.PlaceholderTypeDescription,
		}
	}
	if len(ids) == 0 {
		return out, nil
	}

	resolved, err := s.types.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, dt := range resolved {
		display := typeDisplay{name: dt.Name, description: dt.Description}
		if display.description == "" {
			display.description = doclink.PlaceholderTypeDescription
		}
		out[dt.ID] = display
	}
	return out, nil
}

func typeIDs(links []doclink.Link) []string {
	ids := make([]string, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.DocumentTypeID)
	}
	return ids
}
