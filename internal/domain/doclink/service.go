package doclink

import (
	"context"

	"hrdocs/internal/domain/apperror"
	"hrdocs/internal/domain/doctype"
	"hrdocs/internal/domain/employee"
	"hrdocs/internal/domain/listing"
)

type EmployeeGetter interface {
	GetActive(ctx context.Context, id string) (*employee.Employee, error)
}

type TypeResolver interface {
	GetActive(ctx context.Context, id string) (*doctype.DocumentType, error)
	GetMany(ctx context.Context, ids []string) ([]doctype.DocumentType, error)
}

type Service struct {
	store     StoreAPI
	employees EmployeeGetter
	types     TypeResolver
}

func NewService(store StoreAPI, employees EmployeeGetter, types TypeResolver) *Service {
	return &Service{store: store, employees: employees, types: types}
}

// Link assigns the given document types to the employee. The batch is
// all-or-nothing: any unresolvable or already-linked type fails the whole
// request before a single row is written.
func (s *Service) Link(ctx context.Context, employeeID string, typeIDs []string) ([]Link, error) {
	typeIDs = dedupe(typeIDs)
	if len(typeIDs) == 0 {
		return nil, apperror.Invalid("validation_error", "documentTypeIds must not be empty")
	}

	emp, err := s.employees.GetActive(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	typesByID, err := s.resolveActiveTypes(ctx, typeIDs)
	if err != nil {
		return nil, err
	}

	active, err := s.store.ActiveLinks(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	linked := make(map[string]bool, len(active))
	for _, link := range active {
		linked[link.DocumentTypeID] = true
	}

	var conflicts []string
	for _, id := range typeIDs {
		if linked[id] {
			conflicts = append(conflicts, typesByID[id].Name)
		}
	}
	if len(conflicts) > 0 {
		return nil, AlreadyLinkedError(conflicts)
	}

	autoDocs := make(map[string]string)
	for _, id := range typeIDs {
		if typesByID[id].IsTaxID() {
			autoDocs[id] = emp.Document
		}
	}

	return s.store.CreateBatch(ctx, employeeID, typeIDs, autoDocs)
}

// Unlink removes the given assignments, again all-or-nothing: every type must
// currently hold an active link. Submitted documents are left untouched.
func (s *Service) Unlink(ctx context.Context, employeeID string, typeIDs []string) error {
	typeIDs = dedupe(typeIDs)
	if len(typeIDs) == 0 {
		return apperror.Invalid("validation_error", "documentTypeIds must not be empty")
	}

	if _, err := s.employees.GetActive(ctx, employeeID); err != nil {
		return err
	}

	active, err := s.store.ActiveLinks(ctx, employeeID)
	if err != nil {
		return err
	}
	linked := make(map[string]bool, len(active))
	for _, link := range active {
		linked[link.DocumentTypeID] = true
	}

	var missing []string
	for _, id := range typeIDs {
		if !linked[id] {
			missing = append(missing, s.typeLabel(ctx, id))
		}
	}
	if len(missing) > 0 {
		return NotLinkedError(missing)
	}

	_, err = s.store.DeactivateBatch(ctx, employeeID, typeIDs)
	return err
}

// Restore reactivates a previous link for the pair, or creates one when the
// pair was never linked.
func (s *Service) Restore(ctx context.Context, employeeID, typeID string) (*Link, error) {
	emp, err := s.employees.GetActive(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	typ, err := s.types.GetActive(ctx, typeID)
	if err != nil {
		return nil, err
	}

	autoDocValue := ""
	if typ.IsTaxID() {
		autoDocValue = emp.Document
	}
	return s.store.RestoreOrCreate(ctx, employeeID, typeID, autoDocValue)
}

func (s *Service) RequiredDocuments(ctx context.Context, employeeID, status string) ([]RequiredDocument, error) {
	normalized, err := listing.NormalizeStatus(status, listing.StatusActive)
	if err != nil {
		return nil, err
	}
	if _, err := s.employees.GetActive(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.store.RequiredDocuments(ctx, employeeID, normalized)
}

// Deduplicate cleans up the data-integrity bug of multiple links per pair,
// keeping the most recently created row.
func (s *Service) Deduplicate(ctx context.Context, employeeID string) (int64, error) {
	if _, err := s.employees.GetActive(ctx, employeeID); err != nil {
		return 0, err
	}
	return s.store.RemoveDuplicates(ctx, employeeID)
}

func (s *Service) resolveActiveTypes(ctx context.Context, typeIDs []string) (map[string]doctype.DocumentType, error) {
	resolved, err := s.types.GetMany(ctx, typeIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]doctype.DocumentType, len(resolved))
	for _, dt := range resolved {
		if dt.IsActive {
			byID[dt.ID] = dt
		}
	}
	var missing []string
	for _, id := range typeIDs {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, TypesNotFoundError(missing)
	}
	return byID, nil
}

func (s *Service) typeLabel(ctx context.Context, typeID string) string {
	if dt, err := s.types.GetActive(ctx, typeID); err == nil {
		return dt.Name
	}
	return typeID
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
