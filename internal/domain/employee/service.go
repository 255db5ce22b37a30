package employee

import (
	"context"
	"strings"
	"time"

	"hrdocs/internal/domain/apperror"
	"hrdocs/internal/domain/listing"
)

type Service struct {
	store         StoreAPI
	defaultStatus string
	pageSize      int
}

func NewService(store StoreAPI, defaultStatus string, pageSize int) *Service {
	return &Service{store: store, defaultStatus: defaultStatus, pageSize: pageSize}
}

type CreateInput struct {
	Name     string
	Document string
	HiredAt  *time.Time
}

type UpdateInput struct {
	Name     *string
	Document *string
	HiredAt  *time.Time
}

type ListOptions struct {
	Status string
	Name   string
	Query  string
	Page   int
	Limit  int
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Employee, error) {
	name := strings.TrimSpace(input.Name)
	document := NormalizeDocument(input.Document)
	if name == "" {
		return nil, apperror.Invalid("validation_error", "name is required")
	}
	if document == "" {
		return nil, apperror.Invalid("validation_error", "document is required")
	}

	exists, err := s.store.ActiveDocumentExists(ctx, document, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateDocument
	}

	return s.store.Insert(ctx, name, document, input.HiredAt)
}

func (s *Service) Get(ctx context.Context, id string) (*Employee, error) {
	emp, err := s.store.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}
	ids, err := s.store.RequiredTypeIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	emp.RequiredDocumentTypeIDs = ids
	return emp, nil
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*Employee, error) {
	existing, err := s.store.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}

	name := existing.Name
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.Invalid("validation_error", "name must not be empty")
		}
	}

	document := existing.Document
	if input.Document != nil {
		document = NormalizeDocument(*input.Document)
		if document == "" {
			return nil, apperror.Invalid("validation_error", "document must not be empty")
		}
	}

	hiredAt := existing.HiredAt
	if input.HiredAt != nil {
		hiredAt = input.HiredAt
	}

	if document != existing.Document {
		exists, err := s.store.ActiveDocumentExists(ctx, document, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateDocument
		}
	}

	return s.store.Update(ctx, id, name, document, hiredAt)
}

func (s *Service) SoftDelete(ctx context.Context, id string) (*Employee, error) {
	return s.store.SoftDelete(ctx, id)
}

func (s *Service) Restore(ctx context.Context, id string) (*Employee, error) {
	return s.store.Restore(ctx, id)
}

func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	status, err := listing.NormalizeStatus(opts.Status, s.defaultStatus)
	if err != nil {
		return nil, err
	}

	page := opts.Page
	if page <= 0 {
		page = 1
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = s.pageSize
	}

	filter := Filter{Status: status}
	if query := strings.TrimSpace(opts.Query); query != "" {
		normalized := NormalizeDocument(query)
		if IsCPFShaped(normalized) {
			filter.Document = normalized
		} else {
			filter.Name = query
		}
	} else if name := strings.TrimSpace(opts.Name); name != "" {
		filter.Name = name
	}

	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := listing.CheckPage(page, total, limit); err != nil {
		return nil, err
	}

	employees, err := s.store.List(ctx, filter, listing.Page{Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Employees:  employees,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: listing.TotalPages(total, limit),
	}, nil
}
