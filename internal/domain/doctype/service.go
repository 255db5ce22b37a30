package doctype

import (
	"context"
	"strings"

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
	Name        string
	Description string
	Category    string
}

type UpdateInput struct {
	Name        *string
	Description *string
	Category    *string
}

type ListOptions struct {
	Status string
	Name   string
	Page   int
	Limit  int
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*DocumentType, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.Invalid("validation_error", "name is required")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = CategoryGeneral
	}
	if !ValidCategory(category) {
		return nil, apperror.Invalid("validation_error", "category must be general or tax_id")
	}

	exists, err := s.store.ActiveNameExists(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	return s.store.Insert(ctx, name, strings.TrimSpace(input.Description), category)
}

func (s *Service) Get(ctx context.Context, id string) (*DocumentType, error) {
	return s.store.GetActive(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*DocumentType, error) {
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

	description := existing.Description
	if input.Description != nil {
		description = strings.TrimSpace(*input.Description)
	}

	category := existing.Category
	if input.Category != nil {
		category = strings.TrimSpace(*input.Category)
		if !ValidCategory(category) {
			return nil, apperror.Invalid("validation_error", "category must be general or tax_id")
		}
	}

	// Renaming to the current name is a no-op, not a conflict.
	if !strings.EqualFold(name, existing.Name) {
		exists, err := s.store.ActiveNameExists(ctx, name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateName
		}
	}

	return s.store.Update(ctx, id, name, description, category)
}

func (s *Service) SoftDelete(ctx context.Context, id string) (*DocumentType, error) {
	return s.store.SoftDelete(ctx, id)
}

func (s *Service) Restore(ctx context.Context, id string) (*DocumentType, error) {
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

	filter := Filter{Status: status, Name: strings.TrimSpace(opts.Name)}

	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := listing.CheckPage(page, total, limit); err != nil {
		return nil, err
	}

	types, err := s.store.List(ctx, filter, listing.Page{Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}

	return &ListResult{
		DocumentTypes: types,
		Total:         total,
		Page:          page,
		Limit:         limit,
		TotalPages:    listing.TotalPages(total, limit),
	}, nil
}
