package doctype

import (
	"context"

	"hrdocs/internal/domain/listing"
)

type StoreAPI interface {
	Insert(ctx context.Context, name, description, category string) (*DocumentType, error)
	GetActive(ctx context.Context, id string) (*DocumentType, error)
	GetMany(ctx context.Context, ids []string) ([]DocumentType, error)
	ActiveNameExists(ctx context.Context, name, excludeID string) (bool, error)
	Update(ctx context.Context, id, name, description, category string) (*DocumentType, error)
	SoftDelete(ctx context.Context, id string) (*DocumentType, error)
	Restore(ctx context.Context, id string) (*DocumentType, error)
	Count(ctx context.Context, filter Filter) (int, error)
	List(ctx context.Context, filter Filter, page listing.Page) ([]DocumentType, error)
}
