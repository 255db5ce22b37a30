package employee

import (
	"context"
	"time"

	"hrdocs/internal/domain/listing"
)

type StoreAPI interface {
	Insert(ctx context.Context, name, document string, hiredAt *time.Time) (*Employee, error)
	GetActive(ctx context.Context, id string) (*Employee, error)
	ActiveDocumentExists(ctx context.Context, document, excludeID string) (bool, error)
	Update(ctx context.Context, id, name, document string, hiredAt *time.Time) (*Employee, error)
	SoftDelete(ctx context.Context, id string) (*Employee, error)
	Restore(ctx context.Context, id string) (*Employee, error)
	Count(ctx context.Context, filter Filter) (int, error)
	List(ctx context.Context, filter Filter, page listing.Page) ([]Employee, error)
	RequiredTypeIDs(ctx context.Context, employeeID string) ([]string, error)
}
