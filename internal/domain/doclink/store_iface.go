package doclink

import "context"

type StoreAPI interface {
	ActiveLinks(ctx context.Context, employeeID string) ([]Link, error)
	CreateBatch(ctx context.Context, employeeID string, typeIDs []string, autoDocs map[string]string) ([]Link, error)
	DeactivateBatch(ctx context.Context, employeeID string, typeIDs []string) (int64, error)
	RestoreOrCreate(ctx context.Context, employeeID, typeID, autoDocValue string) (*Link, error)
	RemoveDuplicates(ctx context.Context, employeeID string) (int64, error)
	RequiredDocuments(ctx context.Context, employeeID, status string) ([]RequiredDocument, error)
}
