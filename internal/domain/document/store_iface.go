package document

import "context"

type StoreAPI interface {
	ActiveSent(ctx context.Context, employeeID string) ([]Document, error)
	ActiveSentWithTypes(ctx context.Context, employeeID string) ([]SentDocument, error)
	UpsertSent(ctx context.Context, employeeID, typeID, value string) (*Document, error)
}
