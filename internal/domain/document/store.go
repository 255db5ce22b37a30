package document

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hrdocs/internal/domain/apperror"
	"hrdocs/internal/domain/doclink"
	"hrdocs/internal/platform/db"
)

const documentColumns = `id, employee_id, document_type_id, value, status, is_active, created_at, updated_at, deleted_at`

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

// ActiveSent returns the employee's active SENT documents.
func (s *Store) ActiveSent(ctx context.Context, employeeID string) ([]Document, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+documentColumns+`
    FROM documents
    WHERE employee_id = $1 AND is_active AND status = 'SENT'
    ORDER BY created_at DESC, id DESC
  `, employeeID)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}
	return out, nil
}

// ActiveSentWithTypes is ActiveSent joined with the type table, degrading to
// placeholder texts when the type row is gone.
func (s *Store) ActiveSentWithTypes(ctx context.Context, employeeID string) ([]SentDocument, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT d.id, d.employee_id, d.document_type_id, d.value, d.status, d.is_active, d.created_at, d.updated_at, d.deleted_at,
           COALESCE(dt.name, '`+doclink.PlaceholderTypeName+`'),
           COALESCE(dt.description, '`+doclink.PlaceholderTypeDescription+`')
    FROM documents d
    LEFT JOIN document_types dt ON dt.id = d.document_type_id
    WHERE d.employee_id = $1 AND d.is_active AND d.status = 'SENT'
    ORDER BY d.created_at DESC, d.id DESC
  `, employeeID)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	var out []SentDocument
	for rows.Next() {
		var sd SentDocument
		if err := rows.Scan(
			&sd.ID, &sd.EmployeeID, &sd.DocumentTypeID, &sd.Value, &sd.Status,
			&sd.IsActive, &sd.CreatedAt, &sd.UpdatedAt, &sd.DeletedAt,
			&sd.DocumentTypeName, &sd.DocumentTypeDescription,
		); err != nil {
			return nil, apperror.Database(err)
		}
		out = append(out, sd)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}
	return out, nil
}

// UpsertSent updates the active document for the pair in place, or inserts a
// fresh SENT one when none exists.
func (s *Store) UpsertSent(ctx context.Context, employeeID, typeID, value string) (*Document, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE documents
    SET value = $3,
        status = 'SENT',
        updated_at = now()
    WHERE employee_id = $1 AND document_type_id = $2 AND is_active
    RETURNING `+documentColumns+`
  `, employeeID, typeID, value)

	doc, err := scanDocument(row)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, errNoDocumentRow) {
		return nil, err
	}

	row = s.DB.QueryRow(ctx, `
    INSERT INTO documents (employee_id, document_type_id, value, status)
    VALUES ($1, $2, $3, 'SENT')
    RETURNING `+documentColumns+`
  `, employeeID, typeID, value)
	return scanDocument(row)
}

var errNoDocumentRow = errors.New("no document row")

func scanDocument(row pgx.Row) (*Document, error) {
	var doc Document
	if err := row.Scan(
		&doc.ID, &doc.EmployeeID, &doc.DocumentTypeID, &doc.Value, &doc.Status,
		&doc.IsActive, &doc.CreatedAt, &doc.UpdatedAt, &doc.DeletedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNoDocumentRow
		}
		return nil, apperror.Database(err)
	}
	return &doc, nil
}
