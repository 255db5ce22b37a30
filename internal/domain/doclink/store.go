package doclink

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hrdocs/internal/domain/apperror"
	"hrdocs/internal/domain/listing"
	"hrdocs/internal/platform/db"
)

const linkColumns = `id, employee_id, document_type_id, is_active, created_at, updated_at, deleted_at`

type Store struct {
	DB db.Pool
}

func NewStore(pool db.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) ActiveLinks(ctx context.Context, employeeID string) ([]Link, error) {
	return s.Links(ctx, employeeID, listing.StatusActive)
}

func (s *Store) Links(ctx context.Context, employeeID, status string) ([]Link, error) {
	query := `
    SELECT ` + linkColumns + `
    FROM employee_document_type_links
    WHERE employee_id = $1`
	switch status {
	case listing.StatusActive:
		query += ` AND is_active`
	case listing.StatusInactive:
		query += ` AND NOT is_active`
	}
	query += `
    ORDER BY created_at DESC, id DESC
  `

	rows, err := s.DB.Query(ctx, query, employeeID)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	var out []Link
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *link)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}
	return out, nil
}

// CreateBatch inserts one active link per type id and, for entries present in
// autoDocs, upserts the auto-filled SENT document — all inside one
// transaction so a failing insert leaves nothing behind.
func (s *Store) CreateBatch(ctx context.Context, employeeID string, typeIDs []string, autoDocs map[string]string) ([]Link, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	links := make([]Link, 0, len(typeIDs))
	for _, typeID := range typeIDs {
		row := tx.QueryRow(ctx, `
      INSERT INTO employee_document_type_links (employee_id, document_type_id)
      VALUES ($1, $2)
      RETURNING `+linkColumns+`
    `, employeeID, typeID)
		link, err := scanLink(row)
		if err != nil {
			return nil, err
		}
		links = append(links, *link)

		if value, ok := autoDocs[typeID]; ok {
			if err := upsertSentDocument(ctx, tx, employeeID, typeID, value); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.Database(err)
	}
	return links, nil
}

// DeactivateBatch soft-deletes the active links for the given pairs in one
// statement and reports how many rows changed.
func (s *Store) DeactivateBatch(ctx context.Context, employeeID string, typeIDs []string) (int64, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employee_document_type_links
    SET is_active = false,
        deleted_at = now(),
        updated_at = now()
    WHERE employee_id = $1 AND document_type_id = ANY($2) AND is_active
  `, employeeID, typeIDs)
	if err != nil {
		return 0, apperror.Database(err)
	}
	return tag.RowsAffected(), nil
}

// RestoreOrCreate reactivates the most recent link row for the pair, or
// creates a fresh one when none exists. A non-empty autoDocValue also upserts
// the SENT document for the pair.
func (s *Store) RestoreOrCreate(ctx context.Context, employeeID, typeID, autoDocValue string) (*Link, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
    UPDATE employee_document_type_links
    SET is_active = true,
        deleted_at = NULL,
        updated_at = now()
    WHERE id = (
      SELECT id
      FROM employee_document_type_links
      WHERE employee_id = $1 AND document_type_id = $2
      ORDER BY created_at DESC, id DESC
      LIMIT 1
    )
    RETURNING `+linkColumns+`
  `, employeeID, typeID)

	link, err := scanLink(row)
	if err != nil {
		if !errors.Is(err, errNoLinkRow) {
			return nil, err
		}
		row = tx.QueryRow(ctx, `
      INSERT INTO employee_document_type_links (employee_id, document_type_id)
      VALUES ($1, $2)
      RETURNING `+linkColumns+`
    `, employeeID, typeID)
		link, err = scanLink(row)
		if err != nil {
			return nil, err
		}
	}

	if autoDocValue != "" {
		if err := upsertSentDocument(ctx, tx, employeeID, typeID, autoDocValue); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.Database(err)
	}
	return link, nil
}

// RemoveDuplicates keeps the most recently created link per document type
// and soft-deletes every other still-active row for the employee.
func (s *Store) RemoveDuplicates(ctx context.Context, employeeID string) (int64, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employee_document_type_links
    SET is_active = false,
        deleted_at = now(),
        updated_at = now()
    WHERE employee_id = $1
      AND is_active
      AND id NOT IN (
        SELECT DISTINCT ON (document_type_id) id
        FROM employee_document_type_links
        WHERE employee_id = $1
        ORDER BY document_type_id, created_at DESC, id DESC
      )
  `, employeeID)
	if err != nil {
		return 0, apperror.Database(err)
	}
	return tag.RowsAffected(), nil
}

// RequiredDocuments joins links with their types, degrading to placeholder
// texts when the type row is gone.
func (s *Store) RequiredDocuments(ctx context.Context, employeeID, status string) ([]RequiredDocument, error) {
	query := `
    SELECT l.id, l.employee_id, l.document_type_id, l.is_active, l.created_at, l.updated_at, l.deleted_at,
           COALESCE(dt.name, '` + PlaceholderTypeName + `'),
           COALESCE(dt.description, '` + PlaceholderTypeDescription + `')
    FROM employee_document_type_links l
    LEFT JOIN document_types dt ON dt.id = l.document_type_id
    WHERE l.employee_id = $1`
	switch status {
	case listing.StatusActive:
		query += ` AND l.is_active`
	case listing.StatusInactive:
		query += ` AND NOT l.is_active`
	}
	query += `
    ORDER BY l.created_at DESC, l.id DESC
  `

	rows, err := s.DB.Query(ctx, query, employeeID)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	var out []RequiredDocument
	for rows.Next() {
		var rd RequiredDocument
		if err := rows.Scan(
			&rd.ID, &rd.EmployeeID, &rd.DocumentTypeID, &rd.IsActive,
			&rd.CreatedAt, &rd.UpdatedAt, &rd.DeletedAt,
			&rd.DocumentTypeName, &rd.DocumentTypeDescription,
		); err != nil {
			return nil, apperror.Database(err)
		}
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}
	return out, nil
}

var errNoLinkRow = errors.New("no link row")

func scanLink(row pgx.Row) (*Link, error) {
	var link Link
	if err := row.Scan(
		&link.ID, &link.EmployeeID, &link.DocumentTypeID, &link.IsActive,
		&link.CreatedAt, &link.UpdatedAt, &link.DeletedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNoLinkRow
		}
		return nil, apperror.Database(err)
	}
	return &link, nil
}

func upsertSentDocument(ctx context.Context, q db.Queryer, employeeID, typeID, value string) error {
	tag, err := q.Exec(ctx, `
    UPDATE documents
    SET value = $3,
        status = 'SENT',
        updated_at = now()
    WHERE employee_id = $1 AND document_type_id = $2 AND is_active
  `, employeeID, typeID, value)
	if err != nil {
		return apperror.Database(err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	if _, err := q.Exec(ctx, `
    INSERT INTO documents (employee_id, document_type_id, value, status)
    VALUES ($1, $2, $3, 'SENT')
  `, employeeID, typeID, value); err != nil {
		return apperror.Database(err)
	}
	return nil
}
