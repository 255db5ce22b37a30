package doctype

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"hrdocs/internal/domain/apperror"
	"hrdocs/internal/domain/listing"
	"hrdocs/internal/platform/db"
)

const uniqueViolationCode = "23505"

const typeColumns = `id, name, description, category, is_active, created_at, updated_at, deleted_at`

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

func (s *Store) Insert(ctx context.Context, name, description, category string) (*DocumentType, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO document_types (name, description, category)
    VALUES ($1, $2, $3)
    RETURNING `+typeColumns+`
  `, name, description, category)
	return scanType(row)
}

func (s *Store) GetActive(ctx context.Context, id string) (*DocumentType, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+typeColumns+`
    FROM document_types
    WHERE id = $1 AND is_active
  `, id)
	return scanType(row)
}

// GetMany resolves a batch of ids in one round trip. Missing ids are simply
// absent from the result; callers decide whether that is an error.
func (s *Store) GetMany(ctx context.Context, ids []string) ([]DocumentType, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.DB.Query(ctx, `
    SELECT `+typeColumns+`
    FROM document_types
    WHERE id = ANY($1)
  `, ids)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	out := make([]DocumentType, 0, len(ids))
	for rows.Next() {
		dt, err := scanType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *dt)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}
	return out, nil
}

func (s *Store) ActiveNameExists(ctx context.Context, name, excludeID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM document_types
    WHERE lower(name) = lower($1) AND is_active AND ($2 = '' OR id::text <> $2)
  `, name, excludeID).Scan(&count)
	if err != nil {
		return false, apperror.Database(err)
	}
	return count > 0, nil
}

func (s *Store) Update(ctx context.Context, id, name, description, category string) (*DocumentType, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE document_types
    SET name = $1,
        description = $2,
        category = $3,
        updated_at = now()
    WHERE id = $4 AND is_active
    RETURNING `+typeColumns+`
  `, name, description, category, id)
	return scanType(row)
}

func (s *Store) SoftDelete(ctx context.Context, id string) (*DocumentType, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE document_types
    SET is_active = false,
        deleted_at = now(),
        updated_at = now()
    WHERE id = $1 AND is_active
    RETURNING `+typeColumns+`
  `, id)
	return scanType(row)
}

func (s *Store) Restore(ctx context.Context, id string) (*DocumentType, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE document_types
    SET is_active = true,
        deleted_at = NULL,
        updated_at = now()
    WHERE id = $1
    RETURNING `+typeColumns+`
  `, id)
	return scanType(row)
}

func (s *Store) Count(ctx context.Context, filter Filter) (int, error) {
	where, args := buildFilter(filter)
	var count int
	err := s.DB.QueryRow(ctx, `SELECT COUNT(1) FROM document_types`+where, args...).Scan(&count)
	if err != nil {
		return 0, apperror.Database(err)
	}
	return count, nil
}

func (s *Store) List(ctx context.Context, filter Filter, page listing.Page) ([]DocumentType, error) {
	where, args := buildFilter(filter)
	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, page.Limit)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, page.Offset())

	rows, err := s.DB.Query(ctx, `
    SELECT `+typeColumns+`
    FROM document_types`+where+`
    ORDER BY name, id
    LIMIT `+limitPlaceholder+`
    OFFSET `+offsetPlaceholder+`
  `, args...)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	out := make([]DocumentType, 0, page.Limit)
	for rows.Next() {
		dt, err := scanType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *dt)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}
	return out, nil
}

func buildFilter(filter Filter) (string, []any) {
	args := make([]any, 0, 2)
	conditions := make([]string, 0, 2)

	switch filter.Status {
	case listing.StatusActive:
		conditions = append(conditions, "is_active")
	case listing.StatusInactive:
		conditions = append(conditions, "NOT is_active")
	}
	if filter.Name != "" {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "name ILIKE "+placeholder)
		args = append(args, "%"+listing.EscapeLike(filter.Name)+"%")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanType(row pgx.Row) (*DocumentType, error) {
	var dt DocumentType
	var description *string
	if err := row.Scan(
		&dt.ID, &dt.Name, &description, &dt.Category,
		&dt.IsActive, &dt.CreatedAt, &dt.UpdatedAt, &dt.DeletedAt,
	); err != nil {
		return nil, translatePgError(err)
	}
	if description != nil {
		dt.Description = *description
	}
	return &dt, nil
}

func translatePgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicateName
	}
	return apperror.Database(err)
}
