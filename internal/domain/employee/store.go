package employee

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"hrdocs/internal/domain/apperror"
	"hrdocs/internal/domain/listing"
	"hrdocs/internal/platform/db"
)

const uniqueViolationCode = "23505"

const employeeColumns = `id, name, document, hired_at, is_active, created_at, updated_at, deleted_at`

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

func (s *Store) Insert(ctx context.Context, name, document string, hiredAt *time.Time) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO employees (name, document, hired_at)
    VALUES ($1, $2, $3)
    RETURNING `+employeeColumns+`
  `, name, document, hiredAt)
	return scanEmployee(row)
}

func (s *Store) GetActive(ctx context.Context, id string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1 AND is_active
  `, id)
	return scanEmployee(row)
}

// ActiveDocumentExists reports whether another active employee already holds
// the document. excludeID skips the employee being updated.
func (s *Store) ActiveDocumentExists(ctx context.Context, document, excludeID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM employees
    WHERE document = $1 AND is_active AND ($2 = '' OR id::text <> $2)
  `, document, excludeID).Scan(&count)
	if err != nil {
		return false, apperror.Database(err)
	}
	return count > 0, nil
}

func (s *Store) Update(ctx context.Context, id, name, document string, hiredAt *time.Time) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE employees
    SET name = $1,
        document = $2,
        hired_at = $3,
        updated_at = now()
    WHERE id = $4 AND is_active
    RETURNING `+employeeColumns+`
  `, name, document, hiredAt, id)
	return scanEmployee(row)
}

func (s *Store) SoftDelete(ctx context.Context, id string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE employees
    SET is_active = false,
        deleted_at = now(),
        updated_at = now()
    WHERE id = $1 AND is_active
    RETURNING `+employeeColumns+`
  `, id)
	return scanEmployee(row)
}

// Restore reactivates regardless of current state.
func (s *Store) Restore(ctx context.Context, id string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE employees
    SET is_active = true,
        deleted_at = NULL,
        updated_at = now()
    WHERE id = $1
    RETURNING `+employeeColumns+`
  `, id)
	return scanEmployee(row)
}

func (s *Store) Count(ctx context.Context, filter Filter) (int, error) {
	where, args := buildFilter(filter, 0)
	var count int
	err := s.DB.QueryRow(ctx, `SELECT COUNT(1) FROM employees`+where, args...).Scan(&count)
	if err != nil {
		return 0, apperror.Database(err)
	}
	return count, nil
}

func (s *Store) List(ctx context.Context, filter Filter, page listing.Page) ([]Employee, error) {
	where, args := buildFilter(filter, 0)
	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, page.Limit)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, page.Offset())

	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees`+where+`
    ORDER BY created_at DESC, id DESC
    LIMIT `+limitPlaceholder+`
    OFFSET `+offsetPlaceholder+`
  `, args...)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	out := make([]Employee, 0, page.Limit)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}
	return out, nil
}

// RequiredTypeIDs is the read-side view of the join table, replacing the
// embedded array the legacy data model kept on the employee record.
func (s *Store) RequiredTypeIDs(ctx context.Context, employeeID string) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT document_type_id::text
    FROM employee_document_type_links
    WHERE employee_id = $1 AND is_active
    ORDER BY created_at
  `, employeeID)
	if err != nil {
		return nil, apperror.Database(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperror.Database(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Database(err)
	}
	return ids, nil
}

func buildFilter(filter Filter, argOffset int) (string, []any) {
	args := make([]any, 0, 3)
	conditions := make([]string, 0, 3)

	switch filter.Status {
	case listing.StatusActive:
		conditions = append(conditions, "is_active")
	case listing.StatusInactive:
		conditions = append(conditions, "NOT is_active")
	}
	if filter.Document != "" {
		placeholder := "$" + strconv.Itoa(argOffset+len(args)+1)
		conditions = append(conditions, "document = "+placeholder)
		args = append(args, filter.Document)
	}
	if filter.Name != "" {
		placeholder := "$" + strconv.Itoa(argOffset+len(args)+1)
		conditions = append(conditions, "name ILIKE "+placeholder)
		args = append(args, "%"+listing.EscapeLike(filter.Name)+"%")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	if err := row.Scan(
		&emp.ID, &emp.Name, &emp.Document, &emp.HiredAt,
		&emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	); err != nil {
		return nil, translatePgError(err)
	}
	return &emp, nil
}

func translatePgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicateDocument
	}
	return apperror.Database(err)
}
