package employee

import "hrdocs/internal/domain/apperror"

var (
	ErrNotFound          = apperror.NotFound("employee_not_found", "employee not found")
	ErrDuplicateDocument = apperror.Conflict("employee_exists", "an active employee already holds this document")
)
