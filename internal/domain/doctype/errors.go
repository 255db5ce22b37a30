package doctype

import "hrdocs/internal/domain/apperror"

var (
	ErrNotFound      = apperror.NotFound("document_type_not_found", "document type not found")
	ErrDuplicateName = apperror.Conflict("document_type_exists", "an active document type with this name already exists")
)
