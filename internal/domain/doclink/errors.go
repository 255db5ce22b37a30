package doclink

import (
	"strings"

	"hrdocs/internal/domain/apperror"
)

func AlreadyLinkedError(names []string) *apperror.Error {
	return apperror.Invalid("already_linked", "document types already linked to this employee: "+strings.Join(names, ", "))
}

func NotLinkedError(names []string) *apperror.Error {
	return apperror.Invalid("not_linked", "document types not linked to this employee: "+strings.Join(names, ", "))
}

func TypesNotFoundError(ids []string) *apperror.Error {
	return apperror.NotFound("document_type_not_found", "document types not found: "+strings.Join(ids, ", "))
}
