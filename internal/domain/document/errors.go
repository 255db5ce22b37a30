package document

import "hrdocs/internal/domain/apperror"

var ErrLinkRequired = apperror.Invalid("link_required", "document type is not linked to this employee")
