package listing

import (
	"fmt"
	"strings"

	"hrdocs/internal/domain/apperror"
)

// Status filter values shared by every listable resource.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusAll      = "all"
)

type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NormalizeStatus lowercases value, falling back when empty.
func NormalizeStatus(value, fallback string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		normalized = fallback
	}
	switch normalized {
	case StatusActive, StatusInactive, StatusAll:
		return normalized, nil
	}
	return "", apperror.Invalid("invalid_status", "status must be one of active, inactive, all")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike neutralizes LIKE/ILIKE wildcards in user input so a search for
// "%" matches a literal percent sign instead of every row.
func EscapeLike(value string) string {
	return likeEscaper.Replace(value)
}

func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// CheckPage rejects pages beyond the last one. An empty result set accepts
// any page so that page=1 on an empty listing succeeds.
func CheckPage(page, total, limit int) error {
	if total == 0 {
		return nil
	}
	totalPages := TotalPages(total, limit)
	if page > totalPages {
		return apperror.Invalid("page_not_found", fmt.Sprintf("page %d does not exist, last page is %d", page, totalPages))
	}
	return nil
}
