package employee

import (
	"strings"
	"time"
	"unicode"
)

type Employee struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Document  string     `json:"document"`
	HiredAt   *time.Time `json:"hiredAt,omitempty"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	// Derived from active links; never persisted on the employee row.
	RequiredDocumentTypeIDs []string `json:"requiredDocumentTypeIds,omitempty"`
}

type Filter struct {
	Status   string
	Name     string
	Document string
}

type ListResult struct {
	Employees  []Employee
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// NormalizeDocument strips everything but letters and digits, so
// "111.222.333-44" and "11122233344" compare equal.
func NormalizeDocument(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsCPFShaped reports whether a normalized query looks like a bare CPF.
func IsCPFShaped(normalized string) bool {
	if len(normalized) != 11 {
		return false
	}
	for _, r := range normalized {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
