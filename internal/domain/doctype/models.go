package doctype

import "time"

// Category replaces the legacy habit of sniffing the type name for "cpf":
// the tax-ID type is flagged explicitly at creation time.
const (
	CategoryGeneral = "general"
	CategoryTaxID   = "tax_id"
)

type DocumentType struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

func (dt DocumentType) IsTaxID() bool {
	return dt.Category == CategoryTaxID
}

type Filter struct {
	Status string
	Name   string
}

type ListResult struct {
	DocumentTypes []DocumentType
	Total         int
	Page          int
	Limit         int
	TotalPages    int
}

func ValidCategory(value string) bool {
	return value == CategoryGeneral || value == CategoryTaxID
}
