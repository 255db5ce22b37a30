package doclink

import "time"

// Placeholder texts returned when a link points at a type that no longer
// resolves; callers get a degraded row instead of an error.
const (
	PlaceholderTypeName        = "Tipo não encontrado"
	PlaceholderTypeDescription = "Nome não encontrado"
)

type Link struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employeeId"`
	DocumentTypeID string     `json:"documentTypeId"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty"`
}

type RequiredDocument struct {
	Link
	DocumentTypeName        string `json:"documentTypeName"`
	DocumentTypeDescription string `json:"documentTypeDescription"`
}
