package document

import "time"

const (
	StatusSent    = "SENT"
	StatusPending = "PENDING"
)

type Document struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employeeId"`
	DocumentTypeID string     `json:"documentTypeId"`
	Value          string     `json:"value"`
	Status         string     `json:"status"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty"`
}

// SentDocument is a submitted document with its type resolved for display.
type SentDocument struct {
	Document
	DocumentTypeName        string `json:"documentTypeName"`
	DocumentTypeDescription string `json:"documentTypeDescription"`
}

// PendingDocument is an active link still waiting for a submission.
type PendingDocument struct {
	DocumentTypeID          string    `json:"documentTypeId"`
	DocumentTypeName        string    `json:"documentTypeName"`
	DocumentTypeDescription string    `json:"documentTypeDescription"`
	RequiredSince           time.Time `json:"requiredSince"`
}

// StatusSummary partitions an employee's required types into sent and
// pending. Both slices are non-nil so the JSON encodes empty arrays.
type StatusSummary struct {
	EmployeeID string            `json:"employeeId"`
	Sent       []SentDocument    `json:"sent"`
	Pending    []PendingDocument `json:"pending"`
}

type DocumentationInfo struct {
	Required             int  `json:"required"`
	Sent                 int  `json:"sent"`
	Pending              int  `json:"pending"`
	IsComplete           bool `json:"isComplete"`
	CompletionPercentage int  `json:"completionPercentage"`
}
