// Package report renders documentation status reports as PDF.
package report

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/jung-kurt/gofpdf"

	"hrdocs/internal/domain/apperror"
	"hrdocs/internal/domain/document"
	"hrdocs/internal/domain/employee"
)

type EmployeeGetter interface {
	GetActive(ctx context.Context, id string) (*employee.Employee, error)
}

type StatusProvider interface {
	Status(ctx context.Context, employeeID string) (*document.StatusSummary, error)
}

type Service struct {
	employees EmployeeGetter
	status    StatusProvider
}

func NewService(employees EmployeeGetter, status StatusProvider) *Service {
	return &Service{employees: employees, status: status}
}

// DocumentationStatusPDF renders one employee's sent/pending overview and
// returns the PDF bytes for streaming.
func (s *Service) DocumentationStatusPDF(ctx context.Context, employeeID string) ([]byte, error) {
	emp, err := s.employees.GetActive(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	summary, err := s.status.Status(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Documentation Status")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", emp.Name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Document: %s", emp.Document))
	pdf.Ln(7)
	if emp.HiredAt != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Hired at: %s", emp.HiredAt.Format("2006-01-02")))
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Sent (%d)", len(summary.Sent)))
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	if len(summary.Sent) == 0 {
		pdf.Cell(0, 7, "No documents sent yet.")
		pdf.Ln(7)
	}
	for _, sent := range summary.Sent {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %s (updated %s)", sent.DocumentTypeName, sent.Value, sent.UpdatedAt.Format("2006-01-02")))
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Pending (%d)", len(summary.Pending)))
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	if len(summary.Pending) == 0 {
		pdf.Cell(0, 7, "No pending documents.")
		pdf.Ln(7)
	}
	for _, pending := range summary.Pending {
		pdf.Cell(0, 7, fmt.Sprintf("%s (required since %s)", pending.DocumentTypeName, pending.RequiredSince.Format("2006-01-02")))
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperror.Wrap(err, "report_error", "failed to render report", http.StatusInternalServerError)
	}
	return buf.Bytes(), nil
}
