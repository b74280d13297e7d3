package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/brandingpioneers/hr-management/internal/employee"
	"github.com/brandingpioneers/hr-management/internal/task"
)

type EmployeeSource interface {
	List(ctx context.Context, filter employee.ListFilter) ([]*employee.Employee, error)
}

type TaskSource interface {
	List(ctx context.Context, filter task.ListFilter) ([]*task.Task, error)
}

type Service struct {
	employees EmployeeSource
	tasks     TaskSource
	logger    *slog.Logger
}

func NewService(employees EmployeeSource, tasks TaskSource, logger *slog.Logger) *Service {
	return &Service{employees: employees, tasks: tasks, logger: logger}
}

// EmployeesPDF renders the employee directory as a landscape table.
func (s *Service) EmployeesPDF(ctx context.Context) ([]byte, error) {
	employees, err := s.employees.List(ctx, employee.ListFilter{})
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Employee Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Employee Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 8, fmt.Sprintf("Generated on %s  |  %d employees", time.Now().Format("2006-01-02 15:04"), len(employees)))
	pdf.Ln(12)

	headers := []string{"Code", "Name", "Email", "Department", "Position", "Manager", "Start Date", "Status"}
	widths := []float64{22, 45, 60, 35, 35, 35, 25, 20}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, emp := range employees {
		cells := []string{
			emp.EmployeeCode,
			emp.Name,
			emp.Email,
			emp.Department,
			emp.Position,
			emp.Manager,
			emp.StartDate.Format("2006-01-02"),
			string(emp.Status),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render employee pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// TasksPDF renders the task checklist report, optionally filtered by
// employee and type.
func (s *Service) TasksPDF(ctx context.Context, filter task.ListFilter) ([]byte, error) {
	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Task Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Task Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 8, fmt.Sprintf("Generated on %s  |  %d tasks", time.Now().Format("2006-01-02 15:04"), len(tasks)))
	pdf.Ln(12)

	headers := []string{"Title", "Type", "Status", "Due Date", "Completed", "Assigned By"}
	widths := []float64{90, 25, 25, 28, 28, 60}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, t := range tasks {
		cells := []string{
			t.Title,
			string(t.TaskType),
			string(t.Status),
			formatDate(t.DueDate),
			formatDate(t.CompletedDate),
			t.AssignedBy,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render task pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// EmployeesExcel exports the directory as a spreadsheet, one row per
// employee.
func (s *Service) EmployeesExcel(ctx context.Context) ([]byte, error) {
	employees, err := s.employees.List(ctx, employee.ListFilter{})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"Employee ID", "Name", "Email", "Department", "Position", "Manager", "Phone", "Start Date", "Status"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, emp := range employees {
		row := []interface{}{
			emp.EmployeeCode,
			emp.Name,
			emp.Email,
			emp.Department,
			emp.Position,
			emp.Manager,
			emp.Phone,
			emp.StartDate.Format("2006-01-02"),
			string(emp.Status),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("render employee excel: %w", err)
	}
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}
