package insights

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/brandingpioneers/hr-management/internal/employee"
	"github.com/brandingpioneers/hr-management/internal/task"
)

type EmployeeSource interface {
	GetByID(ctx context.Context, id string) (*employee.Employee, error)
}

type TaskSource interface {
	List(ctx context.Context, filter task.ListFilter) ([]*task.Task, error)
}

// Generator is the LLM behind the insight endpoints, satisfied by
// GeminiClient.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Insight struct {
	EmployeeID string `json:"employee_id"`
	Source     string `json:"source"`
	Text       string `json:"text"`
}

// Service produces AI-assisted summaries. When no generator is configured,
// or when the generator fails, it falls back to a deterministic summary built
// from the same data so the endpoints always answer.
type Service struct {
	employees EmployeeSource
	tasks     TaskSource
	generator Generator
	logger    *slog.Logger
}

func NewService(employees EmployeeSource, tasks TaskSource, generator Generator, logger *slog.Logger) *Service {
	return &Service{
		employees: employees,
		tasks:     tasks,
		generator: generator,
		logger:    logger,
	}
}

// EmployeeInsights summarizes one employee's progress through their current
// checklist.
func (s *Service) EmployeeInsights(ctx context.Context, employeeID string) (*Insight, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.List(ctx, task.ListFilter{EmployeeID: employeeID})
	if err != nil {
		return nil, err
	}

	pending, completed, overdue := countByStatus(tasks)

	prompt := fmt.Sprintf(
		"You are an HR assistant. Summarize the status of employee %s (%s, department %s, status %s). "+
			"They have %d completed, %d pending and %d overdue checklist tasks. "+
			"Give a short assessment and up to three concrete recommendations.",
		emp.Name, emp.Position, emp.Department, emp.Status, completed, pending, overdue)

	if text, ok := s.tryGenerate(ctx, prompt); ok {
		return &Insight{EmployeeID: employeeID, Source: "ai", Text: text}, nil
	}

	fallback := fmt.Sprintf(
		"%s is %s in %s. Checklist progress: %d completed, %d pending, %d overdue.",
		emp.Name, emp.Status, emp.Department, completed, pending, overdue)
	if overdue > 0 {
		fallback += fmt.Sprintf(" Attention needed: %d overdue tasks should be prioritized.", overdue)
	}
	return &Insight{EmployeeID: employeeID, Source: "fallback", Text: fallback}, nil
}

// TaskSuggestions proposes follow-up checklist items for an employee.
func (s *Service) TaskSuggestions(ctx context.Context, employeeID string) (*Insight, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.List(ctx, task.ListFilter{EmployeeID: employeeID})
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != task.StatusCompleted {
			titles = append(titles, t.Title)
		}
	}

	prompt := fmt.Sprintf(
		"You are an HR assistant. Employee %s (%s) is in status %s. Their open checklist items are: %s. "+
			"Suggest up to five additional tasks that would typically be needed, one per line.",
		emp.Name, emp.Position, emp.Status, strings.Join(titles, "; "))

	if text, ok := s.tryGenerate(ctx, prompt); ok {
		return &Insight{EmployeeID: employeeID, Source: "ai", Text: text}, nil
	}

	var fallback string
	switch emp.Status {
	case employee.StatusOnboarding:
		fallback = "Schedule a 30-day check-in.\nConfirm all system access works.\nCollect feedback on the onboarding experience."
	case employee.StatusExiting:
		fallback = "Verify all company property is returned.\nConfirm final payroll details.\nArchive the employee's work accounts."
	default:
		fallback = "Review open tasks with the reporting manager.\nClose out any overdue checklist items."
	}
	return &Insight{EmployeeID: employeeID, Source: "fallback", Text: fallback}, nil
}

// ValidateEmployee sanity-checks a draft employee record before creation.
func (s *Service) ValidateEmployee(ctx context.Context, dto employee.CreateEmployeeDTO) (*Insight, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"You are an HR data reviewer. Check this draft employee record for inconsistencies "+
			"(name %q, code %q, email %q, department %q, position %q, start date %s). "+
			"Reply with 'Looks good' or a short list of concerns.",
		dto.Name, dto.EmployeeCode, dto.Email, dto.Department, dto.Position, dto.StartDate)

	if text, ok := s.tryGenerate(ctx, prompt); ok {
		return &Insight{Source: "ai", Text: text}, nil
	}

	return &Insight{Source: "fallback", Text: "Record passes basic validation. No automated review available."}, nil
}

func (s *Service) tryGenerate(ctx context.Context, prompt string) (string, bool) {
	if s.generator == nil {
		return "", false
	}
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("insight generation failed, using fallback", "error", err)
		return "", false
	}
	return text, true
}

func countByStatus(tasks []*task.Task) (pending, completed, overdue int) {
	for _, t := range tasks {
		switch t.Status {
		case task.StatusPending:
			pending++
		case task.StatusCompleted:
			completed++
		case task.StatusOverdue:
			overdue++
		}
	}
	return
}
