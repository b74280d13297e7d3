package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/brandingpioneers/hr-management/internal"
)

type Repository interface {
	Create(t *Task) error
	CreateBatch(tasks []*Task) error
	GetByID(id string) (*Task, error)
	List(filter ListFilter) ([]*Task, error)
	Update(t *Task) error
	Delete(id string) error
	DeleteByEmployee(employeeID string) error
	BulkUpdateStatus(ids []string, status Status, completedDate *time.Time, updatedAt time.Time) (int64, error)
	MarkOverdue(now time.Time) (int64, error)
}

type ListFilter struct {
	EmployeeID string
	TaskType   Type
	Status     Status
	Limit      int
}

type AuditRecorder interface {
	Record(ctx context.Context, userID, action, resource string, details map[string]any, ip, ua string)
}

type Service struct {
	repo   Repository
	audit  AuditRecorder
	logger *slog.Logger
}

func NewService(repo Repository, audit AuditRecorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

// GenerateOnboarding instantiates the onboarding template for an employee.
// One insert per batch; returns how many tasks were created.
func (s *Service) GenerateOnboarding(ctx context.Context, employeeID, assignedBy string) (int, error) {
	return s.generate(ctx, employeeID, assignedBy, TypeOnboarding, onboardingTemplate)
}

// GenerateExit instantiates the exit template for an employee.
func (s *Service) GenerateExit(ctx context.Context, employeeID, assignedBy string) (int, error) {
	return s.generate(ctx, employeeID, assignedBy, TypeExit, exitTemplate)
}

func (s *Service) generate(ctx context.Context, employeeID, assignedBy string, taskType Type, template []TemplateEntry) (int, error) {
	now := time.Now().UTC()
	tasks := make([]*Task, 0, len(template))
	for _, entry := range template {
		t := &Task{
			ID:          uuid.NewString(),
			EmployeeID:  employeeID,
			Title:       entry.Title,
			Description: entry.Description,
			TaskType:    taskType,
			Status:      StatusPending,
			AssignedBy:  assignedBy,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if entry.DueDays > 0 {
			due := now.AddDate(0, 0, entry.DueDays)
			t.DueDate = &due
		}
		tasks = append(tasks, t)
	}

	if err := s.repo.CreateBatch(tasks); err != nil {
		return 0, err
	}
	return len(tasks), nil
}

// DeleteForEmployee removes every task for an employee, used by the cascade
// on employee deletion.
func (s *Service) DeleteForEmployee(ctx context.Context, employeeID string) error {
	return s.repo.DeleteByEmployee(employeeID)
}

func (s *Service) Create(ctx context.Context, actorID, actorEmail string, dto CreateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &Task{
		ID:          uuid.NewString(),
		EmployeeID:  dto.EmployeeID,
		Title:       dto.Title,
		Description: dto.Description,
		TaskType:    dto.TaskType,
		Status:      StatusPending,
		AssignedBy:  actorEmail,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if dto.DueDate != "" {
		due, _ := time.Parse("2006-01-02", dto.DueDate)
		t.DueDate = &due
	}

	if err := s.repo.Create(t); err != nil {
		return nil, internal.NewInternalError("failed to create task", err)
	}

	s.audit.Record(ctx, actorID, "create_task", "tasks",
		map[string]any{"task_id": t.ID, "employee_id": t.EmployeeID}, "", "")

	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Task, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Task, error) {
	if filter.TaskType != "" && !filter.TaskType.Valid() {
		return nil, internal.NewValidationError("invalid task_type", internal.ErrCodeValidationFailed)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, internal.NewValidationError("invalid status", internal.ErrCodeInvalidStatus)
	}
	if filter.Limit <= 0 || filter.Limit > 1000 {
		filter.Limit = 1000
	}
	return s.repo.List(filter)
}

// Update applies a partial patch. When status becomes completed and no
// explicit completed_date is supplied, the stamp is taken once and kept on
// later updates.
func (s *Service) Update(ctx context.Context, actorID, id string, dto UpdateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		t.Title = *dto.Title
	}
	if dto.Description != nil {
		t.Description = *dto.Description
	}
	if dto.DueDate != nil {
		if *dto.DueDate == "" {
			t.DueDate = nil
		} else {
			due, _ := time.Parse("2006-01-02", *dto.DueDate)
			t.DueDate = &due
		}
	}
	if dto.ClearCompletedDate {
		t.CompletedDate = nil
	}
	if dto.CompletedDate != nil && *dto.CompletedDate != "" {
		completed, _ := time.Parse("2006-01-02", *dto.CompletedDate)
		t.CompletedDate = &completed
	}

	if dto.Status != nil {
		t.Status = *dto.Status
		if *dto.Status == StatusCompleted && t.CompletedDate == nil {
			now := time.Now().UTC()
			t.CompletedDate = &now
		}
	}

	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(t); err != nil {
		return nil, internal.NewInternalError("failed to update task", err)
	}

	s.audit.Record(ctx, actorID, "update_task", "tasks",
		map[string]any{"task_id": t.ID, "status": t.Status}, "", "")

	return t, nil
}

// BulkUpdate sets the status of every matching task. Unknown ids are skipped
// silently; an empty id list is rejected; completed stamps share one "now"
// captured once per call.
func (s *Service) BulkUpdate(ctx context.Context, actorID string, dto BulkUpdateDTO) (*BulkUpdateResult, error) {
	if len(dto.TaskIDs) == 0 {
		return nil, internal.NewBadRequestError("task_ids must not be empty", internal.ErrCodeEmptyIDList)
	}
	if !dto.Status.Valid() {
		return nil, internal.NewValidationError("invalid status", internal.ErrCodeInvalidStatus)
	}

	now := time.Now().UTC()
	var completedDate *time.Time
	if dto.Status == StatusCompleted {
		completedDate = &now
	}

	count, err := s.repo.BulkUpdateStatus(dto.TaskIDs, dto.Status, completedDate, now)
	if err != nil {
		return nil, internal.NewInternalError("failed to bulk update tasks", err)
	}

	s.audit.Record(ctx, actorID, "bulk_update_tasks", "tasks",
		map[string]any{"requested": len(dto.TaskIDs), "updated": count, "status": dto.Status}, "", "")

	return &BulkUpdateResult{UpdatedCount: count}, nil
}

func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	t, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(t.ID); err != nil {
		return internal.NewInternalError("failed to delete task", err)
	}

	s.audit.Record(ctx, actorID, "delete_task", "tasks",
		map[string]any{"task_id": t.ID}, "", "")

	return nil
}

// SweepOverdue flips pending tasks past their due date to overdue. Run from
// the background worker on a schedule.
func (s *Service) SweepOverdue(ctx context.Context) (int64, error) {
	count, err := s.repo.MarkOverdue(time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Info("overdue sweep complete", "tasks_marked", count)
	}
	return count, nil
}
