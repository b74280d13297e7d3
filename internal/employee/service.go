package employee

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brandingpioneers/hr-management/internal"
	"github.com/brandingpioneers/hr-management/internal/auth"
	"github.com/brandingpioneers/hr-management/internal/core/events"
)

type Repository interface {
	Create(e *Employee) error
	GetByID(id string) (*Employee, error)
	GetByCode(code string) (*Employee, error)
	GetByEmail(email string) (*Employee, error)
	List(filter ListFilter) ([]*Employee, error)
	Update(e *Employee) error
	Delete(id string) error
}

type ListFilter struct {
	Status     Status
	Department string
	Limit      int
	Offset     int
}

// ChecklistGenerator creates the fixed task checklists when an employee
// enters onboarding or exiting. Implemented by the task service.
type ChecklistGenerator interface {
	GenerateOnboarding(ctx context.Context, employeeID, assignedBy string) (int, error)
	GenerateExit(ctx context.Context, employeeID, assignedBy string) (int, error)
	DeleteForEmployee(ctx context.Context, employeeID string) error
}

type AuditRecorder interface {
	Record(ctx context.Context, userID, action, resource string, details map[string]any, ip, ua string)
}

type Service struct {
	repo       Repository
	checklists ChecklistGenerator
	bus        *events.EventBus
	audit      AuditRecorder
	logger     *slog.Logger
}

func NewService(repo Repository, checklists ChecklistGenerator, bus *events.EventBus, audit AuditRecorder, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		checklists: checklists,
		bus:        bus,
		audit:      audit,
		logger:     logger,
	}
}

// Create inserts a new employee. Creating with status onboarding (the
// default) also generates the onboarding checklist. The checklist insert is
// not transactional with the employee insert; a failure between the two
// leaves the employee without tasks.
func (s *Service) Create(ctx context.Context, actorID, actorEmail string, dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByCode(dto.EmployeeCode); err == nil && existing != nil {
		return nil, internal.NewConflictError("Employee code already exists", internal.ErrCodeEmployeeCodeExists)
	}
	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.NewConflictError("Email already in use by another employee", internal.ErrCodeEmployeeEmailInUse)
	}

	startDate, err := parseDate(dto.StartDate)
	if err != nil {
		return nil, err
	}
	birthday, err := parseOptionalDate(dto.Birthday)
	if err != nil {
		return nil, err
	}

	status := dto.Status
	if status == "" {
		status = StatusOnboarding
	}

	now := time.Now().UTC()
	emp := &Employee{
		ID:           uuid.NewString(),
		Name:         dto.Name,
		EmployeeCode: dto.EmployeeCode,
		Email:        dto.Email,
		Department:   dto.Department,
		Position:     dto.Position,
		Manager:      dto.Manager,
		Phone:        dto.Phone,
		StartDate:    startDate,
		Birthday:     birthday,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(emp); err != nil {
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	if status == StatusOnboarding {
		count, err := s.checklists.GenerateOnboarding(ctx, emp.ID, actorEmail)
		if err != nil {
			return nil, internal.NewInternalError("failed to generate onboarding checklist", err)
		}
		s.logger.Info("onboarding checklist generated", "employee_id", emp.ID, "tasks", count)
	}

	s.audit.Record(ctx, actorID, "create_employee", "employees",
		map[string]any{"employee_id": emp.ID, "employee_code": emp.EmployeeCode}, "", "")

	return emp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Employee, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Employee, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, internal.NewValidationError("invalid status", internal.ErrCodeInvalidStatus)
	}
	if filter.Limit <= 0 || filter.Limit > 1000 {
		filter.Limit = 500
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(filter)
}

// Update applies a partial update. The one transition with a side effect:
// moving into exiting from any other status generates the exit checklist.
// Re-submitting exiting while already exiting generates nothing.
func (s *Service) Update(ctx context.Context, actorID, actorEmail, id string, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.EmployeeCode != nil && *dto.EmployeeCode != emp.EmployeeCode {
		if other, err := s.repo.GetByCode(*dto.EmployeeCode); err == nil && other != nil && other.ID != emp.ID {
			return nil, internal.NewConflictError("Employee code already exists", internal.ErrCodeEmployeeCodeExists)
		}
		emp.EmployeeCode = *dto.EmployeeCode
	}
	if dto.Email != nil && *dto.Email != emp.Email {
		if other, err := s.repo.GetByEmail(*dto.Email); err == nil && other != nil && other.ID != emp.ID {
			return nil, internal.NewConflictError("Email already in use by another employee", internal.ErrCodeEmployeeEmailInUse)
		}
		emp.Email = *dto.Email
	}

	if dto.Name != nil {
		emp.Name = *dto.Name
	}
	if dto.Department != nil {
		emp.Department = *dto.Department
	}
	if dto.Position != nil {
		emp.Position = *dto.Position
	}
	if dto.Manager != nil {
		emp.Manager = *dto.Manager
	}
	if dto.Phone != nil {
		emp.Phone = *dto.Phone
	}
	if dto.StartDate != nil && *dto.StartDate != "" {
		startDate, err := parseDate(*dto.StartDate)
		if err != nil {
			return nil, err
		}
		emp.StartDate = startDate
	}
	if dto.Birthday != nil {
		birthday, err := parseOptionalDate(*dto.Birthday)
		if err != nil {
			return nil, err
		}
		emp.Birthday = birthday
	}
	if dto.ExitDate != nil {
		exitDate, err := parseOptionalDate(*dto.ExitDate)
		if err != nil {
			return nil, err
		}
		emp.ExitDate = exitDate
	}

	oldStatus := emp.Status
	enteredExiting := false
	if dto.Status != nil && *dto.Status != oldStatus {
		emp.Status = *dto.Status
		enteredExiting = *dto.Status == StatusExiting
	}

	emp.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(emp); err != nil {
		return nil, internal.NewInternalError("failed to update employee", err)
	}

	if enteredExiting {
		count, err := s.checklists.GenerateExit(ctx, emp.ID, actorEmail)
		if err != nil {
			return nil, internal.NewInternalError("failed to generate exit checklist", err)
		}
		s.logger.Info("exit checklist generated", "employee_id", emp.ID, "tasks", count)
	}

	if dto.Status != nil && *dto.Status != oldStatus {
		s.bus.Publish(ctx, events.NewEmployeeStatusChangedEvent(emp.ID, string(oldStatus), string(emp.Status), actorEmail))
	}

	s.audit.Record(ctx, actorID, "update_employee", "employees",
		map[string]any{"employee_id": emp.ID, "status": emp.Status}, "", "")

	return emp, nil
}

// UpdateProfile is the self-service endpoint; it can only touch contact
// details, never status or identity fields. Actors without the broader
// employee update permission may only edit the record matching their own
// email.
func (s *Service) UpdateProfile(ctx context.Context, actor *auth.User, id string, dto UpdateProfileDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !actor.HasPermission(auth.PermUpdateEmployee) && !strings.EqualFold(actor.Email, emp.Email) {
		return nil, internal.NewForbiddenError("You can only update your own profile", internal.ErrCodeInsufficientPerms)
	}

	if dto.Phone != nil {
		emp.Phone = *dto.Phone
	}
	if dto.Birthday != nil {
		birthday, err := parseOptionalDate(*dto.Birthday)
		if err != nil {
			return nil, err
		}
		emp.Birthday = birthday
	}

	emp.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(emp); err != nil {
		return nil, internal.NewInternalError("failed to update profile", err)
	}

	s.audit.Record(ctx, actor.ID, "update_profile", "employees",
		map[string]any{"employee_id": emp.ID}, "", "")

	return emp, nil
}

// ActiveEmails lists the addresses of employees who have not left, used as
// the default recipient set for announcements.
func (s *Service) ActiveEmails(ctx context.Context) ([]string, error) {
	employees, err := s.repo.List(ListFilter{Limit: 1000})
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(employees))
	for _, emp := range employees {
		if emp.Status == StatusExited || emp.Status == StatusInactive {
			continue
		}
		emails = append(emails, emp.Email)
	}
	return emails, nil
}

// Delete removes the employee and every task attached to it. Orphaned tasks
// are not permitted.
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.checklists.DeleteForEmployee(ctx, emp.ID); err != nil {
		return internal.NewInternalError("failed to delete employee tasks", err)
	}
	if err := s.repo.Delete(emp.ID); err != nil {
		return internal.NewInternalError("failed to delete employee", err)
	}

	s.audit.Record(ctx, actorID, "delete_employee", "employees",
		map[string]any{"employee_id": emp.ID, "employee_code": emp.EmployeeCode}, "", "")

	return nil
}
