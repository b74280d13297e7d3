package task

import (
	"time"

	"github.com/brandingpioneers/hr-management/internal"
)

type Type string

const (
	TypeOnboarding Type = "onboarding"
	TypeExit       Type = "exit"
)

func (t Type) Valid() bool {
	return t == TypeOnboarding || t == TypeExit
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

// Task is one checklist item attached to an employee. CompletedDate is
// stamped the first time status becomes completed and kept afterwards unless
// explicitly cleared.
type Task struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	EmployeeID    string     `json:"employee_id" gorm:"index;not null"`
	Title         string     `json:"title" gorm:"not null"`
	Description   string     `json:"description"`
	TaskType      Type       `json:"task_type" gorm:"not null"`
	Status        Status     `json:"status" gorm:"not null;default:pending"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	AssignedBy    string     `json:"assigned_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }

type CreateTaskDTO struct {
	EmployeeID  string `json:"employee_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TaskType    Type   `json:"task_type"`
	DueDate     string `json:"due_date"`
}

func (d CreateTaskDTO) Validate() error {
	if d.EmployeeID == "" {
		return internal.NewValidationError("employee_id is required", internal.ErrCodeValidationFailed)
	}
	if d.Title == "" {
		return internal.NewValidationError("title is required", internal.ErrCodeValidationFailed)
	}
	if !d.TaskType.Valid() {
		return internal.NewValidationError("invalid task_type", internal.ErrCodeValidationFailed)
	}
	if d.DueDate != "" {
		if _, err := time.Parse("2006-01-02", d.DueDate); err != nil {
			return internal.NewValidationError("invalid due_date, expected YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}

// UpdateTaskDTO is a partial patch. ClearCompletedDate resets the stamp so a
// reopened task can be completed again with a fresh date.
type UpdateTaskDTO struct {
	Title              *string `json:"title"`
	Description        *string `json:"description"`
	Status             *Status `json:"status"`
	DueDate            *string `json:"due_date"`
	CompletedDate      *string `json:"completed_date"`
	ClearCompletedDate bool    `json:"clear_completed_date"`
}

func (d UpdateTaskDTO) Validate() error {
	if d.Status != nil && !d.Status.Valid() {
		return internal.NewValidationError("invalid status", internal.ErrCodeInvalidStatus)
	}
	for _, value := range []*string{d.DueDate, d.CompletedDate} {
		if value != nil && *value != "" {
			if _, err := time.Parse("2006-01-02", *value); err != nil {
				return internal.NewValidationError("invalid date, expected YYYY-MM-DD", internal.ErrCodeInvalidDate)
			}
		}
	}
	return nil
}

type BulkUpdateDTO struct {
	TaskIDs []string `json:"task_ids"`
	Status  Status   `json:"status"`
}

// BulkUpdateResult reports how many of the supplied ids matched an existing
// task. Unknown ids are skipped silently.
type BulkUpdateResult struct {
	UpdatedCount int64 `json:"updated_count"`
}
