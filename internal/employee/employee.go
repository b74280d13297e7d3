package employee

import (
	"time"
)

// Status values for an employee record. Transitions are free-form field
// updates except for the two that generate checklists, see Service.
type Status string

const (
	StatusOnboarding Status = "onboarding"
	StatusActive     Status = "active"
	StatusExiting    Status = "exiting"
	StatusExited     Status = "exited"
	StatusInactive   Status = "inactive"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOnboarding, StatusActive, StatusExiting, StatusExited, StatusInactive:
		return true
	}
	return false
}

// Employee is the HR profile record. EmployeeCode is the business key printed
// on badges and import sheets; ID is the internal key everything joins on.
type Employee struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null"`
	EmployeeCode string     `json:"employee_code" gorm:"uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	Department   string     `json:"department"`
	Position     string     `json:"position,omitempty"`
	Manager      string     `json:"manager"`
	Phone        string     `json:"phone,omitempty"`
	StartDate    time.Time  `json:"start_date"`
	Birthday     *time.Time `json:"birthday,omitempty"`
	ExitDate     *time.Time `json:"exit_date,omitempty"`
	Status       Status     `json:"status" gorm:"not null;default:onboarding"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Employee) TableName() string { return "employees" }
