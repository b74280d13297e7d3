package employee

import (
	"strings"
	"time"

	"github.com/brandingpioneers/hr-management/internal"
)

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, internal.NewValidationError("invalid date, expected YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	return t, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type CreateEmployeeDTO struct {
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_code"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	Manager      string `json:"manager"`
	Phone        string `json:"phone"`
	StartDate    string `json:"start_date"`
	Birthday     string `json:"birthday"`
	Status       Status `json:"status"`
}

func (d CreateEmployeeDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if d.EmployeeCode == "" {
		return internal.NewValidationError("employee_code is required", internal.ErrCodeValidationFailed)
	}
	if !strings.Contains(d.Email, "@") {
		return internal.NewValidationError("a valid email is required", internal.ErrCodeValidationFailed)
	}
	if d.StartDate == "" {
		return internal.NewValidationError("start_date is required", internal.ErrCodeValidationFailed)
	}
	if _, err := parseDate(d.StartDate); err != nil {
		return err
	}
	if d.Birthday != "" {
		if _, err := parseDate(d.Birthday); err != nil {
			return err
		}
	}
	if d.Status != "" && !d.Status.Valid() {
		return internal.NewValidationError("invalid status", internal.ErrCodeInvalidStatus)
	}
	return nil
}

// UpdateEmployeeDTO carries a partial update. Pointer fields distinguish
// "leave unchanged" from "set to empty".
type UpdateEmployeeDTO struct {
	Name         *string `json:"name"`
	EmployeeCode *string `json:"employee_code"`
	Email        *string `json:"email"`
	Department   *string `json:"department"`
	Position     *string `json:"position"`
	Manager      *string `json:"manager"`
	Phone        *string `json:"phone"`
	StartDate    *string `json:"start_date"`
	Birthday     *string `json:"birthday"`
	ExitDate     *string `json:"exit_date"`
	Status       *Status `json:"status"`
}

func (d UpdateEmployeeDTO) Validate() error {
	if d.Email != nil && !strings.Contains(*d.Email, "@") {
		return internal.NewValidationError("a valid email is required", internal.ErrCodeValidationFailed)
	}
	if d.EmployeeCode != nil && *d.EmployeeCode == "" {
		return internal.NewValidationError("employee_code cannot be empty", internal.ErrCodeValidationFailed)
	}
	for _, value := range []*string{d.StartDate, d.Birthday, d.ExitDate} {
		if value != nil && *value != "" {
			if _, err := parseDate(*value); err != nil {
				return err
			}
		}
	}
	if d.Status != nil && !d.Status.Valid() {
		return internal.NewValidationError("invalid status", internal.ErrCodeInvalidStatus)
	}
	return nil
}

// UpdateProfileDTO is the self-service subset an employee can change about
// their own record.
type UpdateProfileDTO struct {
	Phone    *string `json:"phone"`
	Birthday *string `json:"birthday"`
}

func (d UpdateProfileDTO) Validate() error {
	if d.Birthday != nil && *d.Birthday != "" {
		if _, err := parseDate(*d.Birthday); err != nil {
			return err
		}
	}
	return nil
}
