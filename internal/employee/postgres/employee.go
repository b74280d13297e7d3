package postgres

import (
	"gorm.io/gorm"

	"github.com/brandingpioneers/hr-management/internal"
	"github.com/brandingpioneers/hr-management/internal/employee"
)

// EmployeeRepository implements the employee.Repository interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(e *employee.Employee) error {
	return r.db.Create(e).Error
}

func (r *EmployeeRepository) GetByID(id string) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("id = ?", id).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByCode(code string) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("employee_code = ?", code).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByEmail(email string) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("email = ?", email).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) List(filter employee.ListFilter) ([]*employee.Employee, error) {
	var employees []*employee.Employee

	query := r.db.Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}

	err := query.Limit(filter.Limit).Offset(filter.Offset).Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) Update(e *employee.Employee) error {
	return r.db.Save(e).Error
}

func (r *EmployeeRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&employee.Employee{}).Error
}
