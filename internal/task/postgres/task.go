package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/brandingpioneers/hr-management/internal"
	"github.com/brandingpioneers/hr-management/internal/task"
)

// TaskRepository implements the task.Repository interface using GORM
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) task.Repository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(t *task.Task) error {
	return r.db.Create(t).Error
}

func (r *TaskRepository) CreateBatch(tasks []*task.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.Create(tasks).Error
}

func (r *TaskRepository) GetByID(id string) (*task.Task, error) {
	var t task.Task
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) List(filter task.ListFilter) ([]*task.Task, error) {
	var tasks []*task.Task

	query := r.db.Order("created_at ASC")
	if filter.EmployeeID != "" {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.TaskType != "" {
		query = query.Where("task_type = ?", filter.TaskType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	err := query.Limit(filter.Limit).Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(t *task.Task) error {
	return r.db.Save(t).Error
}

func (r *TaskRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&task.Task{}).Error
}

func (r *TaskRepository) DeleteByEmployee(employeeID string) error {
	return r.db.Where("employee_id = ?", employeeID).Delete(&task.Task{}).Error
}

// BulkUpdateStatus updates every task whose id matches. Ids that match
// nothing simply do not count toward the returned total.
func (r *TaskRepository) BulkUpdateStatus(ids []string, status task.Status, completedDate *time.Time, updatedAt time.Time) (int64, error) {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": updatedAt,
	}
	if completedDate != nil {
		updates["completed_date"] = *completedDate
	}

	result := r.db.Model(&task.Task{}).
		Where("id IN ?", ids).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *TaskRepository) MarkOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&task.Task{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", task.StatusPending, now).
		Updates(map[string]interface{}{
			"status":     task.StatusOverdue,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
