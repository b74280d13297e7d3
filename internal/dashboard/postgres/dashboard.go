package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/brandingpioneers/hr-management/internal/dashboard"
)

// DashboardRepository serves the read-only aggregates with plain SQL over
// sqlx; none of these queries need an entity mapping.
type DashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) dashboard.Repository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) Stats(ctx context.Context) (*dashboard.Stats, error) {
	stats := &dashboard.Stats{ByStatus: make(map[string]int64)}

	if err := r.db.GetContext(ctx, &stats.TotalEmployees, `SELECT COUNT(*) FROM employees`); err != nil {
		return nil, fmt.Errorf("count employees: %w", err)
	}
	if err := r.db.GetContext(ctx, &stats.TotalUsers, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, `SELECT status, COUNT(*) FROM employees GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("employees by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	taskRows, err := r.db.QueryxContext(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("tasks by status: %w", err)
	}
	defer taskRows.Close()
	for taskRows.Next() {
		var status string
		var count int64
		if err := taskRows.Scan(&status, &count); err != nil {
			return nil, err
		}
		switch status {
		case "pending":
			stats.PendingTasks = count
		case "completed":
			stats.CompletedTasks = count
		case "overdue":
			stats.OverdueTasks = count
		}
	}
	return stats, taskRows.Err()
}

func (r *DashboardRepository) EmployeeDates(ctx context.Context) ([]dashboard.EmployeeDates, error) {
	var dates []dashboard.EmployeeDates
	query := `SELECT id, name, start_date, birthday FROM employees WHERE status NOT IN ('exited', 'inactive')`
	if err := r.db.SelectContext(ctx, &dates, query); err != nil {
		return nil, fmt.Errorf("employee dates: %w", err)
	}
	return dates, nil
}

func (r *DashboardRepository) RecentEmployees(ctx context.Context, limit int) ([]dashboard.RecentEmployee, error) {
	var employees []dashboard.RecentEmployee
	query := `
SELECT id, name, employee_code, department, status, created_at
FROM employees
ORDER BY created_at DESC
LIMIT $1`
	if err := r.db.SelectContext(ctx, &employees, query, limit); err != nil {
		return nil, fmt.Errorf("recent employees: %w", err)
	}
	return employees, nil
}

func (r *DashboardRepository) RecentTasks(ctx context.Context, limit int) ([]dashboard.RecentTask, error) {
	var tasks []dashboard.RecentTask
	query := `
SELECT t.id, t.employee_id, e.name AS employee_name, t.title, t.task_type, t.status, t.updated_at
FROM tasks t
JOIN employees e ON e.id = t.employee_id
ORDER BY t.updated_at DESC
LIMIT $1`
	if err := r.db.SelectContext(ctx, &tasks, query, limit); err != nil {
		return nil, fmt.Errorf("recent tasks: %w", err)
	}
	return tasks, nil
}

func (r *DashboardRepository) UpcomingTasks(ctx context.Context, before time.Time, limit int) ([]dashboard.UpcomingTask, error) {
	var tasks []dashboard.UpcomingTask
	query := `
SELECT t.id, t.employee_id, e.name AS employee_name, t.title, t.task_type, t.status, t.due_date
FROM tasks t
JOIN employees e ON e.id = t.employee_id
WHERE t.status = 'pending' AND t.due_date IS NOT NULL AND t.due_date <= $1
ORDER BY t.due_date ASC
LIMIT $2`
	if err := r.db.SelectContext(ctx, &tasks, query, before, limit); err != nil {
		return nil, fmt.Errorf("upcoming tasks: %w", err)
	}
	return tasks, nil
}
