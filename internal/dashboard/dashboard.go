package dashboard

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

type Stats struct {
	TotalEmployees int64            `json:"total_employees"`
	ByStatus       map[string]int64 `json:"employees_by_status"`
	TotalUsers     int64            `json:"total_users"`
	PendingTasks   int64            `json:"pending_tasks"`
	CompletedTasks int64            `json:"completed_tasks"`
	OverdueTasks   int64            `json:"overdue_tasks"`
}

// Event is one upcoming birthday or work anniversary.
type Event struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	EventType    string `json:"event_type"`
	Date         string `json:"date"`
	DaysUntil    int    `json:"days_until"`
}

// UpcomingTask is a due-soon checklist item joined with its employee name.
type UpcomingTask struct {
	ID           string     `json:"id" db:"id"`
	EmployeeID   string     `json:"employee_id" db:"employee_id"`
	EmployeeName string     `json:"employee_name" db:"employee_name"`
	Title        string     `json:"title" db:"title"`
	TaskType     string     `json:"task_type" db:"task_type"`
	Status       string     `json:"status" db:"status"`
	DueDate      *time.Time `json:"due_date" db:"due_date"`
}

// EmployeeDates is the projection used for event arithmetic.
type EmployeeDates struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	StartDate time.Time  `db:"start_date"`
	Birthday  *time.Time `db:"birthday"`
}

// RecentEmployee and RecentTask are the activity-feed projections.
type RecentEmployee struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	EmployeeCode string    `json:"employee_code" db:"employee_code"`
	Department   string    `json:"department" db:"department"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type RecentTask struct {
	ID           string    `json:"id" db:"id"`
	EmployeeID   string    `json:"employee_id" db:"employee_id"`
	EmployeeName string    `json:"employee_name" db:"employee_name"`
	Title        string    `json:"title" db:"title"`
	TaskType     string    `json:"task_type" db:"task_type"`
	Status       string    `json:"status" db:"status"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type RecentActivity struct {
	RecentEmployees []RecentEmployee `json:"recent_employees"`
	RecentTasks     []RecentTask     `json:"recent_tasks"`
}

type Repository interface {
	Stats(ctx context.Context) (*Stats, error)
	EmployeeDates(ctx context.Context) ([]EmployeeDates, error)
	UpcomingTasks(ctx context.Context, before time.Time, limit int) ([]UpcomingTask, error)
	RecentEmployees(ctx context.Context, limit int) ([]RecentEmployee, error)
	RecentTasks(ctx context.Context, limit int) ([]RecentTask, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}

const (
	recentEmployeeLimit = 5
	recentTaskLimit     = 10
)

// RecentActivities pairs the newest employees with the most recently touched
// tasks for the dashboard feed.
func (s *Service) RecentActivities(ctx context.Context) (*RecentActivity, error) {
	employees, err := s.repo.RecentEmployees(ctx, recentEmployeeLimit)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.RecentTasks(ctx, recentTaskLimit)
	if err != nil {
		return nil, err
	}

	if employees == nil {
		employees = []RecentEmployee{}
	}
	if tasks == nil {
		tasks = []RecentTask{}
	}
	return &RecentActivity{RecentEmployees: employees, RecentTasks: tasks}, nil
}

// UpcomingEvents lists birthdays and work anniversaries in the next
// windowDays days, nearest first. Year boundaries are handled by projecting
// each anniversary onto this year or the next.
func (s *Service) UpcomingEvents(ctx context.Context, windowDays int) ([]Event, error) {
	if windowDays <= 0 || windowDays > 365 {
		windowDays = 30
	}

	dates, err := s.repo.EmployeeDates(ctx)
	if err != nil {
		return nil, err
	}

	today := truncateToDay(time.Now().UTC())
	events := make([]Event, 0)

	for _, d := range dates {
		if d.Birthday != nil {
			if days, next := daysUntilAnniversary(today, *d.Birthday); days <= windowDays {
				events = append(events, Event{
					EmployeeID:   d.ID,
					EmployeeName: d.Name,
					EventType:    "birthday",
					Date:         next.Format("2006-01-02"),
					DaysUntil:    days,
				})
			}
		}
		// A start date in the current year is not an anniversary yet.
		if d.StartDate.Year() < today.Year() {
			if days, next := daysUntilAnniversary(today, d.StartDate); days <= windowDays {
				events = append(events, Event{
					EmployeeID:   d.ID,
					EmployeeName: d.Name,
					EventType:    "work_anniversary",
					Date:         next.Format("2006-01-02"),
					DaysUntil:    days,
				})
			}
		}
	}

	sort.Slice(events, func(i, j int) bool { return events[i].DaysUntil < events[j].DaysUntil })
	return events, nil
}

func (s *Service) UpcomingTasks(ctx context.Context, windowDays, limit int) ([]UpcomingTask, error) {
	if windowDays <= 0 || windowDays > 90 {
		windowDays = 7
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	before := time.Now().UTC().AddDate(0, 0, windowDays)
	return s.repo.UpcomingTasks(ctx, before, limit)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysUntilAnniversary projects the month/day of a source date onto the next
// occurrence on or after today and returns the distance in days.
func daysUntilAnniversary(today time.Time, source time.Time) (int, time.Time) {
	next := time.Date(today.Year(), source.Month(), source.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, source.Month(), source.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(next.Sub(today).Hours() / 24), next
}
