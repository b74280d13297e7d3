package insights

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/brandingpioneers/hr-management/internal"
	"github.com/brandingpioneers/hr-management/internal/employee"
	"github.com/brandingpioneers/hr-management/internal/task"
)

func TestInsights(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Insights Module Suite")
}

type stubEmployeeSource struct {
	emp *employee.Employee
}

func (s *stubEmployeeSource) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	if s.emp == nil || s.emp.ID != id {
		return nil, internal.ErrEmployeeNotFound
	}
	return s.emp, nil
}

type stubTaskSource struct {
	tasks []*task.Task
}

func (s *stubTaskSource) List(ctx context.Context, filter task.ListFilter) ([]*task.Task, error) {
	return s.tasks, nil
}

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

var _ = ginkgo.Describe("InsightsService", func() {
	var (
		employees *stubEmployeeSource
		tasks     *stubTaskSource
		ctx       context.Context
		logger    *slog.Logger
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		employees = &stubEmployeeSource{emp: &employee.Employee{
			ID:         "emp-1",
			Name:       "Asha Verma",
			Department: "Engineering",
			Status:     employee.StatusOnboarding,
		}}
		tasks = &stubTaskSource{tasks: []*task.Task{
			{Status: task.StatusCompleted},
			{Status: task.StatusPending},
			{Status: task.StatusPending},
			{Status: task.StatusOverdue},
		}}
	})

	ginkgo.Describe("EmployeeInsights", func() {
		ginkgo.Context("when a generator is configured and healthy", func() {
			ginkgo.It("should return the generated text marked as ai", func() {
				// Given
				service := NewService(employees, tasks, &stubGenerator{text: "All on track."}, logger)

				// When
				insight, err := service.EmployeeInsights(ctx, "emp-1")

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(insight.Source).To(gomega.Equal("ai"))
				gomega.Expect(insight.Text).To(gomega.Equal("All on track."))
				gomega.Expect(insight.EmployeeID).To(gomega.Equal("emp-1"))
			})
		})

		ginkgo.Context("when no generator is configured", func() {
			ginkgo.It("should fall back to the deterministic summary", func() {
				// Given
				service := NewService(employees, tasks, nil, logger)

				// When
				insight, err := service.EmployeeInsights(ctx, "emp-1")

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(insight.Source).To(gomega.Equal("fallback"))
				gomega.Expect(insight.Text).To(gomega.ContainSubstring("1 completed, 2 pending, 1 overdue"))
				gomega.Expect(insight.Text).To(gomega.ContainSubstring("overdue tasks should be prioritized"))
			})
		})

		ginkgo.Context("when the generator fails", func() {
			ginkgo.It("should fall back instead of surfacing the error", func() {
				// Given
				service := NewService(employees, tasks, &stubGenerator{err: errors.New("quota exceeded")}, logger)

				// When
				insight, err := service.EmployeeInsights(ctx, "emp-1")

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(insight.Source).To(gomega.Equal("fallback"))
			})
		})

		ginkgo.Context("when the employee does not exist", func() {
			ginkgo.It("should return not found", func() {
				// Given
				service := NewService(employees, tasks, nil, logger)

				// When
				insight, err := service.EmployeeInsights(ctx, "ghost")

				// Then
				gomega.Expect(insight).To(gomega.BeNil())
				gomega.Expect(err).To(gomega.Equal(internal.ErrEmployeeNotFound))
			})
		})
	})

	ginkgo.Describe("TaskSuggestions", func() {
		ginkgo.It("should tailor the fallback to the employee status", func() {
			// Given
			employees.emp.Status = employee.StatusExiting
			service := NewService(employees, tasks, nil, logger)

			// When
			insight, err := service.TaskSuggestions(ctx, "emp-1")

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(insight.Source).To(gomega.Equal("fallback"))
			gomega.Expect(insight.Text).To(gomega.ContainSubstring("company property"))
		})
	})

	ginkgo.Describe("ValidateEmployee", func() {
		ginkgo.It("should reject a draft that fails basic validation", func() {
			// Given
			service := NewService(employees, tasks, nil, logger)

			// When
			insight, err := service.ValidateEmployee(ctx, employee.CreateEmployeeDTO{Name: "X"})

			// Then
			gomega.Expect(insight).To(gomega.BeNil())
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(422))
		})

		ginkgo.It("should answer with the fallback when no generator is configured", func() {
			// Given
			service := NewService(employees, tasks, nil, logger)
			dto := employee.CreateEmployeeDTO{
				Name:         "Asha Verma",
				EmployeeCode: "BP001",
				Email:        "asha@example.com",
				StartDate:    "2024-01-15",
			}

			// When
			insight, err := service.ValidateEmployee(ctx, dto)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(insight.Source).To(gomega.Equal("fallback"))
		})
	})
})
