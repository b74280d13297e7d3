package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brandingpioneers/hr-management/internal"
	"github.com/brandingpioneers/hr-management/internal/task"
	taskPostgres "github.com/brandingpioneers/hr-management/internal/task/postgres"
)

func TestTaskPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Task Postgres Suite")
}

var _ = Describe("Task Repository", func() {
	var (
		db   *gorm.DB
		repo task.Repository
	)

	BeforeEach(func() {
		var err error
		// SQLite in-memory stands in for Postgres in tests
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&task.Task{})
		Expect(err).NotTo(HaveOccurred())

		repo = taskPostgres.NewTaskRepository(db)
	})

	newTask := func(id, employeeID string, status task.Status) *task.Task {
		now := time.Now().UTC()
		return &task.Task{
			ID:         id,
			EmployeeID: employeeID,
			Title:      "Task " + id,
			TaskType:   task.TypeOnboarding,
			Status:     status,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}

	Describe("GetByID", func() {
		It("should load a created task", func() {
			Expect(repo.Create(newTask("t1", "e1", task.StatusPending))).To(Succeed())

			got, err := repo.GetByID("t1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Title).To(Equal("Task t1"))
		})

		It("should return the not found error for an unknown id", func() {
			got, err := repo.GetByID("ghost")
			Expect(got).To(BeNil())
			Expect(err).To(Equal(internal.ErrTaskNotFound))
		})
	})

	Describe("CreateBatch", func() {
		It("should insert every task in one call", func() {
			tasks := []*task.Task{
				newTask("t1", "e1", task.StatusPending),
				newTask("t2", "e1", task.StatusPending),
				newTask("t3", "e2", task.StatusPending),
			}
			Expect(repo.CreateBatch(tasks)).To(Succeed())

			got, err := repo.List(task.ListFilter{Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(3))
		})

		It("should accept an empty batch", func() {
			Expect(repo.CreateBatch(nil)).To(Succeed())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			Expect(repo.Create(newTask("t1", "e1", task.StatusPending))).To(Succeed())
			Expect(repo.Create(newTask("t2", "e1", task.StatusCompleted))).To(Succeed())
			exit := newTask("t3", "e2", task.StatusPending)
			exit.TaskType = task.TypeExit
			Expect(repo.Create(exit)).To(Succeed())
		})

		It("should filter by employee", func() {
			got, err := repo.List(task.ListFilter{EmployeeID: "e1", Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(2))
		})

		It("should filter by type and status together", func() {
			got, err := repo.List(task.ListFilter{TaskType: task.TypeExit, Status: task.StatusPending, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].ID).To(Equal("t3"))
		})
	})

	Describe("BulkUpdateStatus", func() {
		BeforeEach(func() {
			Expect(repo.Create(newTask("t1", "e1", task.StatusPending))).To(Succeed())
			Expect(repo.Create(newTask("t2", "e1", task.StatusPending))).To(Succeed())
		})

		It("should count only the rows that matched", func() {
			now := time.Now().UTC()
			count, err := repo.BulkUpdateStatus([]string{"t1", "t2", "ghost"}, task.StatusCompleted, &now, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(2)))
		})

		It("should write the completed stamp when one is given", func() {
			now := time.Now().UTC().Truncate(time.Second)
			_, err := repo.BulkUpdateStatus([]string{"t1"}, task.StatusCompleted, &now, now)
			Expect(err).NotTo(HaveOccurred())

			got, err := repo.GetByID("t1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(task.StatusCompleted))
			Expect(got.CompletedDate).NotTo(BeNil())
			Expect(got.CompletedDate.Unix()).To(Equal(now.Unix()))
		})

		It("should leave completed_date untouched for other statuses", func() {
			now := time.Now().UTC()
			_, err := repo.BulkUpdateStatus([]string{"t1"}, task.StatusOverdue, nil, now)
			Expect(err).NotTo(HaveOccurred())

			got, err := repo.GetByID("t1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.CompletedDate).To(BeNil())
		})
	})

	Describe("MarkOverdue", func() {
		It("should flip only pending tasks past their due date", func() {
			now := time.Now().UTC()
			past := now.AddDate(0, 0, -1)
			future := now.AddDate(0, 0, 1)

			late := newTask("late", "e1", task.StatusPending)
			late.DueDate = &past
			onTime := newTask("on-time", "e1", task.StatusPending)
			onTime.DueDate = &future
			done := newTask("done", "e1", task.StatusCompleted)
			done.DueDate = &past
			noDue := newTask("no-due", "e1", task.StatusPending)

			for _, t := range []*task.Task{late, onTime, done, noDue} {
				Expect(repo.Create(t)).To(Succeed())
			}

			count, err := repo.MarkOverdue(now)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))

			got, err := repo.GetByID("late")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(task.StatusOverdue))
		})
	})

	Describe("DeleteByEmployee", func() {
		It("should remove every task for the employee and nothing else", func() {
			Expect(repo.Create(newTask("t1", "e1", task.StatusPending))).To(Succeed())
			Expect(repo.Create(newTask("t2", "e1", task.StatusCompleted))).To(Succeed())
			Expect(repo.Create(newTask("t3", "e2", task.StatusPending))).To(Succeed())

			Expect(repo.DeleteByEmployee("e1")).To(Succeed())

			got, err := repo.List(task.ListFilter{Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].ID).To(Equal("t3"))
		})
	})
})
