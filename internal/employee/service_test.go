package employee

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/brandingpioneers/hr-management/internal"
	"github.com/brandingpioneers/hr-management/internal/auth"
	"github.com/brandingpioneers/hr-management/internal/core/events"
)

func TestEmployee(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Employee Module Suite")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockEmployeeRepository struct {
	byID map[string]*Employee
}

func newMockEmployeeRepository() *mockEmployeeRepository {
	return &mockEmployeeRepository{byID: map[string]*Employee{}}
}

func (m *mockEmployeeRepository) Create(e *Employee) error {
	m.byID[e.ID] = e
	return nil
}

func (m *mockEmployeeRepository) GetByID(id string) (*Employee, error) {
	if e, ok := m.byID[id]; ok {
		return e, nil
	}
	return nil, internal.ErrEmployeeNotFound
}

func (m *mockEmployeeRepository) GetByCode(code string) (*Employee, error) {
	for _, e := range m.byID {
		if e.EmployeeCode == code {
			return e, nil
		}
	}
	return nil, nil
}

func (m *mockEmployeeRepository) GetByEmail(email string) (*Employee, error) {
	for _, e := range m.byID {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, nil
}

func (m *mockEmployeeRepository) List(filter ListFilter) ([]*Employee, error) {
	var out []*Employee
	for _, e := range m.byID {
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Department != "" && e.Department != filter.Department {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEmployeeRepository) Update(e *Employee) error {
	m.byID[e.ID] = e
	return nil
}

func (m *mockEmployeeRepository) Delete(id string) error {
	delete(m.byID, id)
	return nil
}

// fakeChecklists counts generation calls instead of creating tasks.
type fakeChecklists struct {
	onboardingCalls []string
	exitCalls       []string
	deletedFor      []string
}

func (f *fakeChecklists) GenerateOnboarding(ctx context.Context, employeeID, assignedBy string) (int, error) {
	f.onboardingCalls = append(f.onboardingCalls, employeeID)
	return 25, nil
}

func (f *fakeChecklists) GenerateExit(ctx context.Context, employeeID, assignedBy string) (int, error) {
	f.exitCalls = append(f.exitCalls, employeeID)
	return 18, nil
}

func (f *fakeChecklists) DeleteForEmployee(ctx context.Context, employeeID string) error {
	f.deletedFor = append(f.deletedFor, employeeID)
	return nil
}

type noopAudit struct{}

func (noopAudit) Record(ctx context.Context, userID, action, resource string, details map[string]any, ip, ua string) {
}

var _ = ginkgo.Describe("EmployeeService", func() {
	var (
		service    *Service
		repo       *mockEmployeeRepository
		checklists *fakeChecklists
		ctx        context.Context
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		repo = newMockEmployeeRepository()
		checklists = &fakeChecklists{}
		bus := events.NewEventBus(testLogger())
		service = NewService(repo, checklists, bus, noopAudit{}, testLogger())
	})

	validDTO := func() CreateEmployeeDTO {
		return CreateEmployeeDTO{
			Name:         "Asha Verma",
			EmployeeCode: "BP001",
			Email:        "asha@example.com",
			Department:   "Engineering",
			Manager:      "Rohit",
			StartDate:    "2024-02-01",
		}
	}

	ginkgo.Describe("Create", func() {
		ginkgo.Context("with the default status", func() {
			ginkgo.It("should default to onboarding and generate the checklist", func() {
				// When
				emp, err := service.Create(ctx, "actor-1", "hr@example.com", validDTO())

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(emp.Status).To(gomega.Equal(StatusOnboarding))
				gomega.Expect(checklists.onboardingCalls).To(gomega.Equal([]string{emp.ID}))
			})
		})

		ginkgo.Context("with an explicit non-onboarding status", func() {
			ginkgo.It("should not generate any checklist", func() {
				// Given
				dto := validDTO()
				dto.Status = StatusActive

				// When
				emp, err := service.Create(ctx, "actor-1", "hr@example.com", dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(emp.Status).To(gomega.Equal(StatusActive))
				gomega.Expect(checklists.onboardingCalls).To(gomega.BeEmpty())
			})
		})

		ginkgo.Context("with a duplicate employee code", func() {
			ginkgo.It("should return a conflict", func() {
				// Given
				_, err := service.Create(ctx, "actor-1", "hr@example.com", validDTO())
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				dup := validDTO()
				dup.Email = "other@example.com"

				// When
				emp, err := service.Create(ctx, "actor-1", "hr@example.com", dup)

				// Then
				gomega.Expect(emp).To(gomega.BeNil())
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.StatusCode).To(gomega.Equal(409))
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeEmployeeCodeExists))
			})
		})

		ginkgo.Context("with a duplicate email", func() {
			ginkgo.It("should return a conflict", func() {
				// Given
				_, err := service.Create(ctx, "actor-1", "hr@example.com", validDTO())
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				dup := validDTO()
				dup.EmployeeCode = "BP002"

				// When
				emp, err := service.Create(ctx, "actor-1", "hr@example.com", dup)

				// Then
				gomega.Expect(emp).To(gomega.BeNil())
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeEmployeeEmailInUse))
			})
		})

		ginkgo.Context("with a malformed date", func() {
			ginkgo.It("should return a 422 validation error", func() {
				// Given
				dto := validDTO()
				dto.StartDate = "01-02-2024"

				// When
				emp, err := service.Create(ctx, "actor-1", "hr@example.com", dto)

				// Then
				gomega.Expect(emp).To(gomega.BeNil())
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.StatusCode).To(gomega.Equal(422))
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInvalidDate))
			})
		})
	})

	ginkgo.Describe("Update", func() {
		var emp *Employee

		ginkgo.BeforeEach(func() {
			var err error
			emp, err = service.Create(ctx, "actor-1", "hr@example.com", validDTO())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		statusPtr := func(s Status) *Status { return &s }
		strPtr := func(s string) *string { return &s }

		ginkgo.Context("when moving into exiting", func() {
			ginkgo.It("should generate the exit checklist exactly once", func() {
				// When
				updated, err := service.Update(ctx, "actor-1", "hr@example.com", emp.ID, UpdateEmployeeDTO{
					Status: statusPtr(StatusExiting),
				})

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(updated.Status).To(gomega.Equal(StatusExiting))
				gomega.Expect(checklists.exitCalls).To(gomega.Equal([]string{emp.ID}))
			})

			ginkgo.It("should not generate again when already exiting", func() {
				// Given
				_, err := service.Update(ctx, "actor-1", "hr@example.com", emp.ID, UpdateEmployeeDTO{
					Status: statusPtr(StatusExiting),
				})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When
				_, err = service.Update(ctx, "actor-1", "hr@example.com", emp.ID, UpdateEmployeeDTO{
					Status: statusPtr(StatusExiting),
				})

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(checklists.exitCalls).To(gomega.HaveLen(1))
			})
		})

		ginkgo.Context("when changing to a status other than exiting", func() {
			ginkgo.It("should not generate any checklist", func() {
				// When
				_, err := service.Update(ctx, "actor-1", "hr@example.com", emp.ID, UpdateEmployeeDTO{
					Status: statusPtr(StatusActive),
				})

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(checklists.exitCalls).To(gomega.BeEmpty())
			})
		})

		ginkgo.Context("when patching fields", func() {
			ginkgo.It("should only change the fields that were sent", func() {
				// When
				updated, err := service.Update(ctx, "actor-1", "hr@example.com", emp.ID, UpdateEmployeeDTO{
					Department: strPtr("Design"),
				})

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(updated.Department).To(gomega.Equal("Design"))
				gomega.Expect(updated.Name).To(gomega.Equal("Asha Verma"))
				gomega.Expect(updated.EmployeeCode).To(gomega.Equal("BP001"))
			})

			ginkgo.It("should reject a code already held by another employee", func() {
				// Given
				other := validDTO()
				other.EmployeeCode = "BP002"
				other.Email = "other@example.com"
				_, err := service.Create(ctx, "actor-1", "hr@example.com", other)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				// When
				_, err = service.Update(ctx, "actor-1", "hr@example.com", emp.ID, UpdateEmployeeDTO{
					EmployeeCode: strPtr("BP002"),
				})

				// Then
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeEmployeeCodeExists))
			})

			ginkgo.It("should accept resubmitting the employee's own code", func() {
				// When
				_, err := service.Update(ctx, "actor-1", "hr@example.com", emp.ID, UpdateEmployeeDTO{
					EmployeeCode: strPtr("BP001"),
				})

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			})
		})

		ginkgo.Context("with an unknown id", func() {
			ginkgo.It("should return not found", func() {
				// When
				_, err := service.Update(ctx, "actor-1", "hr@example.com", "no-such-id", UpdateEmployeeDTO{})

				// Then
				gomega.Expect(err).To(gomega.Equal(internal.ErrEmployeeNotFound))
			})
		})
	})

	ginkgo.Describe("UpdateProfile", func() {
		var emp *Employee

		ginkgo.BeforeEach(func() {
			var err error
			emp, err = service.Create(ctx, "actor-1", "hr@example.com", validDTO())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should update phone and birthday only", func() {
			// Given the employee editing their own record
			self := &auth.User{ID: "u-self", Email: "asha@example.com", Role: auth.RoleEmployee}
			phone := "+91-98765-43210"
			birthday := "1995-06-20"

			// When
			updated, err := service.UpdateProfile(ctx, self, emp.ID, UpdateProfileDTO{
				Phone:    &phone,
				Birthday: &birthday,
			})

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Phone).To(gomega.Equal(phone))
			gomega.Expect(updated.Birthday).ToNot(gomega.BeNil())
			gomega.Expect(updated.Birthday.Format("2006-01-02")).To(gomega.Equal(birthday))
			gomega.Expect(updated.Status).To(gomega.Equal(StatusOnboarding))
		})

		ginkgo.It("should forbid editing another employee's profile", func() {
			// Given an employee whose email does not match the record
			other := &auth.User{ID: "u-other", Email: "someone.else@example.com", Role: auth.RoleEmployee}
			phone := "+91-98765-43210"

			// When
			updated, err := service.UpdateProfile(ctx, other, emp.ID, UpdateProfileDTO{Phone: &phone})

			// Then
			gomega.Expect(updated).To(gomega.BeNil())
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(403))
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInsufficientPerms))
			gomega.Expect(repo.byID[emp.ID].Phone).To(gomega.BeEmpty())
		})

		ginkgo.It("should let an actor with the employee update permission edit any profile", func() {
			// Given an HR manager whose email matches nothing
			hr := &auth.User{ID: "u-hr", Email: "hr@example.com", Role: auth.RoleHRManager}
			phone := "+91-11111-22222"

			// When
			updated, err := service.UpdateProfile(ctx, hr, emp.ID, UpdateProfileDTO{Phone: &phone})

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Phone).To(gomega.Equal(phone))
		})
	})

	ginkgo.Describe("ActiveEmails", func() {
		ginkgo.It("should exclude exited and inactive employees", func() {
			// Given
			for i, status := range []Status{StatusOnboarding, StatusActive, StatusExiting, StatusExited, StatusInactive} {
				repo.byID[string(rune('a'+i))] = &Employee{
					ID:     string(rune('a' + i)),
					Email:  string(rune('a'+i)) + "@example.com",
					Status: status,
				}
			}

			// When
			emails, err := service.ActiveEmails(ctx)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(emails).To(gomega.ConsistOf("a@example.com", "b@example.com", "c@example.com"))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should remove the employee's tasks before the employee", func() {
			// Given
			emp, err := service.Create(ctx, "actor-1", "hr@example.com", validDTO())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			err = service.Delete(ctx, "actor-1", emp.ID)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(checklists.deletedFor).To(gomega.Equal([]string{emp.ID}))
			_, err = repo.GetByID(emp.ID)
			gomega.Expect(err).To(gomega.Equal(internal.ErrEmployeeNotFound))
		})

		ginkgo.It("should return not found for an unknown id", func() {
			// When
			err := service.Delete(ctx, "actor-1", "no-such-id")

			// Then
			gomega.Expect(err).To(gomega.Equal(internal.ErrEmployeeNotFound))
			gomega.Expect(checklists.deletedFor).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("List", func() {
		ginkgo.It("should reject an unknown status filter", func() {
			// When
			_, err := service.List(ctx, ListFilter{Status: "vacationing"})

			// Then
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(422))
		})
	})
})

var _ = ginkgo.Describe("Status", func() {
	ginkgo.It("should accept the five known statuses", func() {
		for _, s := range []Status{StatusOnboarding, StatusActive, StatusExiting, StatusExited, StatusInactive} {
			gomega.Expect(s.Valid()).To(gomega.BeTrue(), string(s))
		}
	})

	ginkgo.It("should reject anything else", func() {
		gomega.Expect(Status("fired").Valid()).To(gomega.BeFalse())
		gomega.Expect(Status("").Valid()).To(gomega.BeFalse())
	})
})

var _ = ginkgo.Describe("UpdateEmployeeDTO", func() {
	ginkgo.Describe("Validate", func() {
		ginkgo.It("should reject an empty employee code", func() {
			empty := ""
			err := UpdateEmployeeDTO{EmployeeCode: &empty}.Validate()
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject a bad date in any date field", func() {
			bad := "June 1st"
			err := UpdateEmployeeDTO{ExitDate: &bad}.Validate()
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should accept an all-nil patch", func() {
			gomega.Expect(UpdateEmployeeDTO{}.Validate()).To(gomega.Succeed())
		})
	})
})

var _ = ginkgo.Describe("date parsing", func() {
	ginkgo.It("should parse the canonical layout", func() {
		t, err := parseDate("2024-02-29")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(t).To(gomega.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	})

	ginkgo.It("should treat an empty optional date as nil", func() {
		t, err := parseOptionalDate("")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(t).To(gomega.BeNil())
	})
})
