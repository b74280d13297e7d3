package user

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/brandingpioneers/hr-management/internal"
	"github.com/brandingpioneers/hr-management/internal/auth"
	"github.com/brandingpioneers/hr-management/internal/core/events"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

type mockUserRepository struct {
	byID map[string]*auth.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{byID: map[string]*auth.User{
		"u1": {ID: "u1", Email: "super@example.com", Name: "Super", Role: auth.RoleSuperAdmin},
		"u2": {ID: "u2", Email: "admin@example.com", Name: "Admin", Role: auth.RoleAdmin},
		"u3": {ID: "u3", Email: "emp@example.com", Name: "Emp", Role: auth.RoleEmployee},
	}}
}

func (m *mockUserRepository) List(limit, offset int) ([]*auth.User, int64, error) {
	var out []*auth.User
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (m *mockUserRepository) GetByID(id string) (*auth.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockUserRepository) UpdateRole(userID string, role auth.Role) error {
	m.byID[userID].Role = role
	return nil
}

func (m *mockUserRepository) Delete(userID string) error {
	delete(m.byID, userID)
	return nil
}

type noopAudit struct{}

func (noopAudit) Record(ctx context.Context, userID, action, resource string, details map[string]any, ip, ua string) {
}

var _ = ginkgo.Describe("UserService", func() {
	var (
		service *Service
		repo    *mockUserRepository
		ctx     context.Context
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		repo = newMockUserRepository()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = NewService(repo, events.NewEventBus(logger), noopAudit{}, logger)
	})

	ginkgo.Describe("ChangeRole", func() {
		ginkgo.Context("granting super_admin", func() {
			ginkgo.It("should be allowed for a super admin actor", func() {
				// When
				updated, err := service.ChangeRole(ctx, repo.byID["u1"], "u3", ChangeRoleDTO{Role: auth.RoleSuperAdmin})

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(updated.Role).To(gomega.Equal(auth.RoleSuperAdmin))
			})

			ginkgo.It("should be forbidden for any other actor", func() {
				// When
				updated, err := service.ChangeRole(ctx, repo.byID["u2"], "u3", ChangeRoleDTO{Role: auth.RoleSuperAdmin})

				// Then
				gomega.Expect(updated).To(gomega.BeNil())
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.StatusCode).To(gomega.Equal(403))
				gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInsufficientPerms))
				gomega.Expect(repo.byID["u3"].Role).To(gomega.Equal(auth.RoleEmployee))
			})
		})

		ginkgo.It("should allow an admin to grant any non-super role", func() {
			// When
			updated, err := service.ChangeRole(ctx, repo.byID["u2"], "u3", ChangeRoleDTO{Role: auth.RoleHRManager})

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Role).To(gomega.Equal(auth.RoleHRManager))
		})

		ginkgo.It("should reject an unknown role with a 422", func() {
			// When
			_, err := service.ChangeRole(ctx, repo.byID["u1"], "u3", ChangeRoleDTO{Role: "overlord"})

			// Then
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(422))
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInvalidRole))
		})

		ginkgo.It("should return not found for an unknown user", func() {
			// When
			_, err := service.ChangeRole(ctx, repo.byID["u1"], "ghost", ChangeRoleDTO{Role: auth.RoleManager})

			// Then
			gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
		})
	})

	ginkgo.Describe("DeleteUser", func() {
		ginkgo.It("should reject self-deletion before looking anything up", func() {
			// When
			err := service.DeleteUser(ctx, repo.byID["u1"], "u1")

			// Then
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(403))
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeSelfDeletion))
			gomega.Expect(repo.byID).To(gomega.HaveKey("u1"))
		})

		ginkgo.It("should delete another user's account", func() {
			// When
			err := service.DeleteUser(ctx, repo.byID["u1"], "u3")

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.byID).ToNot(gomega.HaveKey("u3"))
		})

		ginkgo.It("should return not found for an unknown user", func() {
			// When
			err := service.DeleteUser(ctx, repo.byID["u1"], "ghost")

			// Then
			gomega.Expect(err).To(gomega.Equal(internal.ErrUserNotFound))
		})
	})

	ginkgo.Describe("ListUsers", func() {
		ginkgo.It("should return every account with the total", func() {
			// When
			list, err := service.ListUsers(ctx, 0, 0)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(list.Users).To(gomega.HaveLen(3))
			gomega.Expect(list.Total).To(gomega.Equal(int64(3)))
		})
	})
})
