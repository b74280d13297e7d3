package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("RolePermissions", func() {
	ginkgo.Describe("RoleHasPermission", func() {
		ginkgo.Context("super_admin", func() {
			ginkgo.It("should hold every permission", func() {
				all := []Permission{
					PermCreateUser, PermReadUser, PermUpdateUser, PermDeleteUser,
					PermManageRoles, PermInviteUser,
					PermCreateEmployee, PermReadEmployee, PermUpdateEmployee, PermDeleteEmployee,
					PermImportEmployees,
					PermCreateTask, PermReadTask, PermUpdateTask, PermDeleteTask,
					PermManageTaskTemplates,
					PermViewReports, PermExportData, PermViewAnalytics, PermViewAuditLogs,
					PermManageSettings, PermViewSystemLogs, PermManageIntegrations,
					PermUseAIFeatures, PermConfigureAI,
				}
				for _, p := range all {
					gomega.Expect(RoleHasPermission(RoleSuperAdmin, p)).To(gomega.BeTrue(), string(p))
				}
			})
		})

		ginkgo.Context("admin", func() {
			ginkgo.It("should not hold manage_roles or manage_integrations", func() {
				gomega.Expect(RoleHasPermission(RoleAdmin, PermManageRoles)).To(gomega.BeFalse())
				gomega.Expect(RoleHasPermission(RoleAdmin, PermManageIntegrations)).To(gomega.BeFalse())
			})

			ginkgo.It("should hold user and settings management", func() {
				gomega.Expect(RoleHasPermission(RoleAdmin, PermDeleteUser)).To(gomega.BeTrue())
				gomega.Expect(RoleHasPermission(RoleAdmin, PermManageSettings)).To(gomega.BeTrue())
				gomega.Expect(RoleHasPermission(RoleAdmin, PermViewAuditLogs)).To(gomega.BeTrue())
			})
		})

		ginkgo.Context("hr_manager", func() {
			ginkgo.It("should manage employees and tasks but not users or settings", func() {
				gomega.Expect(RoleHasPermission(RoleHRManager, PermCreateEmployee)).To(gomega.BeTrue())
				gomega.Expect(RoleHasPermission(RoleHRManager, PermImportEmployees)).To(gomega.BeTrue())
				gomega.Expect(RoleHasPermission(RoleHRManager, PermDeleteTask)).To(gomega.BeTrue())
				gomega.Expect(RoleHasPermission(RoleHRManager, PermCreateUser)).To(gomega.BeFalse())
				gomega.Expect(RoleHasPermission(RoleHRManager, PermDeleteUser)).To(gomega.BeFalse())
				gomega.Expect(RoleHasPermission(RoleHRManager, PermManageSettings)).To(gomega.BeFalse())
				gomega.Expect(RoleHasPermission(RoleHRManager, PermViewAuditLogs)).To(gomega.BeFalse())
			})
		})

		ginkgo.Context("manager and employee", func() {
			ginkgo.It("should hold sets that are not subsets of each other", func() {
				// manager can export data, employee cannot
				gomega.Expect(RoleHasPermission(RoleManager, PermExportData)).To(gomega.BeTrue())
				gomega.Expect(RoleHasPermission(RoleEmployee, PermExportData)).To(gomega.BeFalse())

				// employee can update their own user, manager cannot
				gomega.Expect(RoleHasPermission(RoleEmployee, PermUpdateUser)).To(gomega.BeTrue())
				gomega.Expect(RoleHasPermission(RoleManager, PermUpdateUser)).To(gomega.BeFalse())
			})

			ginkgo.It("should deny employee any create or delete", func() {
				gomega.Expect(RoleHasPermission(RoleEmployee, PermCreateEmployee)).To(gomega.BeFalse())
				gomega.Expect(RoleHasPermission(RoleEmployee, PermCreateTask)).To(gomega.BeFalse())
				gomega.Expect(RoleHasPermission(RoleEmployee, PermDeleteTask)).To(gomega.BeFalse())
			})
		})

		ginkgo.Context("unknown role", func() {
			ginkgo.It("should hold nothing", func() {
				gomega.Expect(RoleHasPermission("intern", PermReadEmployee)).To(gomega.BeFalse())
			})
		})
	})

	ginkgo.Describe("PermissionsForRole", func() {
		ginkgo.It("should return the full bundle for super_admin", func() {
			gomega.Expect(PermissionsForRole(RoleSuperAdmin)).To(gomega.HaveLen(25))
		})

		ginkgo.It("should return an empty slice for an unknown role", func() {
			gomega.Expect(PermissionsForRole("intern")).To(gomega.BeEmpty())
		})
	})
})

var _ = ginkgo.Describe("User.HasPermission", func() {
	ginkgo.It("should delegate to the role table", func() {
		u := &User{Role: RoleManager}
		gomega.Expect(u.HasPermission(PermReadEmployee)).To(gomega.BeTrue())
		gomega.Expect(u.HasPermission(PermDeleteEmployee)).To(gomega.BeFalse())
	})
})
