package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/brandingpioneers/hr-management/internal/audit"
	"github.com/brandingpioneers/hr-management/internal/auth"
	"github.com/brandingpioneers/hr-management/internal/dashboard"
	"github.com/brandingpioneers/hr-management/internal/employee"
	"github.com/brandingpioneers/hr-management/internal/insights"
	"github.com/brandingpioneers/hr-management/internal/notification"
	"github.com/brandingpioneers/hr-management/internal/report"
	"github.com/brandingpioneers/hr-management/internal/task"
	"github.com/brandingpioneers/hr-management/internal/transport/middleware"
	"github.com/brandingpioneers/hr-management/internal/transport/swagger"
	"github.com/brandingpioneers/hr-management/internal/user"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Employee     *employee.Handler
	Task         *task.Handler
	Audit        *audit.Handler
	Dashboard    *dashboard.Handler
	Report       *report.Handler
	Insights     *insights.Handler
	Notification *notification.Handler
}

// RegisterAllRoutes mounts the API under /api. Route gating follows the
// permission table: each mutating route carries its own permission check on
// top of the shared auth middleware.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Public auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/register", h.Auth.Register)
			sr.Post("/forgot-password", h.Auth.ForgotPassword)
			sr.Post("/reset-password", h.Auth.ResetPassword)
			sr.Post("/accept-invitation/{token}", h.Auth.AcceptInvitation)
			sr.Post("/verify-email/{token}", h.Auth.VerifyEmail)
		})

		// Everything below requires a valid token
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/auth/me", h.Auth.Me)
			pr.Post("/auth/change-password", h.Auth.ChangePassword)

			pr.Group(func(ur chi.Router) {
				ur.Use(middleware.RequirePermission(auth.PermInviteUser))
				ur.Post("/auth/invite", h.Auth.InviteUser)
			})

			// User administration
			pr.Route("/users", func(ur chi.Router) {
				ur.With(middleware.RequirePermission(auth.PermReadUser)).
					Get("/", h.User.ListUsers)
				ur.With(middleware.RequirePermission(auth.PermManageRoles)).
					Put("/{id}/role", h.User.ChangeRole)
				ur.With(middleware.RequirePermission(auth.PermDeleteUser)).
					Delete("/{id}", h.User.DeleteUser)
			})

			// Employee directory
			pr.Route("/employees", func(er chi.Router) {
				er.With(middleware.RequirePermission(auth.PermCreateEmployee)).
					Post("/", h.Employee.Create)
				er.With(middleware.RequirePermission(auth.PermReadEmployee)).
					Get("/", h.Employee.List)
				er.With(middleware.RequirePermission(auth.PermImportEmployees)).
					Post("/import-excel", h.Employee.ImportExcel)
				er.With(middleware.RequirePermission(auth.PermImportEmployees)).
					Get("/import-template", h.Employee.DownloadTemplate)
				er.With(middleware.RequirePermission(auth.PermReadEmployee)).
					Get("/{id}", h.Employee.Get)
				er.With(middleware.RequirePermission(auth.PermUpdateEmployee)).
					Put("/{id}", h.Employee.Update)
				er.With(middleware.RequirePermission(auth.PermUpdateUser)).
					Put("/{id}/profile", h.Employee.UpdateProfile)
				er.With(middleware.RequirePermission(auth.PermDeleteEmployee)).
					Delete("/{id}", h.Employee.Delete)
			})

			// Task checklists
			pr.Route("/tasks", func(tr chi.Router) {
				tr.With(middleware.RequirePermission(auth.PermCreateTask)).
					Post("/", h.Task.Create)
				tr.With(middleware.RequirePermission(auth.PermReadTask)).
					Get("/", h.Task.List)
				tr.With(middleware.RequirePermission(auth.PermUpdateTask)).
					Put("/bulk", h.Task.BulkUpdate)
				tr.With(middleware.RequirePermission(auth.PermReadTask)).
					Get("/{id}", h.Task.Get)
				tr.With(middleware.RequirePermission(auth.PermUpdateTask)).
					Put("/{id}", h.Task.Update)
				tr.With(middleware.RequirePermission(auth.PermDeleteTask)).
					Delete("/{id}", h.Task.Delete)
			})

			// Audit trail
			pr.With(middleware.RequirePermission(auth.PermViewAuditLogs)).
				Get("/audit-logs", h.Audit.ListRecent)

			// Dashboard
			pr.Route("/dashboard", func(dr chi.Router) {
				dr.Get("/stats", h.Dashboard.Stats)
				dr.Get("/recent-activities", h.Dashboard.RecentActivities)
				dr.Get("/upcoming-events", h.Dashboard.UpcomingEvents)
				dr.Get("/upcoming-tasks", h.Dashboard.UpcomingTasks)
			})

			// Reports
			pr.Route("/reports", func(rr chi.Router) {
				rr.Use(middleware.RequirePermission(auth.PermViewReports))
				rr.Get("/employees", h.Report.EmployeesPDF)
				rr.Get("/tasks", h.Report.TasksPDF)
				rr.With(middleware.RequirePermission(auth.PermExportData)).
					Get("/employees/export", h.Report.EmployeesExcel)
			})

			// AI insights
			pr.Route("/insights", func(ir chi.Router) {
				ir.Use(middleware.RequirePermission(auth.PermUseAIFeatures))
				ir.Get("/employees/{id}", h.Insights.EmployeeInsights)
				ir.Get("/employees/{id}/task-suggestions", h.Insights.TaskSuggestions)
				ir.Post("/validate-employee", h.Insights.ValidateEmployee)
			})

			// Notifications
			pr.With(middleware.RequirePermission(auth.PermManageSettings)).
				Post("/notifications/bulk", h.Notification.SendBulk)
		})
	})
}
