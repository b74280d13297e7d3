package auth

// Role is a named bundle of permissions assigned to a user account.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleHRManager  Role = "hr_manager"
	RoleManager    Role = "manager"
	RoleEmployee   Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleHRManager, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Permission is a fine-grained capability flag checked before an operation
// proceeds.
type Permission string

const (
	// User management
	PermCreateUser  Permission = "create_user"
	PermReadUser    Permission = "read_user"
	PermUpdateUser  Permission = "update_user"
	PermDeleteUser  Permission = "delete_user"
	PermManageRoles Permission = "manage_roles"
	PermInviteUser  Permission = "invite_user"

	// Employee management
	PermCreateEmployee  Permission = "create_employee"
	PermReadEmployee    Permission = "read_employee"
	PermUpdateEmployee  Permission = "update_employee"
	PermDeleteEmployee  Permission = "delete_employee"
	PermImportEmployees Permission = "import_employees"

	// Task management
	PermCreateTask          Permission = "create_task"
	PermReadTask            Permission = "read_task"
	PermUpdateTask          Permission = "update_task"
	PermDeleteTask          Permission = "delete_task"
	PermManageTaskTemplates Permission = "manage_task_templates"

	// Reporting and analytics
	PermViewReports   Permission = "view_reports"
	PermExportData    Permission = "export_data"
	PermViewAnalytics Permission = "view_analytics"
	PermViewAuditLogs Permission = "view_audit_logs"

	// System administration
	PermManageSettings     Permission = "manage_settings"
	PermViewSystemLogs     Permission = "view_system_logs"
	PermManageIntegrations Permission = "manage_integrations"

	// AI features
	PermUseAIFeatures Permission = "use_ai_features"
	PermConfigureAI   Permission = "configure_ai"
)

// rolePermissions is the authoritative role table. It is deliberately not a
// clean lattice: manager and employee hold narrow sets that are not subsets
// of each other, and admin lacks manage_roles and manage_integrations.
var rolePermissions = map[Role]map[Permission]struct{}{
	RoleSuperAdmin: permSet(
		PermCreateUser, PermReadUser, PermUpdateUser, PermDeleteUser,
		PermManageRoles, PermInviteUser,
		PermCreateEmployee, PermReadEmployee, PermUpdateEmployee, PermDeleteEmployee,
		PermImportEmployees,
		PermCreateTask, PermReadTask, PermUpdateTask, PermDeleteTask,
		PermManageTaskTemplates,
		PermViewReports, PermExportData, PermViewAnalytics, PermViewAuditLogs,
		PermManageSettings, PermViewSystemLogs, PermManageIntegrations,
		PermUseAIFeatures, PermConfigureAI,
	),
	RoleAdmin: permSet(
		PermCreateUser, PermReadUser, PermUpdateUser, PermDeleteUser,
		PermInviteUser,
		PermCreateEmployee, PermReadEmployee, PermUpdateEmployee, PermDeleteEmployee,
		PermImportEmployees,
		PermCreateTask, PermReadTask, PermUpdateTask, PermDeleteTask,
		PermManageTaskTemplates,
		PermViewReports, PermExportData, PermViewAnalytics, PermViewAuditLogs,
		PermManageSettings, PermViewSystemLogs,
		PermUseAIFeatures, PermConfigureAI,
	),
	RoleHRManager: permSet(
		PermReadUser, PermUpdateUser, PermInviteUser,
		PermCreateEmployee, PermReadEmployee, PermUpdateEmployee, PermDeleteEmployee,
		PermImportEmployees,
		PermCreateTask, PermReadTask, PermUpdateTask, PermDeleteTask,
		PermManageTaskTemplates,
		PermViewReports, PermExportData, PermViewAnalytics,
		PermUseAIFeatures,
	),
	RoleManager: permSet(
		PermReadUser,
		PermReadEmployee, PermUpdateEmployee,
		PermCreateTask, PermReadTask, PermUpdateTask,
		PermViewReports, PermExportData,
		PermUseAIFeatures,
	),
	RoleEmployee: permSet(
		PermReadUser, PermUpdateUser,
		PermReadEmployee,
		PermReadTask, PermUpdateTask,
		PermUseAIFeatures,
	),
}

func permSet(perms ...Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// RoleHasPermission checks the static role table. Unknown roles hold nothing.
func RoleHasPermission(role Role, permission Permission) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = perms[permission]
	return ok
}

// PermissionsForRole returns the role's permissions as strings, for API
// responses and logging.
func PermissionsForRole(role Role) []string {
	perms := rolePermissions[role]
	out := make([]string, 0, len(perms))
	for p := range perms {
		out = append(out, string(p))
	}
	return out
}
