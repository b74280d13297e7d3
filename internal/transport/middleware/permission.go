package middleware

import (
	"log/slog"
	"net/http"

	"github.com/brandingpioneers/hr-management/internal/auth"
)

// RequirePermission gates a route on the static role table. A missing user
// is Unauthorized; a present user without any of the listed permissions is
// Forbidden, never Unauthorized.
func RequirePermission(permissions ...auth.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, permission := range permissions {
				if user.HasPermission(permission) {
					next.ServeHTTP(w, r)
					return
				}
			}

			slog.Warn("access denied: insufficient permissions",
				"user_id", user.ID,
				"role", user.Role,
				"required_permissions", permissions)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		})
	}
}
