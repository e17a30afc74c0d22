package middleware

import (
	"net/http"

	"mediaccess/internal/domain/entity"
	"mediaccess/pkg/response"
)

// RequireCapability creates a middleware that checks the acting role holds cap.
// Role is read from context (set by AuthMiddleware).
func RequireCapability(cap entity.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			if !entity.IsPermitted(role, cap) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
