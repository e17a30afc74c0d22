package middleware

import (
	"context"
	"net/http"
	"strings"

	"mediaccess/internal/domain/entity"
	"mediaccess/pkg/jwt"
	"mediaccess/pkg/response"
)

type contextKey string

const (
	RoleKey    contextKey = "role"
	TokenIDKey contextKey = "token_id"
)

// RoleHeader carries the acting role when no session token is sent
const RoleHeader = "X-User-Role"

type AuthMiddleware struct {
	jwtService *jwt.JWTService
}

func NewAuthMiddleware(jwtService *jwt.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate puts the acting role into the request context.
//
// A bearer token from the login simulation wins. Otherwise the role comes
// from the X-User-Role header, and a missing header means STAFF.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := m.jwtService.ValidateToken(parts[1])
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			ctx = context.WithValue(ctx, RoleKey, claims.Role)
			ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		role, err := entity.ResolveRole(r.Header.Get(RoleHeader))
		if err != nil {
			response.BadRequest(w, "Invalid role in "+RoleHeader+" header")
			return
		}

		ctx = context.WithValue(ctx, RoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRoleFromContext extracts the acting role from context
func GetRoleFromContext(ctx context.Context) (entity.Role, bool) {
	role, ok := ctx.Value(RoleKey).(entity.Role)
	return role, ok
}

// GetTokenIDFromContext extracts the session token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
