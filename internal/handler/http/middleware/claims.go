package middleware

import (
	"net/http"

	"github.com/attendly/ems-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// UserIDFromRequest returns the authenticated user's id from the
// verified token claims.
func UserIDFromRequest(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// RoleFromRequest returns the authenticated user's role from the
// verified token claims.
func RoleFromRequest(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return "", false
	}
	return user.Role(roleStr), true
}
