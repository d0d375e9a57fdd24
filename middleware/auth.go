package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/CoderAnshul/AdDash/auth"
	"github.com/CoderAnshul/AdDash/utils"
)

type contextKey string

// Context keys set by AuthMiddleware
const (
	AdminIDKey contextKey = "admin_id"
	RoleKey    contextKey = "role"
)

// SessionTokenHeader carries the dashboard session token so activity
// on any endpoint restarts the idle countdown.
const SessionTokenHeader = "X-Session-Token"

// AdminID returns the authenticated admin id from the request context
func AdminID(r *http.Request) string {
	id, _ := r.Context().Value(AdminIDKey).(string)
	return id
}

// Role returns the authenticated admin's role name from the context
func Role(r *http.Request) string {
	role, _ := r.Context().Value(RoleKey).(string)
	return role
}

// AuthMiddleware verifies the JWT bearer token and resets the
// caller's session countdown on every authenticated request.
func AuthMiddleware(secret string, sessions *auth.Manager) mux.MiddlewareFunc {
	errorHandler := utils.NewErrorHandler()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				errorHandler.HandleUnauthorized(w, "Authorization header is required")
				return
			}

			bearerToken := strings.Split(authHeader, " ")
			if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
				errorHandler.HandleUnauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := utils.ParseJWT(secret, bearerToken[1])
			if err != nil {
				errorHandler.HandleUnauthorized(w, "Invalid token")
				return
			}

			adminID, ok := claims["admin_id"].(string)
			if !ok {
				errorHandler.HandleUnauthorized(w, "Invalid token claims")
				return
			}
			role, ok := claims["role"].(string)
			if !ok {
				errorHandler.HandleUnauthorized(w, "Invalid token claims")
				return
			}

			// Any authenticated activity restarts the idle countdown
			if token := r.Header.Get(SessionTokenHeader); token != "" && sessions != nil {
				sessions.Reset(r.Context(), token)
			}

			ctx := context.WithValue(r.Context(), AdminIDKey, adminID)
			ctx = context.WithValue(ctx, RoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
