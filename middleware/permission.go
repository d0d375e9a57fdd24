package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/CoderAnshul/AdDash/models"
	"github.com/CoderAnshul/AdDash/service"
	"github.com/CoderAnshul/AdDash/utils"
)

// RequireAction gates a route on one capability flag. The caller's
// role resolves to its permission matrix through the role store;
// unknown roles, modules, or actions deny.
func RequireAction(roles *service.RoleService, module models.Module, action models.Action) mux.MiddlewareFunc {
	errorHandler := utils.NewErrorHandler()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := Role(r)
			if role == "" {
				errorHandler.HandleUnauthorized(w, "Invalid token claims")
				return
			}

			matrix := roles.MatrixFor(r.Context(), role)
			if !matrix.Allows(module, action) {
				errorHandler.HandleForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
