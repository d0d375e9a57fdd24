package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/CoderAnshul/AdDash/handlers"
	"github.com/CoderAnshul/AdDash/metrics"
	"github.com/CoderAnshul/AdDash/middleware"
	"github.com/CoderAnshul/AdDash/models"
	"github.com/CoderAnshul/AdDash/service"
)

// New wires every route. Public routes skip authentication; everything
// under the protected subrouter requires a valid JWT and the module
// flag named on the route.
func New(h *handlers.Handler, roles *service.RoleService, jwtSecret string, m *metrics.Metrics) *mux.Router {
	r := mux.NewRouter()
	r.Use(m.Middleware())

	// Public surface
	r.HandleFunc("/api/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware(jwtSecret, h.Sessions))

	guard := func(module models.Module, action models.Action, next http.HandlerFunc) http.Handler {
		return middleware.RequireAction(roles, module, action)(next)
	}

	protected.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)

	// Dashboard
	protected.Handle("/dashboard/stats",
		guard(models.ModuleDashboard, models.ActionView, h.GetDashboardStats)).Methods(http.MethodGet)

	// User management
	protected.Handle("/users",
		guard(models.ModuleUserManagement, models.ActionView, h.GetUsers)).Methods(http.MethodGet)
	protected.Handle("/users/{id}",
		guard(models.ModuleUserManagement, models.ActionView, h.GetUserDetails)).Methods(http.MethodGet)
	protected.Handle("/users/{id}",
		guard(models.ModuleUserManagement, models.ActionEdit, h.UpdateUser)).Methods(http.MethodPut)
	protected.Handle("/users/{id}",
		guard(models.ModuleUserManagement, models.ActionDelete, h.DeleteUser)).Methods(http.MethodDelete)

	// Session management
	protected.Handle("/sessions",
		guard(models.ModuleSessionManagement, models.ActionCreate, h.CreateSession)).Methods(http.MethodPost)
	protected.Handle("/sessions",
		guard(models.ModuleSessionManagement, models.ActionView, h.GetSessions)).Methods(http.MethodGet)
	protected.Handle("/sessions/{id}",
		guard(models.ModuleSessionManagement, models.ActionView, h.GetSessionDetails)).Methods(http.MethodGet)
	protected.Handle("/sessions/{id}",
		guard(models.ModuleSessionManagement, models.ActionEdit, h.UpdateSession)).Methods(http.MethodPut)
	protected.Handle("/sessions/{id}",
		guard(models.ModuleSessionManagement, models.ActionDelete, h.DeleteSession)).Methods(http.MethodDelete)

	// Listener management
	protected.Handle("/listeners/promote",
		guard(models.ModuleListenerManagement, models.ActionCreate, h.PromoteListener)).Methods(http.MethodPost)
	protected.Handle("/listeners",
		guard(models.ModuleListenerManagement, models.ActionView, h.GetListeners)).Methods(http.MethodGet)

	// Roles and permissions
	protected.Handle("/roles",
		guard(models.ModuleRolesPermissions, models.ActionView, h.GetRoles)).Methods(http.MethodGet)
	protected.Handle("/roles",
		guard(models.ModuleRolesPermissions, models.ActionCreate, h.CreateRole)).Methods(http.MethodPost)
	protected.Handle("/roles/{id}",
		guard(models.ModuleRolesPermissions, models.ActionView, h.GetRoleDetails)).Methods(http.MethodGet)
	protected.Handle("/roles/{id}",
		guard(models.ModuleRolesPermissions, models.ActionEdit, h.UpdateRole)).Methods(http.MethodPut)
	protected.Handle("/roles/{id}",
		guard(models.ModuleRolesPermissions, models.ActionDelete, h.DeleteRole)).Methods(http.MethodDelete)
	protected.Handle("/roles/{id}/duplicate",
		guard(models.ModuleRolesPermissions, models.ActionCreate, h.DuplicateRole)).Methods(http.MethodPost)

	// Admin directory
	protected.Handle("/admins",
		guard(models.ModuleAdminManagement, models.ActionView, h.GetAdmins)).Methods(http.MethodGet)
	protected.Handle("/admins",
		guard(models.ModuleAdminManagement, models.ActionCreate, h.CreateAdmin)).Methods(http.MethodPost)
	protected.Handle("/admins/{id}",
		guard(models.ModuleAdminManagement, models.ActionView, h.GetAdminDetails)).Methods(http.MethodGet)
	protected.Handle("/admins/{id}",
		guard(models.ModuleAdminManagement, models.ActionEdit, h.UpdateAdmin)).Methods(http.MethodPut)
	protected.Handle("/admins/{id}",
		guard(models.ModuleAdminManagement, models.ActionDelete, h.DeleteAdmin)).Methods(http.MethodDelete)
	protected.Handle("/admins/{id}/2fa/enable",
		guard(models.ModuleAdminManagement, models.ActionEdit, h.Enable2FA)).Methods(http.MethodPost)
	protected.Handle("/admins/{id}/2fa/verify",
		guard(models.ModuleAdminManagement, models.ActionEdit, h.Verify2FA)).Methods(http.MethodPost)

	// Support ticketing
	protected.Handle("/tickets",
		guard(models.ModuleSupportTicketing, models.ActionView, h.GetTickets)).Methods(http.MethodGet)
	protected.Handle("/tickets",
		guard(models.ModuleSupportTicketing, models.ActionCreate, h.CreateTicket)).Methods(http.MethodPost)
	protected.Handle("/tickets/{id}",
		guard(models.ModuleSupportTicketing, models.ActionView, h.GetTicketDetails)).Methods(http.MethodGet)
	protected.Handle("/tickets/{id}",
		guard(models.ModuleSupportTicketing, models.ActionEdit, h.UpdateTicket)).Methods(http.MethodPut)
	protected.Handle("/tickets/{id}/assign",
		guard(models.ModuleSupportTicketing, models.ActionAssignTickets, h.AssignTicket)).Methods(http.MethodPost)
	protected.Handle("/tickets/{id}/close",
		guard(models.ModuleSupportTicketing, models.ActionCloseTickets, h.CloseTicket)).Methods(http.MethodPost)

	// Wallet and payments
	protected.Handle("/wallet/transactions",
		guard(models.ModuleWalletPayments, models.ActionView, h.GetTransactions)).Methods(http.MethodGet)
	protected.Handle("/wallet/refund",
		guard(models.ModuleWalletPayments, models.ActionProcessRefund, h.RefundSession)).Methods(http.MethodPost)
	protected.Handle("/wallet/withdrawals/{id}/approve",
		guard(models.ModuleWalletPayments, models.ActionApproveWithdrawal, h.ApproveWithdrawal)).Methods(http.MethodPost)
	protected.Handle("/wallet/adjustment",
		guard(models.ModuleWalletPayments, models.ActionManualAdjustment, h.ManualAdjustment)).Methods(http.MethodPost)

	// Notifications; the channel-specific send flag is checked in the
	// handler once the payload is known
	protected.Handle("/notifications",
		guard(models.ModuleNotifications, models.ActionView, h.GetNotifications)).Methods(http.MethodGet)
	protected.Handle("/notifications",
		guard(models.ModuleNotifications, models.ActionCreate, h.SendNotification)).Methods(http.MethodPost)

	return r
}
