package models

// Module identifies one functional area of the admin panel
type Module string

const (
	ModuleDashboard          Module = "dashboard"
	ModuleUserManagement     Module = "userManagement"
	ModuleListenerManagement Module = "listenerManagement"
	ModuleSessionManagement  Module = "sessionManagement"
	ModuleCompliance         Module = "compliance"
	ModuleWalletPayments     Module = "walletPayments"
	ModuleSupportTicketing   Module = "supportTicketing"
	ModuleNotifications      Module = "notifications"
	ModuleReports            Module = "reports"
	ModuleSettings           Module = "settings"
	ModuleAdminManagement    Module = "adminManagement"
	ModuleRolesPermissions   Module = "rolesPermissions"
	ModuleSystemHealth       Module = "systemHealth"
)

// AllModules returns the fixed set of admin panel modules
func AllModules() []Module {
	return []Module{
		ModuleDashboard,
		ModuleUserManagement,
		ModuleListenerManagement,
		ModuleSessionManagement,
		ModuleCompliance,
		ModuleWalletPayments,
		ModuleSupportTicketing,
		ModuleNotifications,
		ModuleReports,
		ModuleSettings,
		ModuleAdminManagement,
		ModuleRolesPermissions,
		ModuleSystemHealth,
	}
}

// IsValidModule reports whether m is one of the known modules
func IsValidModule(m Module) bool {
	_, ok := ModuleActions[m]
	return ok
}

// Action is a capability flag name within a module
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionExport Action = "export"

	// Module-specific actions
	ActionEndSession        Action = "endSession"
	ActionViewMessages      Action = "viewMessages"
	ActionFlagContent       Action = "flagContent"
	ActionProcessRefund     Action = "processRefund"
	ActionApproveWithdrawal Action = "approveWithdrawal"
	ActionManualAdjustment  Action = "manualAdjustment"
	ActionAssignTickets     Action = "assignTickets"
	ActionCloseTickets      Action = "closeTickets"
	ActionSendPush          Action = "sendPush"
	ActionSendEmail         Action = "sendEmail"
	ActionAccessFinancial   Action = "accessFinancial"
	ActionModifyRazorpay    Action = "modifyRazorpay"
	ActionModifyCommission  Action = "modifyCommission"
)

func crud(extra ...Action) []Action {
	actions := []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionExport}
	return append(actions, extra...)
}

// ModuleActions defines the capability flag vocabulary per module.
// Flags outside a module's vocabulary always deny.
var ModuleActions = map[Module][]Action{
	ModuleDashboard:          {ActionView},
	ModuleUserManagement:     crud(),
	ModuleListenerManagement: crud(),
	ModuleSessionManagement:  crud(ActionEndSession),
	ModuleCompliance:         crud(ActionViewMessages, ActionFlagContent),
	ModuleWalletPayments:     crud(ActionProcessRefund, ActionApproveWithdrawal, ActionManualAdjustment),
	ModuleSupportTicketing:   crud(ActionAssignTickets, ActionCloseTickets),
	ModuleNotifications:      crud(ActionSendPush, ActionSendEmail),
	ModuleReports:            {ActionView, ActionExport, ActionAccessFinancial},
	ModuleSettings:           crud(ActionModifyRazorpay, ActionModifyCommission),
	ModuleAdminManagement:    crud(),
	ModuleRolesPermissions:   crud(),
	ModuleSystemHealth:       {ActionView},
}

// ModulePermission is the set of capability flags for a single module.
// The zero value denies everything.
type ModulePermission struct {
	View   bool `json:"view" bson:"view"`
	Create bool `json:"create,omitempty" bson:"create,omitempty"`
	Edit   bool `json:"edit,omitempty" bson:"edit,omitempty"`
	Delete bool `json:"delete,omitempty" bson:"delete,omitempty"`
	Export bool `json:"export,omitempty" bson:"export,omitempty"`

	EndSession        bool `json:"endSession,omitempty" bson:"endSession,omitempty"`
	ViewMessages      bool `json:"viewMessages,omitempty" bson:"viewMessages,omitempty"`
	FlagContent       bool `json:"flagContent,omitempty" bson:"flagContent,omitempty"`
	ProcessRefund     bool `json:"processRefund,omitempty" bson:"processRefund,omitempty"`
	ApproveWithdrawal bool `json:"approveWithdrawal,omitempty" bson:"approveWithdrawal,omitempty"`
	ManualAdjustment  bool `json:"manualAdjustment,omitempty" bson:"manualAdjustment,omitempty"`
	AssignTickets     bool `json:"assignTickets,omitempty" bson:"assignTickets,omitempty"`
	CloseTickets      bool `json:"closeTickets,omitempty" bson:"closeTickets,omitempty"`
	SendPush          bool `json:"sendPush,omitempty" bson:"sendPush,omitempty"`
	SendEmail         bool `json:"sendEmail,omitempty" bson:"sendEmail,omitempty"`
	AccessFinancial   bool `json:"accessFinancial,omitempty" bson:"accessFinancial,omitempty"`
	ModifyRazorpay    bool `json:"modifyRazorpay,omitempty" bson:"modifyRazorpay,omitempty"`
	ModifyCommission  bool `json:"modifyCommission,omitempty" bson:"modifyCommission,omitempty"`
}

// Allows reports whether the given flag is granted. Unknown actions deny.
func (p ModulePermission) Allows(action Action) bool {
	switch action {
	case ActionView:
		return p.View
	case ActionCreate:
		return p.Create
	case ActionEdit:
		return p.Edit
	case ActionDelete:
		return p.Delete
	case ActionExport:
		return p.Export
	case ActionEndSession:
		return p.EndSession
	case ActionViewMessages:
		return p.ViewMessages
	case ActionFlagContent:
		return p.FlagContent
	case ActionProcessRefund:
		return p.ProcessRefund
	case ActionApproveWithdrawal:
		return p.ApproveWithdrawal
	case ActionManualAdjustment:
		return p.ManualAdjustment
	case ActionAssignTickets:
		return p.AssignTickets
	case ActionCloseTickets:
		return p.CloseTickets
	case ActionSendPush:
		return p.SendPush
	case ActionSendEmail:
		return p.SendEmail
	case ActionAccessFinancial:
		return p.AccessFinancial
	case ActionModifyRazorpay:
		return p.ModifyRazorpay
	case ActionModifyCommission:
		return p.ModifyCommission
	}
	return false
}

// set assigns a single flag. Unknown actions are ignored.
func (p *ModulePermission) set(action Action, enabled bool) {
	switch action {
	case ActionView:
		p.View = enabled
	case ActionCreate:
		p.Create = enabled
	case ActionEdit:
		p.Edit = enabled
	case ActionDelete:
		p.Delete = enabled
	case ActionExport:
		p.Export = enabled
	case ActionEndSession:
		p.EndSession = enabled
	case ActionViewMessages:
		p.ViewMessages = enabled
	case ActionFlagContent:
		p.FlagContent = enabled
	case ActionProcessRefund:
		p.ProcessRefund = enabled
	case ActionApproveWithdrawal:
		p.ApproveWithdrawal = enabled
	case ActionManualAdjustment:
		p.ManualAdjustment = enabled
	case ActionAssignTickets:
		p.AssignTickets = enabled
	case ActionCloseTickets:
		p.CloseTickets = enabled
	case ActionSendPush:
		p.SendPush = enabled
	case ActionSendEmail:
		p.SendEmail = enabled
	case ActionAccessFinancial:
		p.AccessFinancial = enabled
	case ActionModifyRazorpay:
		p.ModifyRazorpay = enabled
	case ActionModifyCommission:
		p.ModifyCommission = enabled
	}
}

// PermissionMatrix maps a module to its capability flags.
// A missing module entry denies all of that module's actions.
type PermissionMatrix map[Module]ModulePermission

// Allows is the granular permission check. Fail-closed: an absent module
// entry, an unknown module, or an unknown action all resolve to false
// and never panic.
func (m PermissionMatrix) Allows(module Module, action Action) bool {
	perms, ok := m[module]
	if !ok {
		return false
	}
	return perms.Allows(action)
}

// SetAll sets every flag in the module's vocabulary to enabled in one
// step, backing the role form's per-module Enable All / Disable All.
func (m PermissionMatrix) SetAll(module Module, enabled bool) {
	actions, ok := ModuleActions[module]
	if !ok {
		return
	}
	perms := m[module]
	for _, action := range actions {
		perms.set(action, enabled)
	}
	m[module] = perms
}

// Clone returns a deep copy of the matrix. ModulePermission is a value
// type, so copying the map entries is enough.
func (m PermissionMatrix) Clone() PermissionMatrix {
	clone := make(PermissionMatrix, len(m))
	for module, perms := range m {
		clone[module] = perms
	}
	return clone
}

// FullAccess grants every CRUD flag
func FullAccess() ModulePermission {
	return ModulePermission{View: true, Create: true, Edit: true, Delete: true, Export: true}
}

// ReadOnly grants view only
func ReadOnly() ModulePermission {
	return ModulePermission{View: true}
}

// ViewAndEdit grants view and edit only
func ViewAndEdit() ModulePermission {
	return ModulePermission{View: true, Edit: true}
}

// NoAccess denies everything
func NoAccess() ModulePermission {
	return ModulePermission{}
}

// DefaultPermissions returns a matrix with every module present and every
// flag denied, the starting point for the role create form.
func DefaultPermissions() PermissionMatrix {
	matrix := make(PermissionMatrix, len(ModuleActions))
	for _, module := range AllModules() {
		matrix[module] = ModulePermission{}
	}
	return matrix
}
