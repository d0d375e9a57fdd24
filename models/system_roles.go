package models

// SystemRole is one of the four predefined admin roles
type SystemRole string

const (
	RoleSuperAdmin SystemRole = "SuperAdmin"
	RoleSupport    SystemRole = "Support"
	RoleFinance    SystemRole = "Finance"
	RoleCompliance SystemRole = "Compliance"
)

// SystemRoles returns the predefined roles in their canonical order
func SystemRoles() []SystemRole {
	return []SystemRole{RoleSuperAdmin, RoleSupport, RoleFinance, RoleCompliance}
}

// IsSystemRole reports whether name matches a predefined role
func IsSystemRole(name string) bool {
	switch SystemRole(name) {
	case RoleSuperAdmin, RoleSupport, RoleFinance, RoleCompliance:
		return true
	}
	return false
}

func with(p ModulePermission, mutate func(*ModulePermission)) ModulePermission {
	mutate(&p)
	return p
}

// GranularRolePermissions holds the full permission matrix for each of
// the four predefined roles. Every matrix covers all 13 modules.
var GranularRolePermissions = map[SystemRole]PermissionMatrix{
	RoleSuperAdmin: {
		ModuleDashboard:          ReadOnly(),
		ModuleUserManagement:     FullAccess(),
		ModuleListenerManagement: FullAccess(),
		ModuleSessionManagement:  with(FullAccess(), func(p *ModulePermission) { p.EndSession = true }),
		ModuleCompliance:         with(FullAccess(), func(p *ModulePermission) { p.ViewMessages = true; p.FlagContent = true }),
		ModuleWalletPayments:     with(FullAccess(), func(p *ModulePermission) { p.ProcessRefund = true; p.ApproveWithdrawal = true; p.ManualAdjustment = true }),
		ModuleSupportTicketing:   with(FullAccess(), func(p *ModulePermission) { p.AssignTickets = true; p.CloseTickets = true }),
		ModuleNotifications:      with(FullAccess(), func(p *ModulePermission) { p.SendPush = true; p.SendEmail = true }),
		ModuleReports:            {View: true, Export: true, AccessFinancial: true},
		ModuleSettings:           with(FullAccess(), func(p *ModulePermission) { p.ModifyRazorpay = true; p.ModifyCommission = true }),
		ModuleAdminManagement:    FullAccess(),
		ModuleRolesPermissions:   FullAccess(),
		ModuleSystemHealth:       ReadOnly(),
	},
	RoleSupport: {
		ModuleDashboard:          ReadOnly(),
		ModuleUserManagement:     ViewAndEdit(),
		ModuleListenerManagement: ReadOnly(),
		ModuleSessionManagement:  ViewAndEdit(),
		ModuleCompliance:         ReadOnly(),
		ModuleWalletPayments:     NoAccess(),
		ModuleSupportTicketing:   with(FullAccess(), func(p *ModulePermission) { p.AssignTickets = true; p.CloseTickets = true }),
		ModuleNotifications:      with(FullAccess(), func(p *ModulePermission) { p.SendPush = true; p.SendEmail = true }),
		ModuleReports:            {},
		ModuleSettings:           NoAccess(),
		ModuleAdminManagement:    NoAccess(),
		ModuleRolesPermissions:   NoAccess(),
		ModuleSystemHealth:       {},
	},
	RoleFinance: {
		ModuleDashboard:          ReadOnly(),
		ModuleUserManagement:     ReadOnly(),
		ModuleListenerManagement: ViewAndEdit(),
		ModuleSessionManagement:  ReadOnly(),
		ModuleCompliance:         NoAccess(),
		ModuleWalletPayments:     with(FullAccess(), func(p *ModulePermission) { p.ProcessRefund = true; p.ApproveWithdrawal = true; p.ManualAdjustment = true }),
		ModuleSupportTicketing:   ReadOnly(),
		ModuleNotifications:      NoAccess(),
		ModuleReports:            {View: true, Export: true, AccessFinancial: true},
		ModuleSettings:           with(ReadOnly(), func(p *ModulePermission) { p.ModifyRazorpay = true; p.ModifyCommission = true }),
		ModuleAdminManagement:    NoAccess(),
		ModuleRolesPermissions:   NoAccess(),
		ModuleSystemHealth:       {},
	},
	RoleCompliance: {
		ModuleDashboard:          ReadOnly(),
		ModuleUserManagement:     ViewAndEdit(),
		ModuleListenerManagement: ViewAndEdit(),
		ModuleSessionManagement:  with(FullAccess(), func(p *ModulePermission) { p.EndSession = true }),
		ModuleCompliance:         with(FullAccess(), func(p *ModulePermission) { p.ViewMessages = true; p.FlagContent = true }),
		ModuleWalletPayments:     ReadOnly(),
		ModuleSupportTicketing:   with(FullAccess(), func(p *ModulePermission) { p.AssignTickets = true; p.CloseTickets = true }),
		ModuleNotifications:      ReadOnly(),
		ModuleReports:            {View: true, Export: true},
		ModuleSettings:           ReadOnly(),
		ModuleAdminManagement:    NoAccess(),
		ModuleRolesPermissions:   NoAccess(),
		ModuleSystemHealth:       {},
	},
}

// RolePermissions is the legacy module-level access map kept for
// backward compatibility with the flat navigation gating.
var RolePermissions = map[SystemRole]map[Module]bool{
	RoleSuperAdmin: {
		ModuleDashboard:          true,
		ModuleUserManagement:     true,
		ModuleListenerManagement: true,
		ModuleSessionManagement:  true,
		ModuleCompliance:         true,
		ModuleWalletPayments:     true,
		ModuleSupportTicketing:   true,
		ModuleNotifications:      true,
		ModuleReports:            true,
		ModuleSettings:           true,
		ModuleAdminManagement:    true,
		ModuleRolesPermissions:   true,
		ModuleSystemHealth:       true,
	},
	RoleSupport: {
		ModuleDashboard:          true,
		ModuleUserManagement:     true,
		ModuleListenerManagement: false,
		ModuleSessionManagement:  true,
		ModuleCompliance:         false,
		ModuleWalletPayments:     false,
		ModuleSupportTicketing:   true,
		ModuleNotifications:      true,
		ModuleReports:            false,
		ModuleSettings:           false,
		ModuleAdminManagement:    false,
		ModuleRolesPermissions:   false,
		ModuleSystemHealth:       false,
	},
	RoleFinance: {
		ModuleDashboard:          true,
		ModuleUserManagement:     false,
		ModuleListenerManagement: true,
		ModuleSessionManagement:  true,
		ModuleCompliance:         false,
		ModuleWalletPayments:     true,
		ModuleSupportTicketing:   false,
		ModuleNotifications:      false,
		ModuleReports:            true,
		ModuleSettings:           false,
		ModuleAdminManagement:    false,
		ModuleRolesPermissions:   false,
		ModuleSystemHealth:       false,
	},
	RoleCompliance: {
		ModuleDashboard:          true,
		ModuleUserManagement:     true,
		ModuleListenerManagement: true,
		ModuleSessionManagement:  true,
		ModuleCompliance:         true,
		ModuleWalletPayments:     false,
		ModuleSupportTicketing:   true,
		ModuleNotifications:      false,
		ModuleReports:            true,
		ModuleSettings:           false,
		ModuleAdminManagement:    false,
		ModuleRolesPermissions:   false,
		ModuleSystemHealth:       false,
	},
}

// HasPermission is the legacy module-level check used for navigation
// gating. Unknown roles or modules deny.
func HasPermission(role SystemRole, module Module) bool {
	modules, ok := RolePermissions[role]
	if !ok {
		return false
	}
	return modules[module]
}

// GranularPermissions returns the matrix for a predefined role, or an
// empty deny-all matrix for an unknown role.
func GranularPermissions(role SystemRole) PermissionMatrix {
	matrix, ok := GranularRolePermissions[role]
	if !ok {
		return PermissionMatrix{}
	}
	return matrix.Clone()
}
