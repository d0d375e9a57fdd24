package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionMatrixFailClosed(t *testing.T) {
	matrix := PermissionMatrix{}

	t.Run("absent module denies", func(t *testing.T) {
		assert.False(t, matrix.Allows(ModuleUserManagement, ActionView))
		assert.False(t, matrix.Allows(ModuleWalletPayments, ActionProcessRefund))
	})

	t.Run("unknown module denies", func(t *testing.T) {
		assert.False(t, matrix.Allows(Module("billing"), ActionView))
	})

	t.Run("unknown action denies even with full access", func(t *testing.T) {
		full := PermissionMatrix{ModuleUserManagement: FullAccess()}
		assert.False(t, full.Allows(ModuleUserManagement, Action("transmogrify")))
	})

	t.Run("flags outside the CRUD set stay denied with full access", func(t *testing.T) {
		full := PermissionMatrix{ModuleUserManagement: FullAccess()}
		assert.False(t, full.Allows(ModuleUserManagement, ActionEndSession))
	})
}

func TestModulePermissionAllows(t *testing.T) {
	p := ModulePermission{View: true, Edit: true}

	assert.True(t, p.Allows(ActionView))
	assert.True(t, p.Allows(ActionEdit))
	assert.False(t, p.Allows(ActionCreate))
	assert.False(t, p.Allows(ActionDelete))
	assert.False(t, p.Allows(Action("bogus")))
}

func TestSetAllRespectsVocabulary(t *testing.T) {
	matrix := PermissionMatrix{}
	matrix.SetAll(ModuleNotifications, true)

	p := matrix[ModuleNotifications]
	assert.True(t, p.View)
	assert.True(t, p.Create)
	assert.True(t, p.SendPush)
	assert.True(t, p.SendEmail)
	// flags outside the notifications vocabulary stay unset
	assert.False(t, p.ProcessRefund)
	assert.False(t, p.EndSession)

	matrix.SetAll(ModuleNotifications, false)
	assert.False(t, matrix.Allows(ModuleNotifications, ActionView))
	assert.False(t, matrix.Allows(ModuleNotifications, ActionSendPush))
}

func TestSetAllIgnoresUnknownModule(t *testing.T) {
	matrix := PermissionMatrix{}
	matrix.SetAll(Module("billing"), true)
	_, ok := matrix[Module("billing")]
	assert.False(t, ok)
}

func TestCloneIndependence(t *testing.T) {
	original := DefaultPermissions()
	clone := original.Clone()

	clone.SetAll(ModuleUserManagement, true)

	assert.True(t, clone.Allows(ModuleUserManagement, ActionDelete))
	assert.False(t, original.Allows(ModuleUserManagement, ActionDelete),
		"editing a clone must not leak into the original")
}

func TestDefaultPermissionsDenyAll(t *testing.T) {
	defaults := DefaultPermissions()

	for _, module := range AllModules() {
		_, present := defaults[module]
		assert.True(t, present, "module %s missing from defaults", module)
		assert.False(t, defaults.Allows(module, ActionView), "module %s", module)
		assert.False(t, defaults.Allows(module, ActionDelete), "module %s", module)
	}
}

func TestSystemRoleMatrices(t *testing.T) {
	t.Run("every system role can view the dashboard", func(t *testing.T) {
		for _, role := range SystemRoles() {
			matrix := GranularPermissions(role)
			assert.True(t, matrix.Allows(ModuleDashboard, ActionView), "role %s", role)
		}
	})

	t.Run("super admin has every vocabulary flag", func(t *testing.T) {
		matrix := GranularPermissions(RoleSuperAdmin)
		for module, actions := range ModuleActions {
			for _, action := range actions {
				assert.True(t, matrix.Allows(module, action),
					"module %s action %s", module, action)
			}
		}
	})

	t.Run("support cannot touch wallet payments", func(t *testing.T) {
		matrix := GranularPermissions(RoleSupport)
		assert.False(t, matrix.Allows(ModuleWalletPayments, ActionView))
		assert.False(t, matrix.Allows(ModuleWalletPayments, ActionProcessRefund))
	})

	t.Run("support manages tickets", func(t *testing.T) {
		matrix := GranularPermissions(RoleSupport)
		assert.True(t, matrix.Allows(ModuleSupportTicketing, ActionAssignTickets))
		assert.True(t, matrix.Allows(ModuleSupportTicketing, ActionCloseTickets))
	})

	t.Run("finance wallet and settings knobs", func(t *testing.T) {
		matrix := GranularPermissions(RoleFinance)
		assert.True(t, matrix.Allows(ModuleWalletPayments, ActionProcessRefund))
		assert.True(t, matrix.Allows(ModuleWalletPayments, ActionApproveWithdrawal))
		assert.True(t, matrix.Allows(ModuleSettings, ActionModifyRazorpay))
		assert.True(t, matrix.Allows(ModuleSettings, ActionModifyCommission))
		assert.False(t, matrix.Allows(ModuleSettings, ActionEdit))
	})

	t.Run("compliance reports exclude financial data", func(t *testing.T) {
		matrix := GranularPermissions(RoleCompliance)
		assert.True(t, matrix.Allows(ModuleReports, ActionView))
		assert.True(t, matrix.Allows(ModuleReports, ActionExport))
		assert.False(t, matrix.Allows(ModuleReports, ActionAccessFinancial))
	})

	t.Run("unknown role yields deny-all matrix", func(t *testing.T) {
		matrix := GranularPermissions(SystemRole("Intern"))
		for _, module := range AllModules() {
			assert.False(t, matrix.Allows(module, ActionView), "module %s", module)
		}
	})
}

func TestLegacyHasPermission(t *testing.T) {
	require.True(t, HasPermission(RoleSuperAdmin, ModuleRolesPermissions))
	require.True(t, HasPermission(RoleSupport, ModuleSupportTicketing))
	require.False(t, HasPermission(RoleSupport, ModuleWalletPayments))
	require.False(t, HasPermission(RoleFinance, ModuleAdminManagement))

	t.Run("unknown role denies", func(t *testing.T) {
		require.False(t, HasPermission(SystemRole("Intern"), ModuleDashboard))
	})

	t.Run("unknown module denies", func(t *testing.T) {
		require.False(t, HasPermission(RoleSuperAdmin, Module("billing")))
	})
}

func TestIsValidModule(t *testing.T) {
	for _, module := range AllModules() {
		assert.True(t, IsValidModule(module))
	}
	assert.False(t, IsValidModule(Module("billing")))
}
