package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CoderAnshul/AdDash/models"
	"github.com/CoderAnshul/AdDash/repository"
	"github.com/CoderAnshul/AdDash/utils"
)

func newTestRoleService(t *testing.T) *RoleService {
	t.Helper()
	repos := repository.NewMemoryRepositories()
	require.NoError(t, SeedRoles(context.Background(), repos.Roles))
	return NewRoleService(repos.Roles, zap.NewNop())
}

func TestSeedRoles(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	ctx := context.Background()
	require.NoError(t, SeedRoles(ctx, repos.Roles))

	roles, err := repos.Roles.List(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 4)

	// canonical order, all system, zero assignments
	expected := []string{"SuperAdmin", "Support", "Finance", "Compliance"}
	for i, role := range roles {
		assert.Equal(t, expected[i], role.Name)
		assert.True(t, role.IsSystem)
		assert.Zero(t, role.AssignedTo)
	}

	t.Run("seeding twice is a no-op", func(t *testing.T) {
		require.NoError(t, SeedRoles(ctx, repos.Roles))
		roles, err := repos.Roles.List(ctx)
		require.NoError(t, err)
		assert.Len(t, roles, 4)
	})
}

func TestRoleServiceCreate(t *testing.T) {
	svc := newTestRoleService(t)
	ctx := context.Background()

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, &models.CreateRoleRequest{Name: "   "}, "admin-1")
		require.Error(t, err)
		assert.Equal(t, utils.KindValidation, utils.KindOf(err))
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, &models.CreateRoleRequest{Name: "Support"}, "admin-1")
		require.Error(t, err)
		assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	})

	t.Run("nil permissions default to deny-all over every module", func(t *testing.T) {
		role, err := svc.Create(ctx, &models.CreateRoleRequest{Name: "Auditor"}, "admin-1")
		require.NoError(t, err)
		assert.False(t, role.IsSystem)
		assert.Len(t, role.Permissions, len(models.AllModules()))
		for _, module := range models.AllModules() {
			assert.False(t, role.Permissions.Allows(module, models.ActionView))
		}
	})

	t.Run("request matrix is deep-copied", func(t *testing.T) {
		matrix := models.DefaultPermissions()
		matrix.SetAll(models.ModuleDashboard, true)

		role, err := svc.Create(ctx, &models.CreateRoleRequest{Name: "Viewer", Permissions: matrix}, "admin-1")
		require.NoError(t, err)

		matrix.SetAll(models.ModuleUserManagement, true)
		assert.False(t, role.Permissions.Allows(models.ModuleUserManagement, models.ActionView))
	})
}

func TestRoleServiceUpdate(t *testing.T) {
	svc := newTestRoleService(t)
	ctx := context.Background()

	t.Run("system role refuses edits", func(t *testing.T) {
		support, err := svc.GetByName(ctx, "Support")
		require.NoError(t, err)

		_, err = svc.Update(ctx, support.ID, &models.UpdateRoleRequest{Name: "Support Plus"})
		require.Error(t, err)
		assert.Equal(t, utils.KindAuthorization, utils.KindOf(err))
	})

	t.Run("rename collision rejected", func(t *testing.T) {
		a, err := svc.Create(ctx, &models.CreateRoleRequest{Name: "Role A"}, "admin-1")
		require.NoError(t, err)
		_, err = svc.Create(ctx, &models.CreateRoleRequest{Name: "Role B"}, "admin-1")
		require.NoError(t, err)

		_, err = svc.Update(ctx, a.ID, &models.UpdateRoleRequest{Name: "Role B"})
		require.Error(t, err)
		assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	})

	t.Run("keeping own name is not a collision", func(t *testing.T) {
		c, err := svc.Create(ctx, &models.CreateRoleRequest{Name: "Role C"}, "admin-1")
		require.NoError(t, err)

		updated, err := svc.Update(ctx, c.ID, &models.UpdateRoleRequest{
			Name:        "Role C",
			Description: "updated description",
		})
		require.NoError(t, err)
		assert.Equal(t, "updated description", updated.Description)
	})

	t.Run("missing role is not found", func(t *testing.T) {
		_, err := svc.Update(ctx, "no-such-id", &models.UpdateRoleRequest{Name: "X"})
		require.Error(t, err)
		assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	})
}

func TestRoleServiceDuplicate(t *testing.T) {
	svc := newTestRoleService(t)
	ctx := context.Background()

	finance, err := svc.GetByName(ctx, "Finance")
	require.NoError(t, err)

	duplicate, err := svc.Duplicate(ctx, finance.ID, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, "Finance (Copy)", duplicate.Name)
	assert.False(t, duplicate.IsSystem, "a copy of a system role must be editable")
	assert.Zero(t, duplicate.AssignedTo)
	assert.True(t, duplicate.Permissions.Allows(models.ModuleWalletPayments, models.ActionProcessRefund))

	t.Run("editing the copy leaves the source untouched", func(t *testing.T) {
		_, err := svc.Update(ctx, duplicate.ID, &models.UpdateRoleRequest{
			Name:        "Finance (Copy)",
			Permissions: models.DefaultPermissions(),
		})
		require.NoError(t, err)

		source, err := svc.GetByName(ctx, "Finance")
		require.NoError(t, err)
		assert.True(t, source.Permissions.Allows(models.ModuleWalletPayments, models.ActionProcessRefund))
	})
}

func TestRoleServiceDelete(t *testing.T) {
	svc := newTestRoleService(t)
	ctx := context.Background()

	t.Run("system role refuses deletion", func(t *testing.T) {
		superAdmin, err := svc.GetByName(ctx, "SuperAdmin")
		require.NoError(t, err)

		err = svc.Delete(ctx, superAdmin.ID)
		require.Error(t, err)
		assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	})

	t.Run("assigned role refuses deletion", func(t *testing.T) {
		role, err := svc.Create(ctx, &models.CreateRoleRequest{Name: "Shift Lead"}, "admin-1")
		require.NoError(t, err)
		require.NoError(t, svc.AdjustAssignment(ctx, "Shift Lead", 1))

		err = svc.Delete(ctx, role.ID)
		require.Error(t, err)
		assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	})

	t.Run("unassigned custom role deletes", func(t *testing.T) {
		role, err := svc.Create(ctx, &models.CreateRoleRequest{Name: "Temp"}, "admin-1")
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, role.ID))

		_, err = svc.Get(ctx, role.ID)
		require.Error(t, err)
		assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	})
}

func TestRoleServiceList(t *testing.T) {
	svc := newTestRoleService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateRoleRequest{
		Name:        "Content Moderator",
		Description: "Moderate user generated content",
	}, "admin-1")
	require.NoError(t, err)

	t.Run("empty query returns insertion order", func(t *testing.T) {
		roles, err := svc.List(ctx, "")
		require.NoError(t, err)
		require.Len(t, roles, 5)
		assert.Equal(t, "SuperAdmin", roles[0].Name)
		assert.Equal(t, "Content Moderator", roles[4].Name)
	})

	t.Run("search is case-insensitive over name", func(t *testing.T) {
		roles, err := svc.List(ctx, "moderator")
		require.NoError(t, err)
		require.Len(t, roles, 1)
		assert.Equal(t, "Content Moderator", roles[0].Name)
	})

	t.Run("search matches descriptions too", func(t *testing.T) {
		roles, err := svc.List(ctx, "tickets")
		require.NoError(t, err)
		require.Len(t, roles, 1)
		assert.Equal(t, "Support", roles[0].Name)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		roles, err := svc.List(ctx, "warehouse")
		require.NoError(t, err)
		assert.Empty(t, roles)
	})
}

func TestMatrixFor(t *testing.T) {
	svc := newTestRoleService(t)
	ctx := context.Background()

	t.Run("custom role resolves from the store", func(t *testing.T) {
		matrix := models.DefaultPermissions()
		matrix.SetAll(models.ModuleSupportTicketing, true)
		_, err := svc.Create(ctx, &models.CreateRoleRequest{Name: "Helpdesk", Permissions: matrix}, "admin-1")
		require.NoError(t, err)

		resolved := svc.MatrixFor(ctx, "Helpdesk")
		assert.True(t, resolved.Allows(models.ModuleSupportTicketing, models.ActionCloseTickets))
		assert.False(t, resolved.Allows(models.ModuleWalletPayments, models.ActionView))
	})

	t.Run("seeded system role resolves from the store", func(t *testing.T) {
		resolved := svc.MatrixFor(ctx, "Finance")
		assert.True(t, resolved.Allows(models.ModuleWalletPayments, models.ActionApproveWithdrawal))
	})

	t.Run("unknown role denies everything", func(t *testing.T) {
		resolved := svc.MatrixFor(ctx, "Ghost")
		for _, module := range models.AllModules() {
			assert.False(t, resolved.Allows(module, models.ActionView))
		}
	})
}

func TestAdjustAssignment(t *testing.T) {
	svc := newTestRoleService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.CreateRoleRequest{Name: "Ops"}, "admin-1")
	require.NoError(t, err)

	require.NoError(t, svc.AdjustAssignment(ctx, "Ops", 1))
	require.NoError(t, svc.AdjustAssignment(ctx, "Ops", 1))

	role, err := svc.GetByName(ctx, "Ops")
	require.NoError(t, err)
	assert.Equal(t, 2, role.AssignedTo)

	t.Run("count clamps at zero", func(t *testing.T) {
		require.NoError(t, svc.AdjustAssignment(ctx, "Ops", -5))
		role, err := svc.GetByName(ctx, "Ops")
		require.NoError(t, err)
		assert.Zero(t, role.AssignedTo)
	})

	t.Run("unknown role errors", func(t *testing.T) {
		err := svc.AdjustAssignment(ctx, "Ghost", 1)
		require.Error(t, err)
	})
}
