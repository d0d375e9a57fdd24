package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/CoderAnshul/AdDash/models"
	"github.com/CoderAnshul/AdDash/repository"
)

var systemRoleDescriptions = map[models.SystemRole]string{
	models.RoleSuperAdmin: "Full access to all features and settings",
	models.RoleSupport:    "Handle user tickets, sessions, and basic user management",
	models.RoleFinance:    "Manage payments, wallets, withdrawals, and financial reports",
	models.RoleCompliance: "Monitor compliance, review content, and manage audits",
}

// SeedRoles inserts the four system roles when the store is empty.
// Existing stores are left untouched.
func SeedRoles(ctx context.Context, repo repository.RoleRepository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	seededAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, name := range models.SystemRoles() {
		role := &models.Role{
			ID:          uuid.New().String(),
			Name:        string(name),
			Description: systemRoleDescriptions[name],
			IsSystem:    true,
			Permissions: models.GranularPermissions(name),
			CreatedAt:   seededAt,
			UpdatedAt:   seededAt,
			CreatedBy:   "system",
			AssignedTo:  0,
		}
		if err := repo.Create(ctx, role); err != nil {
			return err
		}
	}
	return nil
}
