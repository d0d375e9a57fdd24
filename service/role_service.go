package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CoderAnshul/AdDash/models"
	"github.com/CoderAnshul/AdDash/repository"
	"github.com/CoderAnshul/AdDash/utils"
)

// RoleService is the store for system and custom roles. System roles
// are immutable: they can be duplicated into custom roles but never
// edited, renamed, or deleted.
type RoleService struct {
	repo   repository.RoleRepository
	logger *zap.Logger
}

// NewRoleService creates a role store over the given repository
func NewRoleService(repo repository.RoleRepository, logger *zap.Logger) *RoleService {
	return &RoleService{repo: repo, logger: logger}
}

// Create adds a custom role. The permission matrix defaults to
// deny-everything when the request omits it.
func (s *RoleService) Create(ctx context.Context, req *models.CreateRoleRequest, createdBy string) (*models.Role, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, utils.ValidationError("role name is required")
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, utils.ConflictError("role name already exists")
	}

	permissions := req.Permissions
	if permissions == nil {
		permissions = models.DefaultPermissions()
	} else {
		permissions = permissions.Clone()
	}

	now := time.Now().UTC()
	role := &models.Role{
		ID:          uuid.New().String(),
		Name:        name,
		Description: req.Description,
		IsSystem:    false,
		Permissions: permissions,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   createdBy,
		AssignedTo:  0,
	}

	if err := s.repo.Create(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("role created", zap.String("role", role.Name), zap.String("id", role.ID))
	return role, nil
}

// Get returns a role by id
func (s *RoleService) Get(ctx context.Context, id string) (*models.Role, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByName returns a role by its unique name
func (s *RoleService) GetByName(ctx context.Context, name string) (*models.Role, error) {
	return s.repo.GetByName(ctx, name)
}

// Update modifies a custom role's name, description, and permissions.
// System roles are refused outright.
func (s *RoleService) Update(ctx context.Context, id string, req *models.UpdateRoleRequest) (*models.Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if role.IsSystem {
		return nil, utils.AuthorizationError("system roles cannot be modified")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, utils.ValidationError("role name is required")
	}

	if existing, err := s.repo.GetByName(ctx, name); err == nil && existing.ID != role.ID {
		return nil, utils.ConflictError("role name already exists")
	}

	role.Name = name
	role.Description = req.Description
	if req.Permissions != nil {
		role.Permissions = req.Permissions.Clone()
	}
	role.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("role updated", zap.String("role", role.Name), zap.String("id", role.ID))
	return role, nil
}

// Duplicate copies any role, system or custom, into a fresh custom
// role named "<source> (Copy)". The matrix is deep-copied so later
// edits to the copy never touch the source.
func (s *RoleService) Duplicate(ctx context.Context, id, createdBy string) (*models.Role, error) {
	source, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	copyRole := &models.Role{
		ID:          uuid.New().String(),
		Name:        source.Name + " (Copy)",
		Description: source.Description,
		IsSystem:    false,
		Permissions: source.Permissions.Clone(),
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   createdBy,
		AssignedTo:  0,
	}

	if err := s.repo.Create(ctx, copyRole); err != nil {
		return nil, err
	}

	s.logger.Info("role duplicated",
		zap.String("source", source.Name),
		zap.String("copy", copyRole.Name))
	return copyRole, nil
}

// Delete removes a custom role. System roles and roles still assigned
// to admins are refused.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if role.IsSystem {
		return utils.ConflictError("system roles cannot be deleted")
	}
	if role.AssignedTo > 0 {
		return utils.ConflictError(fmt.Sprintf("role is assigned to %d admin(s)", role.AssignedTo))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("role deleted", zap.String("role", role.Name), zap.String("id", role.ID))
	return nil
}

// List returns roles in insertion order, optionally filtered by a
// case-insensitive substring match over name and description.
func (s *RoleService) List(ctx context.Context, query string) ([]*models.Role, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if query == "" {
		return roles, nil
	}

	needle := strings.ToLower(query)
	filtered := make([]*models.Role, 0, len(roles))
	for _, role := range roles {
		if strings.Contains(strings.ToLower(role.Name), needle) ||
			strings.Contains(strings.ToLower(role.Description), needle) {
			filtered = append(filtered, role)
		}
	}
	return filtered, nil
}

// MatrixFor resolves the permission matrix for a role name. Unknown
// roles resolve to an empty deny-all matrix, never an error.
func (s *RoleService) MatrixFor(ctx context.Context, roleName string) models.PermissionMatrix {
	role, err := s.repo.GetByName(ctx, roleName)
	if err != nil {
		if models.IsSystemRole(roleName) {
			return models.GranularPermissions(models.SystemRole(roleName))
		}
		return models.PermissionMatrix{}
	}
	return role.Permissions
}

// AdjustAssignment moves a role's assigned-admin count by delta,
// called when admins are created, re-assigned, or deleted.
func (s *RoleService) AdjustAssignment(ctx context.Context, roleName string, delta int) error {
	role, err := s.repo.GetByName(ctx, roleName)
	if err != nil {
		return err
	}
	role.AssignedTo += delta
	if role.AssignedTo < 0 {
		role.AssignedTo = 0
	}
	return s.repo.Update(ctx, role)
}
