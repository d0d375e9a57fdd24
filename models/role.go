package models

import "time"

// Role is a named permission matrix. The four predefined roles are
// marked as system roles and are immutable; everything else is a custom
// role created by an admin.
type Role struct {
	ID          string           `json:"id" bson:"_id"`
	Name        string           `json:"name" bson:"name"`
	Description string           `json:"description" bson:"description"`
	IsSystem    bool             `json:"isSystem" bson:"isSystem"`
	Permissions PermissionMatrix `json:"permissions" bson:"permissions"`
	CreatedAt   time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt" bson:"updatedAt"`
	CreatedBy   string           `json:"createdBy" bson:"createdBy"`
	AssignedTo  int              `json:"assignedTo" bson:"assignedTo"`
}

// CreateRoleRequest is used for role creation requests
type CreateRoleRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description,omitempty"`
	Permissions PermissionMatrix `json:"permissions,omitempty"`
}

// UpdateRoleRequest is used for role update requests
type UpdateRoleRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description,omitempty"`
	Permissions PermissionMatrix `json:"permissions,omitempty"`
}
