package models

import "time"

// Admin is a back office staff account. RoleName references either a
// predefined role or a custom role by name. Permissions is the legacy
// flat module list kept alongside the granular matrix.
type Admin struct {
	ID               string    `json:"id" bson:"_id"`
	Name             string    `json:"name" bson:"name"`
	Email            string    `json:"email" bson:"email"`
	Password         string    `json:"-" bson:"password"`
	RoleName         string    `json:"role" bson:"role"`
	TwoFactorEnabled bool      `json:"twoFactorEnabled" bson:"twoFactorEnabled"`
	TwoFactorSecret  string    `json:"-" bson:"twoFactorSecret,omitempty"`
	Permissions      []string  `json:"permissions" bson:"permissions"`
	LastLogin        time.Time `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" bson:"updatedAt"`
}

// AdminResponse is the admin record without credential material
type AdminResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	RoleName         string    `json:"role"`
	TwoFactorEnabled bool      `json:"twoFactorEnabled"`
	Permissions      []string  `json:"permissions"`
	LastLogin        time.Time `json:"lastLogin,omitempty"`
}

// Response strips fields that must never leave the server
func (a *Admin) Response() AdminResponse {
	return AdminResponse{
		ID:               a.ID,
		Name:             a.Name,
		Email:            a.Email,
		RoleName:         a.RoleName,
		TwoFactorEnabled: a.TwoFactorEnabled,
		Permissions:      a.Permissions,
		LastLogin:        a.LastLogin,
	}
}

// CreateAdminRequest is used for admin creation requests
type CreateAdminRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	RoleName string `json:"role" validate:"required"`
}

// UpdateAdminRequest is used for admin update requests
type UpdateAdminRequest struct {
	Name     string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
	RoleName string `json:"role,omitempty"`
}

// LoginRequest is used for admin login requests
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned on successful authentication
type LoginResponse struct {
	Token        string        `json:"token"`
	SessionToken string        `json:"sessionToken"`
	ExpiresAt    time.Time     `json:"expiresAt"`
	Admin        AdminResponse `json:"admin"`
}
