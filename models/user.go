package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a marketplace end user. Listeners are users whose role has
// been promoted; their profile lives in the listeners collection.
type User struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id"`
	Username    string               `json:"username" bson:"username" validate:"required,min=2,max=50"`
	Email       string               `json:"email" bson:"email" validate:"required,email"`
	Password    string               `json:"-" bson:"password"`
	CountryCode string               `json:"cCode,omitempty" bson:"cCode,omitempty"`
	PhoneNumber string               `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	Role        string               `json:"role" bson:"role"`
	Status      string               `json:"status" bson:"status"`
	Wallet      float64              `json:"wallet" bson:"wallet"`
	Sessions    []primitive.ObjectID `json:"sessions" bson:"sessions"`
	Registered  time.Time            `json:"registered" bson:"registered"`
	LastActive  time.Time            `json:"lastActive" bson:"lastActive"`
}

// UserResponse is the flattened shape the dashboard tables consume
type UserResponse struct {
	ID         primitive.ObjectID `json:"_id"`
	UserID     string             `json:"userId"`
	Alias      string             `json:"alias"`
	Contact    ContactInfo        `json:"contact"`
	Role       string             `json:"role"`
	Status     string             `json:"status"`
	Wallet     float64            `json:"wallet"`
	Sessions   int                `json:"sessions"`
	Registered time.Time          `json:"registered"`
	LastActive time.Time          `json:"lastActive"`
}

// ContactInfo groups the user's reachable addresses
type ContactInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Response builds the safe dashboard shape from a stored user
func (u *User) Response() UserResponse {
	phone := u.PhoneNumber
	if u.CountryCode != "" {
		phone = u.CountryCode + " " + u.PhoneNumber
	}
	return UserResponse{
		ID:         u.ID,
		UserID:     u.Username,
		Alias:      u.Username,
		Contact:    ContactInfo{Email: u.Email, Phone: phone},
		Role:       u.Role,
		Status:     u.Status,
		Wallet:     u.Wallet,
		Sessions:   len(u.Sessions),
		Registered: u.Registered,
		LastActive: u.LastActive,
	}
}

// RegisterRequest is used for account creation
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	CountryCode string `json:"cCode,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// UpdateUserRequest is used for user update requests
type UpdateUserRequest struct {
	Username    string `json:"username,omitempty" validate:"omitempty,min=2,max=50"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Password    string `json:"password,omitempty" validate:"omitempty,min=6"`
	CountryCode string `json:"cCode,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=active suspended banned"`
}
