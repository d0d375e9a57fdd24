package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Counseling session lifecycle and payment states
const (
	SessionStatusScheduled = "scheduled"
	SessionStatusOngoing   = "ongoing"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Session is a counseling session between a user and a listener
type Session struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id"`
	SessionID         string             `json:"sessionId" bson:"sessionId"`
	User              primitive.ObjectID `json:"user" bson:"user"`
	Listener          primitive.ObjectID `json:"listener" bson:"listener"`
	Type              string             `json:"type" bson:"type"`
	StartTime         time.Time          `json:"startTime" bson:"startTime"`
	DurationInMinutes int                `json:"durationInMinutes" bson:"durationInMinutes"`
	Amount            float64            `json:"amount" bson:"amount"`
	Status            string             `json:"status" bson:"status"`
	PaymentStatus     string             `json:"paymentStatus" bson:"paymentStatus"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreateSessionRequest is used for session creation requests
type CreateSessionRequest struct {
	SessionID         string    `json:"sessionId" validate:"required"`
	User              string    `json:"user" validate:"required"`
	Listener          string    `json:"listener" validate:"required"`
	Type              string    `json:"type" validate:"required,oneof=chat call video"`
	StartTime         time.Time `json:"startTime" validate:"required"`
	Amount            float64   `json:"amount" validate:"required,gt=0"`
	DurationInMinutes int       `json:"durationInMinutes,omitempty" validate:"omitempty,gte=0"`
	Status            string    `json:"status,omitempty" validate:"omitempty,oneof=scheduled ongoing completed cancelled"`
	PaymentStatus     string    `json:"paymentStatus,omitempty" validate:"omitempty,oneof=pending paid refunded"`
}

// UpdateSessionRequest is used for session update requests
type UpdateSessionRequest struct {
	Type              string     `json:"type,omitempty" validate:"omitempty,oneof=chat call video"`
	StartTime         *time.Time `json:"startTime,omitempty"`
	Amount            *float64   `json:"amount,omitempty" validate:"omitempty,gt=0"`
	DurationInMinutes *int       `json:"durationInMinutes,omitempty" validate:"omitempty,gte=0"`
	Status            string     `json:"status,omitempty" validate:"omitempty,oneof=scheduled ongoing completed cancelled"`
	PaymentStatus     string     `json:"paymentStatus,omitempty" validate:"omitempty,oneof=pending paid refunded"`
}

// SessionFilter narrows session listings
type SessionFilter struct {
	Status        string
	Type          string
	PaymentStatus string
	SortBy        string
	Order         int
	Page          int
	Limit         int
}

// SessionResponse is the dashboard table shape with resolved usernames
type SessionResponse struct {
	ID        primitive.ObjectID `json:"_id"`
	SessionID string             `json:"sessionId"`
	User      string             `json:"user"`
	Listener  string             `json:"listener"`
	Type      string             `json:"type"`
	StartTime time.Time          `json:"startTime"`
	Duration  string             `json:"duration"`
	Status    string             `json:"status"`
	Payment   string             `json:"payment"`
	Amount    float64            `json:"amount"`
}
