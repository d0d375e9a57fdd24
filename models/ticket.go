package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Support ticket states
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

// Ticket is a support request raised by a user or listener
type Ticket struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Subject    string             `json:"subject" bson:"subject"`
	Body       string             `json:"body" bson:"body"`
	Category   string             `json:"category" bson:"category"`
	Priority   string             `json:"priority" bson:"priority"`
	Status     string             `json:"status" bson:"status"`
	RaisedBy   primitive.ObjectID `json:"raisedBy" bson:"raisedBy"`
	AssignedTo string             `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
	ClosedAt   *time.Time         `json:"closedAt,omitempty" bson:"closedAt,omitempty"`
}

// CreateTicketRequest is used for ticket creation requests
type CreateTicketRequest struct {
	Subject  string `json:"subject" validate:"required,min=3,max=200"`
	Body     string `json:"body" validate:"required"`
	Category string `json:"category" validate:"required"`
	Priority string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	RaisedBy string `json:"raisedBy" validate:"required"`
}

// UpdateTicketRequest is used for ticket update requests
type UpdateTicketRequest struct {
	Subject  string `json:"subject,omitempty" validate:"omitempty,min=3,max=200"`
	Body     string `json:"body,omitempty"`
	Category string `json:"category,omitempty"`
	Priority string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=open in_progress resolved closed"`
}

// AssignTicketRequest assigns a ticket to an admin
type AssignTicketRequest struct {
	AdminID string `json:"adminId" validate:"required"`
}

// TicketFilter narrows ticket listings
type TicketFilter struct {
	Status   string
	Priority string
	Page     int
	Limit    int
}
