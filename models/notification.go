package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification delivery channels
const (
	ChannelPush  = "push"
	ChannelEmail = "email"
)

// Notification is a broadcast or targeted message sent from the panel
type Notification struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	Body      string             `json:"body" bson:"body"`
	Channel   string             `json:"channel" bson:"channel"`
	Audience  string             `json:"audience" bson:"audience"`
	SentBy    string             `json:"sentBy" bson:"sentBy"`
	SentAt    time.Time          `json:"sentAt" bson:"sentAt"`
	Delivered int                `json:"delivered" bson:"delivered"`
}

// CreateNotificationRequest is used to queue a notification
type CreateNotificationRequest struct {
	Title    string `json:"title" validate:"required,min=2,max=100"`
	Body     string `json:"body" validate:"required"`
	Channel  string `json:"channel" validate:"required,oneof=push email"`
	Audience string `json:"audience" validate:"required,oneof=all users listeners"`
}

// NotificationFilter narrows notification listings
type NotificationFilter struct {
	Channel string
	Page    int
	Limit   int
}
