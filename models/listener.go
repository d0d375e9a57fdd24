package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listener is the marketplace profile of a user promoted to listener
type Listener struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId"`
	Expertise  []string           `json:"expertise" bson:"expertise"`
	Experience string             `json:"experience" bson:"experience"`
	Commission float64            `json:"commission" bson:"commission"`
	Status     string             `json:"status" bson:"status"`
	Rating     float64            `json:"rating" bson:"rating"`
	Earnings   float64            `json:"earnings" bson:"earnings"`
	PromotedAt time.Time          `json:"promotedAt" bson:"promotedAt"`
}

// PromoteListenerRequest is used to promote an existing user to listener
type PromoteListenerRequest struct {
	UserID     string   `json:"userId" validate:"required"`
	Expertise  []string `json:"expertise" validate:"required,min=1"`
	Experience string   `json:"experience,omitempty"`
	Commission float64  `json:"commission,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// ListenerFilter narrows listener listings
type ListenerFilter struct {
	Status string
	Page   int
	Limit  int
}
