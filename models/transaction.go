package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wallet transaction kinds and states
const (
	TransactionTypeRecharge   = "recharge"
	TransactionTypeDebit      = "debit"
	TransactionTypeRefund     = "refund"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeAdjustment = "adjustment"

	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusApproved  = "approved"
	TransactionStatusRejected  = "rejected"
)

// Transaction is one wallet movement for a user or listener
type Transaction struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Type      string             `json:"type" bson:"type"`
	Amount    float64            `json:"amount" bson:"amount"`
	Status    string             `json:"status" bson:"status"`
	Reference string             `json:"reference,omitempty" bson:"reference,omitempty"`
	Note      string             `json:"note,omitempty" bson:"note,omitempty"`
	CreatedBy string             `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// RefundRequest refunds a paid session back to the user's wallet
type RefundRequest struct {
	SessionID string  `json:"sessionId" validate:"required"`
	Amount    float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Note      string  `json:"note,omitempty"`
}

// AdjustmentRequest applies a manual wallet correction
type AdjustmentRequest struct {
	UserID string  `json:"userId" validate:"required"`
	Amount float64 `json:"amount" validate:"required"`
	Note   string  `json:"note" validate:"required"`
}

// TransactionFilter narrows transaction listings
type TransactionFilter struct {
	Type   string
	Status string
	Page   int
	Limit  int
}
