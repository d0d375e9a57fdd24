package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/CoderAnshul/AdDash/middleware"
	"github.com/CoderAnshul/AdDash/models"
)

// GetTransactions lists wallet movements with type and status filters
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	filter := models.TransactionFilter{
		Type:   r.URL.Query().Get("type"),
		Status: r.URL.Query().Get("status"),
		Page:   page,
		Limit:  limit,
	}

	transactions, total, err := h.Repos.Transactions.List(r.Context(), filter)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Paginated(w, "Transactions fetched successfully", transactions, page, limit, int(total))
}

// RefundSession returns a paid session's amount to the user's wallet,
// records the refund and marks the session refunded. The writes are
// sequential with no rollback on partial failure.
func (h *Handler) RefundSession(w http.ResponseWriter, r *http.Request) {
	var req models.RefundRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.Repos.Sessions.GetBySessionID(r.Context(), req.SessionID)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if session.PaymentStatus != models.PaymentStatusPaid {
		h.ErrorHdlr.HandleBadRequest(w, "Only paid sessions can be refunded")
		return
	}

	amount := req.Amount
	if amount == 0 {
		amount = session.Amount
	}
	if amount > session.Amount {
		h.ErrorHdlr.HandleBadRequest(w, "Refund amount cannot exceed the session amount")
		return
	}

	tx := &models.Transaction{
		ID:        primitive.NewObjectID(),
		UserID:    session.User,
		Type:      models.TransactionTypeRefund,
		Amount:    amount,
		Status:    models.TransactionStatusCompleted,
		Reference: session.SessionID,
		Note:      req.Note,
		CreatedBy: middleware.AdminID(r),
		CreatedAt: time.Now(),
	}
	if err := h.Repos.Transactions.Create(r.Context(), tx); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if err := h.Repos.Users.AdjustWallet(r.Context(), session.User, amount); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	session.PaymentStatus = models.PaymentStatusRefunded
	if err := h.Repos.Sessions.Update(r.Context(), session); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.invalidateSessionCaches(r)
	h.Logger.Info("session refunded",
		zap.String("session", session.SessionID),
		zap.Float64("amount", amount),
		zap.String("refunded_by", middleware.AdminID(r)))
	h.ResponseHdlr.Success(w, "Session refunded successfully", tx)
}

// ApproveWithdrawal approves a pending withdrawal and deducts the
// amount from the wallet
func (h *Handler) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid transaction ID")
		return
	}

	tx, err := h.Repos.Transactions.GetByID(r.Context(), objID)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if tx.Type != models.TransactionTypeWithdrawal {
		h.ErrorHdlr.HandleBadRequest(w, "Transaction is not a withdrawal")
		return
	}
	if tx.Status != models.TransactionStatusPending {
		h.ErrorHdlr.HandleConflict(w, "Withdrawal has already been processed")
		return
	}

	user, err := h.Repos.Users.GetByID(r.Context(), tx.UserID)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}
	if user.Wallet < tx.Amount {
		h.ErrorHdlr.HandleBadRequest(w, "Insufficient wallet balance for this withdrawal")
		return
	}

	if err := h.Repos.Users.AdjustWallet(r.Context(), tx.UserID, -tx.Amount); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	tx.Status = models.TransactionStatusApproved
	if err := h.Repos.Transactions.Update(r.Context(), tx); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.Logger.Info("withdrawal approved",
		zap.String("transaction", tx.ID.Hex()),
		zap.Float64("amount", tx.Amount),
		zap.String("approved_by", middleware.AdminID(r)))
	h.ResponseHdlr.Success(w, "Withdrawal approved successfully", tx)
}

// ManualAdjustment applies a signed wallet correction and records it
// as an adjustment transaction
func (h *Handler) ManualAdjustment(w http.ResponseWriter, r *http.Request) {
	var req models.AdjustmentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid user ID")
		return
	}

	user, err := h.Repos.Users.GetByID(r.Context(), userID)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}
	if user.Wallet+req.Amount < 0 {
		h.ErrorHdlr.HandleBadRequest(w, "Adjustment would make the wallet balance negative")
		return
	}

	tx := &models.Transaction{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Type:      models.TransactionTypeAdjustment,
		Amount:    req.Amount,
		Status:    models.TransactionStatusCompleted,
		Note:      req.Note,
		CreatedBy: middleware.AdminID(r),
		CreatedAt: time.Now(),
	}
	if err := h.Repos.Transactions.Create(r.Context(), tx); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if err := h.Repos.Users.AdjustWallet(r.Context(), userID, req.Amount); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.Logger.Info("wallet adjusted",
		zap.String("user", userID.Hex()),
		zap.Float64("amount", req.Amount),
		zap.String("adjusted_by", middleware.AdminID(r)))
	h.ResponseHdlr.Success(w, "Wallet adjusted successfully", tx)
}
