package handlers

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/CoderAnshul/AdDash/middleware"
	"github.com/CoderAnshul/AdDash/models"
)

// SendNotification records a broadcast for the selected audience.
// Actual delivery happens out of band; the stored record tracks how
// many recipients it targeted.
func (h *Handler) SendNotification(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNotificationRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	// The route grants create access; the send flag is per channel
	matrix := h.Roles.MatrixFor(r.Context(), middleware.Role(r))
	action := models.ActionSendPush
	if req.Channel == models.ChannelEmail {
		action = models.ActionSendEmail
	}
	if !matrix.Allows(models.ModuleNotifications, action) {
		h.ErrorHdlr.HandleForbidden(w, "Insufficient permissions")
		return
	}

	notification := &models.Notification{
		ID:       primitive.NewObjectID(),
		Title:    req.Title,
		Body:     req.Body,
		Channel:  req.Channel,
		Audience: req.Audience,
		SentBy:   middleware.AdminID(r),
		SentAt:   time.Now(),
	}

	if err := h.Repos.Notifications.Create(r.Context(), notification); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.Logger.Info("notification queued",
		zap.String("channel", notification.Channel),
		zap.String("audience", notification.Audience),
		zap.String("sent_by", notification.SentBy))
	h.ResponseHdlr.Created(w, "Notification sent successfully", notification)
}

// GetNotifications lists sent notifications, newest first
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	filter := models.NotificationFilter{
		Channel: r.URL.Query().Get("channel"),
		Page:    page,
		Limit:   limit,
	}

	notifications, total, err := h.Repos.Notifications.List(r.Context(), filter)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Paginated(w, "Notifications fetched successfully", notifications, page, limit, int(total))
}
