package handlers

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/CoderAnshul/AdDash/cache"
	"github.com/CoderAnshul/AdDash/models"
)

// PromoteListener converts an existing user into a listener and
// creates their marketplace profile
func (h *Handler) PromoteListener(w http.ResponseWriter, r *http.Request) {
	var req models.PromoteListenerRequest
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

	if user.Role == "listener" {
		h.ErrorHdlr.HandleBadRequest(w, "User is already a listener")
		return
	}

	listener := &models.Listener{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		Expertise:  req.Expertise,
		Experience: req.Experience,
		Commission: req.Commission,
		Status:     "active",
		PromotedAt: time.Now(),
	}

	if err := h.Repos.Listeners.Create(r.Context(), listener); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	user.Role = "listener"
	if err := h.Repos.Users.Update(r.Context(), user); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.invalidateUserCaches(r)
	if err := h.Cache.DeleteByPattern(r.Context(), cache.ListenerListPattern); err != nil {
		h.Logger.Warn("failed to invalidate listener caches", zap.Error(err))
	}

	h.Logger.Info("user promoted to listener", zap.String("user", userID.Hex()))
	h.ResponseHdlr.Created(w, "User promoted to listener successfully", listener)
}

// GetListeners lists listener profiles with an optional status filter
func (h *Handler) GetListeners(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	filter := models.ListenerFilter{
		Status: r.URL.Query().Get("status"),
		Page:   page,
		Limit:  limit,
	}

	listeners, total, err := h.Repos.Listeners.List(r.Context(), filter)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Paginated(w, "Listeners fetched successfully", listeners, page, limit, int(total))
}
