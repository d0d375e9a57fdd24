package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/CoderAnshul/AdDash/cache"
	"github.com/CoderAnshul/AdDash/models"
)

// sessionResponse resolves participant usernames for the dashboard
// table. Deleted participants render as "Unknown".
func (h *Handler) sessionResponse(r *http.Request, session *models.Session) models.SessionResponse {
	userName := "Unknown"
	if user, err := h.Repos.Users.GetByID(r.Context(), session.User); err == nil {
		userName = user.Username
	}
	listenerName := "Unknown"
	if listener, err := h.Repos.Users.GetByID(r.Context(), session.Listener); err == nil {
		listenerName = listener.Username
	}

	return models.SessionResponse{
		ID:        session.ID,
		SessionID: session.SessionID,
		User:      userName,
		Listener:  listenerName,
		Type:      session.Type,
		StartTime: session.StartTime,
		Duration:  fmt.Sprintf("%d min", session.DurationInMinutes),
		Status:    session.Status,
		Payment:   session.PaymentStatus,
		Amount:    session.Amount,
	}
}

// CreateSession records a counseling session and attaches it to both
// participants
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.User)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid user ID")
		return
	}
	listenerID, err := primitive.ObjectIDFromHex(req.Listener)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid listener ID")
		return
	}

	if _, err := h.Repos.Users.GetByID(r.Context(), userID); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}
	if _, err := h.Repos.Users.GetByID(r.Context(), listenerID); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if existing, err := h.Repos.Sessions.GetBySessionID(r.Context(), req.SessionID); err == nil && existing != nil {
		h.ErrorHdlr.HandleConflict(w, "A session with this ID already exists")
		return
	}

	status := req.Status
	if status == "" {
		status = models.SessionStatusScheduled
	}
	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusPending
	}

	session := &models.Session{
		ID:                primitive.NewObjectID(),
		SessionID:         req.SessionID,
		User:              userID,
		Listener:          listenerID,
		Type:              req.Type,
		StartTime:         req.StartTime,
		DurationInMinutes: req.DurationInMinutes,
		Amount:            req.Amount,
		Status:            status,
		PaymentStatus:     paymentStatus,
		CreatedAt:         time.Now(),
	}

	if err := h.Repos.Sessions.Create(r.Context(), session); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if err := h.Repos.Users.AttachSession(r.Context(), userID, session.ID); err != nil {
		h.Logger.Warn("failed to attach session to user", zap.Error(err))
	}
	if err := h.Repos.Users.AttachSession(r.Context(), listenerID, session.ID); err != nil {
		h.Logger.Warn("failed to attach session to listener", zap.Error(err))
	}

	h.invalidateSessionCaches(r)
	h.ResponseHdlr.Created(w, "Session created successfully", session)
}

// GetSessions lists sessions with status, type and payment filters.
// Unfiltered pages with the default sort are served from cache.
func (h *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, limit := pageParams(r)

	order := -1
	if query.Get("order") == "asc" {
		order = 1
	}
	sortBy := query.Get("sortBy")
	if sortBy == "" {
		sortBy = "startTime"
	}

	filter := models.SessionFilter{
		Status:        query.Get("status"),
		Type:          query.Get("type"),
		PaymentStatus: query.Get("paymentStatus"),
		SortBy:        sortBy,
		Order:         order,
		Page:          page,
		Limit:         limit,
	}

	cacheable := filter.Status == "" && filter.Type == "" && filter.PaymentStatus == "" &&
		sortBy == "startTime" && order == -1
	cacheKey := fmt.Sprintf("sessions:page:%d:limit:%d", page, limit)
	var cached struct {
		Sessions []models.SessionResponse `json:"sessions"`
		Total    int64                    `json:"total"`
	}
	if cacheable {
		if err := h.Cache.Get(r.Context(), cacheKey, &cached); err == nil {
			h.ResponseHdlr.Paginated(w, "Sessions fetched successfully", cached.Sessions, page, limit, int(cached.Total))
			return
		}
	}

	sessions, total, err := h.Repos.Sessions.List(r.Context(), filter)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	responses := make([]models.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, h.sessionResponse(r, session))
	}

	if cacheable {
		cached.Sessions = responses
		cached.Total = total
		if err := h.Cache.Set(r.Context(), cacheKey, cached, 5*time.Minute); err != nil {
			h.Logger.Warn("failed to cache session list", zap.Error(err))
		}
	}

	h.ResponseHdlr.Paginated(w, "Sessions fetched successfully", responses, page, limit, int(total))
}

// GetSessionDetails returns one session with resolved usernames
func (h *Handler) GetSessionDetails(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid session ID")
		return
	}

	session, err := h.Repos.Sessions.GetByID(r.Context(), objID)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Success(w, "Session fetched successfully", h.sessionResponse(r, session))
}

// UpdateSession applies partial changes to a session
func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid session ID")
		return
	}

	var req models.UpdateSessionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.Repos.Sessions.GetByID(r.Context(), objID)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if req.Type != "" {
		session.Type = req.Type
	}
	if req.StartTime != nil {
		session.StartTime = *req.StartTime
	}
	if req.Amount != nil {
		session.Amount = *req.Amount
	}
	if req.DurationInMinutes != nil {
		session.DurationInMinutes = *req.DurationInMinutes
	}
	if req.Status != "" {
		session.Status = req.Status
	}
	if req.PaymentStatus != "" {
		session.PaymentStatus = req.PaymentStatus
	}

	if err := h.Repos.Sessions.Update(r.Context(), session); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.invalidateSessionCaches(r)
	h.ResponseHdlr.Success(w, "Session updated successfully", session)
}

// DeleteSession removes a session and detaches it from both
// participants
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid session ID")
		return
	}

	session, err := h.Repos.Sessions.GetByID(r.Context(), objID)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	participants := []primitive.ObjectID{session.User, session.Listener}
	if err := h.Repos.Users.DetachSessions(r.Context(), participants, []primitive.ObjectID{session.ID}); err != nil {
		h.Logger.Warn("failed to detach session from participants", zap.Error(err))
	}

	if err := h.Repos.Sessions.Delete(r.Context(), objID); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.invalidateSessionCaches(r)
	h.ResponseHdlr.Success(w, "Session deleted successfully", nil)
}

func (h *Handler) invalidateSessionCaches(r *http.Request) {
	if err := h.Cache.DeleteByPattern(r.Context(), cache.SessionListPattern); err != nil {
		h.Logger.Warn("failed to invalidate session caches", zap.Error(err))
	}
}
