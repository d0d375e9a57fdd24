package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/CoderAnshul/AdDash/cache"
	"github.com/CoderAnshul/AdDash/models"
)

// pageParams reads page/limit query parameters with defaults
func pageParams(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return page, limit
}

// GetUsers lists users with pagination. The default first page is
// served from cache when available.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	cacheKey := fmt.Sprintf("users:page:%d:limit:%d", page, limit)
	var cached struct {
		Users []models.UserResponse `json:"users"`
		Total int64                 `json:"total"`
	}
	if err := h.Cache.Get(r.Context(), cacheKey, &cached); err == nil {
		h.ResponseHdlr.Paginated(w, "Users fetched successfully", cached.Users, page, limit, int(cached.Total))
		return
	}

	users, total, err := h.Repos.Users.List(r.Context(), page, limit)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	responses := make([]models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, user.Response())
	}

	cached.Users = responses
	cached.Total = total
	if err := h.Cache.Set(r.Context(), cacheKey, cached, 5*time.Minute); err != nil {
		h.Logger.Warn("failed to cache user list", zap.Error(err))
	}

	h.ResponseHdlr.Paginated(w, "Users fetched successfully", responses, page, limit, int(total))
}

// GetUserDetails returns one user by id
func (h *Handler) GetUserDetails(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid user ID")
		return
	}

	cacheKey := fmt.Sprintf(cache.UserDetailPattern, objID.Hex())
	var cached models.UserResponse
	if err := h.Cache.Get(r.Context(), cacheKey, &cached); err == nil {
		h.ResponseHdlr.Success(w, "User fetched successfully", cached)
		return
	}

	user, err := h.Repos.Users.GetByID(r.Context(), objID)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	response := user.Response()
	if err := h.Cache.Set(r.Context(), cacheKey, response, 5*time.Minute); err != nil {
		h.Logger.Warn("failed to cache user", zap.Error(err))
	}

	h.ResponseHdlr.Success(w, "User fetched successfully", response)
}

// UpdateUser modifies a user, enforcing unique email and username
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid user ID")
		return
	}

	var req models.UpdateUserRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.Repos.Users.GetByID(r.Context(), objID)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if req.Email != "" || req.Username != "" {
		existing, err := h.Repos.Users.GetByEmailOrUsername(r.Context(), req.Email, req.Username)
		if err == nil && existing.ID != objID {
			if existing.Email == req.Email {
				h.ErrorHdlr.HandleConflict(w, "Another user with this email already exists")
			} else {
				h.ErrorHdlr.HandleConflict(w, "Another user with this username already exists")
			}
			return
		}
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.ErrorHdlr.HandleInternalError(w, "Failed to process password")
			return
		}
		user.Password = string(hashed)
	}
	if req.CountryCode != "" {
		user.CountryCode = req.CountryCode
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Status != "" {
		user.Status = req.Status
	}

	if err := h.Repos.Users.Update(r.Context(), user); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.invalidateUserCaches(r)
	if err := h.Cache.Delete(r.Context(), fmt.Sprintf(cache.UserDetailPattern, objID.Hex())); err != nil {
		h.Logger.Warn("failed to invalidate user cache", zap.Error(err))
	}

	h.ResponseHdlr.Success(w, "User updated successfully", user.Response())
}

// DeleteUser removes a user and cascades its session references:
// sessions involving the user are detached from the counterpart
// participants and then deleted. The steps are independent writes
// with no rollback on partial failure.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid user ID")
		return
	}

	sessions, err := h.Repos.Sessions.FindByParticipant(r.Context(), objID)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if len(sessions) > 0 {
		sessionIDs := make([]primitive.ObjectID, 0, len(sessions))
		counterparts := make(map[primitive.ObjectID]bool)
		for _, session := range sessions {
			sessionIDs = append(sessionIDs, session.ID)
			other := session.User
			if other == objID {
				other = session.Listener
			}
			counterparts[other] = true
		}

		otherIDs := make([]primitive.ObjectID, 0, len(counterparts))
		for id := range counterparts {
			otherIDs = append(otherIDs, id)
		}

		if err := h.Repos.Users.DetachSessions(r.Context(), otherIDs, sessionIDs); err != nil {
			h.ErrorHdlr.HandleAppError(w, err)
			return
		}
		if err := h.Repos.Sessions.DeleteMany(r.Context(), sessionIDs); err != nil {
			h.ErrorHdlr.HandleAppError(w, err)
			return
		}
	}

	if err := h.Repos.Users.Delete(r.Context(), objID); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.invalidateUserCaches(r)
	if err := h.Cache.Delete(r.Context(), fmt.Sprintf(cache.UserDetailPattern, objID.Hex())); err != nil {
		h.Logger.Warn("failed to invalidate user cache", zap.Error(err))
	}

	h.Logger.Info("user deleted",
		zap.String("user", objID.Hex()),
		zap.Int("cascaded_sessions", len(sessions)))
	h.ResponseHdlr.Success(w, "User deleted successfully", nil)
}
