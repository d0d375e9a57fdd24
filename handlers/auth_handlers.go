package handlers

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/CoderAnshul/AdDash/cache"
	"github.com/CoderAnshul/AdDash/middleware"
	"github.com/CoderAnshul/AdDash/models"
)

// Register creates a marketplace user account
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Failed to process password")
		return
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:          primitive.NewObjectID(),
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashed),
		CountryCode: req.CountryCode,
		PhoneNumber: req.PhoneNumber,
		Role:        "user",
		Status:      "active",
		Sessions:    []primitive.ObjectID{},
		Registered:  now,
		LastActive:  now,
	}

	if err := h.Repos.Users.Create(r.Context(), user); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.invalidateUserCaches(r)
	h.ResponseHdlr.Created(w, "User registered successfully", user.Response())
}

// Login authenticates an admin and opens a dashboard session
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.Sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Success(w, "Login successful", result)
}

// Logout tears down the caller's dashboard session
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(middleware.SessionTokenHeader)
	if token == "" {
		h.ErrorHdlr.HandleBadRequest(w, "Session token is required")
		return
	}

	h.Sessions.Logout(r.Context(), token)
	h.ResponseHdlr.Success(w, "Logged out successfully", nil)
}

func (h *Handler) invalidateUserCaches(r *http.Request) {
	if err := h.Cache.DeleteByPattern(r.Context(), cache.UserListPattern); err != nil {
		h.Logger.Warn("failed to invalidate user caches", zap.Error(err))
	}
}
