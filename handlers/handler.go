package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/CoderAnshul/AdDash/auth"
	"github.com/CoderAnshul/AdDash/cache"
	"github.com/CoderAnshul/AdDash/repository"
	"github.com/CoderAnshul/AdDash/service"
	"github.com/CoderAnshul/AdDash/utils"
)

// Handler carries the dependencies shared by every endpoint
type Handler struct {
	Repos        *repository.Repositories
	Roles        *service.RoleService
	Sessions     *auth.Manager
	Cache        *cache.Cache
	Logger       *zap.Logger
	Validate     *validator.Validate
	ResponseHdlr *ResponseHandler
	ErrorHdlr    *utils.ErrorHandler
	TOTPIssuer   string
}

// NewHandler wires a handler with its collaborators
func NewHandler(repos *repository.Repositories, roles *service.RoleService, sessions *auth.Manager, store *cache.Cache, logger *zap.Logger, totpIssuer string) *Handler {
	return &Handler{
		Repos:        repos,
		Roles:        roles,
		Sessions:     sessions,
		Cache:        store,
		Logger:       logger,
		Validate:     validator.New(),
		ResponseHdlr: NewResponseHandler(),
		ErrorHdlr:    utils.NewErrorHandler(),
		TOTPIssuer:   totpIssuer,
	}
}

// decodeAndValidate parses the JSON body into dst and runs struct
// validation, writing the error response itself on failure.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid request body")
		return false
	}

	if err := h.Validate.Struct(dst); err != nil {
		h.ErrorHdlr.HandleValidationError(w, utils.ValidationDetails(err))
		return false
	}

	return true
}
