package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/CoderAnshul/AdDash/middleware"
	"github.com/CoderAnshul/AdDash/models"
	"github.com/CoderAnshul/AdDash/utils"
)

// roleExists reports whether the named role is defined, either in the
// role store or as a predefined system role
func (h *Handler) roleExists(r *http.Request, name string) bool {
	if _, err := h.Roles.GetByName(r.Context(), name); err == nil {
		return true
	}
	return models.IsSystemRole(name)
}

// GetAdmins lists back office staff accounts
func (h *Handler) GetAdmins(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	admins, total, err := h.Repos.Admins.List(r.Context(), page, limit)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	responses := make([]models.AdminResponse, 0, len(admins))
	for _, admin := range admins {
		responses = append(responses, admin.Response())
	}

	h.ResponseHdlr.Paginated(w, "Admins fetched successfully", responses, page, limit, int(total))
}

// GetAdminDetails returns one staff account by id
func (h *Handler) GetAdminDetails(w http.ResponseWriter, r *http.Request) {
	admin, err := h.Repos.Admins.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Success(w, "Admin fetched successfully", admin.Response())
}

// CreateAdmin creates a staff account and counts the assignment
// against its role
func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdminRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if !h.roleExists(r, req.RoleName) {
		h.ErrorHdlr.HandleBadRequest(w, "Role does not exist")
		return
	}

	if _, err := h.Repos.Admins.GetByEmail(r.Context(), req.Email); err == nil {
		h.ErrorHdlr.HandleConflict(w, "An admin with this email already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Failed to process password")
		return
	}

	now := time.Now()
	admin := &models.Admin{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		RoleName:  req.RoleName,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.Repos.Admins.Create(r.Context(), admin); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if err := h.Roles.AdjustAssignment(r.Context(), admin.RoleName, 1); err != nil {
		h.Logger.Warn("failed to adjust role assignment count", zap.Error(err))
	}

	h.Logger.Info("admin created",
		zap.String("admin", admin.ID),
		zap.String("role", admin.RoleName),
		zap.String("created_by", middleware.AdminID(r)))
	h.ResponseHdlr.Created(w, "Admin created successfully", admin.Response())
}

// UpdateAdmin modifies a staff account. Role changes move the
// assignment count between the old and new role.
func (h *Handler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAdminRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	admin, err := h.Repos.Admins.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	previousRole := admin.RoleName

	if req.RoleName != "" && req.RoleName != admin.RoleName {
		if !h.roleExists(r, req.RoleName) {
			h.ErrorHdlr.HandleBadRequest(w, "Role does not exist")
			return
		}
		admin.RoleName = req.RoleName
	}

	if req.Email != "" && req.Email != admin.Email {
		if existing, err := h.Repos.Admins.GetByEmail(r.Context(), req.Email); err == nil && existing.ID != admin.ID {
			h.ErrorHdlr.HandleConflict(w, "An admin with this email already exists")
			return
		}
		admin.Email = req.Email
	}

	if req.Name != "" {
		admin.Name = req.Name
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.ErrorHdlr.HandleInternalError(w, "Failed to process password")
			return
		}
		admin.Password = string(hashed)
	}
	admin.UpdatedAt = time.Now()

	if err := h.Repos.Admins.Update(r.Context(), admin); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if admin.RoleName != previousRole {
		if err := h.Roles.AdjustAssignment(r.Context(), previousRole, -1); err != nil {
			h.Logger.Warn("failed to adjust role assignment count", zap.Error(err))
		}
		if err := h.Roles.AdjustAssignment(r.Context(), admin.RoleName, 1); err != nil {
			h.Logger.Warn("failed to adjust role assignment count", zap.Error(err))
		}
	}

	h.ResponseHdlr.Success(w, "Admin updated successfully", admin.Response())
}

// DeleteAdmin removes a staff account and releases its role
// assignment
func (h *Handler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if id == middleware.AdminID(r) {
		h.ErrorHdlr.HandleBadRequest(w, "You cannot delete your own account")
		return
	}

	admin, err := h.Repos.Admins.GetByID(r.Context(), id)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if err := h.Repos.Admins.Delete(r.Context(), id); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if err := h.Roles.AdjustAssignment(r.Context(), admin.RoleName, -1); err != nil {
		h.Logger.Warn("failed to adjust role assignment count", zap.Error(err))
	}

	h.ResponseHdlr.Success(w, "Admin deleted successfully", nil)
}

// Enroll2FAResponse carries the provisioning material for an
// authenticator app
type Enroll2FAResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

// Enable2FA provisions a TOTP secret for an admin. The secret stays
// inactive until verified with a valid code.
func (h *Handler) Enable2FA(w http.ResponseWriter, r *http.Request) {
	admin, err := h.Repos.Admins.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if admin.TwoFactorEnabled {
		h.ErrorHdlr.HandleConflict(w, "Two-factor authentication is already enabled")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      h.TOTPIssuer,
		AccountName: admin.Email,
	})
	if err != nil {
		h.ErrorHdlr.HandleInternalError(w, "Failed to generate two-factor secret")
		return
	}

	admin.TwoFactorSecret = key.Secret()
	admin.UpdatedAt = time.Now()
	if err := h.Repos.Admins.Update(r.Context(), admin); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Success(w, "Scan the code with your authenticator app and verify", Enroll2FAResponse{
		Secret: key.Secret(),
		URL:    key.URL(),
	})
}

// Verify2FARequest carries a TOTP code
type Verify2FARequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

// Verify2FA confirms a pending TOTP enrollment with a code from the
// authenticator app
func (h *Handler) Verify2FA(w http.ResponseWriter, r *http.Request) {
	var req Verify2FARequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	admin, err := h.Repos.Admins.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if admin.TwoFactorSecret == "" {
		h.ErrorHdlr.HandleBadRequest(w, "Two-factor authentication has not been set up")
		return
	}

	if !totp.Validate(req.Code, admin.TwoFactorSecret) {
		h.ErrorHdlr.HandleAppError(w, utils.AuthenticationError("Invalid two-factor code"))
		return
	}

	admin.TwoFactorEnabled = true
	admin.UpdatedAt = time.Now()
	if err := h.Repos.Admins.Update(r.Context(), admin); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Success(w, "Two-factor authentication enabled", admin.Response())
}
