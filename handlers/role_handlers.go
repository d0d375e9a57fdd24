package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/CoderAnshul/AdDash/middleware"
	"github.com/CoderAnshul/AdDash/models"
)

// GetRoles lists roles, optionally filtered by a ?q= substring over
// name and description
func (h *Handler) GetRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Roles.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Success(w, "Roles fetched successfully", roles)
}

// GetRoleDetails returns one role by id
func (h *Handler) GetRoleDetails(w http.ResponseWriter, r *http.Request) {
	role, err := h.Roles.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Success(w, "Role fetched successfully", role)
}

// CreateRole creates a custom role. Missing permissions default to a
// full matrix with every flag denied.
func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	role, err := h.Roles.Create(r.Context(), &req, middleware.AdminID(r))
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Created(w, "Role created successfully", role)
}

// UpdateRole modifies a custom role. System roles are immutable.
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRoleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	role, err := h.Roles.Update(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Success(w, "Role updated successfully", role)
}

// DuplicateRole copies any role, including system roles, into a new
// editable custom role
func (h *Handler) DuplicateRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.Roles.Duplicate(r.Context(), mux.Vars(r)["id"], middleware.AdminID(r))
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Created(w, "Role duplicated successfully", role)
}

// DeleteRole removes a custom role with no assigned admins
func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	if err := h.Roles.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Success(w, "Role deleted successfully", nil)
}
