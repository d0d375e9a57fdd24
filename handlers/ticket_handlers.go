package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/CoderAnshul/AdDash/models"
)

// CreateTicket records a support request
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTicketRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	raisedBy, err := primitive.ObjectIDFromHex(req.RaisedBy)
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid user ID")
		return
	}

	if _, err := h.Repos.Users.GetByID(r.Context(), raisedBy); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	now := time.Now()
	ticket := &models.Ticket{
		ID:        primitive.NewObjectID(),
		Subject:   req.Subject,
		Body:      req.Body,
		Category:  req.Category,
		Priority:  priority,
		Status:    models.TicketStatusOpen,
		RaisedBy:  raisedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.Repos.Tickets.Create(r.Context(), ticket); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Created(w, "Ticket created successfully", ticket)
}

// GetTickets lists support tickets with status and priority filters
func (h *Handler) GetTickets(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	filter := models.TicketFilter{
		Status:   r.URL.Query().Get("status"),
		Priority: r.URL.Query().Get("priority"),
		Page:     page,
		Limit:    limit,
	}

	tickets, total, err := h.Repos.Tickets.List(r.Context(), filter)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Paginated(w, "Tickets fetched successfully", tickets, page, limit, int(total))
}

// GetTicketDetails returns one ticket by id
func (h *Handler) GetTicketDetails(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid ticket ID")
		return
	}

	ticket, err := h.Repos.Tickets.GetByID(r.Context(), objID)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Success(w, "Ticket fetched successfully", ticket)
}

// UpdateTicket applies partial changes. Moving to closed or resolved
// stamps the closing time; reopening clears it.
func (h *Handler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid ticket ID")
		return
	}

	var req models.UpdateTicketRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ticket, err := h.Repos.Tickets.GetByID(r.Context(), objID)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if req.Subject != "" {
		ticket.Subject = req.Subject
	}
	if req.Body != "" {
		ticket.Body = req.Body
	}
	if req.Category != "" {
		ticket.Category = req.Category
	}
	if req.Priority != "" {
		ticket.Priority = req.Priority
	}
	if req.Status != "" && req.Status != ticket.Status {
		ticket.Status = req.Status
		switch req.Status {
		case models.TicketStatusResolved, models.TicketStatusClosed:
			now := time.Now()
			ticket.ClosedAt = &now
		default:
			ticket.ClosedAt = nil
		}
	}
	ticket.UpdatedAt = time.Now()

	if err := h.Repos.Tickets.Update(r.Context(), ticket); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Success(w, "Ticket updated successfully", ticket)
}

// AssignTicket hands a ticket to a staff account and moves it to
// in_progress if still open
func (h *Handler) AssignTicket(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid ticket ID")
		return
	}

	var req models.AssignTicketRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.Repos.Admins.GetByID(r.Context(), req.AdminID); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	ticket, err := h.Repos.Tickets.GetByID(r.Context(), objID)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	ticket.AssignedTo = req.AdminID
	if ticket.Status == models.TicketStatusOpen {
		ticket.Status = models.TicketStatusInProgress
	}
	ticket.UpdatedAt = time.Now()

	if err := h.Repos.Tickets.Update(r.Context(), ticket); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Success(w, "Ticket assigned successfully", ticket)
}

// CloseTicket resolves a ticket and stamps the closing time
func (h *Handler) CloseTicket(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		h.ErrorHdlr.HandleBadRequest(w, "Invalid ticket ID")
		return
	}

	ticket, err := h.Repos.Tickets.GetByID(r.Context(), objID)
	if err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	if ticket.Status == models.TicketStatusClosed {
		h.ErrorHdlr.HandleConflict(w, "Ticket is already closed")
		return
	}

	now := time.Now()
	ticket.Status = models.TicketStatusClosed
	ticket.ClosedAt = &now
	ticket.UpdatedAt = now

	if err := h.Repos.Tickets.Update(r.Context(), ticket); err != nil {
		h.ErrorHdlr.HandleAppError(w, err)
		return
	}

	h.ResponseHdlr.Success(w, "Ticket closed successfully", ticket)
}
