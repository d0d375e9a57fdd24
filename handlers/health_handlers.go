package handlers

import (
	"net/http"
	"time"

	"github.com/CoderAnshul/AdDash/models"
)

var startedAt = time.Now()

// HealthSnapshot is the service health report
type HealthSnapshot struct {
	Status        string    `json:"status"`
	Time          time.Time `json:"time"`
	Uptime        string    `json:"uptime"`
	Cache         string    `json:"cache"`
	AdminSessions int       `json:"adminSessions"`
}

// Health reports service status, uptime and cache connectivity
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	snapshot := HealthSnapshot{
		Status:        "ok",
		Time:          time.Now(),
		Uptime:        time.Since(startedAt).Round(time.Second).String(),
		Cache:         "ok",
		AdminSessions: h.Sessions.Active(),
	}

	if err := h.Cache.Ping(r.Context()); err != nil {
		snapshot.Status = "degraded"
		snapshot.Cache = "unreachable"
	}

	h.ResponseHdlr.Success(w, "Service health", snapshot)
}

// DashboardStats is the landing page summary
type DashboardStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	Listeners     int64 `json:"listeners"`
	TotalSessions int64 `json:"totalSessions"`
	OpenTickets   int64 `json:"openTickets"`
}

// GetDashboardStats returns aggregate counts for the landing page
func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	var stats DashboardStats

	if _, total, err := h.Repos.Users.List(r.Context(), 1, 1); err == nil {
		stats.TotalUsers = total
	}
	if _, total, err := h.Repos.Listeners.List(r.Context(), models.ListenerFilter{Page: 1, Limit: 1}); err == nil {
		stats.Listeners = total
	}
	if _, total, err := h.Repos.Sessions.List(r.Context(), models.SessionFilter{Page: 1, Limit: 1}); err == nil {
		stats.TotalSessions = total
	}
	if _, total, err := h.Repos.Tickets.List(r.Context(), models.TicketFilter{Status: models.TicketStatusOpen, Page: 1, Limit: 1}); err == nil {
		stats.OpenTickets = total
	}

	h.ResponseHdlr.Success(w, "Dashboard stats fetched successfully", stats)
}
