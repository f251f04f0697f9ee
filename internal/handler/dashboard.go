package handler

import (
	"log/slog"
	"net/http"

	"github.com/tmarsden/ticketdesk/internal/service"
)

// DashboardHandler serves the status-count summary shown on the
// dashboard.
type DashboardHandler struct {
	tickets *service.TicketService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(tickets *service.TicketService) *DashboardHandler {
	return &DashboardHandler{tickets: tickets}
}

// HandleDashboard returns per-status ticket counts for the session.
// GET /api/dashboard
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	stats, err := h.tickets.Stats(r.Context(), session.ID)
	if err != nil {
		slog.Error("dashboard stats", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load tickets. Please retry.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stats": toStatsDTO(stats),
	})
}
