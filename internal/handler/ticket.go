package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tmarsden/ticketdesk/internal/domain"
	"github.com/tmarsden/ticketdesk/internal/service"
)

// TicketHandler handles ticket CRUD requests for the authenticated
// session's collection.
type TicketHandler struct {
	tickets *service.TicketService
}

// NewTicketHandler creates a new TicketHandler.
func NewTicketHandler(tickets *service.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// ticketRequest is the JSON body for create and update.
type ticketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

func (req ticketRequest) toInput() domain.TicketInput {
	return domain.TicketInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TicketStatus(req.Status),
		Priority:    domain.TicketPriority(req.Priority),
	}
}

// HandleList returns the session's tickets, optionally restricted by
// the status query parameter ("all" or absent returns everything).
// GET /api/tickets?status=open|in_progress|closed|all
func (h *TicketHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	tickets, err := h.tickets.Filter(r.Context(), session.ID, r.URL.Query().Get("status"))
	if err != nil {
		slog.Error("list tickets", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load tickets. Please retry.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tickets": toTicketDTOs(tickets),
	})
}

// HandleCreate validates and appends a new ticket.
// POST /api/tickets
func (h *TicketHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())

	var req ticketRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	ticket, err := h.tickets.Create(r.Context(), session.ID, req.toInput())
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			writeValidationErrors(w, verrs.Fields())
			return
		}
		slog.Error("create ticket", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save tickets. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"ticket": toTicketDTO(ticket),
	})
}

// HandleUpdate validates and replaces an existing ticket.
// PUT /api/tickets/{id}
func (h *TicketHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	ticketID := r.PathValue("id")

	var req ticketRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	ticket, err := h.tickets.Update(r.Context(), session.ID, ticketID, req.toInput())
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			writeValidationErrors(w, verrs.Fields())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Ticket not found.")
			return
		}
		slog.Error("update ticket", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save tickets. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ticket": toTicketDTO(ticket),
	})
}

// HandleDelete removes a ticket.
// DELETE /api/tickets/{id}
func (h *TicketHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	ticketID := r.PathValue("id")

	removed, err := h.tickets.Delete(r.Context(), session.ID, ticketID)
	if err != nil {
		slog.Error("delete ticket", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save tickets. Please try again.")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "Ticket not found.")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
