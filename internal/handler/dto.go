package handler

import (
	"time"

	"github.com/tmarsden/ticketdesk/internal/domain"
	"github.com/tmarsden/ticketdesk/internal/service"
)

// SessionDTO is the JSON representation of the current session.
type SessionDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func toSessionDTO(s *domain.Session) SessionDTO {
	return SessionDTO{
		ID:    s.ID,
		Email: s.Email,
		Name:  s.Name,
	}
}

// TicketDTO is the JSON representation of a ticket.
type TicketDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toTicketDTO(t *domain.Ticket) TicketDTO {
	return TicketDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

func toTicketDTOs(tickets []domain.Ticket) []TicketDTO {
	dtos := make([]TicketDTO, len(tickets))
	for i := range tickets {
		dtos[i] = toTicketDTO(&tickets[i])
	}
	return dtos
}

// StatsDTO is the JSON representation of the dashboard status counts.
type StatsDTO struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Closed     int `json:"closed"`
}

func toStatsDTO(s service.TicketStats) StatsDTO {
	return StatsDTO{
		Total:      s.Total,
		Open:       s.Open,
		InProgress: s.InProgress,
		Closed:     s.Closed,
	}
}
