package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tmarsden/ticketdesk/internal/domain"
)

// TicketService handles ticket CRUD, validation, and filtering for a
// single owner's collection. Every operation takes the ownerID as
// supplied by the caller; the service trusts it. Mutations rewrite the
// owner's whole collection, so mu keeps each read-modify-write
// sequence atomic under concurrent handlers.
type TicketService struct {
	tickets domain.TicketRepository

	mu sync.Mutex
}

// NewTicketService creates a new TicketService.
func NewTicketService(tickets domain.TicketRepository) *TicketService {
	return &TicketService{tickets: tickets}
}

// List returns the owner's tickets in insertion order.
func (s *TicketService) List(ctx context.Context, ownerID string) ([]domain.Ticket, error) {
	return s.tickets.ListByOwner(ctx, ownerID)
}

// Create validates the input and appends a new ticket to the owner's
// collection. On validation failure it returns the complete set of
// field-level errors as a domain.ValidationErrors.
func (s *TicketService) Create(ctx context.Context, ownerID string, input domain.TicketInput) (*domain.Ticket, error) {
	if verrs := validateTicketInput(input); len(verrs) > 0 {
		return nil, verrs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	ticket := domain.Ticket{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      input.Status,
		Priority:    input.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tickets, err := s.tickets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	tickets = append(tickets, ticket)

	if err := s.tickets.SaveForOwner(ctx, ownerID, tickets); err != nil {
		return nil, fmt.Errorf("save tickets: %w", err)
	}
	return &ticket, nil
}

// Update validates the input and replaces the matching ticket,
// preserving CreatedAt and advancing UpdatedAt. It returns
// domain.ErrNotFound when no ticket matches the id.
func (s *TicketService) Update(ctx context.Context, ownerID, ticketID string, input domain.TicketInput) (*domain.Ticket, error) {
	if verrs := validateTicketInput(input); len(verrs) > 0 {
		return nil, verrs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.tickets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	for i := range tickets {
		if tickets[i].ID != ticketID {
			continue
		}

		tickets[i].Title = strings.TrimSpace(input.Title)
		tickets[i].Description = strings.TrimSpace(input.Description)
		tickets[i].Status = input.Status
		tickets[i].Priority = input.Priority
		tickets[i].UpdatedAt = time.Now().UTC()

		if err := s.tickets.SaveForOwner(ctx, ownerID, tickets); err != nil {
			return nil, fmt.Errorf("save tickets: %w", err)
		}
		updated := tickets[i]
		return &updated, nil
	}

	return nil, domain.ErrNotFound
}

// Delete removes the matching ticket and reports whether a removal
// occurred. Deleting an unknown id is not an error.
func (s *TicketService) Delete(ctx context.Context, ownerID, ticketID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.tickets.ListByOwner(ctx, ownerID)
	if err != nil {
		return false, fmt.Errorf("list tickets: %w", err)
	}

	var remaining []domain.Ticket
	removed := false
	for _, t := range tickets {
		if t.ID == ticketID {
			removed = true
			continue
		}
		remaining = append(remaining, t)
	}
	if !removed {
		return false, nil
	}

	if err := s.tickets.SaveForOwner(ctx, ownerID, remaining); err != nil {
		return false, fmt.Errorf("save tickets: %w", err)
	}
	return true, nil
}

// Filter returns the owner's tickets restricted to the given status,
// or all of them when status is "all". Relative order is preserved.
func (s *TicketService) Filter(ctx context.Context, ownerID, status string) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if status == domain.FilterAll || status == "" {
		return tickets, nil
	}

	var filtered []domain.Ticket
	for _, t := range tickets {
		if t.Status == domain.TicketStatus(status) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// TicketStats summarizes an owner's collection by status.
type TicketStats struct {
	Total      int
	Open       int
	InProgress int
	Closed     int
}

// Stats computes per-status counts over the owner's collection.
func (s *TicketService) Stats(ctx context.Context, ownerID string) (TicketStats, error) {
	tickets, err := s.tickets.ListByOwner(ctx, ownerID)
	if err != nil {
		return TicketStats{}, err
	}

	stats := TicketStats{Total: len(tickets)}
	for _, t := range tickets {
		switch t.Status {
		case domain.StatusOpen:
			stats.Open++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusClosed:
			stats.Closed++
		}
	}
	return stats, nil
}

// validateTicketInput applies every field rule and collects all
// violations; it never stops at the first failure.
func validateTicketInput(input domain.TicketInput) domain.ValidationErrors {
	var verrs domain.ValidationErrors

	title := strings.TrimSpace(input.Title)
	switch {
	case title == "":
		verrs = append(verrs, domain.FieldError{Field: "title", Message: "Title is required"})
	case len([]rune(title)) < 3:
		verrs = append(verrs, domain.FieldError{Field: "title", Message: "Title must be at least 3 characters"})
	case len([]rune(title)) > 100:
		verrs = append(verrs, domain.FieldError{Field: "title", Message: "Title must be less than 100 characters"})
	}

	// Description length is checked before trimming.
	if len([]rune(input.Description)) > 500 {
		verrs = append(verrs, domain.FieldError{Field: "description", Message: "Description must be less than 500 characters"})
	}

	if !input.Status.Valid() {
		verrs = append(verrs, domain.FieldError{Field: "status", Message: "Invalid status value"})
	}

	if !input.Priority.Valid() {
		verrs = append(verrs, domain.FieldError{Field: "priority", Message: "Invalid priority value"})
	}

	return verrs
}
