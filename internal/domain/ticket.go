package domain

import (
	"context"
	"time"
)

// TicketStatus is the lifecycle state of a ticket.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusClosed     TicketStatus = "closed"
)

// Valid reports whether the status is one of the known values.
func (s TicketStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// TicketPriority is the urgency level of a ticket.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

// Valid reports whether the priority is one of the known values.
func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// FilterAll is the filter value that matches every ticket regardless
// of status.
const FilterAll = "all"

// Ticket is a support ticket owned by exactly one account. Timestamps
// serialize as RFC 3339 strings. UpdatedAt is never before CreatedAt,
// and the two are equal on creation.
type Ticket struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Status      TicketStatus   `json:"status"`
	Priority    TicketPriority `json:"priority"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// TicketInput carries the caller-supplied fields for creating or
// updating a ticket, before validation.
type TicketInput struct {
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
}

// TicketRepository persists each owner's ticket collection as one
// whole serialized blob keyed by the owner's account id. It trusts the
// caller's ownerID; access control is the caller's concern.
type TicketRepository interface {
	// ListByOwner returns the owner's tickets in insertion order. An
	// absent or malformed stored collection reads as empty.
	ListByOwner(ctx context.Context, ownerID string) ([]Ticket, error)
	// SaveForOwner rewrites the owner's whole collection.
	SaveForOwner(ctx context.Context, ownerID string, tickets []Ticket) error
}
