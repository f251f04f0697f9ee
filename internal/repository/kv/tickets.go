package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tmarsden/ticketdesk/internal/domain"
)

// ticketsKey derives the storage key partitioning ticket collections
// by owner account id.
func ticketsKey(ownerID string) string {
	return "tickets_" + ownerID
}

// ticketRepo implements domain.TicketRepository over the key-value
// store, one serialized collection per owner.
type ticketRepo struct {
	store domain.Store
}

func (r *ticketRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Ticket, error) {
	raw, err := r.store.Get(ctx, ticketsKey(ownerID))
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tickets: %w", err)
	}

	var tickets []domain.Ticket
	if err := json.Unmarshal([]byte(raw), &tickets); err != nil {
		slog.Warn("malformed tickets blob, treating as empty", "owner", ownerID, "error", err)
		return nil, nil
	}
	return tickets, nil
}

func (r *ticketRepo) SaveForOwner(ctx context.Context, ownerID string, tickets []domain.Ticket) error {
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	data, err := json.Marshal(tickets)
	if err != nil {
		return fmt.Errorf("encode tickets: %w", err)
	}
	if err := r.store.Set(ctx, ticketsKey(ownerID), string(data)); err != nil {
		return fmt.Errorf("persist tickets: %w", err)
	}
	return nil
}
