package kv_test

import (
	"context"
	"testing"
	"time"

	"github.com/tmarsden/ticketdesk/internal/domain"
)

func sampleTickets() []domain.Ticket {
	now := time.Now().UTC().Truncate(time.Second)
	return []domain.Ticket{
		{ID: "t1", Title: "Broken login", Status: domain.StatusOpen, Priority: domain.PriorityHigh, CreatedAt: now, UpdatedAt: now},
		{ID: "t2", Title: "Slow dashboard", Description: "Takes ten seconds to load", Status: domain.StatusClosed, Priority: domain.PriorityLow, CreatedAt: now, UpdatedAt: now},
	}
}

func TestTickets_ListAbsentOwner(t *testing.T) {
	db := newTestDB(t)

	tickets, err := db.Tickets().ListByOwner(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(tickets) != 0 {
		t.Fatalf("expected no tickets, got %d", len(tickets))
	}
}

func TestTickets_SaveAndListRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := db.Tickets()
	ctx := context.Background()

	saved := sampleTickets()
	if err := repo.SaveForOwner(ctx, "owner-1", saved); err != nil {
		t.Fatalf("SaveForOwner: %v", err)
	}

	loaded, err := repo.ListByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(loaded) != len(saved) {
		t.Fatalf("expected %d tickets, got %d", len(saved), len(loaded))
	}
	for i := range saved {
		if !loaded[i].CreatedAt.Equal(saved[i].CreatedAt) || !loaded[i].UpdatedAt.Equal(saved[i].UpdatedAt) {
			t.Fatalf("timestamp mismatch at %d: %+v vs %+v", i, loaded[i], saved[i])
		}
		loaded[i].CreatedAt = saved[i].CreatedAt
		loaded[i].UpdatedAt = saved[i].UpdatedAt
		if loaded[i] != saved[i] {
			t.Fatalf("round trip mismatch at %d: %+v vs %+v", i, loaded[i], saved[i])
		}
	}
}

func TestTickets_OwnersAreIsolated(t *testing.T) {
	db := newTestDB(t)
	repo := db.Tickets()
	ctx := context.Background()

	if err := repo.SaveForOwner(ctx, "owner-1", sampleTickets()); err != nil {
		t.Fatalf("SaveForOwner: %v", err)
	}

	other, err := repo.ListByOwner(ctx, "owner-2")
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected owner-2 to have no tickets, got %d", len(other))
	}
}

func TestTickets_MalformedBlobReadsAsEmpty(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.Store().Set(ctx, "tickets_owner-1", "[{broken"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	tickets, err := db.Tickets().ListByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListByOwner with corrupt blob: %v", err)
	}
	if len(tickets) != 0 {
		t.Fatalf("expected empty collection, got %d tickets", len(tickets))
	}
}
