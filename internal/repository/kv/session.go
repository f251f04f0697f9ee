package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tmarsden/ticketdesk/internal/domain"
)

// sessionKey is the fixed storage key for the current-session record.
// The key is absent while no one is authenticated.
const sessionKey = "session"

// sessionStore implements domain.SessionStore over the key-value store.
type sessionStore struct {
	store domain.Store
}

func (s *sessionStore) Load(ctx context.Context) (*domain.Session, error) {
	raw, err := s.store.Get(ctx, sessionKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		// Corrupt data means no session; purge the entry so it does
		// not keep failing on every load.
		slog.Warn("malformed session blob, purging", "error", err)
		if err := s.store.Delete(ctx, sessionKey); err != nil {
			return nil, fmt.Errorf("purge malformed session: %w", err)
		}
		return nil, domain.ErrNoSession
	}
	return &session, nil
}

func (s *sessionStore) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.Set(ctx, sessionKey, string(data)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *sessionStore) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
