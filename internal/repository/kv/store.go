package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tmarsden/ticketdesk/internal/domain"
)

// sqlStore implements domain.Store over a single kv_entries table.
// Each Set rewrites the whole value for the key; last write wins.
type sqlStore struct {
	db *sql.DB
}

func (s *sqlStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM kv_entries WHERE key = ?", key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrKeyNotFound
		}
		return "", fmt.Errorf("query key %q: %w", key, err)
	}
	return value, nil
}

func (s *sqlStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("write key %q: %w", key, err)
	}
	return nil
}

func (s *sqlStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_entries WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete key %q: %w", key, err)
	}
	return nil
}
