package kv

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/tmarsden/ticketdesk/internal/domain"
	"github.com/tmarsden/ticketdesk/internal/repository/kv/migrations"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database holding the key-value table and exposes
// the blob-backed repositories built on top of it. The accountsMu
// mutex is shared by every accountDirectory handed out, so the
// duplicate-email check and the write it guards stay one atomic step
// no matter how many times Accounts is called.
type DB struct {
	SqlDB *sql.DB

	accountsMu sync.Mutex
}

// New opens a SQLite database at the given path and configures it for
// use as a single-writer key-value store. It enables WAL mode.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// A single connection keeps every blob write atomic and ordered.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies any unapplied schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.SqlDB)
}

// Close closes the underlying database.
func (db *DB) Close() error {
	return db.SqlDB.Close()
}

// Store returns the raw key-value store.
func (db *DB) Store() domain.Store {
	return &sqlStore{db: db.SqlDB}
}

// Accounts returns the blob-backed account directory.
func (db *DB) Accounts() domain.AccountDirectory {
	return &accountDirectory{store: db.Store(), mu: &db.accountsMu}
}

// Sessions returns the blob-backed session store.
func (db *DB) Sessions() domain.SessionStore {
	return &sessionStore{store: db.Store()}
}

// Tickets returns the blob-backed ticket repository.
func (db *DB) Tickets() domain.TicketRepository {
	return &ticketRepo{store: db.Store()}
}
