package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/tmarsden/ticketdesk/internal/domain"
)

// accountsKey is the fixed storage key for the global account collection.
const accountsKey = "accounts"

// accountDirectory implements domain.AccountDirectory over the
// key-value store. Every mutation rewrites the whole serialized
// collection (read-modify-write); mu keeps the duplicate-email check
// and that rewrite atomic under concurrent callers.
type accountDirectory struct {
	store domain.Store
	mu    *sync.Mutex
}

func (d *accountDirectory) List(ctx context.Context) ([]domain.Account, error) {
	raw, err := d.store.Get(ctx, accountsKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}

	var accounts []domain.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		// Malformed data reads as an empty collection.
		slog.Warn("malformed accounts blob, treating as empty", "error", err)
		return nil, nil
	}
	return accounts, nil
}

func (d *accountDirectory) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	accounts, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Email == email {
			return &accounts[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (d *accountDirectory) Create(ctx context.Context, name, email, credential string) (*domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	accounts, err := d.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range accounts {
		if accounts[i].Email == email {
			return nil, domain.ErrDuplicateEmail
		}
	}

	account := domain.Account{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		Credential: credential,
	}
	accounts = append(accounts, account)

	data, err := json.Marshal(accounts)
	if err != nil {
		return nil, fmt.Errorf("encode accounts: %w", err)
	}
	if err := d.store.Set(ctx, accountsKey, string(data)); err != nil {
		return nil, fmt.Errorf("persist accounts: %w", err)
	}

	return &account, nil
}
