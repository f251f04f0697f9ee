package domain

import "context"

// Account is a registered user of the application. The credential is
// stored exactly as provided and compared by plain equality; this demo
// deliberately carries no hashing. Accounts are never mutated after
// creation and there is no delete-account operation.
type Account struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Credential string `json:"password"`
}

// AccountDirectory manages the global collection of registered
// accounts, persisted as one serialized blob.
type AccountDirectory interface {
	// List returns every registered account. An absent or malformed
	// stored collection reads as empty.
	List(ctx context.Context) ([]Account, error)
	// FindByEmail does an exact, case-sensitive match and returns
	// ErrNotFound when no account carries the email.
	FindByEmail(ctx context.Context, email string) (*Account, error)
	// Create registers a new account, or fails with ErrDuplicateEmail.
	Create(ctx context.Context, name, email, credential string) (*Account, error)
}
