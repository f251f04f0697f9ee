package domain

import "context"

// Session is the redacted, storable proof of who is currently
// authenticated: the account projection without the credential. At
// most one Session exists at a time.
type Session struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SessionStore persists the single current-session record.
type SessionStore interface {
	// Load reads the persisted session. It returns ErrNoSession when
	// no session is stored, and also when the stored blob fails to
	// parse; in that case the corrupt entry is purged first.
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Clear(ctx context.Context) error
}
