package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tmarsden/ticketdesk/internal/domain"
)

// SessionManager owns the single current session: Anonymous when no
// session exists, Authenticated when one does. The persisted session
// record and the in-memory state agree whenever an operation has
// returned. It also mints and verifies the JWT carried by the HTTP
// layer's auth cookie.
type SessionManager struct {
	accounts  domain.AccountDirectory
	sessions  domain.SessionStore
	jwtSecret []byte

	mu      sync.Mutex
	current *domain.Session
}

// NewSessionManager builds a manager by reading the persisted session
// once. A well-formed stored session resumes as Authenticated; a
// malformed one is purged by the store and the manager starts
// Anonymous, as does an absent one.
func NewSessionManager(ctx context.Context, accounts domain.AccountDirectory, sessions domain.SessionStore, jwtSecret string) (*SessionManager, error) {
	m := &SessionManager{
		accounts:  accounts,
		sessions:  sessions,
		jwtSecret: []byte(jwtSecret),
	}

	session, err := sessions.Load(ctx)
	if err != nil && !errors.Is(err, domain.ErrNoSession) {
		return nil, fmt.Errorf("load session: %w", err)
	}
	m.current = session
	return m, nil
}

// Login checks the email and credential against the account directory
// with plain equality and, on a match, persists the redacted session
// projection and transitions to Authenticated. A failed match returns
// ErrInvalidCredentials and leaves all state unchanged.
func (m *SessionManager) Login(ctx context.Context, email, credential string) (*domain.Session, error) {
	account, err := m.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	if account.Credential != credential {
		return nil, domain.ErrInvalidCredentials
	}

	return m.establish(ctx, account)
}

// Signup registers a new account and treats it as implicitly logged
// in. ErrDuplicateEmail passes through with session state untouched.
func (m *SessionManager) Signup(ctx context.Context, name, email, credential string) (*domain.Session, error) {
	if name == "" || email == "" || credential == "" {
		return nil, fmt.Errorf("%w: name, email, and password are required", domain.ErrInvalidInput)
	}

	account, err := m.accounts.Create(ctx, name, email, credential)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	return m.establish(ctx, account)
}

// Logout clears the persisted session and transitions to Anonymous.
// The HTTP layer must follow up by navigating the client to the
// unauthenticated landing page.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.current = nil
	return nil
}

// Current returns a copy of the current session, or nil when Anonymous.
func (m *SessionManager) Current() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil
	}
	session := *m.current
	return &session
}

func (m *SessionManager) establish(ctx context.Context, account *domain.Account) (*domain.Session, error) {
	session := &domain.Session{
		ID:    account.ID,
		Email: account.Email,
		Name:  account.Name,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	m.current = session
	return session, nil
}

// Token signs a JWT for the given session, carried by the auth cookie.
func (m *SessionManager) Token(session *domain.Session) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   session.ID,
		"email": session.Email,
		"name":  session.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.jwtSecret)
}

// ValidateToken parses and validates a JWT token string and returns
// the account id from the sub claim.
func (m *SessionManager) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.jwtSecret, nil
	})
	if err != nil {
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrUnauthorized
	}

	return sub, nil
}

// Authenticate validates a token and checks that it still matches the
// current session. A token minted for a session that has since logged
// out or been replaced is rejected.
func (m *SessionManager) Authenticate(tokenString string) (*domain.Session, error) {
	accountID, err := m.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	session := m.Current()
	if session == nil || session.ID != accountID {
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}
