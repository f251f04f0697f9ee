package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/tmarsden/ticketdesk/internal/domain"
	"github.com/tmarsden/ticketdesk/internal/repository/kv"
	"github.com/tmarsden/ticketdesk/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

func newTestDB(t *testing.T) *kv.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := kv.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestSessionManager(t *testing.T) (*service.SessionManager, *kv.DB) {
	t.Helper()
	db := newTestDB(t)
	sessions, err := service.NewSessionManager(context.Background(), db.Accounts(), db.Sessions(), testJWTSecret)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sessions, db
}

func TestSessionManager_Signup_Success(t *testing.T) {
	sessions, db := newTestSessionManager(t)
	ctx := context.Background()

	session, err := sessions.Signup(ctx, "Alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if session.ID == "" || session.Email != "alice@example.com" || session.Name != "Alice" {
		t.Fatalf("unexpected session: %+v", session)
	}

	// Signup implies login.
	current := sessions.Current()
	if current == nil || *current != *session {
		t.Fatalf("expected current session %+v, got %+v", session, current)
	}

	// The account must be findable afterwards.
	account, err := db.Accounts().FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if account.ID != session.ID {
		t.Fatalf("session id %q does not match account id %q", session.ID, account.ID)
	}
}

func TestSessionManager_Signup_DuplicateEmail(t *testing.T) {
	sessions, db := newTestSessionManager(t)
	ctx := context.Background()

	first, err := sessions.Signup(ctx, "Alice", "dup@example.com", "pw1")
	if err != nil {
		t.Fatalf("first Signup: %v", err)
	}

	_, err = sessions.Signup(ctx, "Mallory", "dup@example.com", "pw2")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	all, err := db.Accounts().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected account collection unchanged at 1, got %d", len(all))
	}

	// Session state is untouched by the failed signup.
	if current := sessions.Current(); current == nil || current.ID != first.ID {
		t.Fatalf("expected current session to stay %+v, got %+v", first, current)
	}
}

func TestSessionManager_ConcurrentSignupsSameEmail(t *testing.T) {
	sessions, db := newTestSessionManager(t)
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := sessions.Signup(ctx, "Racer", "race@example.com", "pw")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrDuplicateEmail):
			// expected for every racer but one
		default:
			t.Fatalf("unexpected Signup error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly 1 successful signup, got %d", successes)
	}

	all, err := db.Accounts().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly 1 account after racing signups, got %d", len(all))
	}
}

func TestSessionManager_Signup_MissingFields(t *testing.T) {
	sessions, _ := newTestSessionManager(t)

	_, err := sessions.Signup(context.Background(), "", "x@example.com", "pw")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSessionManager_Login_Success(t *testing.T) {
	sessions, _ := newTestSessionManager(t)
	ctx := context.Background()

	if _, err := sessions.Signup(ctx, "Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if err := sessions.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	session, err := sessions.Login(ctx, "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if current := sessions.Current(); current == nil || *current != *session {
		t.Fatalf("expected current session %+v, got %+v", session, current)
	}
}

func TestSessionManager_Login_WrongCredential(t *testing.T) {
	sessions, _ := newTestSessionManager(t)
	ctx := context.Background()

	if _, err := sessions.Signup(ctx, "Alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if err := sessions.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	_, err := sessions.Login(ctx, "alice@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sessions.Current() != nil {
		t.Fatal("expected state unchanged (Anonymous) after failed login")
	}
}

func TestSessionManager_Login_UnknownEmail(t *testing.T) {
	sessions, _ := newTestSessionManager(t)

	_, err := sessions.Login(context.Background(), "ghost@example.com", "pw")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionManager_Logout(t *testing.T) {
	sessions, db := newTestSessionManager(t)
	ctx := context.Background()

	if _, err := sessions.Signup(ctx, "Alice", "alice@example.com", "pw"); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if err := sessions.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if sessions.Current() != nil {
		t.Fatal("expected Anonymous state after logout")
	}
	if _, err := db.Sessions().Load(ctx); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected persisted session cleared, got %v", err)
	}
}

func TestSessionManager_ResumesPersistedSession(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first, err := service.NewSessionManager(ctx, db.Accounts(), db.Sessions(), testJWTSecret)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	session, err := first.Signup(ctx, "Alice", "alice@example.com", "pw")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	// A fresh manager over the same store resumes Authenticated.
	second, err := service.NewSessionManager(ctx, db.Accounts(), db.Sessions(), testJWTSecret)
	if err != nil {
		t.Fatalf("second NewSessionManager: %v", err)
	}
	current := second.Current()
	if current == nil || *current != *session {
		t.Fatalf("expected resumed session %+v, got %+v", session, current)
	}
}

func TestSessionManager_CorruptPersistedSessionStartsAnonymous(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.Store().Set(ctx, "session", "not json at all"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	sessions, err := service.NewSessionManager(ctx, db.Accounts(), db.Sessions(), testJWTSecret)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	if sessions.Current() != nil {
		t.Fatal("expected Anonymous state for corrupt persisted session")
	}

	// The corrupt blob is purged, not left behind.
	if _, err := db.Store().Get(ctx, "session"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected purged session entry, got %v", err)
	}
}

func TestSessionManager_TokenAuthenticate(t *testing.T) {
	sessions, _ := newTestSessionManager(t)
	ctx := context.Background()

	session, err := sessions.Signup(ctx, "Alice", "alice@example.com", "pw")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	token, err := sessions.Token(session)
	if err != nil {
		t.Fatalf("Token: %v", err)
	}

	authed, err := sessions.Authenticate(token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if *authed != *session {
		t.Fatalf("expected %+v, got %+v", session, authed)
	}
}

func TestSessionManager_AuthenticateAfterLogout(t *testing.T) {
	sessions, _ := newTestSessionManager(t)
	ctx := context.Background()

	session, err := sessions.Signup(ctx, "Alice", "alice@example.com", "pw")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	token, err := sessions.Token(session)
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if err := sessions.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, err := sessions.Authenticate(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for stale token, got %v", err)
	}
}

func TestSessionManager_AuthenticateGarbageToken(t *testing.T) {
	sessions, _ := newTestSessionManager(t)

	if _, err := sessions.Authenticate("not.a.jwt"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
