package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tmarsden/ticketdesk/internal/domain"
	"github.com/tmarsden/ticketdesk/internal/service"
)

// AuthHandler handles signup, login, logout, and session lookup.
type AuthHandler struct {
	sessions     *service.SessionManager
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions *service.SessionManager, cookieSecure bool) *AuthHandler {
	return &AuthHandler{sessions: sessions, cookieSecure: cookieSecure}
}

// HandleSignup processes a JSON signup request.
// POST /api/auth/signup
// Request:  {"name":"...","email":"...","password":"..."}
// Response: {"session": {...}}
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	session, err := h.sessions.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "An account with that email already exists.")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("signup", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	if err := h.setAuthCookie(w, session); err != nil {
		slog.Error("issue token after signup", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"session": toSessionDTO(session),
	})
}

// HandleLogin processes a JSON login request.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"session": {...}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	session, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		slog.Error("login", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	if err := h.setAuthCookie(w, session); err != nil {
		slog.Error("issue token after login", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session": toSessionDTO(session),
	})
}

// HandleLogout clears the session and the auth cookie, then redirects
// to the unauthenticated landing page.
// POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		slog.Error("logout", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to log out. Please try again.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleSession returns the current session, or 401 when Anonymous.
// GET /api/auth/session
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	session, err := authenticateRequest(r, h.sessions)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session": toSessionDTO(session),
	})
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, session *domain.Session) error {
	token, err := h.sessions.Token(session)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})
	return nil
}
