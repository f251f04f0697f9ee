package handler

import (
	"net/http"

	"github.com/tmarsden/ticketdesk/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, sessions *service.SessionManager, tickets *service.TicketService, cookieSecure bool) {
	auth := NewAuthHandler(sessions, cookieSecure)
	ticketHandler := NewTicketHandler(tickets)
	dashboard := NewDashboardHandler(tickets)

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /{$}", HandleHome)

	mux.HandleFunc("POST /api/auth/signup", auth.HandleSignup)
	mux.HandleFunc("POST /api/auth/login", auth.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", auth.HandleLogout)
	mux.HandleFunc("GET /api/auth/session", auth.HandleSession)

	mux.Handle("GET /api/tickets", RequireSession(sessions, http.HandlerFunc(ticketHandler.HandleList)))
	mux.Handle("POST /api/tickets", RequireSession(sessions, http.HandlerFunc(ticketHandler.HandleCreate)))
	mux.Handle("PUT /api/tickets/{id}", RequireSession(sessions, http.HandlerFunc(ticketHandler.HandleUpdate)))
	mux.Handle("DELETE /api/tickets/{id}", RequireSession(sessions, http.HandlerFunc(ticketHandler.HandleDelete)))

	mux.Handle("GET /api/dashboard", RequireSession(sessions, http.HandlerFunc(dashboard.HandleDashboard)))
}
