// ABOUTME: HTTP surface for the tabstash server
// ABOUTME: Wires auth and tab handlers onto a chi router with CORS and metrics

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tabstash/tabstash/internal/auth"
	"github.com/tabstash/tabstash/internal/store"
)

// Server holds the dependencies needed by the REST handlers.
type Server struct {
	store   store.Store
	authSvc *auth.Service
	logger  *slog.Logger
	metrics *Metrics
	origins []string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger. If not set, slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAllowedOrigins sets the CORS allow list. Requests from any other
// origin receive no CORS headers.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// WithMetrics enables prometheus request metrics and the /metrics endpoint.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates a new API server.
func New(st store.Store, authSvc *auth.Service, opts ...Option) *Server {
	s := &Server{
		store:   st,
		authSvc: authSvc,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "api")
	return s
}

// Router returns a chi.Router with all routes mounted.
//
// Auth endpoints are public; every tab endpoint sits behind the access gate,
// which validates the bearer token and resolves it to a live user before the
// handler runs.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(WithCORS(s.origins))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/revalidate", s.handleRevalidate)
		r.Get("/user/{id}", s.handleGetUser)
	})

	gate := auth.RequireAuth(s.store, s.authSvc.Issuer(), s.logger)
	r.Group(func(r chi.Router) {
		r.Use(gate)
		r.Post("/save_tab", s.handleSaveTab)
		r.Post("/save_tab/update_last_opened", s.handleUpdateLastOpened)
		r.Put("/update_tab_title", s.handleUpdateTabTitle)
		r.Get("/get_tabs", s.handleGetTabs)
		r.Delete("/delete_tab", s.handleDeleteTab)
	})

	return r
}
