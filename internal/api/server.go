// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/bookmarks/internal/core/category"
	"github.com/taibuivan/bookmarks/internal/core/language"
	"github.com/taibuivan/bookmarks/internal/core/site"
	"github.com/taibuivan/bookmarks/internal/core/tag"
	"github.com/taibuivan/bookmarks/internal/platform/config"
	"github.com/taibuivan/bookmarks/internal/platform/constants"
	"github.com/taibuivan/bookmarks/internal/platform/middleware"
	"github.com/taibuivan/bookmarks/internal/platform/sec"
	"github.com/taibuivan/bookmarks/internal/users/account"
	"github.com/taibuivan/bookmarks/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. Always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. 200 when every backing store answers.
	Readiness http.HandlerFunc

	// Auth handles register, login, logout and the session probe.
	Auth *auth.Handler

	// Account manages the caller's profile and sessions.
	Account *account.Handler

	Language *language.Handler
	Category *category.Handler
	Tag      *tag.Handler

	// Site serves both the grouped bookmark view and the flat search.
	Site *site.Handler
}

// # Server Initialization

/*
NewServer constructs the chi router with the full middleware chain and
registers all route groups.

Parameters:
  - context: context.Context (stops the rate limiter's cleanup loop)
  - cfg: *config.Config
  - log: *slog.Logger
  - sessions: middleware.SessionValidator (the session manager)
  - cookies: *sec.CookieIssuer
  - h: Handlers

Returns:
  - *Server
*/
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, sessions middleware.SessionValidator, cookies *sec.CookieIssuer, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(sessions, cookies))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/account", h.Account.Routes())

		// Everything below belongs to a signed-in user
		api.Group(func(library chi.Router) {
			library.Use(middleware.RequireAuth)

			library.Route("/languages", h.Language.RegisterRoutes)
			library.Route("/categories", h.Category.RegisterRoutes)
			library.Route("/tags", h.Tag.RegisterRoutes)
			library.Route("/bookmarks", h.Site.RegisterRoutes)
			library.Route("/sites", h.Site.RegisterSearchRoutes)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
