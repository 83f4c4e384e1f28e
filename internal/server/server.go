// Package server implements the CryptoNav dashboard HTTP server: the route
// guard, the auth pages, and the server-rendered CRUD views over the backend
// API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cryptonav/cryptonav/internal/app"
	"github.com/cryptonav/cryptonav/internal/common"
)

// Server wraps the HTTP server and application reference.
type Server struct {
	app    *app.App
	server *http.Server
	logger *common.Logger
	pages  *pageSet
}

// NewServer creates the dashboard HTTP server.
func NewServer(a *app.App) (*Server, error) {
	pages, err := loadPages()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		app:    a,
		logger: a.Logger,
		pages:  pages,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	handler := applyMiddleware(mux, a.Logger, a.Sessions)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server (blocking).
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.server.Addr).
		Msg("Starting dashboard server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
