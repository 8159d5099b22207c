package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/jwhulst/userbase/internal/auth"
	"github.com/jwhulst/userbase/internal/database"
	"github.com/jwhulst/userbase/internal/user"
	"github.com/jwhulst/userbase/internal/web/handlers"
	"github.com/jwhulst/userbase/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	db         *database.DB
	port       int
	bind       string
	allowedNet *net.IPNet
	router     *chi.Mux
	users      *user.Service
	apiKeys    *auth.APIKeyService
}

// NewServer creates a new web server
func NewServer(db *database.DB, port int, bind string, allowedNet *net.IPNet) *Server {
	s := &Server{
		db:         db,
		port:       port,
		bind:       bind,
		allowedNet: allowedNet,
		router:     chi.NewRouter(),
		users:      user.NewService(db),
		apiKeys:    auth.NewAPIKeyService(db),
	}

	s.setupRoutes()

	return s
}

// APIKeyService returns the API key service
func (s *Server) APIKeyService() *auth.APIKeyService {
	return s.apiKeys
}

// Router returns the configured HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	r := s.router

	// Global middleware
	r.Use(chimiddleware.RequestID)
	// AllowSubnet must come BEFORE RealIP so we check the actual connection source
	r.Use(middleware.AllowSubnet(s.allowedNet))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	h := handlers.New(s.db, s.users)

	r.Get("/healthz", h.Health)

	r.Route("/users", func(r chi.Router) {
		// Creation optionally requires the admin API key; reads stay open
		r.With(middleware.APIKeyAuth(s.apiKeys)).Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)
		r.Get("/{id}", h.GetUser)
	})
}

// Start starts the web server
func (s *Server) Start(ctx context.Context) error {
	var addr string
	if s.bind != "" {
		addr = fmt.Sprintf("%s:%d", s.bind, s.port)
	} else {
		addr = fmt.Sprintf(":%d", s.port)
	}

	server := &http.Server{
		Addr:    addr,
		Handler: s.router,
		// ReadTimeout is for reading request body
		ReadTimeout: 15 * time.Second,
		// Chi middleware timeout (60s) protects handler execution
		WriteTimeout: 0,
		// IdleTimeout for keep-alive connections between requests
		IdleTimeout: 120 * time.Second,
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
