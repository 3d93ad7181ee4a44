// ABOUTME: HTTP server assembly and lifecycle for the taskvault API
// ABOUTME: Builds the route table at startup and manages graceful shutdown

package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/taskvault/taskvault/internal/auth"
	"github.com/taskvault/taskvault/internal/config"
	"github.com/taskvault/taskvault/internal/store"
	"github.com/taskvault/taskvault/internal/task"
)

// Server wires the auth and task services behind an HTTP mux.
// Services are constructed once at startup and passed in by reference;
// there is no ambient global state.
type Server struct {
	config     *config.Config
	store      store.Store
	authSvc    *auth.Service
	taskSvc    *task.Service
	logger     *slog.Logger
	httpServer *http.Server
}

// New creates a server with its route table fully built.
// Auth routes are public; every /api/tasks route goes through the JWT
// middleware which resolves the caller to a live user record.
func New(cfg *config.Config, st store.Store, logger *slog.Logger) *Server {
	tokens := auth.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)

	s := &Server{
		config:  cfg,
		store:   st,
		authSvc: auth.NewService(st, tokens),
		taskSvc: task.NewService(st),
		logger:  logger.With("component", "server"),
	}

	mux := http.NewServeMux()

	// Health endpoint - no auth required
	mux.HandleFunc("GET /health", s.handleHealth)

	// Auth routes (no auth required)
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	// Task routes (bearer token required)
	authMiddleware := auth.Middleware(st, tokens)
	mux.Handle("POST /api/tasks", authMiddleware(http.HandlerFunc(s.handleCreateTask)))
	mux.Handle("GET /api/tasks", authMiddleware(http.HandlerFunc(s.handleListTasks)))
	mux.Handle("GET /api/tasks/{id}", authMiddleware(http.HandlerFunc(s.handleGetTask)))
	mux.Handle("PUT /api/tasks/{id}", authMiddleware(http.HandlerFunc(s.handleUpdateTask)))
	mux.Handle("DELETE /api/tasks/{id}", authMiddleware(http.HandlerFunc(s.handleDeleteTask)))

	s.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the server's root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
// Returns nil on graceful shutdown (context canceled), or an error if the
// server fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening on HTTP address: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		s.logger.Info("context canceled, initiating shutdown")
	case serverErr = <-errCh:
		s.logger.Error("server error", "error", serverErr)
	}

	shutdownErr := s.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() intentionally since the original context is already canceled.
func (s *Server) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	return nil
}

// handleHealth handles GET /health requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}
