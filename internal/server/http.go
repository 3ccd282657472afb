// Package server exposes the scheduler over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/pablasso/tempo/internal/planner"
	"github.com/pablasso/tempo/internal/version"
)

// Server is a small HTTP server in front of a planner.Service.
type Server struct {
	handler   http.Handler
	startedAt time.Time
	logger    *slog.Logger

	mu         sync.Mutex
	httpServer *http.Server
	closed     bool
}

// NewServer wires the HTTP handlers and returns a Server instance.
func NewServer(svc *planner.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	started := time.Now().UTC()
	mux := http.NewServeMux()
	NewHandler(svc, logger, started, version.Version).Register(mux)
	return &Server{
		handler:   withCORS(mux),
		startedAt: started,
		logger:    logger,
	}
}

// Handler exposes the HTTP handler, making it easier to embed the server elsewhere.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe listens on addr and serves until Shutdown is called.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown is called. It returns nil
// after a graceful shutdown.
func (s *Server) Serve(ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ln.Close()
	}
	s.httpServer = srv
	s.mu.Unlock()

	s.logger.Info("HTTP server listening.", "addr", ln.Addr().String(), "version", version.Version)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the underlying HTTP server. A Serve call that
// starts after Shutdown returns immediately.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	s.logger.Info("HTTP server shutting down.")
	return srv.Shutdown(ctx)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
