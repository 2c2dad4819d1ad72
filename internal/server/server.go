// Package server exposes schema types, generated documents and validation
// over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mesh-intelligence/ldmark/internal/logger"
	"github.com/mesh-intelligence/ldmark/internal/metrics"
	"github.com/mesh-intelligence/ldmark/pkg/schema"
	"github.com/mesh-intelligence/ldmark/pkg/types"
)

// maxBodyBytes bounds request bodies accepted by the validate endpoint.
const maxBodyBytes = 1 << 20

// Server serves the registry and entity store over HTTP.
type Server struct {
	registry *schema.Registry
	store    types.EntityStore
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithMetrics sets the metrics collectors. GET /metrics serves them.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// New creates a Server. Logging is disabled and a fresh metrics set is used
// unless overridden by opts.
func New(registry *schema.Registry, store types.EntityStore, opts ...Option) *Server {
	s := &Server{
		registry: registry,
		store:    store,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	return s
}

// Handler returns an http.Handler with all routes registered. When
// authToken is non-empty every route except GET /v1/health and GET /metrics
// requires Authorization: Bearer <token>.
func (s *Server) Handler(authToken string) http.Handler {
	// Auth runs inside the mux, so rejected requests keep their route pattern.
	protect := func(h http.HandlerFunc) http.Handler { return AuthMiddleware(authToken, h) }

	mux := http.NewServeMux()
	mux.Handle("GET /v1/types", protect(s.handleListTypes))
	mux.Handle("GET /v1/types/{type}/properties", protect(s.handleGetProperties))
	mux.Handle("POST /v1/types/{type}/validate", protect(s.handleValidate))
	mux.Handle("GET /v1/entities/{id}/document", protect(s.handleGetDocument))
	mux.Handle("GET /v1/entities/{id}/script", protect(s.handleGetScript))
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())
	return s.instrument(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr, authToken string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(authToken),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.LogServerShutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
