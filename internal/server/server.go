// Package server implements the local ingestion sink: an HTTP server
// exposing the node/edge upsert endpoint the uploader targets, backed
// by the store.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/graphload/internal/store"
)

// Server is the ingestion sink server.
type Server struct {
	store  *store.Store
	addr   string
	logger *slog.Logger
}

// Config holds configuration for the sink server.
type Config struct {
	// Store persists ingested records.
	Store *store.Store
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// NewServer creates a new sink server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		store:  cfg.Store,
		addr:   cfg.Addr,
		logger: logger,
	}
}

// Handler builds the route tree. Exposed so tests can drive the
// server through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Put("/nodes", s.handlePutNodes)
		r.Get("/nodes", s.handleGetNodes)
		r.Get("/edges", s.handleGetEdges)
		r.Get("/stats", s.handleGetStats)
	})
	r.Get("/healthz", s.handleHealthz)

	return r
}

// Serve starts the sink server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting sink server", "addr", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down sink server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
