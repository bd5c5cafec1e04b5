// Package server exposes listing ingestion and valuation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Fichusgg/casa-score-br/core"
	"github.com/Fichusgg/casa-score-br/internal/logger"
)

const (
	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 15 * time.Second

	// maxBodyBytes caps request bodies; both endpoints take small JSON.
	maxBodyBytes = 1 << 20
)

// Ingestor runs the listing pipeline for one URL.
type Ingestor interface {
	Ingest(ctx context.Context, rawURL string) core.Outcome
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	ingestor Ingestor
	log      logger.Logger
	router   *mux.Router
}

// New builds a Server and registers its routes.
func New(ingestor Ingestor, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	s := &Server{ingestor: ingestor, log: log, router: mux.NewRouter()}

	// Routes sit on the root router so a wrong method answers 405, not 404.
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/parse-listing", s.handleParseListing).Methods(http.MethodPost)
	s.router.HandleFunc("/api/metrics", s.handleMetrics).Methods(http.MethodPost)

	s.router.Use(s.logRequests)
	return s
}

// Handler returns the root handler with CORS applied ahead of routing, so
// preflight requests never reach the method-restricted routes.
func (s *Server) Handler() http.Handler {
	return cors(s.router)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP server", logger.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.log.Info("context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.log.Info("HTTP server stopped")
	return nil
}
