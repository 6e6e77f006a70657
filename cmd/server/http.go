package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/faktura-io/faktura/internal/config"
	"github.com/faktura-io/faktura/pkg/lifecycle"
)

type httpServer struct {
	inner           *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

func newHTTPServer(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger) *httpServer {
	return &httpServer{
		inner: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeoutDuration(),
			WriteTimeout: cfg.WriteTimeoutDuration(),
			IdleTimeout:  2 * cfg.ReadTimeoutDuration(),
		},
		logger:          logger.With("system", "http"),
		shutdownTimeout: cfg.ShutdownTimeoutDuration(),
	}
}

// Start begins serving in the background and registers a shutdown hook
// that drains in-flight requests within the configured timeout.
func (s *httpServer) Start(lc *lifecycle.Coordinator) error {
	go s.serve()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.stop()
	})

	return nil
}

func (s *httpServer) serve() {
	s.logger.Info("server listening", "addr", s.inner.Addr)

	err := s.inner.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("server error", "error", err)
	}
}

func (s *httpServer) stop() {
	s.logger.Info("shutting down server", "timeout", s.shutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.inner.Shutdown(ctx); err != nil {
		s.logger.Error("server shutdown error", "error", err)
		return
	}

	s.logger.Info("server shutdown complete")
}
