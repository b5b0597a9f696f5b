package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/taskhive/taskhive/internal/logging"
)

// Server runs the task-list API over HTTP and drains in-flight requests on
// shutdown.
type Server struct {
	httpServer *http.Server
	logger     *logging.Logger
}

func NewServer(addr string, handler http.Handler, readTimeout, writeTimeout time.Duration, logger *logging.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		logger: logger,
	}
}

// Start listens and serves until Shutdown is called. http.ErrServerClosed is
// the normal way out and is not reported as a failure.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped unexpectedly: %w", err)
	}

	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until the context's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("draining in-flight requests")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
