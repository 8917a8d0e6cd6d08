// package server contains middleware & handlers for the task web service
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tsk/internal/repositories"
	"github.com/desertthunder/tsk/internal/shared"
	"github.com/gin-gonic/gin"
)

// Server owns the HTTP engine, its dependencies, and the serve lifecycle.
type Server struct {
	cfg    *shared.Config
	logger *log.Logger
	repo   repositories.TaskRepository
	engine *gin.Engine
	http   *http.Server
}

// New creates a Server wired to the given repository. Routes and
// middleware are registered immediately; nothing listens until Run.
func New(cfg *shared.Config, logger *log.Logger, repo repositories.TaskRepository) *Server {
	s := &Server{
		cfg:    cfg,
		logger: shared.WithLogger(logger, "component", "server"),
		repo:   repo,
		engine: gin.New(),
	}
	s.routes()
	s.http = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Run serves until the context is canceled, then drains in-flight requests
// before returning.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("task service listening", "addr", s.http.Addr)
		err := s.http.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	<-errCh

	s.logger.Info("task service stopped")
	return nil
}
