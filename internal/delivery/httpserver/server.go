// Package httpserver exposes health probes and Prometheus metrics for the bot.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	readinessProbeTimeout = 5 * time.Second
	shutdownTimeout       = 10 * time.Second
)

// HealthCheck is a named readiness check.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Server serves /health/live, /health/ready and /metrics.
type Server struct {
	echo         *echo.Echo
	addr         string
	logger       *zap.Logger
	startTime    time.Time
	healthChecks []HealthCheck
}

func NewServer(addr string, logger *zap.Logger, checks ...HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:         e,
		addr:         addr,
		logger:       logger,
		startTime:    time.Now(),
		healthChecks: checks,
	}

	e.GET("/health/live", s.handleLiveness)
	e.GET("/health/ready", s.handleReadiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("ops http server started", zap.String("addr", s.addr))
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ops http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown ops http server: %w", err)
	}
	s.logger.Info("ops http server stopped")
	return nil
}

func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Seconds(),
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessProbeTimeout)
	defer cancel()

	for _, hc := range s.healthChecks {
		if err := hc.Check(ctx); err != nil {
			s.logger.Warn("readiness check failed",
				zap.String("check", hc.Name),
				zap.Error(err),
			)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"failed": hc.Name,
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
