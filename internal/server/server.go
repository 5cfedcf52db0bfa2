// Package server exposes the decision engine result and attention feed
// over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/crestlinelabs/decisiond/internal/attention"
	"github.com/crestlinelabs/decisiond/internal/decision"
	"github.com/crestlinelabs/decisiond/internal/dismissal"
)

// Provider supplies the current engine result and tracker items. The
// snapshot watcher implements it.
type Provider interface {
	Result() decision.Result
	TrackerItems() []attention.SourceItem
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// Server provides the HTTP endpoints.
type Server struct {
	echo       *echo.Echo
	provider   Provider
	dismissals *dismissal.Store
	logger     *zap.Logger
	config     *Config
	engineCfg  decision.Config
}

// NewServer creates the HTTP server.
func NewServer(provider Provider, dismissals *dismissal.Store, engineCfg decision.Config, logger *zap.Logger, cfg *Config) (*Server, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}
	if dismissals == nil {
		return nil, fmt.Errorf("dismissal store cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{Host: "localhost", Port: 8420}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	})

	s := &Server{
		echo:       e,
		provider:   provider,
		dismissals: dismissals,
		logger:     logger,
		config:     cfg,
		engineCfg:  engineCfg,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.GET("/decisions", s.handleDecisions)
	v1.GET("/feed", s.handleFeed)
	v1.POST("/dismissals", s.handleDismiss)
	v1.DELETE("/dismissals", s.handleResetDismissals)
	v1.POST("/snooze", s.handleSnooze)
}

// Start runs the server until the context is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	errCh := make(chan error, 1)
	go func() {
		if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	s.logger.Info("http server started", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

// Handler exposes the echo handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
