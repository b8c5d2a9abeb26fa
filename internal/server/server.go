package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"detention/internal/constants"
	"detention/internal/interfaces"
	"detention/internal/logger"
	"detention/internal/pages"
	"detention/internal/render"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config holds the server configuration
type Config struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// AbsoluteURL and Version are rendered into every page
	AbsoluteURL string
	Version     string
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            constants.DefaultServerHost,
		Port:            constants.DefaultServerPort,
		ReadTimeout:     constants.DefaultServerReadTimeout,
		WriteTimeout:    constants.DefaultServerWriteTimeout,
		ShutdownTimeout: constants.DefaultServerShutdownTimeout,
		AbsoluteURL:     constants.DefaultAbsoluteURL,
		Version:         "dev",
	}
}

// Server serves the interstitial pages
type Server struct {
	config    *Config
	echo      *echo.Echo
	fetcher   interfaces.InstanceFetcher
	startTime time.Time
}

// New creates a server that resolves instances through fetcher. The fetcher
// is shared by all requests and must be safe for concurrent use.
func New(cfg *Config, fetcher interfaces.InstanceFetcher) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if fetcher == nil {
		return nil, fmt.Errorf("instance fetcher is required")
	}

	renderer, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	s := &Server{
		config:    cfg,
		echo:      e,
		fetcher:   fetcher,
		startTime: time.Now(),
	}
	e.HTTPErrorHandler = s.ErrorHandler

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	log := logger.ForModule("server").WithField("addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.echo,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()
	log.Info("Server listening")

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		log.Info("Context cancelled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware. Static assets are served ahead
// of the wildcard route; unknown files fall through to it.
func (s *Server) setupMiddleware() {
	s.echo.Use(logger.RequestLogger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Filesystem: http.FS(render.Public()),
	}))
}

// baseVars are the only variables the invalid page ever receives
func (s *Server) baseVars() pages.Vars {
	return pages.BaseVars(s.config.Version, s.config.AbsoluteURL)
}
