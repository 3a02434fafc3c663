package adapters

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/vexley/opdesc/pkg/opdesc"
)

// ServerConfig holds configuration for the description server
type ServerConfig struct {
	// Port is the port to listen on (default: 8080)
	Port string

	// Host is the host to bind to (default: "")
	Host string

	// EnableCORS enables CORS middleware (default: true)
	EnableCORS bool

	// EnableRecover enables panic recovery middleware (default: true)
	EnableRecover bool

	// ShutdownTimeout is the timeout for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration

	// Logger receives request and lifecycle logs
	Logger zerolog.Logger
}

// DefaultServerConfig returns a server configuration with sensible defaults
func DefaultServerConfig() *ServerConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &ServerConfig{
		Port:            port,
		Host:            "",
		EnableCORS:      true,
		EnableRecover:   true,
		ShutdownTimeout: 30 * time.Second,
		Logger:          zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}
}

// Server exposes the commands of a description over HTTP. It wraps an Echo
// instance with request logging and graceful shutdown.
type Server struct {
	adapter *EchoAdapter
	config  *ServerConfig
	logger  zerolog.Logger
}

// NewServer creates a new description server
func NewServer(config *ServerConfig) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if config.EnableRecover {
		e.Use(middleware.Recover())
	}
	if config.EnableCORS {
		e.Use(middleware.CORS())
	}

	s := &Server{
		adapter: NewEchoAdapter(e),
		config:  config,
		logger:  config.Logger,
	}
	e.Use(s.requestLogger)

	return s
}

// Echo returns the underlying Echo instance for advanced configuration
func (s *Server) Echo() *echo.Echo {
	return s.adapter.Engine()
}

// Mount registers every mountable command of the description
func (s *Server) Mount(desc *opdesc.Description, invoker Invoker, insp *opdesc.Inspector) {
	s.adapter.Mount(desc, invoker, insp)
	s.logger.Info().
		Str("description", desc.Name()).
		Int("commands", desc.Len()).
		Msg("description mounted")
}

// Start starts the server and blocks until an interrupt triggers graceful
// shutdown
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)

	go func() {
		s.logger.Info().Str("addr", addr).Msg("server starting")
		if err := s.Echo().Start(addr); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	s.logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.Echo().Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.Info().Msg("shutdown complete")
	return nil
}

// Stop shuts the server down without waiting for a signal
func (s *Server) Stop(ctx context.Context) error {
	return s.Echo().Shutdown(ctx)
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		s.logger.Info().
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Int("status", c.Response().Status).
			Dur("duration", time.Since(start)).
			Msg("request")

		return nil
	}
}
