// Package server provides the HTTP server and Echo setup for the book chat API.
package server

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/bookchatai/bookchat/internal/auth"
	"github.com/bookchatai/bookchat/internal/config"
)

// Server is the HTTP server (Echo) with JWT middleware and registered handlers.
type Server struct {
	echo   *echo.Echo
	addr   string
	logger *slog.Logger
}

// Handler registers routes on the Echo instance.
type Handler interface {
	Register(e *echo.Echo)
}

// publicPaths are reachable without a bearer token.
var publicPaths = map[string]bool{
	"/ping":          true,
	"/health":        true,
	"/auth/login":    true,
	"/auth/register": true,
}

// NewServer builds the Echo server with recovery, request logging, CORS,
// JWT auth, and the given handlers.
func NewServer(log *slog.Logger, cfg config.Config,
	handlers ...Handler,
) *Server {
	addr := cfg.Server.Addr
	if addr == "" {
		addr = config.DefaultHTTPAddr
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", c.RealIP()),
			)
			return nil
		},
	}))
	if len(cfg.CORS.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.CORS.AllowedOrigins,
		}))
	}
	e.Use(auth.JWTMiddleware(cfg.Auth.JWTSecret, func(c echo.Context) bool {
		return publicPaths[c.Request().URL.Path]
	}))

	for _, h := range handlers {
		if h != nil {
			h.Register(e)
		}
	}

	return &Server{
		echo:   e,
		addr:   addr,
		logger: log.With(slog.String("component", "server")),
	}
}

// Start starts the HTTP server (blocks until shutdown).
func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

// Stop gracefully shuts down the server using the given context.
func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
