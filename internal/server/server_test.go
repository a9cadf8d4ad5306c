package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookchatai/bookchat/internal/auth"
	"github.com/bookchatai/bookchat/internal/config"
)

type stubHandler struct{}

func (stubHandler) Register(e *echo.Echo) {
	e.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/chats", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Config{
		Server: config.ServerConfig{Addr: ":0"},
		Auth:   config.AuthConfig{JWTSecret: "test-secret"},
	}
	return NewServer(slog.Default(), cfg, stubHandler{})
}

func TestPublicPathSkipsAuth(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestProtectedPathRequiresToken(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestProtectedPathAcceptsValidToken(t *testing.T) {
	t.Parallel()

	token, _, err := auth.GenerateToken("reader", "test-secret", time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
