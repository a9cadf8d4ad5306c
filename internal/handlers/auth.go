package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookchatai/bookchat/internal/auth"
	"github.com/bookchatai/bookchat/internal/config"
	"github.com/bookchatai/bookchat/internal/users"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	service *users.Service
	authCfg config.AuthConfig
	logger  *slog.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(log *slog.Logger, service *users.Service, authCfg config.AuthConfig) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		service: service,
		authCfg: authCfg,
		logger:  log.With(slog.String("handler", "auth")),
	}
}

// Register mounts the auth routes on the Echo instance.
func (h *AuthHandler) Register(e *echo.Echo) {
	group := e.Group("/auth")
	group.POST("/register", h.RegisterUser)
	group.POST("/login", h.Login)
}

// RegisterUser godoc
// @Summary Register a new user
// @Description Create an account and return a bearer token
// @Tags auth
// @Param payload body users.RegisterRequest true "Registration payload"
// @Success 201 {object} users.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) RegisterUser(c echo.Context) error {
	var req users.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}
	user, err := h.service.Register(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, users.ErrUserExists) {
			return echo.NewHTTPError(http.StatusConflict, "username or email already registered")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp, err := h.tokenResponse(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and return a bearer token
// @Tags auth
// @Param payload body users.LoginRequest true "Login payload"
// @Success 200 {object} users.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req users.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	user, err := h.service.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		if errors.Is(err, users.ErrInactiveUser) {
			return echo.NewHTTPError(http.StatusForbidden, "account is deactivated")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp, err := h.tokenResponse(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) tokenResponse(user users.View) (users.TokenResponse, error) {
	token, expiresAt, err := auth.GenerateToken(user.Username, h.authCfg.JWTSecret, h.authCfg.ExpiresIn())
	if err != nil {
		return users.TokenResponse{}, err
	}
	return users.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}
