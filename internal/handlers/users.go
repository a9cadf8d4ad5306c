package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookchatai/bookchat/internal/favorites"
	"github.com/bookchatai/bookchat/internal/users"
)

// UsersHandler serves the current-user profile and favorites routes.
type UsersHandler struct {
	service   *users.Service
	favorites *favorites.Service
	logger    *slog.Logger
}

// NewUsersHandler creates a users handler.
func NewUsersHandler(log *slog.Logger, service *users.Service, favoriteService *favorites.Service) *UsersHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UsersHandler{
		service:   service,
		favorites: favoriteService,
		logger:    log.With(slog.String("handler", "users")),
	}
}

// Register mounts the user routes on the Echo instance.
func (h *UsersHandler) Register(e *echo.Echo) {
	group := e.Group("/users")
	group.GET("/me", h.GetMe)
	group.PUT("/me", h.UpdateMe)
	group.PUT("/me/password", h.UpdateMyPassword)
	group.GET("/me/favorites", h.ListFavorites)
	group.POST("/me/favorites", h.AddFavorite)
	group.DELETE("/me/favorites/:book_id", h.RemoveFavorite)
}

// GetMe godoc
// @Summary Get current user
// @Description Get current user profile
// @Tags users
// @Success 200 {object} users.View
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/me [get]
func (h *UsersHandler) GetMe(c echo.Context) error {
	user, err := requireUser(c, h.service)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update current user profile
// @Description Update current user email or full name
// @Tags users
// @Param payload body users.UpdateProfileRequest true "Profile payload"
// @Success 200 {object} users.View
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/me [put]
func (h *UsersHandler) UpdateMe(c echo.Context) error {
	user, err := requireUser(c, h.service)
	if err != nil {
		return err
	}
	var req users.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	resp, err := h.service.UpdateProfile(c.Request().Context(), user.Username, req)
	if err != nil {
		if errors.Is(err, users.ErrUserExists) {
			return echo.NewHTTPError(http.StatusConflict, "email already registered")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateMyPassword godoc
// @Summary Update current user password
// @Description Update current user password with current password check
// @Tags users
// @Param payload body users.ChangePasswordRequest true "Password payload"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/me/password [put]
func (h *UsersHandler) UpdateMyPassword(c echo.Context) error {
	user, err := requireUser(c, h.service)
	if err != nil {
		return err
	}
	var req users.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.NewPassword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "new password is required")
	}
	if err := h.service.ChangePassword(c.Request().Context(), user.Username, req); err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, "current password mismatch")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// ListFavorites godoc
// @Summary List favorite books
// @Description List the current user's saved books, newest first
// @Tags favorites
// @Success 200 {array} favorites.View
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/me/favorites [get]
func (h *UsersHandler) ListFavorites(c echo.Context) error {
	user, err := requireUser(c, h.service)
	if err != nil {
		return err
	}
	items, err := h.favorites.List(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

// AddFavorite godoc
// @Summary Add a favorite book
// @Description Save a book snapshot to the current user's favorites
// @Tags favorites
// @Param payload body favorites.AddRequest true "Book payload"
// @Success 201 {object} favorites.View
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/me/favorites [post]
func (h *UsersHandler) AddFavorite(c echo.Context) error {
	user, err := requireUser(c, h.service)
	if err != nil {
		return err
	}
	var req favorites.AddRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.favorites.Add(c.Request().Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, favorites.ErrInvalidBook) {
			return echo.NewHTTPError(http.StatusBadRequest, "book_id and title are required")
		}
		if errors.Is(err, favorites.ErrFavoriteExists) {
			return echo.NewHTTPError(http.StatusConflict, "book already in favorites")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, item)
}

// RemoveFavorite godoc
// @Summary Remove a favorite book
// @Description Delete a saved book by its book id
// @Tags favorites
// @Param book_id path string true "Book ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/me/favorites/{book_id} [delete]
func (h *UsersHandler) RemoveFavorite(c echo.Context) error {
	user, err := requireUser(c, h.service)
	if err != nil {
		return err
	}
	bookID := strings.TrimSpace(c.Param("book_id"))
	if bookID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "book id is required")
	}
	if err := h.favorites.Remove(c.Request().Context(), user.ID, bookID); err != nil {
		if errors.Is(err, favorites.ErrFavoriteNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "favorite not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
