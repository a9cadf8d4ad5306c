package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookchatai/bookchat/internal/auth"
	"github.com/bookchatai/bookchat/internal/users"
)

// requireUser resolves the token subject to a full user record. Tokens whose
// subject no longer maps to an account are rejected.
func requireUser(c echo.Context, service *users.Service) (users.View, error) {
	username, err := auth.UsernameFromContext(c)
	if err != nil {
		return users.View{}, err
	}
	user, err := service.GetByUsername(c.Request().Context(), username)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return users.View{}, echo.NewHTTPError(http.StatusUnauthorized, "unknown token subject")
		}
		return users.View{}, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !user.IsActive {
		return users.View{}, echo.NewHTTPError(http.StatusForbidden, "account is deactivated")
	}
	return user, nil
}
