// Package auth provides JWT issuance and the Echo authentication middleware.
package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const contextKey = "user"

// GenerateToken issues an HS256 JWT whose subject is the username.
func GenerateToken(username, secret string, expiresIn time.Duration) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, fmt.Errorf("jwt secret is required")
	}
	if expiresIn <= 0 {
		return "", time.Time{}, fmt.Errorf("jwt expiry must be positive")
	}
	now := time.Now()
	expiresAt := now.Add(expiresIn)
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// JWTMiddleware validates bearer tokens on every request not excluded by the skipper.
func JWTMiddleware(secret string, skipper func(echo.Context) bool) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		Skipper:    skipper,
		SigningKey: []byte(secret),
		ContextKey: contextKey,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(jwt.RegisteredClaims)
		},
	})
}

// UsernameFromContext extracts the subject claim set by JWTMiddleware.
func UsernameFromContext(c echo.Context) (string, error) {
	token, ok := c.Get(contextKey).(*jwt.Token)
	if !ok || token == nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	username := strings.TrimSpace(claims.Subject)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "token subject missing")
	}
	return username, nil
}
