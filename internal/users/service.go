// Package users implements registration, login, and profile management.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookchatai/bookchat/internal/db"
	"github.com/bookchatai/bookchat/internal/db/sqlc"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveUser       = errors.New("user account is deactivated")
)

// Service owns user accounts and password verification.
type Service struct {
	queries *sqlc.Queries
	logger  *slog.Logger
}

// NewService creates a user service.
func NewService(log *slog.Logger, queries *sqlc.Queries) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		queries: queries,
		logger:  log.With(slog.String("service", "users")),
	}
}

// Register creates a new account with a bcrypt password hash. Duplicate
// usernames or emails surface as ErrUserExists.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (View, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return View{}, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return View{}, fmt.Errorf("hash password: %w", err)
	}

	record, err := s.queries.CreateUser(ctx, sqlc.CreateUserParams{
		Username:     username,
		Email:        db.TextFromString(req.Email),
		FullName:     db.TextFromString(req.FullName),
		PasswordHash: string(hash),
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return View{}, ErrUserExists
		}
		return View{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", slog.String("username", record.Username))
	return toView(record), nil
}

// Login verifies the password and returns the account. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (View, error) {
	record, err := s.queries.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return View{}, ErrInvalidCredentials
		}
		return View{}, fmt.Errorf("get user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(req.Password)); err != nil {
		return View{}, ErrInvalidCredentials
	}
	if !record.IsActive {
		return View{}, ErrInactiveUser
	}
	return toView(record), nil
}

// GetByUsername returns the account for a username.
func (s *Service) GetByUsername(ctx context.Context, username string) (View, error) {
	record, err := s.queries.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return View{}, ErrUserNotFound
		}
		return View{}, fmt.Errorf("get user: %w", err)
	}
	return toView(record), nil
}

// UpdateProfile replaces the email and full name of the account.
func (s *Service) UpdateProfile(ctx context.Context, username string, req UpdateProfileRequest) (View, error) {
	record, err := s.queries.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return View{}, ErrUserNotFound
		}
		return View{}, fmt.Errorf("get user: %w", err)
	}

	updated, err := s.queries.UpdateUserProfile(ctx, sqlc.UpdateUserProfileParams{
		ID:       record.ID,
		Email:    db.TextFromString(req.Email),
		FullName: db.TextFromString(req.FullName),
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return View{}, ErrUserExists
		}
		return View{}, fmt.Errorf("update profile: %w", err)
	}
	return toView(updated), nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, username string, req ChangePasswordRequest) error {
	record, err := s.queries.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.queries.UpdateUserPassword(ctx, sqlc.UpdateUserPasswordParams{
		ID:           record.ID,
		PasswordHash: string(hash),
	}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.logger.Info("password changed", slog.String("username", username))
	return nil
}

func toView(record sqlc.User) View {
	return View{
		ID:        db.UUIDString(record.ID),
		Username:  record.Username,
		Email:     db.TextToString(record.Email),
		FullName:  db.TextToString(record.FullName),
		IsActive:  record.IsActive,
		CreatedAt: db.TimeFromPg(record.CreatedAt),
	}
}
