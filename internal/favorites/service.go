// Package favorites manages a user's saved books.
package favorites

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bookchatai/bookchat/internal/db"
	"github.com/bookchatai/bookchat/internal/db/sqlc"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrFavoriteExists   = errors.New("book already in favorites")
	ErrInvalidBook      = errors.New("book id and title are required")
)

// AddRequest is the body of POST /users/me/favorites.
type AddRequest struct {
	BookID   string `json:"book_id"`
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`
	CoverURL string `json:"cover_url,omitempty"`
}

// View is the API representation of a favorite book.
type View struct {
	ID       string    `json:"id"`
	BookID   string    `json:"book_id"`
	Title    string    `json:"title"`
	Author   string    `json:"author,omitempty"`
	CoverURL string    `json:"cover_url,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}

// Service owns the favorites list.
type Service struct {
	queries *sqlc.Queries
	logger  *slog.Logger
}

// NewService creates a favorites service.
func NewService(log *slog.Logger, queries *sqlc.Queries) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		queries: queries,
		logger:  log.With(slog.String("service", "favorites")),
	}
}

// Add saves a book snapshot to the user's favorites. Adding the same book
// twice surfaces as ErrFavoriteExists.
func (s *Service) Add(ctx context.Context, userID string, req AddRequest) (View, error) {
	if strings.TrimSpace(req.BookID) == "" || strings.TrimSpace(req.Title) == "" {
		return View{}, ErrInvalidBook
	}
	ownerID, err := db.ParseUUID(userID)
	if err != nil {
		return View{}, fmt.Errorf("parse user id: %w", err)
	}

	record, err := s.queries.CreateFavoriteBook(ctx, sqlc.CreateFavoriteBookParams{
		UserID:   ownerID,
		BookID:   req.BookID,
		Title:    req.Title,
		Author:   db.TextFromString(req.Author),
		CoverUrl: db.TextFromString(req.CoverURL),
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return View{}, ErrFavoriteExists
		}
		return View{}, fmt.Errorf("create favorite: %w", err)
	}
	return toView(record), nil
}

// List returns the user's favorites, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]View, error) {
	ownerID, err := db.ParseUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	records, err := s.queries.ListFavoriteBooksByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	views := make([]View, 0, len(records))
	for _, record := range records {
		views = append(views, toView(record))
	}
	return views, nil
}

// Remove deletes a favorite by its book id.
func (s *Service) Remove(ctx context.Context, userID, bookID string) error {
	ownerID, err := db.ParseUUID(userID)
	if err != nil {
		return fmt.Errorf("parse user id: %w", err)
	}
	affected, err := s.queries.DeleteFavoriteBook(ctx, sqlc.DeleteFavoriteBookParams{
		UserID: ownerID,
		BookID: bookID,
	})
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if affected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func toView(record sqlc.FavoriteBook) View {
	return View{
		ID:       db.UUIDString(record.ID),
		BookID:   record.BookID,
		Title:    record.Title,
		Author:   db.TextToString(record.Author),
		CoverURL: db.TextToString(record.CoverUrl),
		AddedAt:  db.TimeFromPg(record.AddedAt),
	}
}
