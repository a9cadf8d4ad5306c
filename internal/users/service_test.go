package users

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"

	"github.com/bookchatai/bookchat/internal/db"
	"github.com/bookchatai/bookchat/internal/db/sqlc"
)

func TestToView(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	id, err := db.ParseUUID("550e8400-e29b-41d4-a716-446655440000")
	assert.NoError(t, err)

	view := toView(sqlc.User{
		ID:           id,
		Username:     "reader",
		Email:        pgtype.Text{String: "reader@example.com", Valid: true},
		FullName:     pgtype.Text{String: "Читатель", Valid: true},
		PasswordHash: "$2a$10$secret",
		IsActive:     true,
		CreatedAt:    pgtype.Timestamptz{Time: created, Valid: true},
	})

	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", view.ID)
	assert.Equal(t, "reader", view.Username)
	assert.Equal(t, "reader@example.com", view.Email)
	assert.Equal(t, "Читатель", view.FullName)
	assert.True(t, view.IsActive)
	assert.Equal(t, created, view.CreatedAt)
}

func TestToViewNullFields(t *testing.T) {
	view := toView(sqlc.User{Username: "minimal", IsActive: true})
	assert.Empty(t, view.Email)
	assert.Empty(t, view.FullName)
	assert.Empty(t, view.ID)
	assert.True(t, view.CreatedAt.IsZero())
}
