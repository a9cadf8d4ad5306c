// Package db provides PostgreSQL connection, migration, and pgtype helpers.
package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookchatai/bookchat/internal/config"
)

// Open creates a pgx connection pool from the Postgres config.
func Open(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, DSN(cfg))
}
