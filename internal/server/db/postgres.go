// Package db opens the server database and applies embedded migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/kiview/internal/server/migrations"
)

// Open connects to Postgres via the pgx stdlib driver and runs all pending
// goose migrations before returning the handle.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {

	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := RunMigrations(ctx, conn); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return conn, nil
}

// RunMigrations applies the embedded goose migrations to the given database.
func RunMigrations(ctx context.Context, conn *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, conn, "."); err != nil {
		return err
	}

	return nil
}
