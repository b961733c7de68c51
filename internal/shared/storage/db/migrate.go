package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const migrationDir = "migrations"

// RunMigrations brings the schema up to date from the embedded migration
// files. A nil database (memory-backed deployments) is a no-op.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	goose.SetBaseFS(migrationFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, database, migrationDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
