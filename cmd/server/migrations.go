package main

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/taskdeck/taskdeck-api/migrations"
)

// runMigrations applies any pending database migrations from the embedded
// migrations directory. It is safe to call on every startup; goose skips
// migrations that have already been applied.
func (app *application) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Files)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, app.db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app.logger.Info("Database migrations applied")
	return nil
}
