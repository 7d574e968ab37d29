package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/deppfellow/go-banking/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the schema up to date.
//
// For Postgres it opens a dedicated pgx connection and runs the SQL files
// embedded from migrations/ with tern. Files are applied in the order of
// their numeric prefix, each in its own transaction, and the highest
// applied number is stored in the schema_version table. Running Migrate
// against an up to date database only logs the current version.
//
// The in-memory store has no history to migrate, so the schema is created
// from models with gorm's AutoMigrate. models must be given in dependency
// order so that foreign keys point at tables that already exist.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config, db *Database, models ...any) error {
	if cfg.Database.IsMemory() {
		if err := db.DB.WithContext(ctx).AutoMigrate(models...); err != nil {
			return fmt.Errorf("auto-migrating in-memory schema: %w", err)
		}
		logger.Info().Int("models", len(models)).Msg("created in-memory schema")
		return nil
	}

	conn, err := pgx.Connect(ctx, DSN(cfg.Database))
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return err
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}
