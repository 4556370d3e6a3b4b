package db

import (
	"context"
	"embed"
	"fmt"
	"path"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/mayagamaleldin/graduationproject/logger"
)

//go:embed migrations/*/*.sql
var embedMigrations embed.FS

func (d Dialect) gooseDialect() string {
	switch d {
	case SQLite:
		return "sqlite3"
	case Postgres:
		return "postgres"
	default:
		return "mysql"
	}
}

// Migrate applies every pending migration for the dialect.
func Migrate(ctx context.Context, conn *sqlx.DB, dialect Dialect) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect.gooseDialect()); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	logger.Info("Running database migrations", "driver", dialect)
	if err := goose.UpContext(ctx, conn.DB, path.Join("migrations", string(dialect))); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed")
	return nil
}
