package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var schemaFS embed.FS

const schemaDir = "sql"

// ErrSchemaBehind версия схемы в БД ниже последней встроенной миграции
var ErrSchemaBehind = errors.New("migrations: schema version is behind embedded migrations")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// LatestVersion возвращает версию последней встроенной миграции
func LatestVersion() (int64, error) {
	goose.SetBaseFS(schemaFS)
	defer goose.SetBaseFS(nil)

	return latestVersion()
}

func latestVersion() (int64, error) {
	collected, err := goose.CollectMigrations(schemaDir, 0, goose.MaxVersion)
	if err != nil {
		return 0, fmt.Errorf("migrations: collect: %w", err)
	}
	last, err := collected.Last()
	if err != nil {
		return 0, fmt.Errorf("migrations: no embedded migrations: %w", err)
	}
	return last.Version, nil
}

// Up накатывает схему day_bookings/booking_details до последней версии
// и проверяет, что БД действительно дошла до неё
func Up(ctx context.Context, db *sql.DB, log Logger) error {
	goose.SetBaseFS(schemaFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrations: set dialect: %w", err)
	}

	latest, err := latestVersion()
	if err != nil {
		return err
	}

	before, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("migrations: read version: %w", err)
	}
	if before >= latest {
		log.Info("Migrations: schema is up to date (version %d)", before)
		return nil
	}

	if err := goose.UpContext(ctx, db, schemaDir); err != nil {
		return fmt.Errorf("migrations: up from version=%d: %w", before, err)
	}

	after, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("migrations: read version: %w", err)
	}
	if after < latest {
		return fmt.Errorf("%w: db=%d, embedded=%d", ErrSchemaBehind, after, latest)
	}

	log.Info("Migrations: schema version %d -> %d", before, after)
	return nil
}
