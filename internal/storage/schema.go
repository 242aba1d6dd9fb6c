package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsTable = "schema_migrations"

// EnsureSchema создаёт таблицы products и orders, если их ещё нет.
// Схема лежит в бинарнике, отдельный шаг миграций при деплое не нужен.
func EnsureSchema(db *sql.DB) error {
	const op = "storage.EnsureSchema"

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("%s: failed to open embedded schema: %w", op, err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return fmt.Errorf("%s: failed to create migrate driver: %w", op, err)
	}

	// m.Close() не вызываем: драйвер, созданный через WithInstance, закрыл бы и сам *sql.DB
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("%s: failed to create migrate instance: %w", op, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: failed to apply schema: %w", op, err)
	}
	return nil
}
