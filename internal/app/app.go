package app

import (
	"database/sql"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/linemk/online-store/internal/config"
	"github.com/linemk/online-store/internal/storage"
	"github.com/pkg/errors"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sql.DB
}

// NewApp создаёт новый экземпляр App: открывает пул соединений с БД,
// проверяет его и создаёт таблицы, если их ещё нет
func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	if err := storage.EnsureSchema(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ensure schema")
	}
	log.Debug("database schema is up to date")

	return &App{
		Config: cfg,
		Logger: log,
		DB:     db,
	}, nil
}
