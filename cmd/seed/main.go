package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/linemk/online-store/internal/app"
	"github.com/linemk/online-store/internal/config"
	"github.com/linemk/online-store/internal/lib/logger"
	"github.com/linemk/online-store/internal/seed"
	"github.com/linemk/online-store/internal/storage"
)

func main() {
	cfg := config.MustLoad()
	log := logger.SetupLogger(cfg.Env, cfg.LogLevel)

	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		os.Exit(1)
	}
	defer application.DB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := seed.Run(ctx, application.Logger, application.DB, storage.NewProductRepository(application.DB))
	if err != nil {
		log.Error("seeding failed", slog.Any("error", err))
		application.DB.Close()
		os.Exit(1)
	}
	log.Info("seed finished", slog.String("result", result.String()))
}
