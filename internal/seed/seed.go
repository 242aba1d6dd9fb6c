package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/linemk/online-store/internal/domain/models"
	"github.com/linemk/online-store/internal/storage"
	"github.com/shopspring/decimal"
)

// Result - итог запуска сидера
type Result int

const (
	Seeded Result = iota
	AlreadySeeded
)

func (r Result) String() string {
	switch r {
	case Seeded:
		return "seeded"
	case AlreadySeeded:
		return "already seeded"
	default:
		return "unknown"
	}
}

// SampleProducts - тестовый каталог, которым заполняется пустая БД
func SampleProducts() []models.Product {
	return []models.Product{
		{
			Name:        "Wireless Headphones",
			Description: "High-quality wireless headphones with noise cancellation",
			Price:       decimal.RequireFromString("199.99"),
			Category:    "Electronics",
			Stock:       50,
		},
		{
			Name:        "Coffee Maker",
			Description: "Programmable coffee maker with 12-cup capacity",
			Price:       decimal.RequireFromString("89.99"),
			Category:    "Appliances",
			Stock:       25,
		},
		{
			Name:        "Running Shoes",
			Description: "Comfortable running shoes for daily training",
			Price:       decimal.RequireFromString("129.99"),
			Category:    "Sports",
			Stock:       30,
		},
		{
			Name:        "Laptop Bag",
			Description: "Durable laptop bag with multiple compartments",
			Price:       decimal.RequireFromString("49.99"),
			Category:    "Accessories",
			Stock:       40,
		},
		{
			Name:        "Smartphone",
			Description: "Latest smartphone with advanced camera features",
			Price:       decimal.RequireFromString("699.99"),
			Category:    "Electronics",
			Stock:       15,
		},
	}
}

// Run заполняет таблицу products тестовыми товарами, если она пуста.
// Повторный запуск ничего не меняет и возвращает AlreadySeeded.
// Если что-то идет не так, транзакция откатывается
func Run(ctx context.Context, log *slog.Logger, db *sql.DB, productRepo storage.ProductStorage) (Result, error) {
	const op = "seed.Run"
	logger := log.With(slog.String("op", op))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
	}()

	count, err := productRepo.CountProductsTx(ctx, tx)
	if err != nil {
		logger.Error("failed to count products", slog.Any("error", err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if count > 0 {
		logger.Info("database already seeded", slog.Int("products", count))
		return AlreadySeeded, nil
	}

	samples := SampleProducts()
	for i := range samples {
		if _, err := productRepo.CreateProductTx(ctx, tx, &samples[i]); err != nil {
			logger.Error("error seeding database", slog.String("product", samples[i].Name), slog.Any("error", err))
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	err = tx.Commit()
	committed = true
	if err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("database seeded successfully", slog.Int("products", len(samples)))
	return Seeded, nil
}
