package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/linemk/online-store/internal/domain/models"
	"github.com/linemk/online-store/internal/metrics"
	"github.com/linemk/online-store/internal/storage"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrTotalOutOfRange - сумма заказа не помещается в число JSON
	ErrTotalOutOfRange = errors.New("order total out of range")
)

// OrderService определяет интерфейс для работы с заказами.
type OrderService interface {
	ListOrders(ctx context.Context) ([]*models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
}

type orderService struct {
	log         *slog.Logger
	db          *sql.DB
	productRepo storage.ProductStorage
	orderRepo   storage.OrderStorage
}

func NewOrderService(log *slog.Logger, db *sql.DB, productRepo storage.ProductStorage, orderRepo storage.OrderStorage) OrderService {
	return &orderService{
		log:         log,
		db:          db,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

func (s *orderService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	const op = "service.OrderService.ListOrders"

	orders, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	const op = "service.OrderService.GetOrder"

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// CreateOrder оформляет заказ: проверяет остаток, списывает его и сохраняет заказ.
// Всё выполняется в одной транзакции, строка товара блокируется на время проверки,
// поэтому параллельные заказы на один товар не могут увести остаток в минус.
func (s *orderService) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	const op = "service.OrderService.CreateOrder"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("productID", order.ProductID),
		slog.Int("quantity", order.Quantity),
	)
	logger.Info("starting order transaction")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
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

	// Получаем товар через транзакцию с блокировкой строки
	product, err := s.productRepo.LockProductByIDTx(ctx, tx, order.ProductID)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			metrics.OrderRejections.WithLabelValues("not_found").Inc()
			logger.Warn("product not found")
		} else {
			logger.Error("failed to get product", slog.Any("error", err))
		}
		return nil, fmt.Errorf("%s: failed to get product: %w", op, err)
	}

	// Проверяем, достаточно ли товара на складе
	if product.Stock < order.Quantity {
		metrics.OrderRejections.WithLabelValues("insufficient_stock").Inc()
		logger.Warn("insufficient stock", slog.Int("stock", product.Stock))
		return nil, fmt.Errorf("%s: %w", op, ErrInsufficientStock)
	}

	order.TotalPrice = product.Price.Mul(decimal.NewFromInt(int64(order.Quantity)))
	if math.IsInf(order.TotalPrice.InexactFloat64(), 0) {
		metrics.OrderRejections.WithLabelValues("total_out_of_range").Inc()
		logger.Warn("order total out of range", slog.String("price", product.Price.String()))
		return nil, fmt.Errorf("%s: %w", op, ErrTotalOutOfRange)
	}

	// Списываем остаток
	newStock := product.Stock - order.Quantity
	if err := s.productRepo.UpdateProductStockTx(ctx, tx, product.ID, newStock); err != nil {
		logger.Error("failed to update product stock", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update product stock: %w", op, err)
	}

	// Создаем заказ
	created, err := s.orderRepo.CreateOrderTx(ctx, tx, order)
	if err != nil {
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	// Коммит транзакции; после него Rollback уже не нужен, даже если Commit вернул ошибку
	err = tx.Commit()
	committed = true
	if err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	metrics.OrdersCreated.Inc()
	logger.Info("order created", slog.Int64("orderID", created.ID), slog.String("total", created.TotalPrice.String()))
	return created, nil
}
