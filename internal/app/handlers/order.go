package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/linemk/online-store/internal/domain/models"
	"github.com/linemk/online-store/internal/service"
	"github.com/linemk/online-store/internal/storage"
)

// OrderCreateRequest - тело POST /orders.
// Формат email не проверяется, количество должно быть положительным.
type OrderCreateRequest struct {
	CustomerName  *string `json:"customer_name" validate:"required"`
	CustomerEmail *string `json:"customer_email" validate:"required"`
	ProductID     *int64  `json:"product_id" validate:"required"`
	Quantity      *int    `json:"quantity" validate:"required,gt=0"`
}

// OrderResponse - заказ в ответах API
type OrderResponse struct {
	ID            int64     `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	ProductID     int64     `json:"product_id"`
	Quantity      int       `json:"quantity"`
	TotalPrice    float64   `json:"total_price"`
	CreatedAt     time.Time `json:"created_at"`
}

func newOrderResponse(o *models.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		ProductID:     o.ProductID,
		Quantity:      o.Quantity,
		TotalPrice:    o.TotalPrice.InexactFloat64(),
		CreatedAt:     o.CreatedAt,
	}
}

// ListOrdersHandler обрабатывает запрос GET /orders
func ListOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrdersHandler"
		logger := log.With(slog.String("op", op))

		orders, err := orderService.ListOrders(r.Context())
		if err != nil {
			logger.Error("failed to list orders", slog.Any("error", err))
			writeError(logger, w, http.StatusInternalServerError, detailInternalServerError)
			return
		}

		resp := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			resp = append(resp, newOrderResponse(o))
		}
		writeJSON(logger, w, http.StatusOK, resp)
	}
}

// GetOrderHandler обрабатывает запрос GET /orders/{id}
func GetOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetOrderHandler"
		logger := log.With(slog.String("op", op))

		id, fieldErrs := pathID(r)
		if fieldErrs != nil {
			writeValidationError(logger, w, fieldErrs)
			return
		}

		order, err := orderService.GetOrder(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrOrderNotFound) {
				writeError(logger, w, http.StatusNotFound, detailOrderNotFound)
				return
			}
			logger.Error("failed to get order", slog.Int64("orderID", id), slog.Any("error", err))
			writeError(logger, w, http.StatusInternalServerError, detailInternalServerError)
			return
		}

		writeJSON(logger, w, http.StatusOK, newOrderResponse(order))
	}
}

// CreateOrderHandler обрабатывает запрос POST /orders.
// Ошибки бизнес-логики: товар не найден → 404, не хватает остатка → 400.
func CreateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		var req OrderCreateRequest
		if fieldErrs := decodeAndValidate(r, &req); fieldErrs != nil {
			logger.Info("invalid request: validation error", slog.Any("errors", fieldErrs))
			writeValidationError(logger, w, fieldErrs)
			return
		}

		order, err := orderService.CreateOrder(r.Context(), &models.Order{
			CustomerName:  *req.CustomerName,
			CustomerEmail: *req.CustomerEmail,
			ProductID:     *req.ProductID,
			Quantity:      *req.Quantity,
		})
		switch {
		case errors.Is(err, storage.ErrProductNotFound):
			writeError(logger, w, http.StatusNotFound, detailProductNotFound)
			return
		case errors.Is(err, service.ErrInsufficientStock):
			writeError(logger, w, http.StatusBadRequest, detailInsufficientStock)
			return
		case errors.Is(err, service.ErrTotalOutOfRange):
			writeError(logger, w, http.StatusBadRequest, detailTotalOutOfRange)
			return
		case err != nil:
			logger.Error("failed to create order", slog.Any("error", err))
			writeError(logger, w, http.StatusInternalServerError, detailInternalServerError)
			return
		}

		writeJSON(logger, w, http.StatusOK, newOrderResponse(order))
	}
}
