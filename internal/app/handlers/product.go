package handlers

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/linemk/online-store/internal/domain/models"
	"github.com/linemk/online-store/internal/service"
	"github.com/linemk/online-store/internal/storage"
	"github.com/shopspring/decimal"
)

// ProductCreateRequest - тело POST /products. Поля-указатели, чтобы отличать
// отсутствующее поле от нулевого значения (stock: 0 допустим).
type ProductCreateRequest struct {
	Name        *string          `json:"name" validate:"required"`
	Description *string          `json:"description" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Category    *string          `json:"category" validate:"required"`
	Stock       *int             `json:"stock" validate:"required"`
}

// checkBody не пропускает цену, которую нельзя отдать числом JSON
func (r *ProductCreateRequest) checkBody() []FieldError {
	if !fitsJSONNumber(*r.Price) {
		return []FieldError{{
			Loc:  []string{"body", "price"},
			Msg:  "Input should be a finite number",
			Type: "finite_number",
		}}
	}
	return nil
}

func fitsJSONNumber(d decimal.Decimal) bool {
	f := d.InexactFloat64()
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// ProductResponse - товар в ответах API
type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

func newProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category:    p.Category,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
}

// ListProductsHandler обрабатывает запрос GET /products
func ListProductsHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListProductsHandler"
		logger := log.With(slog.String("op", op))

		products, err := productService.ListProducts(r.Context())
		if err != nil {
			logger.Error("failed to list products", slog.Any("error", err))
			writeError(logger, w, http.StatusInternalServerError, detailInternalServerError)
			return
		}

		resp := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, newProductResponse(p))
		}
		writeJSON(logger, w, http.StatusOK, resp)
	}
}

// GetProductHandler обрабатывает запрос GET /products/{id}
func GetProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetProductHandler"
		logger := log.With(slog.String("op", op))

		id, fieldErrs := pathID(r)
		if fieldErrs != nil {
			writeValidationError(logger, w, fieldErrs)
			return
		}

		product, err := productService.GetProduct(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				writeError(logger, w, http.StatusNotFound, detailProductNotFound)
				return
			}
			logger.Error("failed to get product", slog.Int64("productID", id), slog.Any("error", err))
			writeError(logger, w, http.StatusInternalServerError, detailInternalServerError)
			return
		}

		writeJSON(logger, w, http.StatusOK, newProductResponse(product))
	}
}

// CreateProductHandler обрабатывает запрос POST /products
func CreateProductHandler(log *slog.Logger, productService service.ProductService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateProductHandler"
		logger := log.With(slog.String("op", op))

		var req ProductCreateRequest
		if fieldErrs := decodeAndValidate(r, &req); fieldErrs != nil {
			logger.Info("invalid request: validation error", slog.Any("errors", fieldErrs))
			writeValidationError(logger, w, fieldErrs)
			return
		}

		product, err := productService.CreateProduct(r.Context(), &models.Product{
			Name:        *req.Name,
			Description: *req.Description,
			Price:       *req.Price,
			Category:    *req.Category,
			Stock:       *req.Stock,
		})
		if err != nil {
			logger.Error("failed to create product", slog.Any("error", err))
			writeError(logger, w, http.StatusInternalServerError, detailInternalServerError)
			return
		}

		writeJSON(logger, w, http.StatusOK, newProductResponse(product))
	}
}
