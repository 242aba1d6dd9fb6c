package handlers

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

// ErrorResponse - тело ответа с ошибкой: {"detail": "..."}
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationErrorResponse - тело ответа 422 с ошибками по полям
type ValidationErrorResponse struct {
	Detail []FieldError `json:"detail"`
}

// FieldError описывает одну ошибку валидации: где, что и какого типа
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

const (
	detailProductNotFound     = "Product not found"
	detailOrderNotFound       = "Order not found"
	detailInsufficientStock   = "Insufficient stock"
	detailTotalOutOfRange     = "Order total out of range"
	detailInternalServerError = "Internal Server Error"
)

// writeJSON сначала сериализует ответ целиком и только потом пишет статус:
// если значение не кодируется, клиент получает 500, а не 200 с пустым телом
func writeJSON(logger *slog.Logger, w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
		status = http.StatusInternalServerError
		body = []byte(`{"detail":"` + detailInternalServerError + `"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		logger.Error("failed to write response", slog.Any("error", err))
	}
}

func writeError(logger *slog.Logger, w http.ResponseWriter, status int, detail string) {
	writeJSON(logger, w, status, ErrorResponse{Detail: detail})
}

func writeValidationError(logger *slog.Logger, w http.ResponseWriter, fieldErrors []FieldError) {
	writeJSON(logger, w, http.StatusUnprocessableEntity, ValidationErrorResponse{Detail: fieldErrors})
}
