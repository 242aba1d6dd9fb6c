package handlers

import (
	"log/slog"
	"net/http"
)

// RootResponse - приветствие на GET /
type RootResponse struct {
	Message string `json:"message"`
}

const welcomeMessage = "Welcome to the Online Store API"

// RootHandler обрабатывает запрос GET /
func RootHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(log.With(slog.String("op", "handlers.RootHandler")), w, http.StatusOK, RootResponse{Message: welcomeMessage})
	}
}
