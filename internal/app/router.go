package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/linemk/online-store/internal/app/handlers"
	"github.com/linemk/online-store/internal/config"
	"github.com/linemk/online-store/internal/lib/logger/handlers/urllog"
	"github.com/linemk/online-store/internal/metrics"
	"github.com/linemk/online-store/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services - всё, что нужно роутеру от слоя бизнес-логики
type Services struct {
	Products service.ProductService
	Orders   service.OrderService
}

// NewRouter собирает chi-роутер со всеми middleware и эндпоинтами
func NewRouter(log *slog.Logger, cfg *config.Config, svc Services) http.Handler {
	router := chi.NewRouter()

	// настройка middleware
	router.Use(middleware.RequestID)
	// без доверенного прокси лимит считается по RemoteAddr, иначе его обходят подменой X-Forwarded-For
	if cfg.HTTPServer.TrustProxy {
		router.Use(middleware.RealIP)
	}
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	if cfg.RateLimit.Requests > 0 {
		router.Use(httprate.LimitByIP(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	router.Get("/", handlers.RootHandler(log))
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/products", func(r chi.Router) {
		r.Get("/", handlers.ListProductsHandler(log, svc.Products))
		r.Post("/", handlers.CreateProductHandler(log, svc.Products))
		r.Get("/{id}", handlers.GetProductHandler(log, svc.Products))
	})

	router.Route("/orders", func(r chi.Router) {
		r.Get("/", handlers.ListOrdersHandler(log, svc.Orders))
		r.Post("/", handlers.CreateOrderHandler(log, svc.Orders))
		r.Get("/{id}", handlers.GetOrderHandler(log, svc.Orders))
	})

	return router
}
