package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/linemk/online-store/internal/config"
	"github.com/linemk/online-store/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProducts struct{}

func (stubProducts) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return nil, nil
}

func (stubProducts) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return &models.Product{ID: id, Name: "Widget", CreatedAt: time.Now()}, nil
}

func (stubProducts) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	p.ID = 1
	return p, nil
}

type stubOrders struct{}

func (stubOrders) ListOrders(ctx context.Context) ([]*models.Order, error) {
	return nil, nil
}

func (stubOrders) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return &models.Order{ID: id}, nil
}

func (stubOrders) CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error) {
	o.ID = 1
	return o, nil
}

func testConfig(requests int) *config.Config {
	return &config.Config{
		Env:       "local",
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		RateLimit: config.RateLimitConfig{Requests: requests, Window: time.Minute},
	}
}

func newTestRouter(requests int) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(log, testConfig(requests), Services{Products: stubProducts{}, Orders: stubOrders{}})
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(0)

	cases := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/products", http.StatusOK},
		{http.MethodGet, "/products/7", http.StatusOK},
		{http.MethodGet, "/orders", http.StatusOK},
		{http.MethodGet, "/orders/7", http.StatusOK},
		{http.MethodGet, "/unknown", http.StatusNotFound},
		{http.MethodDelete, "/products/7", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(0)

	req := httptest.NewRequest(http.MethodOptions, "/orders", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_CORSUnknownOrigin(t *testing.T) {
	router := newTestRouter(0)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(0)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/1", nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.True(t, strings.Contains(body, "store_http_requests_total"))
	assert.True(t, strings.Contains(body, `route="/products/{id}"`))
}

func TestRouter_RateLimit(t *testing.T) {
	router := newTestRouter(2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouter_RateLimitIgnoresForwardedForByDefault(t *testing.T) {
	router := newTestRouter(2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		req.Header.Set("X-Forwarded-For", "192.0.2."+strconv.Itoa(i+1))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouter_RateLimitBehindTrustedProxy(t *testing.T) {
	cfg := testConfig(1)
	cfg.HTTPServer.TrustProxy = true
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(log, cfg, Services{Products: stubProducts{}, Orders: stubOrders{}})

	// за прокси все запросы приходят с одного RemoteAddr, клиенты различаются по заголовку
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.3:1234"
		req.Header.Set("X-Forwarded-For", "192.0.2."+strconv.Itoa(i+1))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}
