// AngelaMos | 2026
// handler_test.go

package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/carterperez-dev/delivery-orders/internal/health"
)

type checkerFunc func(ctx context.Context) error

func (f checkerFunc) Ping(ctx context.Context) error { return f(ctx) }

func healthyChecker() health.Checker {
	return checkerFunc(func(context.Context) error { return nil })
}

func brokenChecker() health.Checker {
	return checkerFunc(func(context.Context) error {
		return errors.New("connection refused")
	})
}

func get(router chi.Router, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func newRouter(h *health.Handler) chi.Router {
	router := chi.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func TestLiveness(t *testing.T) {
	h := health.NewHandler()
	router := newRouter(h)

	rec := get(router, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)

	h.SetShutdown(true)
	rec = get(router, "/livez")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "shutting_down")
}

func TestReadiness_AllHealthy(t *testing.T) {
	h := health.NewHandler()
	h.AddChecker("database", healthyChecker())
	h.AddChecker("redis", healthyChecker())

	rec := get(newRouter(h), "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "database")
	assert.Contains(t, rec.Body.String(), "redis")
}

func TestReadiness_DegradedDependency(t *testing.T) {
	h := health.NewHandler()
	h.AddChecker("database", healthyChecker())
	h.AddChecker("redis", brokenChecker())

	rec := get(newRouter(h), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")
}

func TestReadiness_NotReady(t *testing.T) {
	h := health.NewHandler()
	h.SetReady(false)

	rec := get(newRouter(h), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_ready")
}
