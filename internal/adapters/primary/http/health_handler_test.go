package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/mentor-portal/internal/core/ports"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	healthy := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	serve := func(checks map[string]ports.HealthChecker, path string) *httptest.ResponseRecorder {
		r := chi.NewRouter()
		NewHealthHandler(checks, "test").RegisterRoutes(r)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
		return rec
	}

	t.Run("liveness ignores dependencies", func(t *testing.T) {
		rec := serve(map[string]ports.HealthChecker{"backend": down}, "/health/live")
		assert.Equal(t, stdhttp.StatusOK, rec.Code)
	})

	t.Run("ready", func(t *testing.T) {
		rec := serve(map[string]ports.HealthChecker{"backend": healthy, "cache": healthy}, "/health/ready")

		require.Equal(t, stdhttp.StatusOK, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Len(t, resp.Checks, 2)
	})

	t.Run("not ready", func(t *testing.T) {
		rec := serve(map[string]ports.HealthChecker{"backend": healthy, "cache": down}, "/health/ready")

		require.Equal(t, stdhttp.StatusServiceUnavailable, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "connection refused", resp.Checks["cache"].Message)
	})

	t.Run("detailed health degrades", func(t *testing.T) {
		rec := serve(map[string]ports.HealthChecker{"backend": down}, "/health")

		assert.Equal(t, stdhttp.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"degraded"`)
		assert.Contains(t, rec.Body.String(), "goroutines")
	})
}
