package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/interface/handler"
	"vandra-service/pkg/logger"
	"vandra-service/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMonitor struct{}

func (stubMonitor) ProcessAlert(ctx context.Context, alertID string) entity.MonitoringResult {
	return entity.MonitoringResult{AlertID: alertID}
}

func (stubMonitor) ProcessAllActiveAlerts(ctx context.Context, trigger string) (entity.BatchSummary, error) {
	return entity.BatchSummary{Processed: 2}, nil
}

func (stubMonitor) ProcessAlertBatch(ctx context.Context, alertIDs []string) []entity.MonitoringResult {
	return nil
}

func (stubMonitor) LatestRun(ctx context.Context) (*entity.MonitorRun, error) {
	return nil, entity.ErrNotFound
}

type noTokens struct{}

func (noTokens) ParseToken(token string) (string, error) {
	return "", errors.New("invalid token")
}

func newTestRouter(t *testing.T, cfg Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNopLogger()
	cfg.Tokens = noTokens{}
	h := Handlers{
		Jobs:    handler.NewJobsHandler(stubMonitor{}, log),
		Auth:    handler.NewAuthHandler(nil, log),
		Chat:    handler.NewChatHandler(nil, nil, log),
		Flights: handler.NewFlightHandler(nil, log),
		Alerts:  handler.NewAlertHandler(nil, log),
	}
	return NewRouter(cfg, h, log)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, Config{})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Healthy", w.Body.String())
}

func TestMetricsUsesGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics("vandra", reg)
	m.ObserveAlert(time.Second, 1)

	r := newTestRouter(t, Config{Gatherer: reg})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "vandra_")
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t, Config{FrontendURL: "https://app.vandra.io, https://staging.vandra.io"})

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		return serve(r, req)
	}

	for _, origin := range []string{"https://staging.vandra.io", "http://localhost:3000"} {
		w := preflight(origin)
		assert.Equal(t, http.StatusNoContent, w.Code, origin)
		assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	}

	w := preflight("https://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestJobsRequireAuthorization(t *testing.T) {
	r := newTestRouter(t, Config{CronSecret: "s3cret"})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/jobs/monitor-alerts", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":{"code":"UNAUTHORIZED","message":"Invalid authorization"}}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/monitor-alerts", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"processed":2,"totalDeals":0,"errors":0}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/jobs/monitor-alerts/latest", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	assert.Equal(t, http.StatusNotFound, serve(r, req).Code)
}

func TestPrivateRoutesRequireSession(t *testing.T) {
	r := newTestRouter(t, Config{})

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/chat/extract"},
		{http.MethodPost, "/api/flights/search"},
		{http.MethodGet, "/api/alerts"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		req.Header.Set("Authorization", "Bearer whatever")
		w := serve(r, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
	}
}

func TestAllowedOrigins(t *testing.T) {
	assert.Equal(t, []string{"http://localhost:3000"}, allowedOrigins(""))
	assert.Equal(t, []string{"http://localhost:3000", "https://a.io", "https://b.io"},
		allowedOrigins("https://a.io, ,https://b.io,http://localhost:3000"))
}
