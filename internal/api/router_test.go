package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"consolidation-planner/internal/adapters/distance"
	"consolidation-planner/internal/api/handlers"
	"consolidation-planner/internal/domain"
	"consolidation-planner/internal/platform/metrics"
	"consolidation-planner/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefaults() handlers.Defaults {
	p := domain.DefaultParams()
	p.CustomerCount = 12
	p.ClusterCount = 4
	p.TotalWeight = 30
	p.WeightThreshold = 20
	return handlers.Defaults{Params: p, ThresholdExplicit: true}
}

func TestRouterPlansEndToEnd(t *testing.T) {
	metrics.RegisterDefault()
	planner := &services.Planner{Solver: services.ExhaustiveSolver{}, Provider: distance.NewHaversineProvider()}
	router := NewRouter(planner, testDefaults(), nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(`{"seed": 7}`)))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.Contains(t, rr.Body.String(), `"total_cost"`)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(`{"weight_threshold": 31}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `http_requests_total{method="POST",path="/plans",status="200"}`)
}

func TestRouterKeepsIncomingRequestID(t *testing.T) {
	router := NewRouter(&services.Planner{}, testDefaults(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-ID"))
}

func TestRateLimiterRejectsBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, time.Minute)
	defer rl.Stop()

	planner := &services.Planner{Solver: services.ExhaustiveSolver{}, Provider: distance.NewHaversineProvider()}
	router := NewRouter(planner, testDefaults(), rl)

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(`{}`)).WithContext(context.Background())
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5001"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:5000"))

	// health stays reachable while plans are throttled
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
