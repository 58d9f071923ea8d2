package api

import (
	"net/http"

	"consolidation-planner/internal/api/handlers"
		"consolidation-planner/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// A nil limiter disables rate limiting on plan computation.
func NewRouter(planner handlers.Planner, defaults handlers.Defaults, limiter *RateLimiter) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{
		Planner:  planner,
		Defaults: defaults,
	}

	plan := planHandler.Plan
	if limiter != nil {
		plan = limiter.Wrap(plan)
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/plans", plan)
	mux.HandleFunc("/plans/{id}", planHandler.Get)
	mux.HandleFunc("/plans/{id}/model.dat", planHandler.ModelData)

	return loggingMiddleware(mux)
}
