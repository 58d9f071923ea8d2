package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"consolidation-planner/internal/api/dto"
	"consolidation-planner/internal/domain"
	"consolidation-planner/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlanner struct {
	got   services.PlanConsolidationRequest
	plan  *domain.Plan
	err   error
	plans map[string]*domain.Plan
}

func (f *fakePlanner) PlanConsolidation(_ context.Context, req services.PlanConsolidationRequest) (*domain.Plan, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.plan, nil
}

func (f *fakePlanner) GetPlan(_ context.Context, id string) (*domain.Plan, error) {
	if p, ok := f.plans[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPlanNotFound
}

func stubPlan() *domain.Plan {
	c := domain.RouteCost{RouteID: 1, DistanceKm: 20.456, LoadTons: 9.87654, Trips: 1, PieceCount: 494, LocalCost: 3472.1234}
	return &domain.Plan{
		PlanID:    "p-1",
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Params:    domain.DefaultParams(),
		Routes:    []domain.Route{{RouteID: 1, VisitOrder: []int{2, 1}, DistanceKm: 20.456, LoadTons: 9.87654}},
		Costs:     []domain.RouteCost{c},
		Selection: domain.Selection{RouteIDs: []int{1}, Costs: []domain.RouteCost{c}, TotalCost: 21072.1234},
	}
}

func newMux(h *PlanHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/plans", h.Plan)
	mux.HandleFunc("/plans/{id}", h.Get)
	mux.HandleFunc("/plans/{id}/model.dat", h.ModelData)
	return mux
}

func TestPlanAppliesOverrides(t *testing.T) {
	f := &fakePlanner{plan: stubPlan()}
	h := &PlanHandler{Planner: f, Defaults: Defaults{Params: domain.DefaultParams()}}

	body := `{"cluster_count": 6, "total_weight": 60, "depot": {"lat": 1.5}, "fresh": true}`
	rr := httptest.NewRecorder()
	newMux(h).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 6, f.got.Params.ClusterCount)
	assert.Equal(t, 60.0, f.got.Params.TotalWeight)
	assert.Equal(t, 60.0, f.got.Params.WeightThreshold)
	assert.Equal(t, 1.5, f.got.Params.Depot.Lat)
	assert.Equal(t, domain.DefaultDepot.Lon, f.got.Params.Depot.Lon)
	assert.True(t, f.got.Fresh)

	var res dto.PlanResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "p-1", res.PlanID)
	assert.Equal(t, 20.46, res.Routes[0].DistanceKm)
	assert.Equal(t, 9.877, res.Costs[0].LoadTons)
	assert.Equal(t, 21072.12, res.Selection.TotalCost)
	assert.Equal(t, []int{1}, res.Selection.RouteIDs)
}

func TestPlanKeepsExplicitThresholdOnTotalOverride(t *testing.T) {
	f := &fakePlanner{plan: stubPlan()}
	base := domain.DefaultParams()
	base.WeightThreshold = 60
	h := &PlanHandler{Planner: f, Defaults: Defaults{Params: base, ThresholdExplicit: true}}

	rr := httptest.NewRecorder()
	newMux(h).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(`{"total_weight": 100}`)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 100.0, f.got.Params.TotalWeight)
	assert.Equal(t, 60.0, f.got.Params.WeightThreshold)
}

func TestPlanRequestThresholdWins(t *testing.T) {
	f := &fakePlanner{plan: stubPlan()}
	h := &PlanHandler{Planner: f, Defaults: Defaults{Params: domain.DefaultParams(), ThresholdExplicit: true}}

	body := `{"total_weight": 100, "weight_threshold": 90}`
	rr := httptest.NewRecorder()
	newMux(h).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 90.0, f.got.Params.WeightThreshold)
}

func TestPlanEmptyBodyUsesDefaults(t *testing.T) {
	f := &fakePlanner{plan: stubPlan()}
	h := &PlanHandler{Planner: f, Defaults: Defaults{Params: domain.DefaultParams()}}

	rr := httptest.NewRecorder()
	newMux(h).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/plans", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.DefaultParams(), f.got.Params)
}

func TestPlanErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"configuration", &domain.ConfigurationError{Field: "road_factor", Reason: "must be >= 1"}, http.StatusBadRequest},
		{"infeasible", &domain.InfeasibleSelectionError{AvailableTons: 10, RequiredTons: 20, RouteCount: 2}, http.StatusUnprocessableEntity},
		{"too many routes", domain.ErrTooManyRoutes, http.StatusUnprocessableEntity},
		{"timeout", context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &PlanHandler{Planner: &fakePlanner{err: tt.err}, Defaults: Defaults{Params: domain.DefaultParams()}}

			rr := httptest.NewRecorder()
			newMux(h).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(`{}`)))

			assert.Equal(t, tt.want, rr.Code)
			assert.NotContains(t, rr.Body.String(), "boom")
		})
	}
}

func TestPlanRejectsBadRequests(t *testing.T) {
	h := &PlanHandler{Planner: &fakePlanner{plan: stubPlan()}, Defaults: Defaults{Params: domain.DefaultParams()}}
	mux := newMux(h)

	for _, body := range []string{`{"unknown": 1}`, `{"seed": "x"}`, `{} {}`} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/plans", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
}

func TestGetPlan(t *testing.T) {
	h := &PlanHandler{Planner: &fakePlanner{plans: map[string]*domain.Plan{"p-1": stubPlan()}}}
	mux := newMux(h)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/plans/p-1", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"plan_id":"p-1"`)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/plans/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestModelData(t *testing.T) {
	h := &PlanHandler{Planner: &fakePlanner{plans: map[string]*domain.Plan{"p-1": stubPlan()}}}

	rr := httptest.NewRecorder()
	newMux(h).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/plans/p-1/model.dat", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "data;\n"))
	assert.Contains(t, rr.Body.String(), "1 20.46\n")
	assert.Contains(t, rr.Body.String(), "1 494\n")
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
