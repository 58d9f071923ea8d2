package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"consolidation-planner/internal/adapters/export"
	"consolidation-planner/internal/api/dto"
	"consolidation-planner/internal/domain"
	"consolidation-planner/internal/services"

	"github.com/sirupsen/logrus"
)

// Planner is the slice of services.Planner the HTTP layer depends on.
type Planner interface {
	PlanConsolidation(ctx context.Context, req services.PlanConsolidationRequest) (*domain.Plan, error)
	GetPlan(ctx context.Context, planID string) (*domain.Plan, error)
}

// Defaults are the server-side parameters each request's overrides apply to.
type Defaults struct {
	Params domain.Params
	// ThresholdExplicit keeps Params.WeightThreshold when a request only
	// overrides total_weight.
	ThresholdExplicit bool
}

type PlanHandler struct {
	Planner  Planner
	Defaults Defaults
}

// Plan runs (or reuses) a consolidation plan for the default parameters
// with the request's overrides applied.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	params := req.Apply(h.Defaults.Params, h.Defaults.ThresholdExplicit)

	plan, err := h.Planner.PlanConsolidation(r.Context(), services.PlanConsolidationRequest{
		Params: params,
		Fresh:  req.Fresh,
	})
	if err != nil {
		writeServiceError(w, r, "plan consolidation", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPlanResponse(plan))
}

// Get returns a stored plan by ID.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	plan, ok := h.load(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPlanResponse(plan))
}

// ModelData serves the AMPL data file for a stored plan's route costs.
func (h *PlanHandler) ModelData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	plan, ok := h.load(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "plan-"+plan.PlanID+".dat"))
	if err := export.WriteAMPL(w, plan.Costs); err != nil {
		logrus.WithError(err).WithField("plan_id", plan.PlanID).Warn("write model data failed")
	}
}

func (h *PlanHandler) load(w http.ResponseWriter, r *http.Request) (*domain.Plan, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "plan id is required")
		return nil, false
	}

	plan, err := h.Planner.GetPlan(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "get plan", err)
		return nil, false
	}
	return plan, true
}
