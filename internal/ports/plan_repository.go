package ports

import (
	"context"

	"consolidation-planner/internal/domain"
)

// Port: a boundary for persisting completed planning runs.
// Lookups that find nothing return domain.ErrPlanNotFound.
type PlanRepository interface {
	SavePlan(ctx context.Context, plan *domain.Plan) error
	GetPlan(ctx context.Context, planID string) (*domain.Plan, error)
	// Return the most recent plan computed for a parameter fingerprint.
	FindByFingerprint(ctx context.Context, fingerprint string) (*domain.Plan, error)
}

// Port: a fast read-through layer in front of PlanRepository, keyed by fingerprint.
type PlanCache interface {
	Get(ctx context.Context, fingerprint string) (*domain.Plan, error)
	Put(ctx context.Context, plan *domain.Plan) error
}
