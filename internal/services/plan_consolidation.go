package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"consolidation-planner/internal/domain"
	"consolidation-planner/internal/platform/metrics"
	"consolidation-planner/internal/platform/obs"
	"consolidation-planner/internal/ports"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type PlanConsolidationRequest struct {
	Params domain.Params
	// Fresh skips plan reuse and always recomputes.
	Fresh bool
}

// Planner runs the consolidation pipeline and reuses stored plans for
// parameter sets it has already solved. Repo and Cache are optional.
type Planner struct {
	Solver   Solver
	Provider ports.DistanceProvider
	Repo     ports.PlanRepository
	Cache    ports.PlanCache
	// Now is overridable for tests.
	Now func() time.Time
}

// RunPipeline executes Generator -> Route Builder -> Cost Model -> Solver for p.
// It performs no I/O and is deterministic for a given p.
func RunPipeline(
	ctx context.Context,
	p domain.Params,
	provider ports.DistanceProvider,
	solver Solver,
) (_ *domain.Plan, err error) {
	defer obs.Time(ctx, "pipeline.run")(&err)

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if provider == nil || solver == nil {
		return nil, errors.New("run pipeline: provider and solver must be non-nil")
	}

	customers, err := GenerateCustomers(rand.New(rand.NewSource(p.Seed)), p)
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}

	labels, err := ClusterCustomers(rand.New(rand.NewSource(p.Seed)), customers, p.ClusterCount)
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}

	routes, err := PlanRoutes(p.Depot, customers, labels, p.ClusterCount, p.RoadFactor, provider)
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}

	costs, err := CostRoutes(routes, p)
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}

	sel, err := solver.Select(ctx, SelectionRequest{
		Costs:        costs,
		RequiredTons: p.WeightThreshold,
		BaselineCost: p.BaselineCost(),
	})
	if err != nil {
		return nil, fmt.Errorf("run pipeline: select routes: %w", err)
	}

	return &domain.Plan{
		Fingerprint: p.Fingerprint(),
		Params:      p,
		Customers:   customers,
		Routes:      routes,
		Costs:       costs,
		Selection:   *sel,
	}, nil
}

// PlanConsolidation returns the plan for req.Params, computing and storing it
// unless an equivalent plan is already cached or stored.
func (pl *Planner) PlanConsolidation(ctx context.Context, req PlanConsolidationRequest) (_ *domain.Plan, err error) {
	defer obs.Time(ctx, "planner.PlanConsolidation")(&err)

	if err := req.Params.Validate(); err != nil {
		return nil, err
	}
	fp := req.Params.Fingerprint()

	if !req.Fresh {
		if plan := pl.lookup(ctx, fp); plan != nil {
			return plan, nil
		}
	}

	plan, err := RunPipeline(ctx, req.Params, pl.Provider, pl.Solver)
	if err != nil {
		return nil, fmt.Errorf("plan consolidation: %w", err)
	}

	now := time.Now
	if pl.Now != nil {
		now = pl.Now
	}
	plan.PlanID = uuid.New().String()
	plan.CreatedAt = now().UTC()

	if pl.Repo != nil {
		if err := pl.Repo.SavePlan(ctx, plan); err != nil {
			return nil, fmt.Errorf("plan consolidation: save plan: %w", err)
		}
	}
	if pl.Cache != nil {
		if err := pl.Cache.Put(ctx, plan); err != nil {
			logrus.WithError(err).WithField("plan_id", plan.PlanID).Warn("plan cache write failed")
		}
	}

	return plan, nil
}

// GetPlan loads a stored plan by ID.
func (pl *Planner) GetPlan(ctx context.Context, planID string) (*domain.Plan, error) {
	if pl.Repo == nil {
		return nil, fmt.Errorf("get plan %q: %w", planID, domain.ErrPlanNotFound)
	}
	plan, err := pl.Repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("get plan %q: %w", planID, err)
	}
	return plan, nil
}

// lookup checks the cache, then the repository. Lookup failures are logged
// and treated as misses.
func (pl *Planner) lookup(ctx context.Context, fp string) *domain.Plan {
	if pl.Cache != nil {
		plan, err := pl.Cache.Get(ctx, fp)
		switch {
		case err == nil:
			metrics.PlanCacheLookups.WithLabelValues("hit").Inc()
			return plan
		case errors.Is(err, domain.ErrPlanNotFound):
			metrics.PlanCacheLookups.WithLabelValues("miss").Inc()
		default:
			metrics.PlanCacheLookups.WithLabelValues("error").Inc()
			logrus.WithError(err).Warn("plan cache read failed")
		}
	}

	if pl.Repo == nil {
		return nil
	}
	plan, err := pl.Repo.FindByFingerprint(ctx, fp)
	if err != nil {
		if !errors.Is(err, domain.ErrPlanNotFound) {
			logrus.WithError(err).Warn("plan repository lookup failed")
		}
		return nil
	}

	if pl.Cache != nil {
		if err := pl.Cache.Put(ctx, plan); err != nil {
			logrus.WithError(err).Warn("plan cache backfill failed")
		}
	}
	return plan
}
