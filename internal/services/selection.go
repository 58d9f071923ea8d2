package services

import (
	"context"
	"fmt"
	"strings"

	"consolidation-planner/internal/domain"
	"consolidation-planner/internal/platform/metrics"
	"consolidation-planner/internal/platform/obs"

	"golang.org/x/sync/errgroup"
)

const (
	// MaxExhaustiveRoutes bounds the 2^R enumeration. Exhaustive selection
	// does not scale; beyond this limit it refuses instead of switching
	// to a different algorithm.
	MaxExhaustiveRoutes = 25

	// FeasibilityTolerance absorbs floating-point error in load sums.
	FeasibilityTolerance = 1e-9

	// ctxCheckInterval is how many subsets are scanned between context checks.
	ctxCheckInterval = 1 << 14
)

// SelectionRequest is the input to a Solver.
type SelectionRequest struct {
	Costs        []domain.RouteCost
	RequiredTons float64
	// BaselineCost is added to every subset's local cost.
	BaselineCost float64
}

// Solver picks the minimum-cost subset of routes whose load meets the threshold.
// Select is the one pipeline stage that stops on ctx cancellation; every other
// stage runs to completion once started.
type Solver interface {
	Select(ctx context.Context, req SelectionRequest) (*domain.Selection, error)
	Name() string
}

// NewSolver returns the solver registered under name ("exhaustive" or "parallel").
func NewSolver(name string, workers int) (Solver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "exhaustive":
		return ExhaustiveSolver{}, nil
	case "parallel":
		return NewParallelExhaustiveSolver(workers), nil
	default:
		return nil, &domain.ConfigurationError{Field: "solver", Reason: fmt.Sprintf("unknown solver %q", name)}
	}
}

// ExhaustiveSolver enumerates subsets in ascending bitmask order and keeps
// the first one with the lowest cost.
type ExhaustiveSolver struct{}

func (ExhaustiveSolver) Name() string { return "exhaustive" }

func (ExhaustiveSolver) Select(ctx context.Context, req SelectionRequest) (_ *domain.Selection, err error) {
	defer obs.Time(ctx, "selection.exhaustive")(&err)

	if err := checkSelectable(req); err != nil {
		return nil, err
	}

	total := uint64(1) << len(req.Costs)
	best, err := scanSubsets(ctx, req, 1, total)
	if err != nil {
		return nil, err
	}

	return buildSelection(req, best)
}

// ParallelExhaustiveSolver splits the bitmask space into contiguous ranges,
// scans them concurrently and reduces in range order. It returns the same
// subset as ExhaustiveSolver, ties included.
type ParallelExhaustiveSolver struct {
	Workers int
}

func NewParallelExhaustiveSolver(workers int) ParallelExhaustiveSolver {
	if workers < 1 {
		workers = 1
	}
	return ParallelExhaustiveSolver{Workers: workers}
}

func (s ParallelExhaustiveSolver) Name() string { return "parallel" }

func (s ParallelExhaustiveSolver) Select(ctx context.Context, req SelectionRequest) (_ *domain.Selection, err error) {
	defer obs.Time(ctx, "selection.parallel")(&err)

	if err := checkSelectable(req); err != nil {
		return nil, err
	}

	total := uint64(1) << len(req.Costs)
	masks := total - 1
	workers := uint64(max(s.Workers, 1))
	if workers > masks {
		workers = masks
	}
	chunk := (masks + workers - 1) / workers

	results := make([]subsetResult, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := uint64(0); w < workers; w++ {
		lo := 1 + w*chunk
		hi := min(lo+chunk, total)
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			r, err := scanSubsets(gctx, req, lo, hi)
			if err != nil {
				return err
			}
			results[w] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var best subsetResult
	for _, r := range results {
		best.scanned += r.scanned
		if !r.found {
			continue
		}
		// Earlier ranges win ties, matching sequential enumeration.
		if !best.found || r.cost < best.cost {
			best.found = true
			best.mask = r.mask
			best.cost = r.cost
		}
	}

	return buildSelection(req, best)
}

type subsetResult struct {
	mask    uint64
	cost    float64
	found   bool
	scanned uint64
}

// checkSelectable rejects inputs that cannot or must not be enumerated.
func checkSelectable(req SelectionRequest) error {
	if !(req.RequiredTons > 0) {
		return &domain.ConfigurationError{Field: "weight_threshold", Reason: fmt.Sprintf("must be > 0, got %v", req.RequiredTons)}
	}
	if len(req.Costs) > MaxExhaustiveRoutes {
		return fmt.Errorf("select routes: %d routes exceeds limit %d: %w", len(req.Costs), MaxExhaustiveRoutes, domain.ErrTooManyRoutes)
	}

	available := 0.0
	for _, c := range req.Costs {
		available += c.LoadTons
	}
	// The full set carries the most load; if it falls short, every subset does.
	if len(req.Costs) == 0 || available+FeasibilityTolerance < req.RequiredTons {
		return &domain.InfeasibleSelectionError{
			AvailableTons: available,
			RequiredTons:  req.RequiredTons,
			RouteCount:    len(req.Costs),
		}
	}
	return nil
}

// scanSubsets evaluates masks in [lo, hi) and keeps the first minimum.
func scanSubsets(ctx context.Context, req SelectionRequest, lo, hi uint64) (subsetResult, error) {
	var best subsetResult
	for mask := lo; mask < hi; mask++ {
		if (mask-lo)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return subsetResult{}, err
			}
		}

		load, local := 0.0, 0.0
		for i, c := range req.Costs {
			if mask&(1<<uint(i)) != 0 {
				load += c.LoadTons
				local += c.LocalCost
			}
		}
		best.scanned++

		if load+FeasibilityTolerance < req.RequiredTons {
			continue
		}
		cost := req.BaselineCost + local
		if !best.found || cost < best.cost {
			best.found = true
			best.mask = mask
			best.cost = cost
		}
	}

	metrics.SubsetsExamined.Add(float64(best.scanned))
	return best, nil
}

func buildSelection(req SelectionRequest, best subsetResult) (*domain.Selection, error) {
	if !best.found {
		available := 0.0
		for _, c := range req.Costs {
			available += c.LoadTons
		}
		return nil, &domain.InfeasibleSelectionError{
			AvailableTons: available,
			RequiredTons:  req.RequiredTons,
			RouteCount:    len(req.Costs),
		}
	}

	sel := &domain.Selection{
		RouteIDs:     []int{},
		Costs:        []domain.RouteCost{},
		BaselineCost: req.BaselineCost,
		TotalCost:    best.cost,
		Subsets:      best.scanned,
	}
	for i, c := range req.Costs {
		if best.mask&(1<<uint(i)) == 0 {
			continue
		}
		sel.RouteIDs = append(sel.RouteIDs, c.RouteID)
		sel.Costs = append(sel.Costs, c)
		sel.LoadTons += c.LoadTons
		sel.LocalCost += c.LocalCost
	}

	return sel, nil
}
