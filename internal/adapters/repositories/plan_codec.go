package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"consolidation-planner/internal/domain"
)

// createdAtLayout is fixed width so created_at sorts lexically in both dialects.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

// planPayload is the JSON document stored in plans.payload. Costs live in
// route_costs and are reattached on load.
type planPayload struct {
	Params          domain.Params     `json:"params"`
	Customers       []domain.Customer `json:"customers"`
	Routes          []domain.Route    `json:"routes"`
	SelectedRoutes  []int             `json:"selected_routes"`
	SelectedLoad    float64           `json:"selected_load"`
	BaselineCost    float64           `json:"baseline_cost"`
	LocalCost       float64           `json:"local_cost"`
	SubsetsExamined uint64            `json:"subsets_examined"`
}

func encodePlan(plan *domain.Plan) (createdAt string, payload []byte, err error) {
	if plan == nil {
		return "", nil, errors.New("encode plan: plan is nil")
	}
	if plan.PlanID == "" {
		return "", nil, errors.New("encode plan: plan id must not be empty")
	}

	payload, err = json.Marshal(planPayload{
		Params:          plan.Params,
		Customers:       plan.Customers,
		Routes:          plan.Routes,
		SelectedRoutes:  plan.Selection.RouteIDs,
		SelectedLoad:    plan.Selection.LoadTons,
		BaselineCost:    plan.Selection.BaselineCost,
		LocalCost:       plan.Selection.LocalCost,
		SubsetsExamined: plan.Selection.Subsets,
	})
	if err != nil {
		return "", nil, fmt.Errorf("encode plan %q: %w", plan.PlanID, err)
	}

	return plan.CreatedAt.UTC().Format(createdAtLayout), payload, nil
}

// costRowArgs flattens one cost row for insertion, in route_costs column order.
func costRowArgs(planID string, c domain.RouteCost, selected bool) []any {
	return []any{
		planID, c.RouteID, c.DistanceKm, c.LoadTons, c.Trips,
		c.FuelLiters, c.FuelCost, c.FixedCost, c.PieceCount, c.PieceCost,
		c.LocalCost, c.EmissionsKg, selected,
	}
}

func isSelected(sel domain.Selection, routeID int) bool {
	for _, id := range sel.RouteIDs {
		if id == routeID {
			return true
		}
	}
	return false
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanPlanHeader reads plan_id, fingerprint, created_at, total_cost, payload.
func scanPlanHeader(row rowScanner) (*domain.Plan, error) {
	var (
		plan      domain.Plan
		createdAt string
		payload   string
	)
	if err := row.Scan(&plan.PlanID, &plan.Fingerprint, &createdAt, &plan.Selection.TotalCost, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("scan plan: %w", err)
	}

	ts, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("scan plan %q: parse created_at: %w", plan.PlanID, err)
	}
	plan.CreatedAt = ts

	var p planPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("scan plan %q: decode payload: %w", plan.PlanID, err)
	}
	plan.Params = p.Params
	plan.Customers = p.Customers
	plan.Routes = p.Routes
	plan.Selection.RouteIDs = p.SelectedRoutes
	plan.Selection.LoadTons = p.SelectedLoad
	plan.Selection.BaselineCost = p.BaselineCost
	plan.Selection.LocalCost = p.LocalCost
	plan.Selection.Subsets = p.SubsetsExamined

	return &plan, nil
}

// attachCosts reads route_costs rows ordered by route_id into plan.
func attachCosts(rows *sql.Rows, plan *domain.Plan) error {
	defer rows.Close()

	plan.Costs = []domain.RouteCost{}
	plan.Selection.Costs = []domain.RouteCost{}
	for rows.Next() {
		var (
			row       domain.RouteCostRow
			trips     sql.NullInt64
			pieceCost sql.NullFloat64
			selected  bool
		)
		if err := rows.Scan(
			&row.RouteID, &row.DistanceKm, &row.LoadTons, &trips,
			&row.FuelLiters, &row.FuelCost, &row.FixedCost, &row.PieceCount, &pieceCost,
			&row.LocalCost, &row.EmissionsKg, &selected,
		); err != nil {
			return fmt.Errorf("scan route costs: %w", err)
		}
		if trips.Valid {
			t := int(trips.Int64)
			row.Trips = &t
		}
		if pieceCost.Valid {
			row.PieceCost = &pieceCost.Float64
		}

		c := domain.NewRouteCostFromRow(row)
		plan.Costs = append(plan.Costs, c)
		if selected {
			plan.Selection.Costs = append(plan.Selection.Costs, c)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("scan route costs: row iteration: %w", err)
	}

	return nil
}
