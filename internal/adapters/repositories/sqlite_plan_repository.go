package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"consolidation-planner/internal/domain"
	"consolidation-planner/internal/platform/obs"
)

// SQLite-backed implementation of the PlanRepository port.
type SqlitePlanRepository struct{ DB *sql.DB }

func NewSqlitePlanRepository(db *sql.DB) *SqlitePlanRepository {
	return &SqlitePlanRepository{DB: db}
}

// Store a plan and its route cost rows, replacing any plan with the same ID.
func (s *SqlitePlanRepository) SavePlan(ctx context.Context, plan *domain.Plan) (err error) {
	defer obs.Time(ctx, "plan.sqlite.SavePlan")(&err)

	if s.DB == nil {
		return errors.New("sqlite plan repository: DB is nil")
	}

	createdAt, payload, err := encodePlan(plan)
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save plan: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM route_costs WHERE plan_id = ?;`, plan.PlanID); err != nil {
		return fmt.Errorf("save plan: clear route costs: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO plans (
		plan_id,
		fingerprint,
		created_at,
		total_cost,
		payload
	)
	VALUES (?, ?, ?, ?, ?);
	`
	if _, err := tx.ExecContext(ctx, query, plan.PlanID, plan.Fingerprint, createdAt, plan.Selection.TotalCost, string(payload)); err != nil {
		return fmt.Errorf("save plan %q: insert plan: %w", plan.PlanID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO route_costs (
		plan_id, route_id, distance_km, load_tons, trips,
		fuel_l, fuel_cost, fixed_cost, piece_count, piece_cost,
		local_cost, co2_kg, selected
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save plan: prepare route costs: %w", err)
	}
	defer stmt.Close()

	for _, c := range plan.Costs {
		if _, err := stmt.ExecContext(ctx, costRowArgs(plan.PlanID, c, isSelected(plan.Selection, c.RouteID))...); err != nil {
			return fmt.Errorf("save plan %q: insert route_id=%d: %w", plan.PlanID, c.RouteID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save plan: commit tx: %w", err)
	}

	return nil
}

// Return the plan stored under planID.
func (s *SqlitePlanRepository) GetPlan(ctx context.Context, planID string) (_ *domain.Plan, err error) {
	defer obs.Time(ctx, "plan.sqlite.GetPlan")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite plan repository: DB is nil")
	}

	query := `
	SELECT plan_id, fingerprint, created_at, total_cost, payload
	FROM plans
	WHERE plan_id = ?;
	`
	plan, err := scanPlanHeader(s.DB.QueryRowContext(ctx, query, planID))
	if err != nil {
		return nil, err
	}

	return s.withCosts(ctx, plan)
}

// Return the most recent plan computed for fingerprint.
func (s *SqlitePlanRepository) FindByFingerprint(ctx context.Context, fingerprint string) (_ *domain.Plan, err error) {
	defer obs.Time(ctx, "plan.sqlite.FindByFingerprint")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite plan repository: DB is nil")
	}

	query := `
	SELECT plan_id, fingerprint, created_at, total_cost, payload
	FROM plans
	WHERE fingerprint = ?
	ORDER BY created_at DESC
	LIMIT 1;
	`
	plan, err := scanPlanHeader(s.DB.QueryRowContext(ctx, query, fingerprint))
	if err != nil {
		return nil, err
	}

	return s.withCosts(ctx, plan)
}

func (s *SqlitePlanRepository) withCosts(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	query := `
	SELECT
		route_id, distance_km, load_tons, trips,
		fuel_l, fuel_cost, fixed_cost, piece_count, piece_cost,
		local_cost, co2_kg, selected
	FROM route_costs
	WHERE plan_id = ?
	ORDER BY route_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, plan.PlanID)
	if err != nil {
		return nil, fmt.Errorf("load plan %q: query route_costs table: %w", plan.PlanID, err)
	}
	if err := attachCosts(rows, plan); err != nil {
		return nil, fmt.Errorf("load plan %q: %w", plan.PlanID, err)
	}

	return plan, nil
}
