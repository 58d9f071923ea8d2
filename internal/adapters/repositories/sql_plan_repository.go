package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"consolidation-planner/internal/domain"
	"consolidation-planner/internal/platform/obs"
)

// SQLPlanRepository is the Postgres implementation of the PlanRepository port.
type SQLPlanRepository struct {
	DB *sql.DB
}

func NewSQLPlanRepository(db *sql.DB) *SQLPlanRepository {
	return &SQLPlanRepository{DB: db}
}

// Store a plan and its route cost rows, replacing any plan with the same ID.
func (s *SQLPlanRepository) SavePlan(ctx context.Context, plan *domain.Plan) (err error) {
	defer obs.Time(ctx, "plan.sql.SavePlan")(&err)

	if s.DB == nil {
		return errors.New("plan repository: db is nil")
	}

	createdAt, payload, err := encodePlan(plan)
	if err != nil {
		return fmt.Errorf("save plan: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save plan: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO plans (plan_id, fingerprint, created_at, total_cost, payload)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (plan_id) DO UPDATE
	SET fingerprint = EXCLUDED.fingerprint,
		created_at = EXCLUDED.created_at,
		total_cost = EXCLUDED.total_cost,
		payload = EXCLUDED.payload;
	`, plan.PlanID, plan.Fingerprint, createdAt, plan.Selection.TotalCost, string(payload)); err != nil {
		return fmt.Errorf("save plan %q: upsert plan: %w", plan.PlanID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM route_costs WHERE plan_id = $1;`, plan.PlanID); err != nil {
		return fmt.Errorf("save plan: clear route costs: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO route_costs (
		plan_id, route_id, distance_km, load_tons, trips,
		fuel_l, fuel_cost, fixed_cost, piece_count, piece_cost,
		local_cost, co2_kg, selected
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`)
	if err != nil {
		return fmt.Errorf("save plan: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range plan.Costs {
		if _, err := stmt.ExecContext(ctx, costRowArgs(plan.PlanID, c, isSelected(plan.Selection, c.RouteID))...); err != nil {
			return fmt.Errorf("save plan %q: insert route_id=%d: %w", plan.PlanID, c.RouteID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save plan commit: %w", err)
	}

	return nil
}

// Return the plan stored under planID.
func (s *SQLPlanRepository) GetPlan(ctx context.Context, planID string) (_ *domain.Plan, err error) {
	defer obs.Time(ctx, "plan.sql.GetPlan")(&err)

	if s.DB == nil {
		return nil, errors.New("plan repository: db is nil")
	}

	plan, err := scanPlanHeader(s.DB.QueryRowContext(ctx, `
	SELECT plan_id, fingerprint, created_at, total_cost, payload
	FROM plans
	WHERE plan_id = $1;
	`, planID))
	if err != nil {
		return nil, err
	}

	return s.withCosts(ctx, plan)
}

// Return the most recent plan computed for fingerprint.
func (s *SQLPlanRepository) FindByFingerprint(ctx context.Context, fingerprint string) (_ *domain.Plan, err error) {
	defer obs.Time(ctx, "plan.sql.FindByFingerprint")(&err)

	if s.DB == nil {
		return nil, errors.New("plan repository: db is nil")
	}

	plan, err := scanPlanHeader(s.DB.QueryRowContext(ctx, `
	SELECT plan_id, fingerprint, created_at, total_cost, payload
	FROM plans
	WHERE fingerprint = $1
	ORDER BY created_at DESC
	LIMIT 1;
	`, fingerprint))
	if err != nil {
		return nil, err
	}

	return s.withCosts(ctx, plan)
}

func (s *SQLPlanRepository) withCosts(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		route_id, distance_km, load_tons, trips,
		fuel_l, fuel_cost, fixed_cost, piece_count, piece_cost,
		local_cost, co2_kg, selected
	FROM route_costs
	WHERE plan_id = $1
	ORDER BY route_id;
	`, plan.PlanID)
	if err != nil {
		return nil, fmt.Errorf("load plan %q: query route_costs table: %w", plan.PlanID, err)
	}
	if err := attachCosts(rows, plan); err != nil {
		return nil, fmt.Errorf("load plan %q: %w", plan.PlanID, err)
	}

	return plan, nil
}
