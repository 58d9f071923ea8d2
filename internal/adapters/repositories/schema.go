package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the plan schema. The statements are valid for both SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPlansQuery := `
	CREATE TABLE IF NOT EXISTS plans (
		plan_id TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		created_at TEXT NOT NULL,
		total_cost DOUBLE PRECISION NOT NULL,
		payload TEXT NOT NULL
	);
	`

	// trips and piece_cost are nullable; readers fall back to
	// domain.DefaultTrips and zero.
	createRouteCostsQuery := `
	CREATE TABLE IF NOT EXISTS route_costs (
		plan_id TEXT NOT NULL REFERENCES plans(plan_id) ON DELETE CASCADE,
		route_id INTEGER NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		load_tons DOUBLE PRECISION NOT NULL,
		trips INTEGER,
		fuel_l DOUBLE PRECISION NOT NULL,
		fuel_cost DOUBLE PRECISION NOT NULL,
		fixed_cost DOUBLE PRECISION NOT NULL,
		piece_count INTEGER NOT NULL,
		piece_cost DOUBLE PRECISION,
		local_cost DOUBLE PRECISION NOT NULL,
		co2_kg DOUBLE PRECISION NOT NULL,
		selected BOOLEAN NOT NULL,
		PRIMARY KEY (plan_id, route_id)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_plans_fingerprint_created
	ON plans(fingerprint, created_at);
	`

	statements := []string{
		createPlansQuery,
		createRouteCostsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
