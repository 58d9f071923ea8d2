package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"consolidation-planner/internal/adapters/cache"
	"consolidation-planner/internal/adapters/distance"
	"consolidation-planner/internal/adapters/repositories"
	"consolidation-planner/internal/api"
	"consolidation-planner/internal/api/handlers"
	"consolidation-planner/internal/config"
	"consolidation-planner/internal/platform/db"
	"consolidation-planner/internal/platform/logging"
	"consolidation-planner/internal/platform/metrics"
	"consolidation-planner/internal/ports"
	"consolidation-planner/internal/services"

	log "github.com/sirupsen/logrus"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, optional Redis) behind ports
// and starts the HTTP server.
func main() {
	if !config.LoadDotEnv() {
		log.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal(err)
	}
	metrics.RegisterDefault()

	conn, repo, err := openRepository(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	solver, err := services.NewSolver(cfg.Solver, cfg.SolverWorkers)
	if err != nil {
		log.Fatal(err)
	}

	planner := &services.Planner{
		Solver:   solver,
		Provider: distance.NewHaversineProvider(),
		Repo:     repo,
	}

	// Redis is optional; without it every lookup goes to the repository.
	if strings.TrimSpace(cfg.RedisURL) != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()
		planner.Cache = cache.NewRedisPlanCache(rdb, cfg.CacheTTL)
	}

	limiter := api.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, 10*time.Minute)
	defer limiter.Stop()

	router := api.NewRouter(planner, handlers.Defaults{
		Params:            cfg.Params,
		ThresholdExplicit: cfg.ThresholdExplicit,
	}, limiter)

	// Exhaustive selection at the route limit takes seconds, so writes get
	// a generous timeout.
	log.WithFields(log.Fields{
		"addr":   ":" + cfg.Port,
		"solver": solver.Name(),
	}).Info("Server listening")
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openRepository uses Postgres when DATABASE_URL is set and the local SQLite
// file otherwise. The schema is created on startup in both cases.
func openRepository(cfg *config.Config) (*sql.DB, ports.PlanRepository, error) {
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.InitSchema(conn); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open repository: %w", err)
		}
		return conn, repositories.NewSQLPlanRepository(conn), nil
	}

	conn, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open repository: %w", err)
	}
	return conn, repositories.NewSqlitePlanRepository(conn), nil
}
