package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"consolidation-planner/internal/adapters/distance"
	"consolidation-planner/internal/adapters/export"
	"consolidation-planner/internal/config"
	"consolidation-planner/internal/domain"
	"consolidation-planner/internal/platform/logging"
	"consolidation-planner/internal/services"

	log "github.com/sirupsen/logrus"
)

// consolidate runs one planning pass and prints the route, cost and
// selection tables. Parameters come from the environment (see config.Load)
// and may be overridden by flags.
func main() {
	paramsFile := flag.String("params", "", "YAML parameter file applied over the environment")
	seed := flag.Int64("seed", 0, "random seed (defaults to the configured seed)")
	solverName := flag.String("solver", "", "selection solver: exhaustive or parallel")
	workers := flag.Int("workers", 0, "parallel solver workers (0 keeps SOLVER_WORKERS)")
	amplPath := flag.String("ampl", "", "write AMPL model data to this path")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal(err)
	}

	params := cfg.Params
	if *paramsFile != "" {
		var fileThreshold bool
		if params, fileThreshold, err = config.LoadParamsFile(*paramsFile, params); err != nil {
			log.Fatal(err)
		}
		if !fileThreshold && !cfg.ThresholdExplicit {
			params.WeightThreshold = params.TotalWeight
		}
	}
	if flagSet(flag.CommandLine, "seed") {
		params.Seed = *seed
	}
	if *solverName != "" {
		cfg.Solver = *solverName
	}
	if *workers > 0 {
		cfg.SolverWorkers = *workers
	}

	solver, err := services.NewSolver(cfg.Solver, cfg.SolverWorkers)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	plan, err := services.RunPipeline(ctx, params, distance.NewHaversineProvider(), solver)
	if err != nil {
		log.Fatal(err)
	}

	if err := printPlan(os.Stdout, plan); err != nil {
		log.Fatal(err)
	}

	if *amplPath != "" {
		if err := writeAMPL(*amplPath, plan.Costs); err != nil {
			log.Fatal(err)
		}
		log.WithField("path", *amplPath).Info("Wrote AMPL data")
	}
}

// flagSet reports whether the named flag was given on the command line.
func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func printPlan(w io.Writer, plan *domain.Plan) error {
	fmt.Fprintf(w, "Routes (%d customers, %d clusters):\n", len(plan.Customers), plan.Params.ClusterCount)
	if err := export.WriteRoutesTable(w, plan.Routes); err != nil {
		return err
	}
	fmt.Fprintln(w, "\nRoute costs:")
	if err := export.WriteCostsTable(w, plan.Costs); err != nil {
		return err
	}
	fmt.Fprintln(w, "\nSelected routes:")
	return export.WriteSelectionTable(w, plan.Selection)
}

func writeAMPL(path string, costs []domain.RouteCost) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write ampl: %w", err)
	}
	if err := export.WriteAMPL(f, costs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
