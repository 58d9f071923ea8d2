package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"consolidation-planner/internal/domain"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the process configuration resolved from .env, the environment
// and an optional YAML parameter file.
type Config struct {
	Port        string
	DBPath      string
	DatabaseURL string
	RedisURL    string
	CacheTTL    time.Duration

	Solver        string
	SolverWorkers int

	LogLevel  string
	LogFormat string

	RateLimit float64
	RateBurst int

	// Params are the default planning parameters; requests may override them.
	Params domain.Params
	// ThresholdExplicit is set when PARAMS_FILE or WEIGHT_THRESHOLD fixed the
	// weight threshold. Otherwise the threshold tracks the total weight.
	ThresholdExplicit bool
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv loads a .env file when present. A missing file is not an error.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load resolves the configuration. Parameters start from domain.DefaultParams,
// are overlaid by PARAMS_FILE (YAML) and then by individual environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        Get("PORT", "8080"),
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: Get("DATABASE_URL", ""),
		RedisURL:    Get("REDIS_URL", ""),
		Solver:      Get("SOLVER", "exhaustive"),
		LogLevel:    Get("LOG_LEVEL", "info"),
		LogFormat:   Get("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SolverWorkers, err = getInt("SOLVER_WORKERS", 4); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getFloat("RATE_LIMIT", 2); err != nil {
		return nil, err
	}
	if cfg.RateBurst, err = getInt("RATE_BURST", 5); err != nil {
		return nil, err
	}

	params := domain.DefaultParams()
	var fileThreshold, envThreshold bool
	if path := Get("PARAMS_FILE", ""); path != "" {
		if params, fileThreshold, err = LoadParamsFile(path, params); err != nil {
			return nil, err
		}
	}
	if params, envThreshold, err = applyEnv(params); err != nil {
		return nil, err
	}
	cfg.ThresholdExplicit = fileThreshold || envThreshold
	if !cfg.ThresholdExplicit {
		params.WeightThreshold = params.TotalWeight
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Params = params

	return cfg, nil
}

// LoadParamsFile overlays the YAML document at path onto base and reports
// whether the document sets weight_threshold. Keys absent from the file keep
// their base values.
func LoadParamsFile(path string, base domain.Params) (domain.Params, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return base, false, fmt.Errorf("load params file: read %q: %w", path, err)
	}

	out := base
	if err := yaml.Unmarshal(b, &out); err != nil {
		return base, false, fmt.Errorf("load params file: parse %q: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return base, false, fmt.Errorf("load params file: parse %q: %w", path, err)
	}
	_, thresholdSet := raw["weight_threshold"]

	return out, thresholdSet, nil
}

// applyEnv overlays individual environment variables onto p and reports
// whether WEIGHT_THRESHOLD was set.
func applyEnv(p domain.Params) (domain.Params, bool, error) {
	ints := []struct {
		key string
		dst *int
	}{
		{"CUSTOMER_COUNT", &p.CustomerCount},
		{"CLUSTER_COUNT", &p.ClusterCount},
	}
	floats := []struct {
		key string
		dst *float64
	}{
		{"RADIUS_KM", &p.RadiusKm},
		{"TOTAL_WEIGHT", &p.TotalWeight},
		{"DEPOT_LAT", &p.Depot.Lat},
		{"DEPOT_LON", &p.Depot.Lon},
		{"ROAD_FACTOR", &p.RoadFactor},
		{"VEHICLE_CAPACITY", &p.VehicleCapacity},
		{"FUEL_RATE", &p.FuelRate},
		{"FUEL_PRICE", &p.FuelPrice},
		{"FIXED_COST", &p.FixedCost},
		{"PIECE_WEIGHT", &p.PieceWeight},
		{"PIECE_COST", &p.PieceCost},
		{"LONG_HAUL_COST", &p.LongHaulCost},
		{"EMISSION_FACTOR", &p.EmissionFactor},
	}

	for _, f := range ints {
		v, err := getInt(f.key, *f.dst)
		if err != nil {
			return p, false, err
		}
		*f.dst = v
	}

	for _, f := range floats {
		v, err := getFloat(f.key, *f.dst)
		if err != nil {
			return p, false, err
		}
		*f.dst = v
	}

	seed, err := getInt64("SEED", p.Seed)
	if err != nil {
		return p, false, err
	}
	p.Seed = seed

	if Get("WEIGHT_THRESHOLD", "") == "" {
		return p, false, nil
	}
	if p.WeightThreshold, err = getFloat("WEIGHT_THRESHOLD", p.WeightThreshold); err != nil {
		return p, false, err
	}

	return p, true, nil
}

func getInt(key string, fallback int) (int, error) {
	s := Get(key, "")
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback, envError(key, s, err)
	}
	return v, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	s := Get(key, "")
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fallback, envError(key, s, err)
	}
	return v, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	s := Get(key, "")
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback, envError(key, s, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := Get(key, "")
	if s == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fallback, envError(key, s, err)
	}
	return v, nil
}

func envError(key, value string, err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	return &domain.ConfigurationError{
		Field:  strings.ToLower(key),
		Reason: fmt.Sprintf("cannot parse %q: %v", value, err),
	}
}
