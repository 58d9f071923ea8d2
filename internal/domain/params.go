package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DefaultDepot is the consolidation depot used when none is configured.
var DefaultDepot = Coordinates{Lat: 31.95787, Lon: 119.15953}

// Params is the full configuration surface of one planning run.
type Params struct {
	// Demand generation
	CustomerCount int         `json:"customer_count" yaml:"customer_count"`
	ClusterCount  int         `json:"cluster_count" yaml:"cluster_count"`
	RadiusKm      float64     `json:"radius_km" yaml:"radius_km"`
	TotalWeight   float64     `json:"total_weight" yaml:"total_weight"`
	Seed          int64       `json:"seed" yaml:"seed"`
	Depot         Coordinates `json:"depot" yaml:"depot"`

	// Routing
	RoadFactor float64 `json:"road_factor" yaml:"road_factor"`

	// Cost model
	VehicleCapacity float64 `json:"vehicle_capacity" yaml:"vehicle_capacity"`
	FuelRate        float64 `json:"fuel_rate" yaml:"fuel_rate"`
	FuelPrice       float64 `json:"fuel_price" yaml:"fuel_price"`
	FixedCost       float64 `json:"fixed_cost" yaml:"fixed_cost"`
	PieceWeight     float64 `json:"piece_weight" yaml:"piece_weight"`
	PieceCost       float64 `json:"piece_cost" yaml:"piece_cost"`
	LongHaulCost    float64 `json:"long_haul_cost" yaml:"long_haul_cost"`
	EmissionFactor  float64 `json:"emission_factor" yaml:"emission_factor"`

	// Selection
	WeightThreshold float64 `json:"weight_threshold" yaml:"weight_threshold"`
}

// DefaultParams returns the reference planning scenario: 30 customers in
// 10 clusters within 20 km of the depot, 80 t in total.
func DefaultParams() Params {
	return Params{
		CustomerCount:   30,
		ClusterCount:    10,
		RadiusKm:        20.0,
		TotalWeight:     80.0,
		Seed:            42,
		Depot:           DefaultDepot,
		RoadFactor:      1.3,
		VehicleCapacity: 10.0,
		FuelRate:        0.12,
		FuelPrice:       8.0,
		FixedCost:       400.0,
		PieceWeight:     0.02,
		PieceCost:       6.0,
		LongHaulCost:    220.0,
		EmissionFactor:  2.68,
		WeightThreshold: 80.0,
	}
}

// BaselineCost is the fixed long-haul leg sized to the required weight.
func (p Params) BaselineCost() float64 {
	return p.LongHaulCost * p.WeightThreshold
}

// Validate checks every parameter and returns the first *ConfigurationError.
func (p Params) Validate() error {
	positive := []struct {
		field string
		v     float64
	}{
		{"total_weight", p.TotalWeight},
		{"vehicle_capacity", p.VehicleCapacity},
		{"fuel_rate", p.FuelRate},
		{"piece_weight", p.PieceWeight},
		{"weight_threshold", p.WeightThreshold},
	}
	nonNegative := []struct {
		field string
		v     float64
	}{
		{"radius_km", p.RadiusKm},
		{"fuel_price", p.FuelPrice},
		{"fixed_cost", p.FixedCost},
		{"piece_cost", p.PieceCost},
		{"long_haul_cost", p.LongHaulCost},
		{"emission_factor", p.EmissionFactor},
	}

	if p.CustomerCount <= 0 {
		return &ConfigurationError{Field: "customer_count", Reason: fmt.Sprintf("must be > 0, got %d", p.CustomerCount)}
	}
	if p.ClusterCount <= 0 {
		return &ConfigurationError{Field: "cluster_count", Reason: fmt.Sprintf("must be > 0, got %d", p.ClusterCount)}
	}
	if p.ClusterCount > p.CustomerCount {
		return &ConfigurationError{
			Field:  "cluster_count",
			Reason: fmt.Sprintf("%d exceeds customer_count %d", p.ClusterCount, p.CustomerCount),
		}
	}
	for _, f := range positive {
		if !(f.v > 0) {
			return &ConfigurationError{Field: f.field, Reason: fmt.Sprintf("must be > 0, got %v", f.v)}
		}
	}
	for _, f := range nonNegative {
		if !(f.v >= 0) {
			return &ConfigurationError{Field: f.field, Reason: fmt.Sprintf("must be >= 0, got %v", f.v)}
		}
	}
	if !(p.RoadFactor >= 1) {
		return &ConfigurationError{Field: "road_factor", Reason: fmt.Sprintf("must be >= 1, got %v", p.RoadFactor)}
	}
	if p.Depot.Lat < -90 || p.Depot.Lat > 90 || p.Depot.Lon < -180 || p.Depot.Lon > 180 {
		return &ConfigurationError{Field: "depot", Reason: fmt.Sprintf("out of range: %v", p.Depot)}
	}

	return nil
}

// Fingerprint identifies a parameter set. Runs with equal fingerprints
// produce identical plans.
func (p Params) Fingerprint() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%+v", p)))
	return hex.EncodeToString(sum[:])
}
