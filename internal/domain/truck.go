package domain

import (
	"fmt"
	"math"
)

// Small delivery vehicle used for last-mile trips out of the depot.
type Vehicle struct {
	CapacityTons float64
}

func NewVehicle(capacityTons float64) *Vehicle {
	return &Vehicle{CapacityTons: capacityTons}
}

// TripsFor returns the number of round trips needed to move loadTons.
// The count is never zero for a positive load.
func (v *Vehicle) TripsFor(loadTons float64) (int, error) {
	if v.CapacityTons <= 0 {
		return 0, &ConfigurationError{Field: "vehicle_capacity", Reason: fmt.Sprintf("must be > 0, got %v", v.CapacityTons)}
	}
	if loadTons <= 0 {
		return 0, &ConfigurationError{Field: "load", Reason: fmt.Sprintf("route load must be > 0, got %v", loadTons)}
	}

	return int(math.Ceil(loadTons / v.CapacityTons)), nil
}
