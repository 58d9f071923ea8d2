package ports

import "consolidation-planner/internal/domain"

// Contract for point-to-point travel distance used by tour construction.
type DistanceProvider interface {
	// Return the straight-line distance in kilometers between two points.
	DistanceKm(origin, destination domain.Coordinates) float64
}
