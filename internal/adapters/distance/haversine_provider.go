package distance

import "consolidation-planner/internal/domain"

// HaversineProvider measures great-circle distance on a spherical Earth.
type HaversineProvider struct{}

func NewHaversineProvider() HaversineProvider { return HaversineProvider{} }

func (HaversineProvider) DistanceKm(origin, destination domain.Coordinates) float64 {
	return origin.DistanceKm(destination)
}
