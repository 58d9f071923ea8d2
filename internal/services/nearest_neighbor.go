package services

import (
	"errors"

	"consolidation-planner/internal/domain"
	"consolidation-planner/internal/ports"
)

// Tour is a visiting order over cluster members, starting and ending at the depot.
type Tour struct {
	VisitOrder []int
	// DistanceKm is the unscaled great-circle length including the return leg.
	DistanceKm float64
}

// Plan a cluster tour using a greedy nearest-neighbor algorithm.
//
// From the depot, the closest unvisited member is visited next until none
// remain, then the tour returns to the depot. Ties go to the member that
// appears first in members. It does not attempt global tour optimization.
func NearestNeighborTour(
	depot domain.Coordinates,
	members []domain.Customer,
	provider ports.DistanceProvider,
) (*Tour, error) {
	if provider == nil {
		return nil, errors.New("plan tour: distance provider must be non-nil")
	}

	if len(members) == 0 {
		return &Tour{VisitOrder: []int{}, DistanceKm: 0}, nil
	}

	unvisited := make([]domain.Customer, len(members))
	copy(unvisited, members)

	order := make([]int, 0, len(members))
	current := depot
	total := 0.0

	for len(unvisited) > 0 {
		bestIdx := 0
		bestDist := provider.DistanceKm(current, unvisited[0].Location)

		// Select next stop by minimum distance (greedy step). Strict comparison
		// keeps the first minimal member on ties.
		for i := 1; i < len(unvisited); i++ {
			if d := provider.DistanceKm(current, unvisited[i].Location); d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}

		next := unvisited[bestIdx]
		order = append(order, next.CustomerID)
		total += bestDist
		current = next.Location

		unvisited = append(unvisited[:bestIdx], unvisited[bestIdx+1:]...)
	}

	total += provider.DistanceKm(current, depot)

	return &Tour{VisitOrder: order, DistanceKm: total}, nil
}

// TourDistanceKm measures a fixed visiting order depot -> stops -> depot.
func TourDistanceKm(
	depot domain.Coordinates,
	stops []domain.Coordinates,
	provider ports.DistanceProvider,
) float64 {
	total := 0.0
	current := depot
	for _, s := range stops {
		total += provider.DistanceKm(current, s)
		current = s
	}
	if len(stops) > 0 {
		total += provider.DistanceKm(current, depot)
	}
	return total
}
