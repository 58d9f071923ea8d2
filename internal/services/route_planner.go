package services

import (
	"fmt"

	"consolidation-planner/internal/domain"
	"consolidation-planner/internal/ports"
)

// PlanRoutes builds one Route per non-empty cluster, sorted by route ID.
//
// labels must hold a cluster label in 1..k for every customer. The road
// factor scales each route's aggregated tour distance once; individual
// legs are never scaled.
func PlanRoutes(
	depot domain.Coordinates,
	customers []domain.Customer,
	labels []int,
	k int,
	roadFactor float64,
	provider ports.DistanceProvider,
) ([]domain.Route, error) {
	if len(labels) != len(customers) {
		return nil, fmt.Errorf("plan routes: %d labels for %d customers", len(labels), len(customers))
	}
	if !(roadFactor >= 1) {
		return nil, &domain.ConfigurationError{Field: "road_factor", Reason: fmt.Sprintf("must be >= 1, got %v", roadFactor)}
	}
	for i, l := range labels {
		if l < 1 || l > k {
			return nil, fmt.Errorf("plan routes: customer %d has label %d outside 1..%d", customers[i].CustomerID, l, k)
		}
	}

	groups := groupByCluster(customers, labels, k)

	routes := make([]domain.Route, 0, k)
	for routeID := 1; routeID <= k; routeID++ {
		members := groups[routeID]
		// An empty cluster yields no route.
		if len(members) == 0 {
			continue
		}

		tour, err := NearestNeighborTour(depot, members, provider)
		if err != nil {
			return nil, fmt.Errorf("plan routes: route %d: %w", routeID, err)
		}

		load := 0.0
		for _, m := range members {
			load += m.DemandTons
		}

		routes = append(routes, domain.Route{
			RouteID:    routeID,
			VisitOrder: tour.VisitOrder,
			DistanceKm: tour.DistanceKm * roadFactor,
			LoadTons:   load,
		})
	}

	return routes, nil
}
