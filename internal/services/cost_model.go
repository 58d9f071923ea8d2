package services

import (
	"fmt"
	"math"

	"consolidation-planner/internal/domain"
)

// CostRoute prices one route under the cost parameters in p.
//
// A route with no load is rejected before any count is derived from it.
// Nothing is rounded here; see domain.RouteCost.Row for report rounding.
func CostRoute(route domain.Route, p domain.Params) (domain.RouteCost, error) {
	if !(p.PieceWeight > 0) {
		return domain.RouteCost{}, &domain.ConfigurationError{Field: "piece_weight", Reason: fmt.Sprintf("must be > 0, got %v", p.PieceWeight)}
	}
	if route.DistanceKm < 0 {
		return domain.RouteCost{}, fmt.Errorf("cost route %d: negative distance %v", route.RouteID, route.DistanceKm)
	}

	trips, err := domain.NewVehicle(p.VehicleCapacity).TripsFor(route.LoadTons)
	if err != nil {
		return domain.RouteCost{}, fmt.Errorf("cost route %d: %w", route.RouteID, err)
	}

	fuel := route.DistanceKm * p.FuelRate * float64(trips)
	fuelCost := fuel * p.FuelPrice
	fixedCost := float64(trips) * p.FixedCost
	// Halves round to even.
	pieces := int(math.RoundToEven(route.LoadTons / p.PieceWeight))
	pieceCost := float64(pieces) * p.PieceCost

	return domain.RouteCost{
		RouteID:     route.RouteID,
		DistanceKm:  route.DistanceKm,
		LoadTons:    route.LoadTons,
		Trips:       trips,
		FuelLiters:  fuel,
		FuelCost:    fuelCost,
		FixedCost:   fixedCost,
		PieceCount:  pieces,
		PieceCost:   pieceCost,
		LocalCost:   fuelCost + fixedCost + pieceCost,
		EmissionsKg: fuel * p.EmissionFactor,
	}, nil
}

// CostRoutes prices every route, preserving input order.
func CostRoutes(routes []domain.Route, p domain.Params) ([]domain.RouteCost, error) {
	out := make([]domain.RouteCost, 0, len(routes))
	for _, r := range routes {
		c, err := CostRoute(r, p)
		if err != nil {
			return nil, fmt.Errorf("cost routes: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}
