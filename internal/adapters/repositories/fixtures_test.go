package repositories

import (
	"time"

	"consolidation-planner/internal/domain"
)

func samplePlan(id string, createdAt time.Time) *domain.Plan {
	p := domain.DefaultParams()
	costs := []domain.RouteCost{
		{RouteID: 1, DistanceKm: 41.5, LoadTons: 23, Trips: 3, FuelLiters: 14.94, FuelCost: 119.52, FixedCost: 1200, PieceCount: 1150, PieceCost: 6900, LocalCost: 8219.52, EmissionsKg: 40.0392},
		{RouteID: 3, DistanceKm: 12.25, LoadTons: 4.5, Trips: 1, FuelLiters: 1.47, FuelCost: 11.76, FixedCost: 400, PieceCount: 225, PieceCost: 1350, LocalCost: 1761.76, EmissionsKg: 3.9396},
	}
	return &domain.Plan{
		PlanID:      id,
		Fingerprint: p.Fingerprint(),
		CreatedAt:   createdAt,
		Params:      p,
		Customers: []domain.Customer{
			{CustomerID: 1, Location: domain.Coordinates{Lat: 31.9, Lon: 119.1}, DemandTons: 23},
			{CustomerID: 2, Location: domain.Coordinates{Lat: 32.0, Lon: 119.2}, DemandTons: 4.5},
		},
		Routes: []domain.Route{
			{RouteID: 1, VisitOrder: []int{1}, DistanceKm: 41.5, LoadTons: 23},
			{RouteID: 3, VisitOrder: []int{2}, DistanceKm: 12.25, LoadTons: 4.5},
		},
		Costs: costs,
		Selection: domain.Selection{
			RouteIDs:     []int{3},
			Costs:        []domain.RouteCost{costs[1]},
			LoadTons:     4.5,
			BaselineCost: p.BaselineCost(),
			LocalCost:    1761.76,
			TotalCost:    p.BaselineCost() + 1761.76,
			Subsets:      3,
		},
	}
}
