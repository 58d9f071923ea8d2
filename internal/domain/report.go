package domain

import "math"

// Round2 rounds monetary and distance values for reporting.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// Round3 rounds mass and volume values for reporting.
func Round3(v float64) float64 { return math.Round(v*1000) / 1000 }

// RouteRow is one row of the generated routes table.
type RouteRow struct {
	RouteID       int     `json:"route_id"`
	DistanceKm    float64 `json:"route_distance_km"`
	LoadTons      float64 `json:"load_tons"`
	CustomerCount int     `json:"num_customers"`
	VisitOrder    []int   `json:"visit_order"`
}

// CostRow is one row of the route cost table.
type CostRow struct {
	RouteID     int     `json:"route_id"`
	DistanceKm  float64 `json:"dist"`
	LoadTons    float64 `json:"load"`
	Trips       int     `json:"trips"`
	FuelLiters  float64 `json:"fuel_L"`
	FuelCost    float64 `json:"fuel_cost"`
	FixedCost   float64 `json:"fixed_cost"`
	PieceCount  int     `json:"piece_count"`
	PieceCost   float64 `json:"piece_cost"`
	LocalCost   float64 `json:"local_cost"`
	EmissionsKg float64 `json:"CO2_kg"`
}

func (r Route) Row() RouteRow {
	return RouteRow{
		RouteID:       r.RouteID,
		DistanceKm:    Round2(r.DistanceKm),
		LoadTons:      Round3(r.LoadTons),
		CustomerCount: r.CustomerCount(),
		VisitOrder:    append([]int(nil), r.VisitOrder...),
	}
}

func (c RouteCost) Row() CostRow {
	return CostRow{
		RouteID:     c.RouteID,
		DistanceKm:  Round2(c.DistanceKm),
		LoadTons:    Round3(c.LoadTons),
		Trips:       c.Trips,
		FuelLiters:  Round3(c.FuelLiters),
		FuelCost:    Round2(c.FuelCost),
		FixedCost:   Round2(c.FixedCost),
		PieceCount:  c.PieceCount,
		PieceCost:   Round2(c.PieceCost),
		LocalCost:   Round2(c.LocalCost),
		EmissionsKg: Round3(c.EmissionsKg),
	}
}
