package domain

// DefaultTrips is used when a stored cost row carries no trip count.
const DefaultTrips = 1

// RouteCost is the operating cost and emission breakdown of one Route.
// Values are kept at full precision; rounding happens in CostRow.
type RouteCost struct {
	RouteID     int
	DistanceKm  float64
	LoadTons    float64
	Trips       int
	FuelLiters  float64
	FuelCost    float64
	FixedCost   float64
	PieceCount  int
	PieceCost   float64
	LocalCost   float64
	EmissionsKg float64
}

// RouteCostRow is a persisted cost row whose optional columns may be absent.
type RouteCostRow struct {
	RouteID     int
	DistanceKm  float64
	LoadTons    float64
	Trips       *int
	FuelLiters  float64
	FuelCost    float64
	FixedCost   float64
	PieceCount  int
	PieceCost   *float64
	LocalCost   float64
	EmissionsKg float64
}

// NewRouteCostFromRow resolves optional columns to their defaults:
// a missing trip count becomes DefaultTrips and a missing piece cost zero.
func NewRouteCostFromRow(row RouteCostRow) RouteCost {
	trips := DefaultTrips
	if row.Trips != nil {
		trips = *row.Trips
	}
	pieceCost := 0.0
	if row.PieceCost != nil {
		pieceCost = *row.PieceCost
	}

	return RouteCost{
		RouteID:     row.RouteID,
		DistanceKm:  row.DistanceKm,
		LoadTons:    row.LoadTons,
		Trips:       trips,
		FuelLiters:  row.FuelLiters,
		FuelCost:    row.FuelCost,
		FixedCost:   row.FixedCost,
		PieceCount:  row.PieceCount,
		PieceCost:   pieceCost,
		LocalCost:   row.LocalCost,
		EmissionsKg: row.EmissionsKg,
	}
}
