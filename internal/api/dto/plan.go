package dto

import (
	"time"

	"consolidation-planner/internal/domain"
)

// CoordinatesRequest is a partial depot override.
type CoordinatesRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// PlanRequest overrides server default parameters. Omitted fields keep
// their defaults.
type PlanRequest struct {
	CustomerCount   *int                `json:"customer_count"`
	ClusterCount    *int                `json:"cluster_count"`
	RadiusKm        *float64            `json:"radius_km"`
	TotalWeight     *float64            `json:"total_weight"`
	Seed            *int64              `json:"seed"`
	Depot           *CoordinatesRequest `json:"depot"`
	RoadFactor      *float64            `json:"road_factor"`
	VehicleCapacity *float64            `json:"vehicle_capacity"`
	FuelRate        *float64            `json:"fuel_rate"`
	FuelPrice       *float64            `json:"fuel_price"`
	FixedCost       *float64            `json:"fixed_cost"`
	PieceWeight     *float64            `json:"piece_weight"`
	PieceCost       *float64            `json:"piece_cost"`
	LongHaulCost    *float64            `json:"long_haul_cost"`
	EmissionFactor  *float64            `json:"emission_factor"`
	WeightThreshold *float64            `json:"weight_threshold"`

	// Fresh forces recomputation even if a plan for the same parameters exists.
	Fresh bool `json:"fresh"`
}

// Apply returns base with the request's overrides applied. Unless the
// request sets weight_threshold or thresholdExplicit pins the base value,
// the threshold follows an overridden total weight.
func (r PlanRequest) Apply(base domain.Params, thresholdExplicit bool) domain.Params {
	p := base

	setInt(&p.CustomerCount, r.CustomerCount)
	setInt(&p.ClusterCount, r.ClusterCount)
	setFloat(&p.RadiusKm, r.RadiusKm)
	setFloat(&p.TotalWeight, r.TotalWeight)
	if r.Seed != nil {
		p.Seed = *r.Seed
	}
	if r.Depot != nil {
		setFloat(&p.Depot.Lat, r.Depot.Lat)
		setFloat(&p.Depot.Lon, r.Depot.Lon)
	}
	setFloat(&p.RoadFactor, r.RoadFactor)
	setFloat(&p.VehicleCapacity, r.VehicleCapacity)
	setFloat(&p.FuelRate, r.FuelRate)
	setFloat(&p.FuelPrice, r.FuelPrice)
	setFloat(&p.FixedCost, r.FixedCost)
	setFloat(&p.PieceWeight, r.PieceWeight)
	setFloat(&p.PieceCost, r.PieceCost)
	setFloat(&p.LongHaulCost, r.LongHaulCost)
	setFloat(&p.EmissionFactor, r.EmissionFactor)

	switch {
	case r.WeightThreshold != nil:
		p.WeightThreshold = *r.WeightThreshold
	case r.TotalWeight != nil && !thresholdExplicit:
		p.WeightThreshold = p.TotalWeight
	}

	return p
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

type SelectionResponse struct {
	RouteIDs        []int            `json:"route_ids"`
	Rows            []domain.CostRow `json:"rows"`
	LoadTons        float64          `json:"load_tons"`
	BaselineCost    float64          `json:"baseline_cost"`
	LocalCost       float64          `json:"local_cost"`
	TotalCost       float64          `json:"total_cost"`
	SubsetsExamined uint64           `json:"subsets_examined"`
}

type PlanResponse struct {
	PlanID      string            `json:"plan_id"`
	Fingerprint string            `json:"fingerprint"`
	CreatedAt   time.Time         `json:"created_at"`
	Params      domain.Params     `json:"params"`
	Routes      []domain.RouteRow `json:"routes"`
	Costs       []domain.CostRow  `json:"costs"`
	Selection   SelectionResponse `json:"selection"`
}

// NewPlanResponse renders a plan with report rounding applied.
func NewPlanResponse(plan *domain.Plan) PlanResponse {
	res := PlanResponse{
		PlanID:      plan.PlanID,
		Fingerprint: plan.Fingerprint,
		CreatedAt:   plan.CreatedAt,
		Params:      plan.Params,
		Routes:      make([]domain.RouteRow, 0, len(plan.Routes)),
		Costs:       make([]domain.CostRow, 0, len(plan.Costs)),
		Selection: SelectionResponse{
			RouteIDs:        append([]int{}, plan.Selection.RouteIDs...),
			Rows:            make([]domain.CostRow, 0, len(plan.Selection.Costs)),
			LoadTons:        domain.Round3(plan.Selection.LoadTons),
			BaselineCost:    domain.Round2(plan.Selection.BaselineCost),
			LocalCost:       domain.Round2(plan.Selection.LocalCost),
			TotalCost:       domain.Round2(plan.Selection.TotalCost),
			SubsetsExamined: plan.Selection.Subsets,
		},
	}

	for _, r := range plan.Routes {
		res.Routes = append(res.Routes, r.Row())
	}
	for _, c := range plan.Costs {
		res.Costs = append(res.Costs, c.Row())
	}
	for _, c := range plan.Selection.Costs {
		res.Selection.Rows = append(res.Selection.Rows, c.Row())
	}

	return res
}
