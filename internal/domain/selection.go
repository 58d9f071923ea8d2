package domain

// Selection is the minimum-cost subset of routes meeting the weight threshold.
// RouteIDs are listed in input order. TotalCost includes the long-haul baseline.
type Selection struct {
	RouteIDs     []int
	Costs        []RouteCost
	LoadTons     float64
	BaselineCost float64
	LocalCost    float64
	TotalCost    float64
	// Subsets is the number of non-empty subsets examined.
	Subsets uint64
}
