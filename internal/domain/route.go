package domain

// Represents one vehicle round trip derived from a single cluster.
// VisitOrder holds customer IDs in the order the tour visits them, starting
// and ending at the depot. DistanceKm already includes the road factor.
// A Route is immutable planning data and contains no side effects.
type Route struct {
	RouteID    int     `json:"route_id"`
	VisitOrder []int   `json:"visit_order"`
	DistanceKm float64 `json:"distance_km"`
	LoadTons   float64 `json:"load_tons"`
}

// CustomerCount is the number of stops on the route.
func (r Route) CustomerCount() int { return len(r.VisitOrder) }
