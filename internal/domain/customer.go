package domain

// Represents a single delivery customer synthesized around the depot.
// A Customer has a unique positive identifier, a position and a demand
// weight in tons. Customers are immutable once generated.
type Customer struct {
	CustomerID int         `json:"customer_id"`
	Location   Coordinates `json:"location"`
	DemandTons float64     `json:"demand_tons"`
}
