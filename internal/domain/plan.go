package domain

import "time"

// Plan is the complete output of one consolidation planning run.
type Plan struct {
	PlanID      string
	Fingerprint string
	CreatedAt   time.Time
	Params      Params
	Customers   []Customer
	Routes      []Route
	Costs       []RouteCost
	Selection   Selection
}
