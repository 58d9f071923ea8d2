package services

import (
	"fmt"
	"math"
	"math/rand"

	"consolidation-planner/internal/domain"
)

const (
	minDemandFactor = 0.5
	maxDemandFactor = 1.5
)

// GenerateCustomers synthesizes p.CustomerCount customers around p.Depot.
//
// The random stream is consumed in a fixed order: for every customer a
// radius then an angle, and afterwards one demand factor per customer.
// Demands are proportional to their factor and sum to p.TotalWeight.
// The caller owns rng and must not reseed it mid-run.
func GenerateCustomers(rng *rand.Rand, p domain.Params) ([]domain.Customer, error) {
	if rng == nil {
		return nil, fmt.Errorf("generate customers: rng must be non-nil")
	}
	if p.CustomerCount <= 0 {
		return nil, &domain.ConfigurationError{Field: "customer_count", Reason: fmt.Sprintf("must be > 0, got %d", p.CustomerCount)}
	}
	if !(p.TotalWeight > 0) {
		return nil, &domain.ConfigurationError{Field: "total_weight", Reason: fmt.Sprintf("must be > 0, got %v", p.TotalWeight)}
	}

	customers := make([]domain.Customer, p.CustomerCount)
	for i := range customers {
		r := rng.Float64() * p.RadiusKm
		theta := rng.Float64() * 2 * math.Pi

		customers[i] = domain.Customer{
			CustomerID: i + 1,
			Location:   p.Depot.Offset(r*math.Cos(theta), r*math.Sin(theta)),
		}
	}

	factors := make([]float64, p.CustomerCount)
	sum := 0.0
	for i := range factors {
		factors[i] = minDemandFactor + rng.Float64()*(maxDemandFactor-minDemandFactor)
		sum += factors[i]
	}

	for i := range customers {
		customers[i].DemandTons = factors[i] / sum * p.TotalWeight
	}

	return customers, nil
}
