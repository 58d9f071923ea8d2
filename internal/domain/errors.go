package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInfeasibleSelection is matched by every *InfeasibleSelectionError.
	ErrInfeasibleSelection = errors.New("no subset of routes meets the weight threshold")

	// ErrTooManyRoutes is returned when exhaustive selection would enumerate
	// more subsets than MaxExhaustiveRoutes allows.
	ErrTooManyRoutes = errors.New("too many routes for exhaustive selection")

	ErrPlanNotFound = errors.New("plan not found")
)

// ConfigurationError reports an invalid parameter. Nothing is computed
// when one is returned.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// InfeasibleSelectionError is returned when the combined load of all
// routes cannot reach the required weight.
type InfeasibleSelectionError struct {
	AvailableTons float64
	RequiredTons  float64
	RouteCount    int
}

func (e *InfeasibleSelectionError) Error() string {
	return fmt.Sprintf(
		"infeasible selection: %d routes carry %.3f t, required %.3f t",
		e.RouteCount, e.AvailableTons, e.RequiredTons,
	)
}

func (e *InfeasibleSelectionError) Is(target error) bool {
	return target == ErrInfeasibleSelection
}
