package services

import (
	"math"
	"testing"

	"consolidation-planner/internal/adapters/distance"
	"consolidation-planner/internal/domain"
)

var (
	hub   = domain.Coordinates{Lat: 0, Lon: 0}
	siteA = domain.Coordinates{Lat: 0, Lon: 0.01}
	siteB = domain.Coordinates{Lat: 0.01, Lon: 0}
	siteC = domain.Coordinates{Lat: 0.01, Lon: 0.01}
)

func threeSiteProvider() *distance.MockDistanceProvider {
	return distance.NewMockDistanceProvider([]distance.MockPair{
		{From: hub, To: siteA, Km: 1.0},
		{From: hub, To: siteB, Km: 2.0},
		{From: hub, To: siteC, Km: 1.5},
		{From: siteA, To: siteB, Km: 0.8},
		{From: siteA, To: siteC, Km: 0.7},
		{From: siteB, To: siteC, Km: 0.9},
	})
}

func TestNearestNeighborTour(t *testing.T) {
	members := []domain.Customer{
		{CustomerID: 1, Location: siteA, DemandTons: 1},
		{CustomerID: 2, Location: siteB, DemandTons: 1},
		{CustomerID: 3, Location: siteC, DemandTons: 1},
	}

	tour, err := NearestNeighborTour(hub, members, threeSiteProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int{1, 3, 2}
	if len(tour.VisitOrder) != len(want) {
		t.Fatalf("expected %d stops, got %d", len(want), len(tour.VisitOrder))
	}
	for i := range want {
		if tour.VisitOrder[i] != want[i] {
			t.Fatalf("stop %d = %d, want %d", i, tour.VisitOrder[i], want[i])
		}
	}

	// 1.0 + 0.7 + 0.9 + 2.0 back to the hub
	if math.Abs(tour.DistanceKm-4.6) > 1e-9 {
		t.Fatalf("distance = %v, want 4.6", tour.DistanceKm)
	}
}

func TestNearestNeighborTourTieGoesToFirstMember(t *testing.T) {
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: hub, To: siteA, Km: 1.0},
		{From: hub, To: siteB, Km: 1.0},
		{From: siteA, To: siteB, Km: 1.0},
	})

	members := []domain.Customer{
		{CustomerID: 9, Location: siteB, DemandTons: 1},
		{CustomerID: 4, Location: siteA, DemandTons: 1},
	}

	tour, err := NearestNeighborTour(hub, members, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tour.VisitOrder[0] != 9 {
		t.Fatalf("first stop = %d, want 9", tour.VisitOrder[0])
	}
}

func TestNearestNeighborTourSingleMember(t *testing.T) {
	tour, err := NearestNeighborTour(hub, []domain.Customer{{CustomerID: 1, Location: siteB, DemandTons: 1}}, threeSiteProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(tour.DistanceKm-4.0) > 1e-9 {
		t.Fatalf("distance = %v, want out and back 4.0", tour.DistanceKm)
	}
}

func TestNearestNeighborTourNilProvider(t *testing.T) {
	if _, err := NearestNeighborTour(hub, nil, nil); err == nil {
		t.Fatal("expected error for nil provider")
	}
}

func TestPlanRoutesSkipsEmptyClusters(t *testing.T) {
	customers := []domain.Customer{
		{CustomerID: 1, Location: siteA, DemandTons: 2},
		{CustomerID: 2, Location: siteB, DemandTons: 3},
		{CustomerID: 3, Location: siteC, DemandTons: 4},
	}
	labels := []int{3, 1, 3}

	routes, err := PlanRoutes(hub, customers, labels, 3, 1.0, threeSiteProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(routes))
	}
	if routes[0].RouteID != 1 || routes[1].RouteID != 3 {
		t.Fatalf("route ids = %d,%d, want 1,3", routes[0].RouteID, routes[1].RouteID)
	}
	if routes[1].LoadTons != 6 {
		t.Fatalf("route 3 load = %v, want 6", routes[1].LoadTons)
	}
	if routes[1].CustomerCount() != 2 {
		t.Fatalf("route 3 customers = %d, want 2", routes[1].CustomerCount())
	}
}

func TestPlanRoutesRoadFactorScalesTotal(t *testing.T) {
	customers := []domain.Customer{
		{CustomerID: 1, Location: siteA, DemandTons: 1},
		{CustomerID: 2, Location: siteB, DemandTons: 1},
		{CustomerID: 3, Location: siteC, DemandTons: 1},
	}
	labels := []int{1, 1, 1}

	prev := 0.0
	for _, rf := range []float64{1.0, 1.3, 2.0} {
		routes, err := PlanRoutes(hub, customers, labels, 1, rf, threeSiteProvider())
		if err != nil {
			t.Fatalf("road factor %v: unexpected error: %v", rf, err)
		}
		got := routes[0].DistanceKm
		if math.Abs(got-4.6*rf) > 1e-9 {
			t.Fatalf("road factor %v: distance = %v, want %v", rf, got, 4.6*rf)
		}
		if got < prev {
			t.Fatalf("road factor %v: distance %v shrank from %v", rf, got, prev)
		}
		prev = got
	}
}

func TestPlanRoutesRoadFactorScalesHaversineTour(t *testing.T) {
	customers := []domain.Customer{
		{CustomerID: 1, Location: domain.Coordinates{Lat: 0.02, Lon: 0.01}, DemandTons: 1},
		{CustomerID: 2, Location: domain.Coordinates{Lat: -0.01, Lon: 0.03}, DemandTons: 1},
		{CustomerID: 3, Location: domain.Coordinates{Lat: 0.015, Lon: -0.02}, DemandTons: 1},
		{CustomerID: 4, Location: domain.Coordinates{Lat: -0.02, Lon: -0.01}, DemandTons: 1},
	}
	byID := make(map[int]domain.Coordinates, len(customers))
	for _, c := range customers {
		byID[c.CustomerID] = c.Location
	}
	labels := []int{1, 1, 1, 1}
	provider := distance.NewHaversineProvider()

	var order []int
	fixed := 0.0
	prev := 0.0
	for _, rf := range []float64{1.0, 1.2, 1.5, 3.0} {
		routes, err := PlanRoutes(hub, customers, labels, 1, rf, provider)
		if err != nil {
			t.Fatalf("road factor %v: unexpected error: %v", rf, err)
		}
		route := routes[0]

		if order == nil {
			order = route.VisitOrder
			stops := make([]domain.Coordinates, 0, len(order))
			for _, id := range order {
				stops = append(stops, byID[id])
			}
			fixed = TourDistanceKm(hub, stops, provider)
			if fixed <= 0 {
				t.Fatalf("expected positive tour distance, got %v", fixed)
			}
		}
		for i := range order {
			if route.VisitOrder[i] != order[i] {
				t.Fatalf("road factor %v: visit order %v changed from %v", rf, route.VisitOrder, order)
			}
		}

		if math.Abs(route.DistanceKm-rf*fixed) > 1e-9 {
			t.Fatalf("road factor %v: distance = %v, want %v", rf, route.DistanceKm, rf*fixed)
		}
		if route.DistanceKm < prev {
			t.Fatalf("road factor %v: distance %v shrank from %v", rf, route.DistanceKm, prev)
		}
		prev = route.DistanceKm
	}
}

func TestPlanRoutesRejectsBadInput(t *testing.T) {
	customers := []domain.Customer{{CustomerID: 1, Location: siteA, DemandTons: 1}}

	if _, err := PlanRoutes(hub, customers, []int{1}, 1, 0.9, threeSiteProvider()); err == nil {
		t.Fatal("expected error for road factor below 1")
	}
	if _, err := PlanRoutes(hub, customers, []int{2}, 1, 1.0, threeSiteProvider()); err == nil {
		t.Fatal("expected error for out of range label")
	}
	if _, err := PlanRoutes(hub, customers, nil, 1, 1.0, threeSiteProvider()); err == nil {
		t.Fatal("expected error for missing labels")
	}
}
