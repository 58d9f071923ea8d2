package distance

import (
	"fmt"

	"consolidation-planner/internal/domain"
)

type MockPair struct {
	From, To domain.Coordinates
	Km       float64
}

// MockDistanceProvider returns fixed distances for known pairs and falls back
// to haversine distance for everything else.
type MockDistanceProvider struct {
	m     map[string]float64
	Calls int
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]float64, len(pairs)*2)
	for _, p := range pairs {
		m[key(p.From, p.To)] = p.Km
		if _, ok := m[key(p.To, p.From)]; !ok {
			m[key(p.To, p.From)] = p.Km
		}
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) DistanceKm(origin, destination domain.Coordinates) float64 {
	p.Calls++
	if km, ok := p.m[key(origin, destination)]; ok {
		return km
	}
	return origin.DistanceKm(destination)
}

func key(a, b domain.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f", a.Lat, a.Lon, b.Lat, b.Lon)
}
