package services

import (
	"fmt"
	"math/rand"

	"consolidation-planner/internal/domain"

	"gonum.org/v1/gonum/floats"
)

// MaxClusterIterations caps Lloyd refinement when assignments keep moving.
const MaxClusterIterations = 300

// ClusterCustomers partitions customers into k geographic clusters with
// Lloyd's algorithm and returns one label in 1..k per customer, aligned
// with the input slice.
//
// Centroids are seeded k-means++ style from rng, which should be seeded
// with the same value as the demand generator. Clusters may end up empty
// when k is large or points coincide.
func ClusterCustomers(rng *rand.Rand, customers []domain.Customer, k int) ([]int, error) {
	if rng == nil {
		return nil, fmt.Errorf("cluster customers: rng must be non-nil")
	}
	if k <= 0 {
		return nil, &domain.ConfigurationError{Field: "cluster_count", Reason: fmt.Sprintf("must be > 0, got %d", k)}
	}
	if k > len(customers) {
		return nil, &domain.ConfigurationError{
			Field:  "cluster_count",
			Reason: fmt.Sprintf("%d exceeds customer count %d", k, len(customers)),
		}
	}

	points := make([][]float64, len(customers))
	for i, c := range customers {
		points[i] = c.Location.CoordsToList()
	}

	centroids := seedCentroids(rng, points, k)

	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}

	for it := 0; it < MaxClusterIterations; it++ {
		if !assignToCentroids(points, centroids, labels) {
			break
		}
		recomputeCentroids(points, centroids, labels)
	}

	out := make([]int, len(labels))
	for i, l := range labels {
		out[i] = l + 1
	}
	return out, nil
}

// seedCentroids picks k initial centroids: the first uniformly, the rest with
// probability proportional to squared distance from the nearest chosen one.
func seedCentroids(rng *rand.Rand, points [][]float64, k int) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, append([]float64(nil), points[rng.Intn(len(points))]...))

	nearest := make([]float64, len(points))
	for len(centroids) < k {
		last := centroids[len(centroids)-1]
		total := 0.0
		for i, pt := range points {
			d := floats.Distance(pt, last, 2)
			d *= d
			if len(centroids) == 1 || d < nearest[i] {
				nearest[i] = d
			}
			total += nearest[i]
		}

		next := len(points) - 1
		if total == 0 {
			// every point coincides with a centroid already
			next = rng.Intn(len(points))
		} else {
			target := rng.Float64() * total
			acc := 0.0
			for i, d := range nearest {
				acc += d
				if acc > target {
					next = i
					break
				}
			}
		}

		centroids = append(centroids, append([]float64(nil), points[next]...))
	}

	return centroids
}
