package services

import (
	"math"

	"consolidation-planner/internal/domain"

	"gonum.org/v1/gonum/floats"
)

// assignToCentroids labels each point with its nearest centroid index.
//
// Positions are treated as flat (lat, lon) pairs with no distance correction.
// Ties go to the lowest centroid index so assignment is deterministic.
// It reports whether any label changed.
func assignToCentroids(points, centroids [][]float64, labels []int) bool {
	changed := false
	for i, pt := range points {
		best := -1
		bestDist := math.Inf(1)
		for c, centroid := range centroids {
			d := floats.Distance(pt, centroid, 2)
			if d < bestDist {
				bestDist = d
				best = c
			}
		}
		if labels[i] != best {
			labels[i] = best
			changed = true
		}
	}
	return changed
}

// recomputeCentroids moves each centroid to the mean of its members.
// A centroid with no members stays where it is.
func recomputeCentroids(points, centroids [][]float64, labels []int) {
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for c := range sums {
		sums[c] = make([]float64, len(centroids[c]))
	}

	for i, pt := range points {
		floats.Add(sums[labels[i]], pt)
		counts[labels[i]]++
	}

	for c := range centroids {
		if counts[c] == 0 {
			continue
		}
		floats.Scale(1/float64(counts[c]), sums[c])
		copy(centroids[c], sums[c])
	}
}

// groupByCluster returns the members of each cluster label 1..k in input order.
func groupByCluster(customers []domain.Customer, labels []int, k int) [][]domain.Customer {
	groups := make([][]domain.Customer, k+1)
	for i, c := range customers {
		groups[labels[i]] = append(groups[labels[i]], c)
	}
	return groups
}
