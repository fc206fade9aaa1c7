// Package metric provides the reference Metric implementations: Euclidean
// (L2), Chebyshev (L∞), and Manhattan (L1), each with a threshold-aware
// variant that can short-circuit once the partial sum provably exceeds the
// caller's bound.
package metric

import (
	"math"

	"github.com/atria-go/atria/domain"
)

// Euclidean is the L2 (straight-line) distance.
type Euclidean struct{}

// Distance computes the Euclidean distance between a and b in O(D).
func (Euclidean) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// DistanceThreshold computes the Euclidean distance, returning early with a
// value strictly greater than threshold once the accumulated squared sum
// already exceeds threshold^2.
func (Euclidean) DistanceThreshold(a, b []float64, threshold float64) float64 {
	if threshold < 0 {
		return Euclidean{}.Distance(a, b)
	}
	limit := threshold * threshold
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
		if sum > limit {
			return threshold + 1
		}
	}
	return math.Sqrt(sum)
}

// Chebyshev is the L∞ (maximum coordinate-wise) distance.
type Chebyshev struct{}

// Distance computes the Chebyshev distance between a and b in O(D).
func (Chebyshev) Distance(a, b []float64) float64 {
	var max float64
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > max {
			max = d
		}
	}
	return max
}

// DistanceThreshold computes the Chebyshev distance, returning early once a
// single coordinate already exceeds threshold.
func (Chebyshev) DistanceThreshold(a, b []float64, threshold float64) float64 {
	if threshold < 0 {
		return Chebyshev{}.Distance(a, b)
	}
	var max float64
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > threshold {
			return threshold + 1
		}
		if d > max {
			max = d
		}
	}
	return max
}

// Manhattan is the L1 (taxicab) distance.
type Manhattan struct{}

// Distance computes the Manhattan distance between a and b in O(D).
func (Manhattan) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

// DistanceThreshold computes the Manhattan distance, returning early once
// the accumulated sum already exceeds threshold.
func (Manhattan) DistanceThreshold(a, b []float64, threshold float64) float64 {
	if threshold < 0 {
		return Manhattan{}.Distance(a, b)
	}
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
		if sum > threshold {
			return threshold + 1
		}
	}
	return sum
}

// ByName resolves one of the reference metrics by its configuration name:
// "euclidean", "chebyshev", or "manhattan". It returns false for unknown
// names so callers can surface a configuration error.
func ByName(name string) (domain.ThresholdMetric, bool) {
	switch name {
	case "euclidean", "":
		return Euclidean{}, true
	case "chebyshev":
		return Chebyshev{}, true
	case "manhattan":
		return Manhattan{}, true
	default:
		return nil, false
	}
}
