// Package pointset provides the reference PointSet implementations: a
// dense, row-major matrix point set and a zero-materialized time-delay
// embedding view over a 1-D series.
package pointset

import (
	"fmt"

	"github.com/atria-go/atria/domain"
)

// Matrix is a dense, row-major N×D point set. Row i occupies
// data[i*d : i*d+d]. Point access is a zero-allocation slice of the
// backing array.
type Matrix struct {
	data   []float64
	n, d   int
	metric domain.ThresholdMetric
}

// NewMatrix builds a Matrix point set over data (row-major, n rows of d
// columns each) using m as the distance metric. It returns a configuration
// error if n < 1, d < 1, or len(data) != n*d.
func NewMatrix(data []float64, n, d int, m domain.ThresholdMetric) (*Matrix, error) {
	if n < 1 || d < 1 {
		return nil, fmt.Errorf("%w: matrix point set requires n>=1 and d>=1, got n=%d d=%d", domain.ErrInvalidConfig, n, d)
	}
	if len(data) != n*d {
		return nil, fmt.Errorf("%w: matrix data has %d entries, expected n*d=%d", domain.ErrInvalidConfig, len(data), n*d)
	}
	return &Matrix{data: data, n: n, d: d, metric: m}, nil
}

// Size returns the point count and dimension.
func (m *Matrix) Size() (n, d int) { return m.n, m.d }

// Point returns a zero-allocation view of row i.
func (m *Matrix) Point(i int) []float64 {
	return m.data[i*m.d : i*m.d+m.d]
}

// Distance returns d(point i, point j) over the two row views returned by
// Point, without copying either row.
func (m *Matrix) Distance(i, j int) float64 {
	return m.metric.Distance(m.Point(i), m.Point(j))
}

// DistanceTo returns d(point i, q).
func (m *Matrix) DistanceTo(i int, q []float64) float64 {
	return m.metric.Distance(m.Point(i), q)
}

// DistanceToThreshold returns d(point i, q), short-circuiting at threshold.
func (m *Matrix) DistanceToThreshold(i int, q []float64, threshold float64) float64 {
	return m.metric.DistanceThreshold(m.Point(i), q, threshold)
}
