package pointset

import (
	"fmt"

	"github.com/atria-go/atria/domain"
)

// Embedding is a time-delay embedding view over a 1-D series: point i is
// the virtual D-vector [x_i, x_{i+tau}, ..., x_{i+(D-1)*tau}], produced
// without ever materializing the D×N matrix.
type Embedding struct {
	series []float64
	dim    int
	tau    int
	n      int
	metric domain.ThresholdMetric
}

// NewEmbedding builds a time-delay embedding with dimension dim and delay
// tau over series. The point count is len(series) - (dim-1)*tau. Returns a
// configuration error if dim < 1, tau < 1, or the series is too short to
// produce at least one point.
func NewEmbedding(series []float64, dim, tau int, m domain.ThresholdMetric) (*Embedding, error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: embedding dimension must be >= 1, got %d", domain.ErrInvalidConfig, dim)
	}
	if tau < 1 {
		return nil, fmt.Errorf("%w: embedding delay tau must be >= 1, got %d", domain.ErrInvalidConfig, tau)
	}
	n := len(series) - (dim-1)*tau
	if n < 1 {
		return nil, fmt.Errorf("%w: series of length %d too short for dim=%d tau=%d", domain.ErrInvalidConfig, len(series), dim, tau)
	}
	return &Embedding{series: series, dim: dim, tau: tau, n: n, metric: m}, nil
}

// Size returns the point count and embedding dimension.
func (e *Embedding) Size() (n, d int) { return e.n, e.dim }

// Point materializes the virtual D-vector for point i into a freshly
// allocated slice. Unlike Matrix, an embedding view cannot expose a
// zero-allocation slice of contiguous storage because its components are
// strided reads of the underlying series. Distance, DistanceTo and
// DistanceToThreshold build their vectors through Point as well, so each
// of them allocates too.
func (e *Embedding) Point(i int) []float64 {
	v := make([]float64, e.dim)
	for k := 0; k < e.dim; k++ {
		v[k] = e.series[i+k*e.tau]
	}
	return v
}

// Distance returns d(point i, point j), materializing both embedded vectors
// through vecAt.
func (e *Embedding) Distance(i, j int) float64 {
	return e.metric.Distance(e.vecAt(i), e.vecAt(j))
}

// DistanceTo returns d(point i, q).
func (e *Embedding) DistanceTo(i int, q []float64) float64 {
	return e.metric.Distance(e.vecAt(i), q)
}

// DistanceToThreshold returns d(point i, q), short-circuiting at threshold.
func (e *Embedding) DistanceToThreshold(i int, q []float64, threshold float64) float64 {
	return e.metric.DistanceThreshold(e.vecAt(i), q, threshold)
}

// vecAt materializes point i. Embedding columns are strided views of a
// shared series, so -- unlike Matrix -- there is no contiguous slice to
// return without copying; each call allocates a small dim-length vector.
func (e *Embedding) vecAt(i int) []float64 {
	return e.Point(i)
}
