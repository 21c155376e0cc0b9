// Package spectral computes low-rank spectral embeddings of graph
// adjacencies. The layout solver uses it to produce starting positions
// before the force simulation runs.
package spectral

import (
	"context"
	"errors"
	"math"

	"github.com/quartercastle/vector"
	"gonum.org/v1/gonum/mat"

	"github.com/suxatcode/spring-layout/sparse"
)

var (
	// ErrFactorizationFailed is returned when the SVD does not converge.
	ErrFactorizationFailed = errors.New("spectral: svd factorization failed")

	// ErrNotEnoughComponents is returned when the adjacency is too small
	// for the requested embedding dimension.
	ErrNotEnoughComponents = errors.New("spectral: fewer singular values than requested components")
)

// GSVD embeds the nodes of a graph via a generalized SVD of its adjacency:
// the matrix is normalized by the inverse square roots of the weighted
// degrees on both sides before factorization, and the embedding of node i
// is its row of the degree-normalized left singular vectors scaled by the
// singular values.
type GSVD struct{}

// InitialPositions returns a dim-dimensional embedding of the adjacency,
// one vector per node. A non-positive dim defaults to 2.
func (GSVD) InitialPositions(ctx context.Context, adjacency *sparse.CSR, dim int) ([]vector.Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if dim <= 0 {
		dim = 2
	}
	n, c := adjacency.Rows(), adjacency.Cols()
	rowNorm := invSqrt(adjacency.RowSums())
	colNorm := invSqrt(adjacency.ColSums())

	normalized := mat.NewDense(n, c, nil)
	for i := 0; i < n; i++ {
		indices, data := adjacency.Row(i)
		for k, j := range indices {
			normalized.Set(i, j, data[k]*rowNorm[i]*colNorm[j])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(normalized, mat.SVDThin); !ok {
		return nil, ErrFactorizationFailed
	}
	singular := svd.Values(nil)
	if len(singular) < dim {
		return nil, ErrNotEnoughComponents
	}
	var u mat.Dense
	svd.UTo(&u)

	positions := make([]vector.Vector, n)
	for i := 0; i < n; i++ {
		pos := make(vector.Vector, dim)
		for k := 0; k < dim; k++ {
			pos[k] = rowNorm[i] * u.At(i, k) * singular[k]
		}
		positions[i] = pos
	}
	return positions, nil
}

// invSqrt maps degree sums to 1/sqrt(d), guarding isolated nodes.
func invSqrt(degrees []float64) []float64 {
	out := make([]float64, len(degrees))
	for i, d := range degrees {
		if d <= 0 {
			d = 1
		}
		out[i] = 1 / math.Sqrt(d)
	}
	return out
}
