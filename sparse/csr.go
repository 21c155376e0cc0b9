// Package sparse holds the compressed-sparse-row adjacency representation
// consumed by the layout solver, together with the validation and
// symmetrization steps that turn an arbitrary weighted adjacency into the
// square, symmetric form the solver requires.
package sparse

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Edge is a weighted directed edge in triplet form. A zero Value is read as
// weight 1, matching the convention for unweighted input graphs.
type Edge struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Value  float64 `json:"value"`
}

// CSR is a compressed-sparse-row matrix. Column indices are strictly
// increasing within each row and all stored values are finite; the
// constructors enforce both.
type CSR struct {
	rows, cols int
	indptr     []int
	indices    []int
	data       []float64
}

// New builds a CSR from raw compressed-row arrays and validates their
// structure.
func New(rows, cols int, indptr, indices []int, data []float64) (*CSR, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrBadShape, "rows=%d, cols=%d", rows, cols)
	}
	if len(indptr) != rows+1 || indptr[0] != 0 || indptr[rows] != len(indices) || len(indices) != len(data) {
		return nil, ErrBadIndptr
	}
	for i := 0; i < rows; i++ {
		if indptr[i] > indptr[i+1] {
			return nil, ErrBadIndptr
		}
		for k := indptr[i]; k < indptr[i+1]; k++ {
			if indices[k] < 0 || indices[k] >= cols {
				return nil, errors.Wrapf(ErrIndexOutOfRange, "row %d, column %d", i, indices[k])
			}
			if k > indptr[i] && indices[k] <= indices[k-1] {
				return nil, errors.Wrapf(ErrBadIndptr, "row %d not in strictly increasing column order", i)
			}
		}
	}
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrNaNInf
		}
	}
	return &CSR{rows: rows, cols: cols, indptr: indptr, indices: indices, data: data}, nil
}

// FromDense ingests a row-major dense matrix, dropping exact zeros.
func FromDense(rows, cols int, dense []float64) (*CSR, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrBadShape, "rows=%d, cols=%d", rows, cols)
	}
	if len(dense) != rows*cols {
		return nil, errors.Wrapf(ErrDimensionMismatch, "want %d values, got %d", rows*cols, len(dense))
	}
	indptr := make([]int, rows+1)
	indices := []int{}
	data := []float64{}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := dense[i*cols+j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Wrapf(ErrNaNInf, "at (%d, %d)", i, j)
			}
			if v == 0 {
				continue
			}
			indices = append(indices, j)
			data = append(data, v)
		}
		indptr[i+1] = len(indices)
	}
	return &CSR{rows: rows, cols: cols, indptr: indptr, indices: indices, data: data}, nil
}

// FromEdges builds an n x n adjacency from an edge list. Duplicate entries
// are summed, self-loops are kept.
func FromEdges(n int, edgeList []Edge) (*CSR, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrBadShape, "n=%d", n)
	}
	weights := make([]map[int]float64, n)
	for _, e := range edgeList {
		if e.Source < 0 || e.Source >= n || e.Target < 0 || e.Target >= n {
			return nil, errors.Wrapf(ErrIndexOutOfRange, "edge %d->%d with n=%d", e.Source, e.Target, n)
		}
		v := e.Value
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Wrapf(ErrNaNInf, "edge %d->%d", e.Source, e.Target)
		}
		if v == 0 {
			v = 1
		}
		if weights[e.Source] == nil {
			weights[e.Source] = map[int]float64{}
		}
		weights[e.Source][e.Target] += v
	}
	indptr := make([]int, n+1)
	indices := []int{}
	data := []float64{}
	for i := 0; i < n; i++ {
		cols := make([]int, 0, len(weights[i]))
		for j := range weights[i] {
			cols = append(cols, j)
		}
		sort.Ints(cols)
		for _, j := range cols {
			indices = append(indices, j)
			data = append(data, weights[i][j])
		}
		indptr[i+1] = len(indices)
	}
	return &CSR{rows: n, cols: n, indptr: indptr, indices: indices, data: data}, nil
}

// Rows returns the number of rows.
func (m *CSR) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *CSR) Cols() int { return m.cols }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return len(m.data) }

// Row returns the column indices and values of row i. The slices share the
// matrix's backing arrays and must not be modified.
func (m *CSR) Row(i int) ([]int, []float64) {
	lo, hi := m.indptr[i], m.indptr[i+1]
	return m.indices[lo:hi], m.data[lo:hi]
}

// At returns the value at (i, j), zero when no entry is stored.
func (m *CSR) At(i, j int) float64 {
	indices, data := m.Row(i)
	k := sort.SearchInts(indices, j)
	if k < len(indices) && indices[k] == j {
		return data[k]
	}
	return 0
}

// RowSums returns the per-row value sums (weighted out-degrees).
func (m *CSR) RowSums() []float64 {
	sums := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		_, data := m.Row(i)
		for _, v := range data {
			sums[i] += v
		}
	}
	return sums
}

// ColSums returns the per-column value sums (weighted in-degrees).
func (m *CSR) ColSums() []float64 {
	sums := make([]float64, m.cols)
	for k, j := range m.indices {
		sums[j] += m.data[k]
	}
	return sums
}

// Transpose returns a new CSR holding the transposed matrix.
func (m *CSR) Transpose() *CSR {
	indptr := make([]int, m.cols+1)
	for _, j := range m.indices {
		indptr[j+1]++
	}
	for j := 0; j < m.cols; j++ {
		indptr[j+1] += indptr[j]
	}
	indices := make([]int, len(m.indices))
	data := make([]float64, len(m.data))
	next := make([]int, m.cols)
	copy(next, indptr[:m.cols])
	for i := 0; i < m.rows; i++ {
		cols, vals := m.Row(i)
		for k, j := range cols {
			indices[next[j]] = i
			data[next[j]] = vals[k]
			next[j]++
		}
	}
	return &CSR{rows: m.cols, cols: m.rows, indptr: indptr, indices: indices, data: data}
}

// Add returns the entrywise sum of m and other.
func (m *CSR) Add(other *CSR) (*CSR, error) {
	if m.rows != other.rows || m.cols != other.cols {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%dx%d + %dx%d", m.rows, m.cols, other.rows, other.cols)
	}
	indptr := make([]int, m.rows+1)
	indices := []int{}
	data := []float64{}
	for i := 0; i < m.rows; i++ {
		ai, av := m.Row(i)
		bi, bv := other.Row(i)
		p, q := 0, 0
		for p < len(ai) || q < len(bi) {
			switch {
			case q == len(bi) || (p < len(ai) && ai[p] < bi[q]):
				indices = append(indices, ai[p])
				data = append(data, av[p])
				p++
			case p == len(ai) || bi[q] < ai[p]:
				indices = append(indices, bi[q])
				data = append(data, bv[q])
				q++
			default:
				indices = append(indices, ai[p])
				data = append(data, av[p]+bv[q])
				p++
				q++
			}
		}
		indptr[i+1] = len(indices)
	}
	return &CSR{rows: m.rows, cols: m.cols, indptr: indptr, indices: indices, data: data}, nil
}

// IsSymmetric reports whether every entry matches its transposed counterpart
// within eps.
func (m *CSR) IsSymmetric(eps float64) bool {
	if m.rows != m.cols {
		return false
	}
	t := m.Transpose()
	for i := 0; i < m.rows; i++ {
		ai, av := m.Row(i)
		bi, bv := t.Row(i)
		p, q := 0, 0
		for p < len(ai) || q < len(bi) {
			switch {
			case q == len(bi) || (p < len(ai) && ai[p] < bi[q]):
				if math.Abs(av[p]) > eps {
					return false
				}
				p++
			case p == len(ai) || bi[q] < ai[p]:
				if math.Abs(bv[q]) > eps {
					return false
				}
				q++
			default:
				if math.Abs(av[p]-bv[q]) > eps {
					return false
				}
				p++
				q++
			}
		}
	}
	return true
}

// DirectedToUndirected returns the symmetrized adjacency A + At.
func (m *CSR) DirectedToUndirected() *CSR {
	sum, _ := m.Add(m.Transpose())
	return sum
}

// symmetryEps is the tolerance used when deciding whether an adjacency is
// already symmetric.
const symmetryEps = 1e-12

// ValidateAndSymmetrize normalizes an adjacency into the square, symmetric
// form the layout solver requires. Non-square input fails with ErrNonSquare;
// already-symmetric input is returned unchanged, anything else is
// symmetrized as A + At.
func ValidateAndSymmetrize(adjacency *CSR) (*CSR, error) {
	if adjacency.rows != adjacency.cols {
		return nil, errors.Wrapf(ErrNonSquare, "%dx%d", adjacency.rows, adjacency.cols)
	}
	if adjacency.IsSymmetric(symmetryEps) {
		return adjacency, nil
	}
	return adjacency.DirectedToUndirected(), nil
}
