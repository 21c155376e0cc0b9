package layout

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/quartercastle/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suxatcode/spring-layout/sparse"
)

func cycleGraph(t *testing.T, n int) *sparse.CSR {
	t.Helper()
	edges := []sparse.Edge{}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edges = append(edges, sparse.Edge{Source: i, Target: j}, sparse.Edge{Source: j, Target: i})
	}
	adj, err := sparse.FromEdges(n, edges)
	require.NoError(t, err)
	return adj
}

func emptyGraph(t *testing.T, n int) *sparse.CSR {
	t.Helper()
	adj, err := sparse.FromEdges(n, nil)
	require.NoError(t, err)
	return adj
}

func TestComputeLayout_ShapeInvariant(t *testing.T) {
	for _, test := range []struct {
		Name   string
		Config Config
	}{
		{Name: "spectral initialization", Config: Config{InitialLayout: InitialLayoutSpectral}},
		{Name: "random initialization", Config: Config{InitialLayout: InitialLayoutRandom}},
	} {
		t.Run(test.Name, func(t *testing.T) {
			fs := NewForceSimulation(test.Config)
			pos, _, err := fs.ComputeLayout(context.Background(), cycleGraph(t, 5), nil, -1)
			require.NoError(t, err)
			assert := assert.New(t)
			assert.Len(pos, 5)
			for _, p := range pos {
				assert.Len(p, 2)
				assert.False(math.IsNaN(p.X()) || math.IsNaN(p.Y()), "coordinates must be finite")
			}
		})
	}
}

func TestComputeLayout_ZeroIterationsReturnsInitialPositions(t *testing.T) {
	fs := NewForceSimulation(Config{})
	posInit := []vector.Vector{{1, 2}, {3, 4}, {5, 6}}
	pos, stats, err := fs.ComputeLayout(context.Background(), cycleGraph(t, 3), posInit, 0)
	require.NoError(t, err)
	assert := assert.New(t)
	assert.Equal(posInit, pos)
	assert.Equal(0, stats.Iterations)
	assert.False(stats.Converged)
}

func TestComputeLayout_DoesNotMutateSuppliedPositions(t *testing.T) {
	fs := NewForceSimulation(Config{})
	posInit := []vector.Vector{{0, 0}, {1, 0}, {0, 1}}
	pos, _, err := fs.ComputeLayout(context.Background(), cycleGraph(t, 3), posInit, 10)
	require.NoError(t, err)
	assert := assert.New(t)
	assert.Equal([]vector.Vector{{0, 0}, {1, 0}, {0, 1}}, posInit)
	assert.NotEqual(posInit, pos, "simulation should have moved the nodes")
}

func TestComputeLayout_InvalidInitialPositions(t *testing.T) {
	for _, test := range []struct {
		Name    string
		PosInit []vector.Vector
	}{
		{Name: "too few positions", PosInit: []vector.Vector{{1, 2}, {3, 4}}},
		{Name: "too many positions", PosInit: []vector.Vector{{1, 2}, {3, 4}, {5, 6}, {7, 8}}},
		{Name: "3-dimensional position", PosInit: []vector.Vector{{1, 2}, {3, 4}, {5, 6, 7}}},
		{Name: "empty position", PosInit: []vector.Vector{{1, 2}, {3, 4}, {}}},
	} {
		t.Run(test.Name, func(t *testing.T) {
			fs := NewForceSimulation(Config{})
			pos, _, err := fs.ComputeLayout(context.Background(), cycleGraph(t, 3), test.PosInit, -1)
			assert.ErrorIs(t, err, ErrInvalidInitialPosition)
			assert.Nil(t, pos)
		})
	}
}

func TestComputeLayout_UnknownInitialLayout(t *testing.T) {
	fs := NewForceSimulation(Config{InitialLayout: InitialLayout(42)})
	pos, _, err := fs.ComputeLayout(context.Background(), cycleGraph(t, 3), nil, -1)
	assert.ErrorIs(t, err, ErrUnknownInitialLayout)
	assert.Nil(t, pos)
}

func TestComputeLayout_ConvergenceShortCircuit(t *testing.T) {
	// a tolerance above any achievable displacement stops after the first
	// iteration
	fs := NewForceSimulation(Config{Tolerance: 1e12})
	posInit := []vector.Vector{{0, 0}, {1, 0}, {0, 1}}
	_, stats, err := fs.ComputeLayout(context.Background(), cycleGraph(t, 3), posInit, 50)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Iterations)
	assert.True(t, stats.Converged)
}

// Two unconnected nodes on the x-axis repel each other symmetrically, and
// the per-iteration movement follows the cooling schedule exactly: the
// aggregate x-displacement norm equals stepMax, which shrinks by a constant
// step every iteration.
func TestComputeLayout_LinearCoolingSchedule(t *testing.T) {
	iterations := 5
	fs := NewForceSimulation(Config{})
	posInit := []vector.Vector{{0, 0}, {1, 0}}
	pos, stats, err := fs.ComputeLayout(context.Background(), emptyGraph(t, 2), posInit, iterations)
	require.NoError(t, err)

	separation := 1.0
	stepMax := 0.1 * separation
	step := stepMax / float64(iterations+1)
	for k := 0; k < iterations; k++ {
		// both nodes move stepMax/sqrt(2) apart along x
		separation += math.Sqrt2 * stepMax
		stepMax -= step
	}
	assert := assert.New(t)
	assert.Equal(iterations, stats.Iterations)
	assert.InDelta((1.0-separation)/2, pos[0].X(), 1e-9)
	assert.InDelta((1.0+separation)/2, pos[1].X(), 1e-9)
	assert.InDelta(0.0, pos[0].Y(), 1e-9)
	assert.InDelta(0.0, pos[1].Y(), 1e-9)
}

func TestComputeLayout_ForceAntisymmetry(t *testing.T) {
	adj, err := sparse.FromEdges(2, []sparse.Edge{
		{Source: 0, Target: 1, Value: 3},
		{Source: 1, Target: 0, Value: 3},
	})
	require.NoError(t, err)
	fs := NewForceSimulation(Config{Tolerance: 1e-30})
	posInit := []vector.Vector{{0, 0}, {2, 1}}
	for _, iterations := range []int{1, 2, 5} {
		pos, _, err := fs.ComputeLayout(context.Background(), adj, posInit, iterations)
		require.NoError(t, err)
		// displacements of the two nodes cancel exactly, so the midpoint
		// never moves
		assert.InDelta(t, 1.0, (pos[0].X()+pos[1].X())/2, 1e-12)
		assert.InDelta(t, 0.5, (pos[0].Y()+pos[1].Y())/2, 1e-12)
	}
}

func TestComputeLayout_CycleGraphFormsDiamond(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	fs := NewForceSimulation(Config{
		Strength:      0.5,
		InitialLayout: InitialLayoutRandom,
		RandomNormal:  rnd.NormFloat64,
	})
	pos, _, err := fs.ComputeLayout(context.Background(), cycleGraph(t, 4), nil, 50)
	require.NoError(t, err)

	distance := func(i, j int) float64 {
		return pos[i].Sub(pos[j]).Magnitude()
	}
	edges := []float64{distance(0, 1), distance(1, 2), distance(2, 3), distance(3, 0)}
	diagonals := []float64{distance(0, 2), distance(1, 3)}

	// because of the nature of the simulation not every pairwise comparison
	// holds every time, so a small number of them may fail
	passing := 0
	for _, d := range diagonals {
		for _, e := range edges {
			if d > e {
				passing++
			}
		}
	}
	assert := assert.New(t)
	assert.GreaterOrEqual(passing, 6, "diagonals should exceed edge distances")
	meanEdge := (edges[0] + edges[1] + edges[2] + edges[3]) / 4
	meanDiagonal := (diagonals[0] + diagonals[1]) / 2
	assert.Greater(meanDiagonal, meanEdge)
}

func TestComputeLayout_ParallelMatchesSequential(t *testing.T) {
	posInit := []vector.Vector{{0, 0}, {1, 0}, {0, 1}, {2, 2}, {3, 1}, {1, 3}}
	sequential := NewForceSimulation(Config{})
	parallel := NewForceSimulation(Config{Parallelization: 3})
	adj := cycleGraph(t, 6)
	a, _, err := sequential.ComputeLayout(context.Background(), adj, posInit, 20)
	require.NoError(t, err)
	b, _, err := parallel.ComputeLayout(context.Background(), adj, posInit, 20)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeLayout_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fs := NewForceSimulation(Config{})
	posInit := []vector.Vector{{0, 0}, {1, 0}}
	pos, stats, err := fs.ComputeLayout(ctx, emptyGraph(t, 2), posInit, 10)
	assert := assert.New(t)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(posInit, pos, "no iteration should have run")
	assert.Equal(0, stats.Iterations)
}

func TestApplyConfig_Defaults(t *testing.T) {
	fs := NewForceSimulation(Config{})
	assert := assert.New(t)
	assert.Equal(DefaultConfig.Tolerance, fs.conf.Tolerance)
	assert.Equal(DefaultConfig.MaxIterations, fs.conf.MaxIterations)
	assert.Equal(InitialLayoutSpectral, fs.conf.InitialLayout)
	assert.NotNil(fs.conf.Initializer)
	assert.NotNil(fs.conf.RandomNormal)
	assert.Zero(fs.conf.Strength, "strength stays zero and resolves to 1/sqrt(n) per call")
}
