// Package layout computes 2D spatial embeddings of graph nodes with a
// spring (Fruchterman-Reingold style) force simulation: edges pull their
// endpoints together, every node pair is pushed apart, and a linearly
// cooled step size caps the movement per iteration until the displacement
// falls below a tolerance or the iteration budget runs out.
package layout

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/quartercastle/vector"
	"github.com/rs/zerolog/log"

	"github.com/suxatcode/spring-layout/sparse"
	"github.com/suxatcode/spring-layout/spectral"
)

// InitialLayout selects how starting positions are produced when
// ComputeLayout receives none.
type InitialLayout int

const (
	InitialLayoutUndefined InitialLayout = iota
	// embed the adjacency spectrally (GSVD in dimension 2)
	InitialLayoutSpectral
	// draw every coordinate from a standard normal distribution
	InitialLayoutRandom
)

// Initializer produces dim-dimensional starting positions for the nodes of
// an adjacency, one vector per row.
//
//go:generate mockgen -destination init_mock.go -package layout . Initializer
type Initializer interface {
	InitialPositions(ctx context.Context, adjacency *sparse.CSR, dim int) ([]vector.Vector, error)
}

type Config struct {
	// Strength balances repulsion against attraction. Zero means
	// 1/sqrt(n), resolved per call, which keeps the force magnitudes
	// stable across graph sizes.
	Strength float64
	// Tolerance is the mean per-node displacement below which the
	// simulation stops early.
	Tolerance float64
	// MaxIterations bounds the simulation when ComputeLayout is called
	// with a negative iteration budget.
	MaxIterations int
	// InitialLayout defines how nodes are placed before the simulation
	// starts; exactly one strategy runs per call, there is no fallback.
	InitialLayout InitialLayout
	// Initializer performs the spectral embedding. Nil selects GSVD.
	Initializer Initializer
	// RandomNormal is the source of standard-normal draws for
	// InitialLayoutRandom.
	RandomNormal func() float64
	// Parallelization is the number of goroutines the per-node force
	// computation is split across. Zero keeps it sequential; the result
	// is identical either way, since every node only reads the position
	// snapshot of the iteration and writes its own displacement.
	Parallelization int
}

var DefaultConfig = Config{
	Tolerance:     1e-4,
	MaxIterations: 50,
	InitialLayout: InitialLayoutSpectral,
}

// ForceSimulation holds the resolved configuration for spring layout
// computations. All simulation state lives inside a single ComputeLayout
// call; separate calls share nothing.
type ForceSimulation struct {
	conf Config
}

func NewForceSimulation(conf Config) *ForceSimulation {
	fs := &ForceSimulation{}
	fs.ApplyConfig(conf)
	return fs
}

func (fs *ForceSimulation) ApplyConfig(conf Config) {
	if conf.Tolerance == 0.0 {
		conf.Tolerance = DefaultConfig.Tolerance
	}
	if conf.MaxIterations == 0 {
		conf.MaxIterations = DefaultConfig.MaxIterations
	}
	if conf.InitialLayout == InitialLayoutUndefined {
		conf.InitialLayout = DefaultConfig.InitialLayout
	}
	if conf.Initializer == nil {
		conf.Initializer = spectral.GSVD{}
	}
	if conf.RandomNormal == nil {
		conf.RandomNormal = rand.NormFloat64
	}
	fs.conf = conf
}

type Stats struct {
	Iterations int
	Converged  bool
	TotalTime  time.Duration
}

// ComputeLayout runs the spring simulation on a square, symmetric adjacency
// and returns the final (n, 2) positions. posInit may be nil, in which case
// the configured InitialLayout strategy produces the starting positions;
// otherwise it must hold exactly one 2D vector per node and is copied, never
// mutated. maxIterations bounds the simulation; negative means the
// configured default, zero returns the initial positions unchanged.
// Non-convergence within the budget is not an error.
func (fs *ForceSimulation) ComputeLayout(ctx context.Context, adjacency *sparse.CSR, posInit []vector.Vector, maxIterations int) ([]vector.Vector, Stats, error) {
	pos, err := fs.initialPositions(ctx, adjacency, posInit)
	if err != nil {
		return nil, Stats{}, err
	}
	if maxIterations < 0 {
		maxIterations = fs.conf.MaxIterations
	}
	n := adjacency.Rows()
	strength := fs.conf.Strength
	if strength == 0.0 {
		strength = math.Sqrt(1 / float64(n))
	}

	// stepMax starts at 10% of the larger axis spread of the initial
	// positions and shrinks by a constant step every iteration.
	spreadX, spreadY := axisSpreads(pos)
	stepMax := 0.1 * math.Max(spreadX, spreadY)
	step := stepMax / float64(maxIterations+1)

	delta := make([]vector.Vector, n)
	stats := Stats{}
	startTime := time.Now()
simulation:
	for iteration := 0; iteration < maxIterations; iteration++ {
		select {
		case <-ctx.Done():
			stats.TotalTime = time.Since(startTime)
			return pos, stats, ctx.Err()
		default:
			// continue looping
		}
		fs.computeDisplacement(adjacency, pos, delta, strength)
		scaleDisplacement(delta, stepMax)
		for i := range pos {
			vector.In(pos[i]).Add(delta[i])
		}
		stepMax -= step
		stats.Iterations++
		if frobeniusNorm(delta)/float64(n) < fs.conf.Tolerance {
			stats.Converged = true
			break simulation
		}
	}
	stats.TotalTime = time.Since(startTime)
	log.Debug().Msgf(
		"graph layout computation finished: stats{iterations: %d, converged: %v, time: %d ms}",
		stats.Iterations, stats.Converged, stats.TotalTime.Milliseconds(),
	)
	return pos, stats, nil
}

// axisSpreads returns the max-minus-min coordinate value per axis.
func axisSpreads(pos []vector.Vector) (float64, float64) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range pos {
		minX = math.Min(minX, p.X())
		maxX = math.Max(maxX, p.X())
		minY = math.Min(minY, p.Y())
		maxY = math.Max(maxY, p.Y())
	}
	return maxX - minX, maxY - minY
}

func frobeniusNorm(delta []vector.Vector) float64 {
	sum := 0.0
	for _, d := range delta {
		sum += d.X()*d.X() + d.Y()*d.Y()
	}
	return math.Sqrt(sum)
}
