package layout

import (
	"context"

	"github.com/pkg/errors"
	"github.com/quartercastle/vector"

	"github.com/suxatcode/spring-layout/sparse"
)

var (
	// ErrInvalidInitialPosition is returned when supplied starting
	// positions do not have shape (n, 2).
	ErrInvalidInitialPosition = errors.New("layout: initial positions have invalid shape")

	// ErrUnknownInitialLayout is returned when the configured
	// initialization strategy is not one of the known values.
	ErrUnknownInitialLayout = errors.New("layout: unknown initial layout strategy")
)

// initialPositions resolves the starting positions for one simulation run.
// Supplied positions win over the configured strategy and are copied so the
// caller's array is never mutated; shape errors surface before any
// simulation work.
func (fs *ForceSimulation) initialPositions(ctx context.Context, adjacency *sparse.CSR, posInit []vector.Vector) ([]vector.Vector, error) {
	n := adjacency.Rows()
	if posInit != nil {
		if len(posInit) != n {
			return nil, errors.Wrapf(ErrInvalidInitialPosition, "want %d positions, got %d", n, len(posInit))
		}
		pos := make([]vector.Vector, n)
		for i, p := range posInit {
			if len(p) != 2 {
				return nil, errors.Wrapf(ErrInvalidInitialPosition, "position %d has %d dimensions", i, len(p))
			}
			pos[i] = vector.Vector{p.X(), p.Y()}
		}
		return pos, nil
	}
	switch fs.conf.InitialLayout {
	case InitialLayoutSpectral:
		pos, err := fs.conf.Initializer.InitialPositions(ctx, adjacency, 2)
		if err != nil {
			return nil, errors.Wrap(err, "spectral initialization")
		}
		if len(pos) != n {
			return nil, errors.Wrapf(ErrInvalidInitialPosition, "initializer returned %d positions for %d nodes", len(pos), n)
		}
		return pos, nil
	case InitialLayoutRandom:
		pos := make([]vector.Vector, n)
		for i := range pos {
			pos[i] = vector.Vector{fs.conf.RandomNormal(), fs.conf.RandomNormal()}
		}
		return pos, nil
	default:
		return nil, errors.Wrapf(ErrUnknownInitialLayout, "%d", fs.conf.InitialLayout)
	}
}
