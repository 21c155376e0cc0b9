package layout

import (
	"context"
	"math/rand"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/quartercastle/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialPositions_SpectralDelegatesToInitializer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	adj := cycleGraph(t, 3)
	want := []vector.Vector{{1, 1}, {2, 2}, {3, 3}}
	initializer := NewMockInitializer(ctrl)
	initializer.EXPECT().InitialPositions(gomock.Any(), adj, 2).Return(want, nil)

	fs := NewForceSimulation(Config{InitialLayout: InitialLayoutSpectral, Initializer: initializer})
	pos, _, err := fs.ComputeLayout(context.Background(), adj, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, want, pos)
}

func TestInitialPositions_InitializerErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	adj := cycleGraph(t, 3)
	initializer := NewMockInitializer(ctrl)
	boom := errors.New("low-rank embedding failed")
	initializer.EXPECT().InitialPositions(gomock.Any(), adj, 2).Return(nil, boom)

	fs := NewForceSimulation(Config{Initializer: initializer})
	pos, _, err := fs.ComputeLayout(context.Background(), adj, nil, -1)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, pos)
}

func TestInitialPositions_InitializerShapeMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	adj := cycleGraph(t, 3)
	initializer := NewMockInitializer(ctrl)
	initializer.EXPECT().InitialPositions(gomock.Any(), adj, 2).Return([]vector.Vector{{1, 1}}, nil)

	fs := NewForceSimulation(Config{Initializer: initializer})
	_, _, err := fs.ComputeLayout(context.Background(), adj, nil, -1)
	assert.ErrorIs(t, err, ErrInvalidInitialPosition)
}

func TestInitialPositions_ExplicitPositionsSkipInitializer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	adj := cycleGraph(t, 3)
	// no EXPECT: the initializer must not be called
	initializer := NewMockInitializer(ctrl)

	fs := NewForceSimulation(Config{Initializer: initializer})
	posInit := []vector.Vector{{0, 0}, {1, 0}, {0, 1}}
	pos, _, err := fs.ComputeLayout(context.Background(), adj, posInit, 0)
	require.NoError(t, err)
	assert.Equal(t, posInit, pos)
}

func TestInitialPositions_RandomIsReproducibleGivenSeed(t *testing.T) {
	draw := func() []vector.Vector {
		rnd := rand.New(rand.NewSource(7))
		fs := NewForceSimulation(Config{
			InitialLayout: InitialLayoutRandom,
			RandomNormal:  rnd.NormFloat64,
		})
		pos, _, err := fs.ComputeLayout(context.Background(), cycleGraph(t, 4), nil, 0)
		require.NoError(t, err)
		return pos
	}
	a, b := draw(), draw()
	assert := assert.New(t)
	assert.Equal(a, b)
	assert.Len(a, 4)
	for _, p := range a {
		assert.Len(p, 2)
	}
}
