package layout

import (
	"math"
	"sync"

	"github.com/quartercastle/vector"

	"github.com/suxatcode/spring-layout/sparse"
)

// minDistance is the lower clamp on pairwise distances, avoiding division
// blow-up between (nearly) coincident nodes.
const minDistance = 0.01

// computeDisplacement fills delta with the net force vector of every node:
// all-pairs repulsion of (strength*distance)^2 minus neighbor-only
// attraction of weight*distance/strength, each applied along the gradient
// from the other node. Attraction is exactly zero for non-adjacent pairs.
// Nodes only read the position snapshot and write their own delta entry, so
// the per-node work is split across goroutines when configured.
func (fs *ForceSimulation) computeDisplacement(adjacency *sparse.CSR, pos, delta []vector.Vector, strength float64) {
	if fs.conf.Parallelization > 0 {
		total := len(pos)
		p := fs.conf.Parallelization
		if p > total {
			p = total
		}
		wg := sync.WaitGroup{}
		wg.Add(p)
		for w := 0; w < p; w++ {
			go func(w int) {
				defer wg.Done()
				for i := w * total / p; i < (w+1)*total/p; i++ {
					delta[i] = nodeDisplacement(adjacency, pos, i, strength)
				}
			}(w)
		}
		wg.Wait()
		return
	}
	for i := range pos {
		delta[i] = nodeDisplacement(adjacency, pos, i, strength)
	}
}

// nodeDisplacement sums the force contributions of every other node on node
// i. Scalar math on purpose: this is the O(n^2) hot path and vector
// allocations are heavy.
func nodeDisplacement(adjacency *sparse.CSR, pos []vector.Vector, i int, strength float64) vector.Vector {
	indices, data := adjacency.Row(i)
	xi, yi := pos[i].X(), pos[i].Y()
	dx, dy := 0.0, 0.0
	k := 0
	for j := range pos {
		gradX := xi - pos[j].X()
		gradY := yi - pos[j].Y()
		dist := math.Sqrt(gradX*gradX + gradY*gradY)
		if dist < minDistance {
			dist = minDistance
		}
		repulsion := (strength * dist) * (strength * dist)
		attraction := 0.0
		for k < len(indices) && indices[k] < j {
			k++
		}
		if k < len(indices) && indices[k] == j {
			attraction = data[k] * dist / strength
		}
		scale := repulsion - attraction
		dx += gradX * scale
		dy += gradY * scale
	}
	return vector.Vector{dx, dy}
}

// scaleDisplacement normalizes the aggregate displacement towards stepMax,
// independently per axis: each axis is scaled by stepMax over the Euclidean
// norm of that axis across all nodes. Axis norms below 0.01 are treated as
// 0.1 to avoid divide-by-zero.
func scaleDisplacement(delta []vector.Vector, stepMax float64) {
	normX, normY := 0.0, 0.0
	for _, d := range delta {
		normX += d.X() * d.X()
		normY += d.Y() * d.Y()
	}
	normX = math.Sqrt(normX)
	normY = math.Sqrt(normY)
	if normX < minDistance {
		normX = 0.1
	}
	if normY < minDistance {
		normY = 0.1
	}
	for i := range delta {
		delta[i] = vector.Vector{
			delta[i].X() * stepMax / normX,
			delta[i].Y() * stepMax / normY,
		}
	}
}
