package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVertexIndexNearest(t *testing.T) {
	vertices := [][3]float64{
		{0, 0, 0}, {10, 0, 0}, {0, 10, 0}, {0, 0, 10}, {5, 5, 5},
	}
	vi := newVertexIndex(vertices)
	{ // Exact hits return their own id
		for i, v := range vertices {
			assert.Equal(t, i, vi.nearest(v))
		}
	}
	{ // Off-vertex queries resolve to the closest vertex
		assert.Equal(t, 0, vi.nearest([3]float64{1, 1, 1}))
		assert.Equal(t, 1, vi.nearest([3]float64{9, 1, 0}))
		assert.Equal(t, 4, vi.nearest([3]float64{6, 5, 4}))
	}
}

func TestVertexIndexNearestTieBreak(t *testing.T) {
	// Vertices 0 and 1 are equidistant from the query; the lower id wins
	// regardless of tree layout
	vi := newVertexIndex([][3]float64{
		{-1, 0, 0}, {1, 0, 0}, {0, 5, 0},
	})
	assert.Equal(t, 0, vi.nearest([3]float64{0, 0, 0}))

	// Same geometry with the ids reversed still prefers the lower id
	vi = newVertexIndex([][3]float64{
		{1, 0, 0}, {-1, 0, 0}, {0, 5, 0},
	})
	assert.Equal(t, 0, vi.nearest([3]float64{0, 0, 0}))
}
