package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeKey(t *testing.T) {
	{ // Packing is canonical in ascending vertex order
		ek := NewEdgeKey(1, 0)
		assert.Equal(t, EdgeKey(1<<32), ek)
		v1, v2 := ek.Vertices()
		assert.Equal(t, [2]int{0, 1}, [2]int{v1, v2})

		ek = NewEdgeKey(0, 1)
		assert.Equal(t, EdgeKey(1<<32), ek)

		ek = NewEdgeKey(100, 1)
		assert.Equal(t, EdgeKey(100*(1<<32)+1), ek)
		v1, v2 = ek.Vertices()
		assert.Equal(t, [2]int{1, 100}, [2]int{v1, v2})

		// Maximum indices
		ek = NewEdgeKey(1<<32-1, 1)
		assert.Equal(t, EdgeKey((1<<32-1)<<32+1), ek)
		v1, v2 = ek.Vertices()
		assert.Equal(t, [2]int{1, 1<<32 - 1}, [2]int{v1, v2})
	}
	{ // Negative indices are a programmer error
		assert.Panics(t, func() { NewEdgeKey(-1, 0) })
	}
}

func TestEdgeToFaces(t *testing.T) {
	faces := [][3]int{{0, 1, 2}, {1, 2, 3}}
	e2f := NewEdgeToFaces(faces)
	assert.Equal(t, 5, len(e2f))
	assert.Equal(t, []int{0, 1}, e2f[NewEdgeKey(1, 2)])
	assert.Equal(t, []int{0}, e2f[NewEdgeKey(0, 1)])
	assert.Equal(t, []int{1}, e2f[NewEdgeKey(2, 3)])

	keys := e2f.SortedKeys()
	for i := 1; i < len(keys); i++ {
		assert.True(t, keys[i-1] < keys[i])
	}
}
