package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleQuad() *Mesh {
	return &Mesh{
		Vertices: [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Faces:    [][3]int{{0, 1, 2}, {0, 2, 3}},
		Normals:  [][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	}
}

func TestRemoveNoVertices(t *testing.T) {
	m := sampleQuad()
	out := RemoveVertices(m, nil)
	assert.Equal(t, m.Vertices, out.Vertices)
	assert.Equal(t, m.Faces, out.Faces)
	assert.Equal(t, m.Normals, out.Normals)
}

func TestRemoveSpecificVertex(t *testing.T) {
	out := RemoveVertices(sampleQuad(), []int{1})
	assert.Equal(t, [][3]float64{{0, 0, 0}, {1, 1, 0}, {0, 1, 0}}, out.Vertices)
	// The face containing vertex 1 is gone; the survivor is remapped
	assert.Equal(t, [][3]int{{0, 1, 2}}, out.Faces)
	assert.Equal(t, [][3]float64{{1, 0, 0}, {0, 0, 1}, {1, 0, 0}}, out.Normals)
}

func TestRemoveAllVertices(t *testing.T) {
	out := RemoveVertices(sampleQuad(), []int{0, 1, 2, 3})
	assert.Equal(t, 0, out.NumVertices())
	assert.Equal(t, 0, out.NumFaces())
	assert.True(t, out.HasNormals())
	assert.Equal(t, 0, len(out.Normals))
}

func TestRemoveVerticesKillsAllFaces(t *testing.T) {
	// Removing 0 and 2 invalidates both faces but keeps two vertices
	out := RemoveVertices(sampleQuad(), []int{0, 2})
	assert.Equal(t, 2, out.NumVertices())
	assert.Equal(t, 0, out.NumFaces())
}

func TestRemoveUnconnectedVertices(t *testing.T) {
	{ // All vertices connected: nothing removed
		m := sampleQuad()
		out := RemoveUnconnectedVertices(m)
		assert.Equal(t, 4, out.NumVertices())
		assert.Equal(t, m.Faces, out.Faces)
	}
	{ // One unconnected vertex is dropped
		m := &Mesh{
			Vertices: [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {2, 2, 2}},
			Faces:    [][3]int{{0, 1, 2}, {0, 2, 3}},
		}
		out := RemoveUnconnectedVertices(m)
		assert.Equal(t, 4, out.NumVertices())
	}
	{ // No vertices at all
		out := RemoveUnconnectedVertices(&Mesh{})
		assert.Equal(t, 0, out.NumVertices())
	}
	{ // Vertices but no faces: all removed
		m := &Mesh{Vertices: [][3]float64{{0, 0, 0}, {1, 0, 0}}}
		out := RemoveUnconnectedVertices(m)
		assert.Equal(t, 0, out.NumVertices())
	}
	{ // Exactly connected triangle survives whole
		m := &Mesh{
			Vertices: [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}},
			Faces:    [][3]int{{0, 1, 2}},
		}
		out := RemoveUnconnectedVertices(m)
		assert.Equal(t, 3, out.NumVertices())
	}
}

func TestRemoveUnconnectedVerticesIdempotent(t *testing.T) {
	m := &Mesh{
		Vertices: [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {2, 2, 2}},
		Faces:    [][3]int{{0, 1, 2}, {0, 2, 3}},
		Normals:  [][3]float64{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
	}
	once := RemoveUnconnectedVertices(m)
	twice := RemoveUnconnectedVertices(once)
	assert.Equal(t, once.Vertices, twice.Vertices)
	assert.Equal(t, once.Faces, twice.Faces)
	assert.Equal(t, once.Normals, twice.Normals)
}

func TestPruneFaceValidityInvariant(t *testing.T) {
	m := sampleQuad()
	for _, remove := range [][]int{{0}, {1}, {2}, {3}, {0, 3}, {1, 2}} {
		out := RemoveVertices(m, remove)
		for _, f := range out.Faces {
			for _, v := range f {
				assert.True(t, v >= 0 && v < out.NumVertices())
			}
		}
	}
}
