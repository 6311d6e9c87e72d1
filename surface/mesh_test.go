package surface

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVectorsNear(t *testing.T, expected, actual [][3]float64, tol float64) {
	t.Helper()
	assert.Equal(t, len(expected), len(actual))
	for i := range expected {
		for c := 0; c < 3; c++ {
			assert.InDelta(t, expected[i][c], actual[i][c], tol,
				"row %d component %d", i, c)
		}
	}
}

func TestNormit(t *testing.T) {
	{ // Regular vectors
		got := Normit([][3]float64{{3, 4, 0}, {1, 1, 1}})
		s3 := 1 / math.Sqrt(3)
		assertVectorsNear(t, [][3]float64{{0.6, 0.8, 0}, {s3, s3, s3}}, got, 1.e-8)
	}
	{ // Zero vectors pass through
		got := Normit([][3]float64{{0, 0, 0}, {0, 0, 0}})
		assertVectorsNear(t, [][3]float64{{0, 0, 0}, {0, 0, 0}}, got, 0)
	}
	{ // Norms at the limit of floating point precision are left alone
		got := Normit([][3]float64{{1e-20, 1e-20, 1e-20}, {1e-20, 0, 0}})
		assertVectorsNear(t, [][3]float64{{1e-20, 1e-20, 1e-20}, {1e-20, 0, 0}}, got, 0)
	}
	{ // Single vector
		got := Normit([][3]float64{{9, 12, 0}})
		assertVectorsNear(t, [][3]float64{{0.6, 0.8, 0}}, got, 1.e-8)
	}
	{ // Empty input
		assert.Equal(t, 0, len(Normit(nil)))
	}
}

func TestMeshNormals(t *testing.T) {
	// Simple pyramid mesh
	vertices := [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	faces := [][3]int{{0, 1, 2}, {0, 1, 3}, {1, 2, 3}, {0, 2, 3}}

	s3 := 1 / math.Sqrt(3)
	expectedVertex := [][3]float64{
		{-1, 1, -1},
		{-0.57735026, 0.42264974, -1.5773503},
		{-1.5773503, -0.57735026, -1.5773503},
		{-1.5773503, 0.42264974, -0.57735026},
	}
	expectedFace := [][3]float64{
		{0, 0, -1},
		{0, 1, 0},
		{-s3, -s3, -s3},
		{-1, 0, 0},
	}

	vn, fn := MeshNormals(vertices, faces, false)
	assertVectorsNear(t, expectedVertex, vn, 1.e-6)
	assertVectorsNear(t, expectedFace, fn, 1.e-6)

	vn, fn = MeshNormals(vertices, faces, true)
	assertVectorsNear(t, Normit(expectedVertex), vn, 1.e-6)
	assertVectorsNear(t, Normit(expectedFace), fn, 1.e-6)
}

func TestNewMeshValidation(t *testing.T) {
	vertices := [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	faces := [][3]int{{0, 1, 2}, {0, 2, 3}}
	{ // Well-formed, with and without normals
		m, err := NewMesh(vertices, faces, nil)
		assert.NoError(t, err)
		assert.False(t, m.HasNormals())

		normals := [][3]float64{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
		m, err = NewMesh(vertices, faces, normals)
		assert.NoError(t, err)
		assert.True(t, m.HasNormals())
	}
	{ // Out-of-range face reference is an error, not a clamp
		_, err := NewMesh(vertices, [][3]int{{0, 1, 4}}, nil)
		assert.Error(t, err)
		_, err = NewMesh(vertices, [][3]int{{0, -1, 2}}, nil)
		assert.Error(t, err)
	}
	{ // Normals length must match vertices
		_, err := NewMesh(vertices, faces, [][3]float64{{0, 0, 1}})
		assert.Error(t, err)
	}
	{ // Empty mesh is valid
		m, err := NewMesh(nil, nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, 0, m.NumVertices())
	}
}

func TestCombineSurfaces(t *testing.T) {
	a := &Mesh{
		Vertices: [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Faces:    [][3]int{{0, 1, 2}, {0, 2, 3}},
		Normals:  [][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	}
	b := a.Copy()
	for i := range b.Vertices {
		b.Vertices[i][2] += 5
	}

	combined := CombineSurfaces([]*Mesh{a, b})
	assert.Equal(t, 8, combined.NumVertices())
	assert.Equal(t, 4, combined.NumFaces())
	// Vertex array is the vertical concatenation
	assert.Equal(t, a.Vertices[0], combined.Vertices[0])
	assert.Equal(t, b.Vertices[0], combined.Vertices[4])
	// Second mesh's faces are offset by the first's vertex count
	assert.Equal(t, [3]int{0, 1, 2}, combined.Faces[0])
	assert.Equal(t, [3]int{4, 5, 6}, combined.Faces[2])
	assert.Equal(t, [3]int{4, 6, 7}, combined.Faces[3])
	// Normals concatenate when all inputs carry them
	assert.True(t, combined.HasNormals())
	assert.Equal(t, 8, len(combined.Normals))

	// One normal-less input degrades the result to no normals
	c := b.Copy()
	c.Normals = nil
	combined = CombineSurfaces([]*Mesh{a, c})
	assert.False(t, combined.HasNormals())

	// Empty input list
	combined = CombineSurfaces(nil)
	assert.Equal(t, 0, combined.NumVertices())
	assert.Equal(t, 0, combined.NumFaces())
}

func TestMeshCopyIsDeep(t *testing.T) {
	m := &Mesh{
		Vertices: [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}},
		Faces:    [][3]int{{0, 1, 2}},
		Normals:  [][3]float64{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
	}
	c := m.Copy()
	c.Vertices[0][0] = 99
	c.Faces[0][0] = 2
	c.Normals[0][2] = -1
	assert.Equal(t, [3]float64{0, 0, 0}, m.Vertices[0])
	assert.Equal(t, [3]int{0, 1, 2}, m.Faces[0])
	assert.Equal(t, [3]float64{0, 0, 1}, m.Normals[0])
}
