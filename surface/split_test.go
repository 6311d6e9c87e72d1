package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func splitTestVertices() [][3]float64 {
	return [][3]float64{
		{2, 4, 0},
		{2, 8, 0},
		{8, 4, 0},
		{8, 0, 0},
		{0, 4, 0},
		{2, 6, 0},
		{2, 2, 0},
		{4, 2, 0},
		{4, 0, 0},
		{5, 2, 0},
		{5, 0, 0},
	}
}

func TestSplitFVTwoPatches(t *testing.T) {
	faces := [][3]int{{0, 1, 2}, {2, 4, 5}, {6, 7, 2}, {8, 9, 10}}
	patches := SplitFV(faces, splitTestVertices())
	assert.Equal(t, 2, len(patches))

	// First patch: three faces renumbered by first appearance
	assert.Equal(t, [][3]int{{0, 1, 2}, {2, 3, 4}, {5, 6, 2}}, patches[0].Faces)
	assert.Equal(t, [][3]float64{
		{2, 4, 0}, {2, 8, 0}, {8, 4, 0}, {0, 4, 0}, {2, 6, 0}, {2, 2, 0}, {4, 2, 0},
	}, patches[0].Vertices)

	// Second patch: the isolated triangle
	assert.Equal(t, [][3]int{{0, 1, 2}}, patches[1].Faces)
	assert.Equal(t, [][3]float64{
		{4, 0, 0}, {5, 2, 0}, {5, 0, 0},
	}, patches[1].Vertices)
}

func TestSplitFVSinglePatch(t *testing.T) {
	// Everything interconnects, so one patch covers the whole input with
	// ids renumbered consistently even though they are already contiguous
	faces := [][3]int{{0, 1, 2}, {0, 2, 3}, {4, 5, 0}, {6, 7, 8}, {10, 9, 3}, {0, 5, 6}}
	vertices := splitTestVertices()
	patches := SplitFV(faces, vertices)
	assert.Equal(t, 1, len(patches))
	assert.Equal(t, faces, patches[0].Faces)
	assert.Equal(t, vertices, patches[0].Vertices)
}

func TestSplitFVNoFaces(t *testing.T) {
	patches := SplitFV(nil, splitTestVertices())
	assert.Equal(t, 0, len(patches))
}

func TestSplitFVPatchValidity(t *testing.T) {
	faces := [][3]int{{0, 1, 2}, {2, 4, 5}, {6, 7, 2}, {8, 9, 10}}
	for _, p := range SplitFV(faces, splitTestVertices()) {
		for _, f := range p.Faces {
			for _, v := range f {
				assert.True(t, v >= 0 && v < len(p.Vertices))
			}
		}
	}
}
