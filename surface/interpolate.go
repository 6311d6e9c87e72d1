package surface

import (
	"fmt"
)

/*
InterpolateData maps per-vertex scalar data from one mesh onto another of
a different resolution by nearest-vertex assignment: each target vertex
receives the value of its closest source vertex. This is a copy, not an
average - several target vertices sharing a nearest source vertex receive
identical values. The result has one value per target vertex.
*/
func InterpolateData(target, source *Mesh, sourceValues []float64) (interp []float64, err error) {
	if len(sourceValues) != source.NumVertices() {
		err = fmt.Errorf("have %d values for %d source vertices",
			len(sourceValues), source.NumVertices())
		return
	}
	interp = make([]float64, target.NumVertices())
	if target.NumVertices() == 0 {
		return
	}
	if source.NumVertices() == 0 {
		err = fmt.Errorf("cannot interpolate from an empty source mesh")
		return
	}
	vi := newVertexIndex(source.Vertices)
	for i, v := range target.Vertices {
		interp[i] = sourceValues[vi.nearest(v)]
	}
	return
}
