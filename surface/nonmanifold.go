package surface

import (
	"github.com/notargets/cortsurf/types"
)

/*
FindNonManifoldEdges returns the edges shared by more than two faces,
mapped to the indices of their incident faces in face array order. A
well-formed surface returns an empty map.
*/
func FindNonManifoldEdges(faces [][3]int) (defects types.EdgeToFaces) {
	defects = make(types.EdgeToFaces)
	for ek, incident := range types.NewEdgeToFaces(faces) {
		if len(incident) > 2 {
			defects[ek] = incident
		}
	}
	return
}

/*
FixNonManifoldEdges removes every face touching any non-manifold edge and
repeats the detect-filter cycle on the reduced face list until no
non-manifold edge remains. Each pass removes at least one face, so the
fixed point arrives within len(faces) passes.
The vertex array passes through unchanged - callers that want the
now-unconnected vertices gone follow up with RemoveUnconnectedVertices.
*/
func FixNonManifoldEdges(vertices [][3]float64, faces [][3]int) (outVerts [][3]float64, outFaces [][3]int) {
	outVerts = vertices
	outFaces = faces
	for pass := 0; pass < len(faces)+1; pass++ {
		defects := FindNonManifoldEdges(outFaces)
		if len(defects) == 0 {
			return
		}
		doomed := make(map[int]bool)
		for _, incident := range defects {
			for _, fi := range incident {
				doomed[fi] = true
			}
		}
		kept := make([][3]int, 0, len(outFaces)-len(doomed))
		for i, f := range outFaces {
			if !doomed[i] {
				kept = append(kept, f)
			}
		}
		outFaces = kept
	}
	return
}
