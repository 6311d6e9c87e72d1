package surface

import (
	"fmt"
	"math"
	"sort"

	"github.com/notargets/cortsurf/types"
)

// maxDecimationPasses bounds the iterative variant when the requested
// fraction cannot be reached because no further valid collapses exist.
const maxDecimationPasses = 20

/*
quadric is the symmetric 4x4 error quadric of Garland-Heckbert
simplification, stored as its upper triangle:

	[ a11 a12 a13 b1 ]
	[     a22 a23 b2 ]
	[         a33 b3 ]
	[              c ]
*/
type quadric [10]float64

func (q *quadric) addPlane(n [3]float64, d float64) {
	q[0] += n[0] * n[0]
	q[1] += n[0] * n[1]
	q[2] += n[0] * n[2]
	q[3] += n[0] * d
	q[4] += n[1] * n[1]
	q[5] += n[1] * n[2]
	q[6] += n[1] * d
	q[7] += n[2] * n[2]
	q[8] += n[2] * d
	q[9] += d * d
}

func (q *quadric) add(o *quadric) {
	for i := range q {
		q[i] += o[i]
	}
}

// eval returns the quadric error of placing the merged vertex at v.
func (q *quadric) eval(v [3]float64) float64 {
	return q[0]*v[0]*v[0] + 2*q[1]*v[0]*v[1] + 2*q[2]*v[0]*v[2] + 2*q[3]*v[0] +
		q[4]*v[1]*v[1] + 2*q[5]*v[1]*v[2] + 2*q[6]*v[1] +
		q[7]*v[2]*v[2] + 2*q[8]*v[2] +
		q[9]
}

// collapse is one candidate half-edge collapse: vertex removed folds into
// vertex kept, which stays at its original position.
type collapse struct {
	cost          float64
	key           types.EdgeKey
	removed, kept int
}

/*
decimatePass runs a single greedy sweep of half-edge collapses toward
targetVerts. Candidates are ordered by ascending (cost, edge key) and each
vertex participates in at most one collapse per pass, so a pass removes at
most half the vertices and the result is independent of map iteration
order. Collapses that would break the edge link condition or flip a face
normal are skipped. Returned are the surviving original vertex ids in
ascending order and the face array rewritten in terms of positions within
that list.
*/
func decimatePass(vertices [][3]float64, faces [][3]int, targetVerts int) (kept []int, outFaces [][3]int) {
	var (
		nVerts = len(vertices)
		e2f    = types.NewEdgeToFaces(faces)
		nbrs   = vertexNeighbors(faces, nVerts)
	)
	// Per-vertex quadrics from the incident face planes
	quadrics := make([]quadric, nVerts)
	vertFaces := make([][]int, nVerts)
	for fi, f := range faces {
		n := FaceNormal(vertices[f[0]], vertices[f[1]], vertices[f[2]])
		d := -(n[0]*vertices[f[0]][0] + n[1]*vertices[f[0]][1] + n[2]*vertices[f[0]][2])
		for _, v := range f {
			quadrics[v].addPlane(n, d)
			vertFaces[v] = append(vertFaces[v], fi)
		}
	}

	candidates := make([]collapse, 0, len(e2f))
	for _, ek := range e2f.SortedKeys() {
		if len(e2f[ek]) > 2 {
			// Non-manifold edge, leave it for the repair stage
			continue
		}
		u, v := ek.Vertices()
		var q quadric
		q = quadrics[u]
		q.add(&quadrics[v])
		costU, costV := q.eval(vertices[v]), q.eval(vertices[u])
		c := collapse{key: ek}
		if costU < costV || (costU == costV && u < v) {
			// Remove u, fold into v
			c.cost, c.removed, c.kept = costU, u, v
		} else {
			c.cost, c.removed, c.kept = costV, v, u
		}
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].cost != candidates[j].cost {
			return candidates[i].cost < candidates[j].cost
		}
		return candidates[i].key < candidates[j].key
	})

	var (
		locked  = make([]bool, nVerts)
		foldTo  = make([]int, nVerts)
		removed int
	)
	for i := range foldTo {
		foldTo[i] = i
	}
	for _, c := range candidates {
		if nVerts-removed <= targetVerts {
			break
		}
		if locked[c.removed] || locked[c.kept] {
			continue
		}
		if !linkConditionHolds(nbrs, c.removed, c.kept, len(e2f[c.key])) {
			continue
		}
		if flipsNormal(vertices, faces, vertFaces[c.removed], c.removed, c.kept) {
			continue
		}
		foldTo[c.removed] = c.kept
		locked[c.removed] = true
		locked[c.kept] = true
		removed++
	}

	// Rewrite faces, dropping collapsed (degenerate) and duplicated ones
	newID := make([]int, nVerts)
	for i := range newID {
		newID[i] = -1
	}
	kept = make([]int, 0, nVerts-removed)
	for v := 0; v < nVerts; v++ {
		if foldTo[v] == v {
			newID[v] = len(kept)
			kept = append(kept, v)
		}
	}
	seen := make(map[[3]int]bool)
	outFaces = make([][3]int, 0, len(faces))
	for _, f := range faces {
		nf := [3]int{
			newID[foldTo[f[0]]],
			newID[foldTo[f[1]]],
			newID[foldTo[f[2]]],
		}
		if nf[0] == nf[1] || nf[1] == nf[2] || nf[0] == nf[2] {
			continue
		}
		sig := nf
		sort.Ints(sig[:])
		if seen[sig] {
			continue
		}
		seen[sig] = true
		outFaces = append(outFaces, nf)
	}
	return
}

// linkConditionHolds verifies that collapsing u into v cannot create a
// non-manifold edge: the vertices adjacent to both endpoints must be
// exactly the opposite corners of the edge's incident faces (two for an
// interior edge, one on a boundary).
func linkConditionHolds(nbrs [][]int, u, v, incidentFaces int) bool {
	shared := 0
	a, b := nbrs[u], nbrs[v]
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			shared++
			i++
			j++
		}
	}
	return shared == incidentFaces
}

// flipsNormal reports whether folding removed into kept would invert any
// surviving face around the removed vertex.
func flipsNormal(vertices [][3]float64, faces [][3]int, around []int, removed, kept int) bool {
	for _, fi := range around {
		f := faces[fi]
		if f[0] == kept || f[1] == kept || f[2] == kept {
			continue // collapses away with the edge
		}
		var before, after [3][3]float64
		for c, v := range f {
			before[c] = vertices[v]
			if v == removed {
				after[c] = vertices[kept]
			} else {
				after[c] = vertices[v]
			}
		}
		n0 := FaceNormal(before[0], before[1], before[2])
		n1 := FaceNormal(after[0], after[1], after[2])
		if n0[0]*n1[0]+n0[1]*n1[1]+n0[2]*n1[2] <= 0 {
			return true
		}
	}
	return false
}

// decimateSelection reduces the mesh toward fraction of its vertex count
// and reports the selection rather than a mesh, so the identical selection
// can be replayed onto topologically matched surfaces. With iterate set,
// passes repeat until the target is reached, progress stalls, or the pass
// bound is hit.
func decimateSelection(m *Mesh, fraction float64, iterate bool) (kept []int, faces [][3]int, err error) {
	if fraction <= 0 || fraction > 1 {
		err = fmt.Errorf("downsample fraction must be in (0,1], have %g", fraction)
		return
	}
	if _, err = NewMesh(m.Vertices, m.Faces, m.Normals); err != nil {
		return
	}
	var (
		target = int(math.Ceil(fraction * float64(m.NumVertices())))
	)
	if target < 3 && m.NumVertices() >= 3 {
		target = 3
	}
	kept = make([]int, m.NumVertices())
	for i := range kept {
		kept[i] = i
	}
	vertices := m.Vertices
	faces = append([][3]int{}, m.Faces...)
	for pass := 0; pass < maxDecimationPasses; pass++ {
		if len(vertices) <= target {
			break
		}
		passKept, passFaces := decimatePass(vertices, faces, target)
		if len(passKept) == len(vertices) {
			break // No valid collapse remains
		}
		// Compose this pass's selection with the accumulated one
		composed := make([]int, len(passKept))
		newVerts := make([][3]float64, len(passKept))
		for i, pv := range passKept {
			composed[i] = kept[pv]
			newVerts[i] = vertices[pv]
		}
		kept = composed
		vertices = newVerts
		faces = passFaces
		if !iterate {
			break
		}
	}
	// Drop survivors that lost their last face in the collapse, keeping
	// the vertex range contiguous. A faceless input keeps its vertices.
	if len(m.Faces) > 0 {
		referenced := make([]bool, len(kept))
		for _, f := range faces {
			referenced[f[0]] = true
			referenced[f[1]] = true
			referenced[f[2]] = true
		}
		remap := make([]int, len(kept))
		cleaned := kept[:0]
		for i, ok := range referenced {
			if ok {
				remap[i] = len(cleaned)
				cleaned = append(cleaned, kept[i])
			} else {
				remap[i] = -1
			}
		}
		kept = cleaned
		for i, f := range faces {
			faces[i] = [3]int{remap[f[0]], remap[f[1]], remap[f[2]]}
		}
	}
	return
}

// applySelection builds the reduced mesh for one surface from a kept
// vertex selection and its rewritten face array. Normals are recomputed
// on the reduced surface when the input carried them.
func applySelection(m *Mesh, kept []int, faces [][3]int) (out *Mesh) {
	out = &Mesh{
		Vertices: make([][3]float64, len(kept)),
		Faces:    append([][3]int{}, faces...),
	}
	for i, v := range kept {
		out.Vertices[i] = m.Vertices[v]
	}
	if m.HasNormals() {
		out.Normals, _ = MeshNormals(out.Vertices, out.Faces, true)
	}
	return
}

/*
DownsampleSingleSurface reduces the mesh's resolution by one sweep of
quadric-error half-edge collapses aimed at approximately fraction of the
original vertex count. The reduction is a simplification heuristic, not an
arithmetic contract: the pass stops early when no collapse can proceed
without creating a non-manifold edge or inverting a face. Surviving
vertices keep their original coordinates; normals, when present on the
input, are recomputed for the reduced surface.
*/
func DownsampleSingleSurface(m *Mesh, fraction float64) (out *Mesh, err error) {
	kept, faces, err := decimateSelection(m, fraction, false)
	if err != nil {
		return
	}
	out = applySelection(m, kept, faces)
	return
}

// IterativeDownsampleSingleSurface repeats single-surface passes with the
// same fraction until the overall vertex count reaches fraction of the
// input, yielding a more aggressive reduction than one pass can deliver.
func IterativeDownsampleSingleSurface(m *Mesh, fraction float64) (out *Mesh, err error) {
	kept, faces, err := decimateSelection(m, fraction, true)
	if err != nil {
		return
	}
	out = applySelection(m, kept, faces)
	return
}

/*
DownsampleMultipleSurfaces decimates anatomically paired surfaces in
lockstep. The inputs must share a vertex count and an identical face
array; the first mesh is the reference whose retained-vertex selection and
rewritten face topology are replayed onto every mesh. Corresponding
outputs therefore stay in 1:1 vertex correspondence with identical faces,
differing only in coordinates and recomputed normals.
*/
func DownsampleMultipleSurfaces(meshes []*Mesh, fraction float64) (out []*Mesh, err error) {
	if len(meshes) == 0 {
		err = fmt.Errorf("no surfaces to downsample")
		return
	}
	ref := meshes[0]
	for i, m := range meshes[1:] {
		if m.NumVertices() != ref.NumVertices() || m.NumFaces() != ref.NumFaces() {
			err = fmt.Errorf("surface %d has %dv/%df, reference has %dv/%df",
				i+1, m.NumVertices(), m.NumFaces(), ref.NumVertices(), ref.NumFaces())
			return
		}
		for fi, f := range m.Faces {
			if f != ref.Faces[fi] {
				err = fmt.Errorf("surface %d face %d differs from the reference topology", i+1, fi)
				return
			}
		}
	}
	kept, faces, err := decimateSelection(ref, fraction, true)
	if err != nil {
		return
	}
	out = make([]*Mesh, len(meshes))
	for i, m := range meshes {
		out[i] = applySelection(m, kept, faces)
	}
	return
}
