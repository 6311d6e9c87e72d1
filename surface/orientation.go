package surface

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Orientation method names, matching the strings accepted by
// ComputeDipoleOrientations.
const (
	MethodLinkVector   = "link_vector"
	MethodDsSurfNorm   = "ds_surf_norm"
	MethodOrigSurfNorm = "orig_surf_norm"
	MethodCPS          = "cps"
)

// CPSPatchRings controls the extent of the cortical patch statistics
// neighborhood: each decimated vertex's patch starts as the original
// vertices nearest to it and is dilated by this many rings of
// original-surface adjacency. The default of one ring keeps patches local
// while giving the covariance enough support on sparse assignments.
var CPSPatchRings = 1

/*
Layer pairs the surfaces of one cortical layer: the decimated mesh the
orientations are computed for and, for the methods that need it, the
original pre-decimation surface. Layers are ordered outermost first,
innermost last, matching the layer name list they were loaded from.
*/
type Layer struct {
	Name string
	Ds   *Mesh
	Orig *Mesh
}

/*
DipoleOrientations computes one unit orientation vector per decimated
vertex per layer. With fixed set, a single set of vectors is computed for
the cortical column and replicated across every layer, so corresponding
vertex indices share an orientation; otherwise the normal-based methods
are evaluated per layer on that layer's own surfaces. link_vector is
inherently columnar (it is defined by the innermost/outermost pair), so
its vectors are identical across layers either way.

Methods:

	link_vector    vector from the innermost layer vertex toward the
	               outermost layer's corresponding vertex location,
	               oriented as inner minus outer
	ds_surf_norm   vertex normals of the decimated surface
	orig_surf_norm vertex normals of the original surface, mapped onto
	               the decimated vertices by nearest-vertex lookup
	cps            cortical patch statistics: least-variance principal
	               axis of the original-resolution patch around each
	               decimated vertex

An unrecognized method is an error.
*/
func DipoleOrientations(method string, layers []Layer, fixed bool) (orientations [][][3]float64, err error) {
	if len(layers) == 0 {
		err = fmt.Errorf("no layers to orient")
		return
	}
	nVerts := layers[0].Ds.NumVertices()
	for _, l := range layers {
		if l.Ds == nil {
			err = fmt.Errorf("layer %s has no decimated surface", l.Name)
			return
		}
		if l.Ds.NumVertices() != nVerts {
			err = fmt.Errorf("layer %s has %d vertices, expected %d: layers must correspond",
				l.Name, l.Ds.NumVertices(), nVerts)
			return
		}
	}

	perLayer := func(f func(l Layer) ([][3]float64, error)) (err error) {
		orientations = make([][][3]float64, len(layers))
		if fixed {
			// One orientation per dipole location, shared through the
			// cortical column: computed on the innermost layer.
			base, ferr := f(layers[len(layers)-1])
			if ferr != nil {
				return ferr
			}
			for i := range layers {
				orientations[i] = base
			}
			return
		}
		for i, l := range layers {
			if orientations[i], err = f(l); err != nil {
				return
			}
		}
		return
	}

	switch method {
	case MethodLinkVector:
		var (
			inner = layers[len(layers)-1].Ds
			outer = layers[0].Ds
		)
		vecs := make([][3]float64, nVerts)
		for i := range vecs {
			vecs[i] = [3]float64{
				inner.Vertices[i][0] - outer.Vertices[i][0],
				inner.Vertices[i][1] - outer.Vertices[i][1],
				inner.Vertices[i][2] - outer.Vertices[i][2],
			}
		}
		vecs = Normit(vecs)
		orientations = make([][][3]float64, len(layers))
		for i := range layers {
			orientations[i] = vecs
		}
	case MethodDsSurfNorm:
		err = perLayer(func(l Layer) (vecs [][3]float64, ferr error) {
			vecs, _ = MeshNormals(l.Ds.Vertices, l.Ds.Faces, true)
			return
		})
	case MethodOrigSurfNorm:
		err = perLayer(origSurfaceNormals)
	case MethodCPS:
		err = perLayer(corticalPatchNormals)
	default:
		err = fmt.Errorf("unrecognized orientation method %q", method)
	}
	return
}

// origSurfaceNormals maps the original surface's vertex normals onto the
// decimated vertex set through nearest-vertex correspondence.
func origSurfaceNormals(l Layer) (vecs [][3]float64, err error) {
	if l.Orig == nil {
		err = fmt.Errorf("layer %s has no original surface", l.Name)
		return
	}
	origNormals, _ := MeshNormals(l.Orig.Vertices, l.Orig.Faces, false)
	vi := newVertexIndex(l.Orig.Vertices)
	vecs = make([][3]float64, l.Ds.NumVertices())
	for i, v := range l.Ds.Vertices {
		vecs[i] = origNormals[vi.nearest(v)]
	}
	vecs = Normit(vecs)
	return
}

/*
corticalPatchNormals estimates a noise-robust normal for each decimated
vertex from the statistics of its original-resolution patch: the original
vertices whose nearest decimated vertex it is, dilated by CPSPatchRings
rings of original-surface adjacency. The normal is the principal axis of
least variance of the patch's vertex positions, sign-aligned with the
decimated surface normal. Patches too small for a covariance fall back to
the nearest original vertex's normal.
*/
func corticalPatchNormals(l Layer) (vecs [][3]float64, err error) {
	if l.Orig == nil {
		err = fmt.Errorf("layer %s has no original surface", l.Name)
		return
	}
	var (
		nDs        = l.Ds.NumVertices()
		dsIndex    = newVertexIndex(l.Ds.Vertices)
		origIndex  = newVertexIndex(l.Orig.Vertices)
		origNbrs   = vertexNeighbors(l.Orig.Faces, l.Orig.NumVertices())
		dsNorms, _ = MeshNormals(l.Ds.Vertices, l.Ds.Faces, true)
	)
	origNormalsRaw, _ := MeshNormals(l.Orig.Vertices, l.Orig.Faces, false)
	origNormals := Normit(origNormalsRaw)

	// Voronoi assignment of original vertices to decimated vertices
	patches := make([][]int, nDs)
	for ov, pos := range l.Orig.Vertices {
		dv := dsIndex.nearest(pos)
		patches[dv] = append(patches[dv], ov)
	}

	vecs = make([][3]float64, nDs)
	for dv := 0; dv < nDs; dv++ {
		patch := dilatePatch(patches[dv], origNbrs, CPSPatchRings)
		if len(patch) < 3 {
			vecs[dv] = origNormals[origIndex.nearest(l.Ds.Vertices[dv])]
			continue
		}
		axis, ok := leastVarianceAxis(l.Orig.Vertices, patch)
		if !ok {
			vecs[dv] = origNormals[origIndex.nearest(l.Ds.Vertices[dv])]
			continue
		}
		// Sign-align with the decimated surface normal
		ref := dsNorms[dv]
		if axis[0]*ref[0]+axis[1]*ref[1]+axis[2]*ref[2] < 0 {
			axis[0], axis[1], axis[2] = -axis[0], -axis[1], -axis[2]
		}
		vecs[dv] = axis
	}
	vecs = Normit(vecs)
	return
}

// dilatePatch grows a vertex set by rings of surface adjacency.
func dilatePatch(seed []int, nbrs [][]int, rings int) (patch []int) {
	in := make(map[int]bool, len(seed))
	patch = append(patch, seed...)
	for _, v := range seed {
		in[v] = true
	}
	frontier := seed
	for r := 0; r < rings; r++ {
		var next []int
		for _, v := range frontier {
			for _, nb := range nbrs[v] {
				if !in[nb] {
					in[nb] = true
					patch = append(patch, nb)
					next = append(next, nb)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}
	return
}

// leastVarianceAxis returns the unit singular vector of the centered
// patch positions with the smallest singular value.
func leastVarianceAxis(vertices [][3]float64, patch []int) (axis [3]float64, ok bool) {
	var mean [3]float64
	for _, v := range patch {
		mean[0] += vertices[v][0]
		mean[1] += vertices[v][1]
		mean[2] += vertices[v][2]
	}
	n := float64(len(patch))
	mean[0], mean[1], mean[2] = mean[0]/n, mean[1]/n, mean[2]/n

	data := make([]float64, 0, len(patch)*3)
	for _, v := range patch {
		data = append(data,
			vertices[v][0]-mean[0],
			vertices[v][1]-mean[1],
			vertices[v][2]-mean[2])
	}
	var svd mat.SVD
	if !svd.Factorize(mat.NewDense(len(patch), 3, data), mat.SVDThinV) {
		return
	}
	var v mat.Dense
	svd.VTo(&v)
	// Singular values are descending, so the last right singular vector
	// spans the least-variance direction.
	axis = [3]float64{v.At(0, 2), v.At(1, 2), v.At(2, 2)}
	ok = true
	return
}
