package surface

import (
	"fmt"
	"math"
)

/*
Mesh is a triangulated cortical surface: vertex coordinates, triangle faces
indexing into the vertex array, and optional per-vertex normal vectors.
Vertex ids are 0-based and contiguous. Normals, when present, parallel the
vertex array one-to-one; a nil Normals slice is the valid "no normals"
state.

Mesh values are treated as immutable: every transformation returns a new
Mesh and leaves its input untouched.
*/
type Mesh struct {
	Vertices [][3]float64
	Faces    [][3]int
	Normals  [][3]float64
}

// NewMesh validates the face references and the normals length before
// wrapping the arrays. A face referencing a vertex outside
// [0, len(vertices)) is rejected, never clamped.
func NewMesh(vertices [][3]float64, faces [][3]int, normals [][3]float64) (m *Mesh, err error) {
	nVerts := len(vertices)
	for i, f := range faces {
		for _, v := range f {
			if v < 0 || v >= nVerts {
				err = fmt.Errorf("face %d references vertex %d, outside [0,%d)",
					i, v, nVerts)
				return
			}
		}
	}
	if normals != nil && len(normals) != nVerts {
		err = fmt.Errorf("have %d normals for %d vertices", len(normals), nVerts)
		return
	}
	m = &Mesh{Vertices: vertices, Faces: faces, Normals: normals}
	return
}

func (m *Mesh) NumVertices() int { return len(m.Vertices) }
func (m *Mesh) NumFaces() int    { return len(m.Faces) }
func (m *Mesh) HasNormals() bool { return m.Normals != nil }

// Copy returns a deep copy sharing no storage with the receiver.
func (m *Mesh) Copy() (c *Mesh) {
	c = &Mesh{
		Vertices: append([][3]float64{}, m.Vertices...),
		Faces:    append([][3]int{}, m.Faces...),
	}
	if m.Normals != nil {
		c.Normals = append([][3]float64{}, m.Normals...)
	}
	return
}

/*
CombineSurfaces concatenates independent meshes into one. Vertex arrays are
stacked in input order and each mesh's face indices are offset by the
cumulative vertex count of the meshes before it. No geometry changes.
Normals carry over only when every input has them; one normal-less input
degrades the combined mesh to no normals.
*/
func CombineSurfaces(meshes []*Mesh) (combined *Mesh) {
	var (
		allNormals = len(meshes) > 0
		offset     int
	)
	combined = &Mesh{}
	for _, m := range meshes {
		if !m.HasNormals() {
			allNormals = false
		}
	}
	for _, m := range meshes {
		combined.Vertices = append(combined.Vertices, m.Vertices...)
		for _, f := range m.Faces {
			combined.Faces = append(combined.Faces,
				[3]int{f[0] + offset, f[1] + offset, f[2] + offset})
		}
		if allNormals {
			combined.Normals = append(combined.Normals, m.Normals...)
		}
		offset += m.NumVertices()
	}
	return
}

/*
Normit normalizes each vector to unit length. Vectors whose norm does not
exceed machine epsilon, including the zero vector, are returned unchanged
rather than amplified to garbage directions.
*/
func Normit(vectors [][3]float64) (unit [][3]float64) {
	var (
		eps = math.Nextafter(1, 2) - 1
	)
	unit = make([][3]float64, len(vectors))
	for i, v := range vectors {
		nrm := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		if nrm > eps {
			unit[i] = [3]float64{v[0] / nrm, v[1] / nrm, v[2] / nrm}
		} else {
			unit[i] = v
		}
	}
	return
}

/*
MeshNormals computes per-face and per-vertex normals. The face normal of
(v0,v1,v2) is the unit cross product (v2-v0)×(v1-v0); the vertex normal is
the sum of the unit normals of the faces incident on it. With unit set,
vertex and face normals are normalized, otherwise the raw sums are
returned.
*/
func MeshNormals(vertices [][3]float64, faces [][3]int, unit bool) (vertexNormals, faceNormals [][3]float64) {
	vertexNormals = make([][3]float64, len(vertices))
	faceNormals = make([][3]float64, len(faces))
	for i, f := range faces {
		fn := FaceNormal(vertices[f[0]], vertices[f[1]], vertices[f[2]])
		faceNormals[i] = fn
		for _, v := range f {
			vertexNormals[v][0] += fn[0]
			vertexNormals[v][1] += fn[1]
			vertexNormals[v][2] += fn[2]
		}
	}
	if unit {
		vertexNormals = Normit(vertexNormals)
		faceNormals = Normit(faceNormals)
	}
	return
}

// FaceNormal returns the unit normal of a single triangle under the same
// orientation convention as MeshNormals.
func FaceNormal(v0, v1, v2 [3]float64) (n [3]float64) {
	var (
		e1 = [3]float64{v2[0] - v0[0], v2[1] - v0[1], v2[2] - v0[2]}
		e2 = [3]float64{v1[0] - v0[0], v1[1] - v0[1], v1[2] - v0[2]}
	)
	n = [3]float64{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}
	nrm := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if nrm > 0 {
		n[0], n[1], n[2] = n[0]/nrm, n[1]/nrm, n[2]/nrm
	}
	return
}
