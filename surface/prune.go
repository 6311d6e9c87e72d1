package surface

/*
RemoveVertices removes the listed vertices from the mesh. Every face
referencing a removed vertex is dropped (a triangle is invalid once any
corner is gone), survivors are renumbered to a contiguous 0-based range
preserving their relative order, and face ids are remapped to match.
Normals, when present, are filtered alongside the vertices. An empty
removal list returns an identical copy; removing every vertex yields an
empty mesh.
*/
func RemoveVertices(m *Mesh, verticesToRemove []int) (out *Mesh) {
	if len(verticesToRemove) == 0 {
		return m.Copy()
	}
	removed := make([]bool, m.NumVertices())
	for _, v := range verticesToRemove {
		if v >= 0 && v < len(removed) {
			removed[v] = true
		}
	}
	// Old id -> new id for survivors, -1 for the removed
	remap := make([]int, m.NumVertices())
	out = &Mesh{}
	for v, gone := range removed {
		if gone {
			remap[v] = -1
			continue
		}
		remap[v] = len(out.Vertices)
		out.Vertices = append(out.Vertices, m.Vertices[v])
		if m.HasNormals() {
			out.Normals = append(out.Normals, m.Normals[v])
		}
	}
	if m.HasNormals() && out.Normals == nil {
		out.Normals = [][3]float64{}
	}
	out.Faces = make([][3]int, 0, m.NumFaces())
	for _, f := range m.Faces {
		n0, n1, n2 := remap[f[0]], remap[f[1]], remap[f[2]]
		if n0 < 0 || n1 < 0 || n2 < 0 {
			continue
		}
		out.Faces = append(out.Faces, [3]int{n0, n1, n2})
	}
	return
}

/*
RemoveUnconnectedVertices drops every vertex that appears in no face,
renumbering the survivors with RemoveVertices. A mesh with vertices but no
faces loses all its vertices; an already-clean mesh passes through with
identical content, making the operation idempotent.
*/
func RemoveUnconnectedVertices(m *Mesh) (out *Mesh) {
	connected := make([]bool, m.NumVertices())
	for _, f := range m.Faces {
		connected[f[0]] = true
		connected[f[1]] = true
		connected[f[2]] = true
	}
	var toRemove []int
	for v, c := range connected {
		if !c {
			toRemove = append(toRemove, v)
		}
	}
	out = RemoveVertices(m, toRemove)
	return
}
