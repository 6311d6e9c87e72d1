package surface

import (
	"sort"
)

/*
Patch is one connected piece of a larger surface: faces renumbered to a
local, contiguous 0-based vertex range, with the corresponding vertex
coordinates in renumbered order. Local ids follow the ascending order of
the original vertex ids, so a patch covering a whole contiguous mesh
reproduces it exactly.
*/
type Patch struct {
	Faces    [][3]int
	Vertices [][3]float64
}

// unionFind is a disjoint-set structure over vertex ids with path
// compression and union by size.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) (uf *unionFind) {
	uf = &unionFind{parent: make([]int, n), size: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return
}

func (uf *unionFind) find(v int) int {
	for uf.parent[v] != v {
		uf.parent[v] = uf.parent[uf.parent[v]]
		v = uf.parent[v]
	}
	return v
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}

/*
SplitFV partitions a face/vertex set into connected patches. Faces belong
to the same patch when they are linked through shared vertices. Patches
are emitted in order of their first face's appearance in the input; within
a patch, faces keep their original relative order and vertex ids are
renumbered to 0..k-1 in ascending original-id order. A face list that is
fully interconnected therefore yields a single patch equal to the whole
input.
*/
func SplitFV(faces [][3]int, vertices [][3]float64) (patches []Patch) {
	if len(faces) == 0 {
		return
	}
	uf := newUnionFind(len(vertices))
	for _, f := range faces {
		uf.union(f[0], f[1])
		uf.union(f[0], f[2])
	}
	// Patch index per component root, in order of first face appearance
	patchOf := make(map[int]int)
	faceLists := make([][][3]int, 0)
	for _, f := range faces {
		root := uf.find(f[0])
		pi, ok := patchOf[root]
		if !ok {
			pi = len(faceLists)
			patchOf[root] = pi
			faceLists = append(faceLists, nil)
		}
		faceLists[pi] = append(faceLists[pi], f)
	}
	patches = make([]Patch, len(faceLists))
	for pi, list := range faceLists {
		// Local ids follow ascending original ids
		used := make(map[int]bool)
		for _, f := range list {
			used[f[0]] = true
			used[f[1]] = true
			used[f[2]] = true
		}
		ids := make([]int, 0, len(used))
		for v := range used {
			ids = append(ids, v)
		}
		sort.Ints(ids)
		localID := make(map[int]int, len(ids))
		p := Patch{
			Faces:    make([][3]int, len(list)),
			Vertices: make([][3]float64, len(ids)),
		}
		for lv, v := range ids {
			localID[v] = lv
			p.Vertices[lv] = vertices[v]
		}
		for i, f := range list {
			p.Faces[i] = [3]int{localID[f[0]], localID[f[1]], localID[f[2]]}
		}
		patches[pi] = p
	}
	return
}
