package surface

import (
	"github.com/james-bowman/sparse"
)

/*
MeshAdjacency builds the vertex-vertex connectivity graph of a
triangulation as a sparse boolean matrix: entry (i,j) is 1 when vertices i
and j share at least one face, with a zero diagonal. The matrix is
symmetric; repeated edges from neighboring faces collapse to a single
entry.

The matrix is sized to the supplied vertex count, or when nVerts is
omitted, to the highest vertex id referenced by the faces (0 for an empty
face list).
*/
func MeshAdjacency(faces [][3]int, nVerts ...int) (adj *sparse.CSR) {
	var (
		n int
	)
	if len(nVerts) > 0 {
		n = nVerts[0]
	} else {
		for _, f := range faces {
			for _, v := range f {
				if v+1 > n {
					n = v + 1
				}
			}
		}
	}
	dok := sparse.NewDOK(n, n)
	for _, f := range faces {
		for i := 0; i < 3; i++ {
			v1, v2 := f[i], f[(i+1)%3]
			if v1 == v2 {
				continue
			}
			dok.Set(v1, v2, 1)
			dok.Set(v2, v1, 1)
		}
	}
	adj = dok.ToCSR()
	return
}

/*
vertexNeighbors is the adjacency graph in list form, used where the
algorithms walk neighborhoods rather than query single entries. Neighbor
lists are sorted ascending for deterministic iteration.
*/
func vertexNeighbors(faces [][3]int, nVerts int) (nbrs [][]int) {
	seen := make([]map[int]bool, nVerts)
	nbrs = make([][]int, nVerts)
	add := func(a, b int) {
		if a == b {
			return
		}
		if seen[a] == nil {
			seen[a] = make(map[int]bool)
		}
		if !seen[a][b] {
			seen[a][b] = true
			nbrs[a] = insertSorted(nbrs[a], b)
		}
	}
	for _, f := range faces {
		for i := 0; i < 3; i++ {
			add(f[i], f[(i+1)%3])
			add(f[(i+1)%3], f[i])
		}
	}
	return
}

func insertSorted(s []int, v int) []int {
	lo, hi := 0, len(s)
	for lo < hi {
		mid := (lo + hi) / 2
		if s[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	s = append(s, 0)
	copy(s[lo+1:], s[lo:])
	s[lo] = v
	return s
}
