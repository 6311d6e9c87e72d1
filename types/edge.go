package types

import (
	"fmt"
	"math"
	"sort"
)

/*
EdgeKey packs the two vertex indices of an undirected mesh edge into a
uint64 so edges can be used as map keys and compared cheaply. The vertices
are always stored in ascending order: the edge between vertices [4] and [0]
is the same key as the edge between [0] and [4].
*/
type EdgeKey uint64

func NewEdgeKey(v1, v2 int) (packed EdgeKey) {
	var (
		limit = math.MaxUint32
	)
	if v1 < 0 || v1 > limit || v2 < 0 || v2 > limit {
		panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
			v1, v2))
	}
	if v1 > v2 {
		v1, v2 = v2, v1
	}
	packed = EdgeKey(v1 + v2<<32)
	return
}

// Vertices recovers the two vertex indices in ascending order.
func (ek EdgeKey) Vertices() (v1, v2 int) {
	v2 = int(ek >> 32)
	v1 = int(ek) - v2<<32
	return
}

/*
EdgeToFaces maps each undirected edge of a triangulation to the indices of
the faces containing it, in face array order. It is the incidence structure
behind non-manifold detection: a manifold edge has one or two incident
faces, anything above two is a topology defect.
*/
type EdgeToFaces map[EdgeKey][]int

func NewEdgeToFaces(faces [][3]int) (e2f EdgeToFaces) {
	e2f = make(EdgeToFaces)
	for i, f := range faces {
		e2f.addFace(i, f)
	}
	return
}

func (e2f EdgeToFaces) addFace(faceIndex int, f [3]int) {
	for i := 0; i < 3; i++ {
		ek := NewEdgeKey(f[i], f[(i+1)%3])
		e2f[ek] = append(e2f[ek], faceIndex)
	}
}

// SortedKeys returns the edge keys in ascending numeric order, for
// deterministic iteration over the map.
func (e2f EdgeToFaces) SortedKeys() (keys []EdgeKey) {
	keys = make([]EdgeKey, 0, len(e2f))
	for ek := range e2f {
		keys = append(keys, ek)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return
}
