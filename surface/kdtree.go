package surface

import (
	"gonum.org/v1/gonum/spatial/kdtree"
)

// vertexPoint is one mesh vertex as a kd-tree element, carrying its id so
// queries can report which vertex was hit.
type vertexPoint struct {
	pos [3]float64
	id  int
}

func (p vertexPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(vertexPoint)
	return p.pos[d] - q.pos[d]
}

func (p vertexPoint) Dims() int { return 3 }

func (p vertexPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(vertexPoint)
	dx := p.pos[0] - q.pos[0]
	dy := p.pos[1] - q.pos[1]
	dz := p.pos[2] - q.pos[2]
	return dx*dx + dy*dy + dz*dz
}

type vertexPoints []vertexPoint

func (p vertexPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p vertexPoints) Len() int                      { return len(p) }
func (p vertexPoints) Pivot(d kdtree.Dim) int {
	return vertexPlane{points: p, Dim: d}.Pivot()
}
func (p vertexPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// vertexPlane sorts vertexPoints along one axis for tree construction.
type vertexPlane struct {
	kdtree.Dim
	points vertexPoints
}

func (p vertexPlane) Len() int { return len(p.points) }
func (p vertexPlane) Less(i, j int) bool {
	return p.points[i].pos[p.Dim] < p.points[j].pos[p.Dim]
}
func (p vertexPlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p vertexPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p vertexPlane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}

/*
vertexIndex wraps a kd-tree over a vertex array for nearest-vertex
queries. Equidistant candidates are resolved to the lowest vertex id, so
repeated queries are bit-deterministic regardless of tree layout.
*/
type vertexIndex struct {
	tree *kdtree.Tree
}

func newVertexIndex(vertices [][3]float64) (vi *vertexIndex) {
	pts := make(vertexPoints, len(vertices))
	for i, v := range vertices {
		pts[i] = vertexPoint{pos: v, id: i}
	}
	vi = &vertexIndex{tree: kdtree.New(pts, false)}
	return
}

// nearest returns the id of the vertex closest to q in Euclidean
// distance, or -1 for an empty index.
func (vi *vertexIndex) nearest(q [3]float64) (id int) {
	got, dist := vi.tree.Nearest(vertexPoint{pos: q, id: -1})
	if got == nil {
		return -1
	}
	id = got.(vertexPoint).id
	// Collect every candidate at the winning distance and take the lowest
	// id among them.
	keeper := kdtree.NewDistKeeper(dist)
	vi.tree.NearestSet(keeper, vertexPoint{pos: q, id: -1})
	for _, cd := range keeper.Heap {
		if cd.Comparable == nil {
			continue
		}
		if cd.Dist == dist {
			if cid := cd.Comparable.(vertexPoint).id; cid < id {
				id = cid
			}
		}
	}
	return
}
