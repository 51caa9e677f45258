// Package kdtree implements the spatial.Index interface using the
// gonum.org/v1/gonum/spatial/kdtree package. This is the default backend:
// build is O(n log n) and radius queries are O(log n + k).
package kdtree

import (
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/chazu/ballpivot/pkg/spatial"
)

// Compile-time interface check.
var _ spatial.Index = (*Tree)(nil)

// point is a single indexed point; it implements kdtree.Comparable.
type point struct {
	pos v3.Vec
	idx int
}

func (p point) coord(d kdtree.Dim) float64 {
	switch d {
	case 0:
		return p.pos.X
	case 1:
		return p.pos.Y
	default:
		return p.pos.Z
	}
}

// Compare returns the signed distance of p from the plane through q
// perpendicular to dimension d.
func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	return p.coord(d) - q.coord(d)
}

// Dims returns the number of dimensions.
func (p point) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between p and c.
func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	return p.pos.Sub(q.pos).Length2()
}

// points implements kdtree.Interface over a slice of indexed points.
type points []point

func (p points) Index(i int) kdtree.Comparable         { return p[i] }
func (p points) Len() int                              { return len(p) }
func (p points) Pivot(d kdtree.Dim) int                { return plane{Dim: d, points: p}.Pivot() }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane is a partitioning helper for tree construction.
type plane struct {
	kdtree.Dim
	points
}

func (p plane) Less(i, j int) bool {
	return p.points[i].coord(p.Dim) < p.points[j].coord(p.Dim)
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}

// Tree is a kd-tree spatial index over a fixed set of points.
type Tree struct {
	tree *kdtree.Tree
}

// New builds a kd-tree over the given points. The returned index refers
// to points by their position in the input slice.
func New(pts []v3.Vec) *Tree {
	if len(pts) == 0 {
		return &Tree{}
	}
	data := make(points, len(pts))
	for i, p := range pts {
		data[i] = point{pos: p, idx: i}
	}
	return &Tree{tree: kdtree.New(data, true)}
}

// RadiusSearch returns all points within radius of q, inclusive, sorted
// by squared distance and then by index.
func (t *Tree) RadiusSearch(q v3.Vec, radius float64) []spatial.Neighbor {
	if t.tree == nil {
		return nil
	}
	keep := kdtree.NewDistKeeper(radius * radius)
	t.tree.NearestSet(keep, point{pos: q, idx: -1})

	nbs := make([]spatial.Neighbor, 0, len(keep.Heap))
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		p := c.Comparable.(point)
		nbs = append(nbs, spatial.Neighbor{Index: p.idx, Dist2: c.Dist})
	}
	sort.Slice(nbs, func(i, j int) bool {
		if nbs[i].Dist2 != nbs[j].Dist2 {
			return nbs[i].Dist2 < nbs[j].Dist2
		}
		return nbs[i].Index < nbs[j].Index
	})
	return nbs
}
