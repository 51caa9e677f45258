// Package rtree implements the spatial.Index interface using the
// github.com/dhconnelly/rtreego R-tree. Radius queries run as a bounding
// box intersection followed by an exact distance filter, so results match
// the kdtree backend exactly.
package rtree

import (
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/dhconnelly/rtreego"

	"github.com/chazu/ballpivot/pkg/spatial"
)

// Compile-time interface check.
var _ spatial.Index = (*Tree)(nil)

// entryTol inflates point rectangles; rtreego rejects zero-size rects.
const entryTol = 1e-9

// entry is a single indexed point stored in the R-tree.
type entry struct {
	rect rtreego.Rect
	pos  v3.Vec
	idx  int
}

// Bounds returns the entry's bounding rectangle.
func (e *entry) Bounds() rtreego.Rect { return e.rect }

// Tree is an R-tree spatial index over a fixed set of points.
type Tree struct {
	tree *rtreego.Rtree
}

// New builds an R-tree over the given points. The returned index refers
// to points by their position in the input slice.
func New(pts []v3.Vec) *Tree {
	t := &Tree{tree: rtreego.NewTree(3, 2, 8)}
	for i, p := range pts {
		t.tree.Insert(&entry{
			rect: rtreego.Point{p.X, p.Y, p.Z}.ToRect(entryTol),
			pos:  p,
			idx:  i,
		})
	}
	return t
}

// RadiusSearch returns all points within radius of q, inclusive, sorted
// by squared distance and then by index.
func (t *Tree) RadiusSearch(q v3.Vec, radius float64) []spatial.Neighbor {
	bb := rtreego.Point{q.X, q.Y, q.Z}.ToRect(radius + entryTol)
	hits := t.tree.SearchIntersect(bb)

	r2 := radius * radius
	nbs := make([]spatial.Neighbor, 0, len(hits))
	for _, h := range hits {
		e := h.(*entry)
		d2 := e.pos.Sub(q).Length2()
		if d2 <= r2 {
			nbs = append(nbs, spatial.Neighbor{Index: e.idx, Dist2: d2})
		}
	}
	sort.Slice(nbs, func(i, j int) bool {
		if nbs[i].Dist2 != nbs[j].Dist2 {
			return nbs[i].Dist2 < nbs[j].Dist2
		}
		return nbs[i].Index < nbs[j].Index
	})
	return nbs
}
