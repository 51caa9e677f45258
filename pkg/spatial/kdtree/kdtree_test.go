package kdtree_test

import (
	"math/rand"
	"sort"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ballpivot/pkg/spatial"
	"github.com/chazu/ballpivot/pkg/spatial/kdtree"
)

// testPoints returns a reproducible scattering of points.
func testPoints(n int) []v3.Vec {
	rng := rand.New(rand.NewSource(1))
	pts := make([]v3.Vec, n)
	for i := range pts {
		pts[i] = v3.Vec{X: rng.Float64() * 10, Y: rng.Float64() * 10, Z: rng.Float64() * 10}
	}
	return pts
}

// bruteRadiusSearch is the reference answer: linear scan, inclusive
// radius, sorted by (squared distance, index).
func bruteRadiusSearch(pts []v3.Vec, q v3.Vec, radius float64) []spatial.Neighbor {
	var nbs []spatial.Neighbor
	for i, p := range pts {
		d2 := p.Sub(q).Length2()
		if d2 <= radius*radius {
			nbs = append(nbs, spatial.Neighbor{Index: i, Dist2: d2})
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

func sameNeighbors(t *testing.T, got, want []spatial.Neighbor) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d neighbors, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i].Index != want[i].Index {
			t.Fatalf("neighbor %d: index %d, want %d", i, got[i].Index, want[i].Index)
		}
	}
}

func TestRadiusSearchMatchesBruteForce(t *testing.T) {
	pts := testPoints(200)
	tree := kdtree.New(pts)

	queries := []v3.Vec{
		{X: 5, Y: 5, Z: 5},
		{X: 0, Y: 0, Z: 0},
		{X: 9.5, Y: 1, Z: 4},
		pts[17],
	}
	for _, q := range queries {
		for _, r := range []float64{0.5, 1.5, 4.0} {
			sameNeighbors(t, tree.RadiusSearch(q, r), bruteRadiusSearch(pts, q, r))
		}
	}
}

func TestRadiusSearchInclusive(t *testing.T) {
	pts := []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
	}
	tree := kdtree.New(pts)

	// A point at exactly the radius is a hit.
	nbs := tree.RadiusSearch(v3.Vec{X: 0, Y: 0, Z: 0}, 1.0)
	sameNeighbors(t, nbs, []spatial.Neighbor{{Index: 0}, {Index: 1}})
}

func TestRadiusSearchSorted(t *testing.T) {
	pts := testPoints(100)
	tree := kdtree.New(pts)

	nbs := tree.RadiusSearch(v3.Vec{X: 5, Y: 5, Z: 5}, 6)
	for i := 1; i < len(nbs); i++ {
		if nbs[i].Dist2 < nbs[i-1].Dist2 {
			t.Fatalf("results not sorted at %d: %v after %v", i, nbs[i], nbs[i-1])
		}
	}
}

func TestEmptyIndex(t *testing.T) {
	tree := kdtree.New(nil)
	if nbs := tree.RadiusSearch(v3.Vec{}, 1); len(nbs) != 0 {
		t.Fatalf("got %d neighbors from an empty index", len(nbs))
	}
}
