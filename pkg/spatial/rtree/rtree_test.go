package rtree_test

import (
	"math/rand"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ballpivot/pkg/spatial/kdtree"
	"github.com/chazu/ballpivot/pkg/spatial/rtree"
)

func testPoints(n int) []v3.Vec {
	rng := rand.New(rand.NewSource(1))
	pts := make([]v3.Vec, n)
	for i := range pts {
		pts[i] = v3.Vec{X: rng.Float64() * 10, Y: rng.Float64() * 10, Z: rng.Float64() * 10}
	}
	return pts
}

// The two backends implement the same contract; on identical input they
// must return identical results.
func TestRadiusSearchMatchesKdtree(t *testing.T) {
	pts := testPoints(200)
	rt := rtree.New(pts)
	kt := kdtree.New(pts)

	queries := []v3.Vec{
		{X: 5, Y: 5, Z: 5},
		{X: 0, Y: 0, Z: 0},
		{X: 9.5, Y: 1, Z: 4},
		pts[42],
	}
	for _, q := range queries {
		for _, r := range []float64{0.5, 1.5, 4.0} {
			got := rt.RadiusSearch(q, r)
			want := kt.RadiusSearch(q, r)
			if len(got) != len(want) {
				t.Fatalf("q=%v r=%g: got %d neighbors, want %d", q, r, len(got), len(want))
			}
			for i := range got {
				if got[i].Index != want[i].Index {
					t.Fatalf("q=%v r=%g: neighbor %d is %d, want %d", q, r, i, got[i].Index, want[i].Index)
				}
			}
		}
	}
}

func TestRadiusSearchMisses(t *testing.T) {
	pts := []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 5, Y: 5, Z: 5},
	}
	rt := rtree.New(pts)

	// The query box clips the corner point even though its true distance
	// exceeds the radius; the distance filter must drop it.
	nbs := rt.RadiusSearch(v3.Vec{X: 4, Y: 4, Z: 4}, 1.5)
	if len(nbs) != 0 {
		t.Fatalf("got %d neighbors, want 0", len(nbs))
	}
}
