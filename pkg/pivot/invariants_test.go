package pivot

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ballpivot/pkg/cloud"
	"github.com/chazu/ballpivot/pkg/spatial/kdtree"
)

func tetraCloud() *cloud.PointCloud {
	pc := cloud.New()
	pts := []v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1},
	}
	centroid := v3.Vec{X: 0.25, Y: 0.25, Z: 0.25}
	for _, p := range pts {
		pc.Add(p, p.Sub(centroid).Normalize())
	}
	return pc
}

func flatGrid(rows, cols int) *cloud.PointCloud {
	pc := cloud.New()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			pc.Add(v3.Vec{X: float64(i), Y: float64(j)}, v3.Vec{Z: 1})
		}
	}
	return pc
}

func runEngine(t *testing.T, pc *cloud.PointCloud, radii []float64) *Engine {
	t.Helper()
	e := NewEngine(pc, kdtree.New(pc.Points))
	if _, err := e.Run(radii); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return e
}

func TestInvariantsAfterRun(t *testing.T) {
	cases := []struct {
		name  string
		pc    *cloud.PointCloud
		radii []float64
	}{
		{"grid", flatGrid(3, 3), []float64{0.75}},
		{"tetrahedron", tetraCloud(), []float64{0.9}},
		{"tetrahedron partial", tetraCloud(), []float64{0.8}},
		{"tetrahedron two radii", tetraCloud(), []float64{0.8, 0.9}},
		{"grid tiny radius", flatGrid(3, 3), []float64{0.2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := runEngine(t, tc.pc, tc.radii)
			for _, err := range e.checkInvariants() {
				t.Error(err)
			}
		})
	}
}

func TestBorderEdgesTracked(t *testing.T) {
	// With a 0.8 ball the tetrahedron's oblique face is unreachable;
	// its three edges must end up on the border list.
	e := runEngine(t, tetraCloud(), []float64{0.8})

	if len(e.border) != 3 {
		t.Fatalf("border list has %d edges, want 3", len(e.border))
	}
	for _, ed := range e.border {
		if ed.typ != edgeBorder {
			t.Errorf("edge (%d, %d): typ = %d, want border", ed.source.idx, ed.target.idx, ed.typ)
		}
		if ed.triangle1 != nil {
			t.Errorf("edge (%d, %d): border edge with two triangles", ed.source.idx, ed.target.idx)
		}
	}
}

func TestBorderClearedAfterRecovery(t *testing.T) {
	e := runEngine(t, tetraCloud(), []float64{0.8, 0.9})
	if len(e.border) != 0 {
		t.Errorf("border list has %d edges after recovery, want 0", len(e.border))
	}
	for _, ed := range e.collectEdges() {
		if ed.typ != edgeInner {
			t.Errorf("edge (%d, %d): typ = %d, want inner on a closed hull", ed.source.idx, ed.target.idx, ed.typ)
		}
	}
}

func TestEmptyBallProperty(t *testing.T) {
	// Every triangle's stored ball center keeps all other points out of
	// the ball, up to the shared slack.
	const radius = 0.75
	e := runEngine(t, flatGrid(3, 3), []float64{radius})

	seen := map[*triangle]bool{}
	for _, ed := range e.collectEdges() {
		for _, tri := range []*triangle{ed.triangle0, ed.triangle1} {
			if tri == nil || seen[tri] {
				continue
			}
			seen[tri] = true
			for _, v := range e.vertices {
				if v == tri.v0 || v == tri.v1 || v == tri.v2 {
					continue
				}
				if d := tri.ballCenter.Sub(v.pos).Length(); d < radius-1e-16 {
					t.Errorf("triangle (%d, %d, %d): point %d inside the ball (d = %v)",
						tri.v0.idx, tri.v1.idx, tri.v2.idx, v.idx, d)
				}
			}
		}
	}
	if len(seen) == 0 {
		t.Fatal("no triangles found")
	}
}
