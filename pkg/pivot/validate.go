package pivot

import (
	"fmt"
	"sort"
)

// checkInvariants walks the whole topology store and reports every
// violation of its structural invariants. It is read-only; tests run it
// after each reconstruction stage.
func (e *Engine) checkInvariants() []error {
	var errs []error

	edges := e.collectEdges()
	triangles := map[*triangle]bool{}

	for _, ed := range edges {
		errs = append(errs, checkEdge(ed)...)
		if ed.triangle0 != nil {
			triangles[ed.triangle0] = true
		}
		if ed.triangle1 != nil {
			triangles[ed.triangle1] = true
		}
	}

	// Every triangle's three edges exist and list it in exactly one slot.
	for t := range triangles {
		for _, pair := range [3][2]*vertex{{t.v0, t.v1}, {t.v1, t.v2}, {t.v2, t.v0}} {
			ed := e.linkingEdge(pair[0], pair[1])
			if ed == nil {
				errs = append(errs, fmt.Errorf("triangle (%d, %d, %d): edge (%d, %d) missing",
					t.v0.idx, t.v1.idx, t.v2.idx, pair[0].idx, pair[1].idx))
				continue
			}
			slots := 0
			if ed.triangle0 == t {
				slots++
			}
			if ed.triangle1 == t {
				slots++
			}
			if slots != 1 {
				errs = append(errs, fmt.Errorf("triangle (%d, %d, %d): edge (%d, %d) lists it in %d slots",
					t.v0.idx, t.v1.idx, t.v2.idx, ed.source.idx, ed.target.idx, slots))
			}
		}
	}

	// Incident sets match edge endpoints, and classifications are
	// consistent with them.
	for _, v := range e.vertices {
		errs = append(errs, checkVertex(v)...)
	}
	for _, ed := range edges {
		if !containsEdge(ed.source.edges, ed) {
			errs = append(errs, fmt.Errorf("edge (%d, %d): missing from source incident set", ed.source.idx, ed.target.idx))
		}
		if !containsEdge(ed.target.edges, ed) {
			errs = append(errs, fmt.Errorf("edge (%d, %d): missing from target incident set", ed.source.idx, ed.target.idx))
		}
	}

	// No two emitted triangles share an unordered index triple, and the
	// queue holds each edge at most once.
	seen := map[[3]int]bool{}
	for _, t := range e.mesh.Triangles {
		key := [3]int{t[0], t[1], t[2]}
		sort.Ints(key[:])
		if seen[key] {
			errs = append(errs, fmt.Errorf("duplicate triangle %v", key))
		}
		seen[key] = true
	}
	queued := map[*edge]bool{}
	for _, ed := range e.front.edges {
		if queued[ed] {
			errs = append(errs, fmt.Errorf("edge (%d, %d): queued twice", ed.source.idx, ed.target.idx))
		}
		queued[ed] = true
	}

	return errs
}

// collectEdges gathers every edge reachable from the vertex arena,
// deduplicated.
func (e *Engine) collectEdges() []*edge {
	seen := map[*edge]bool{}
	var edges []*edge
	for _, v := range e.vertices {
		for _, ed := range v.edges {
			if !seen[ed] {
				seen[ed] = true
				edges = append(edges, ed)
			}
		}
	}
	return edges
}

// checkEdge verifies slot ordering and that the type is the function of
// the slots the data model requires.
func checkEdge(ed *edge) []error {
	var errs []error
	if ed.triangle0 == nil && ed.triangle1 != nil {
		errs = append(errs, fmt.Errorf("edge (%d, %d): triangle1 filled before triangle0", ed.source.idx, ed.target.idx))
	}
	switch ed.typ {
	case edgeInner:
		if ed.triangle0 == nil || ed.triangle1 == nil {
			errs = append(errs, fmt.Errorf("edge (%d, %d): inner without two triangles", ed.source.idx, ed.target.idx))
		}
	case edgeFront, edgeBorder:
		if ed.triangle1 != nil {
			errs = append(errs, fmt.Errorf("edge (%d, %d): two triangles but not inner", ed.source.idx, ed.target.idx))
		}
	default:
		errs = append(errs, fmt.Errorf("edge (%d, %d): unknown type %d", ed.source.idx, ed.target.idx, ed.typ))
	}
	return errs
}

// checkVertex verifies that the incident set only holds edges touching
// the vertex and that the classification matches the set.
func checkVertex(v *vertex) []error {
	var errs []error
	for _, ed := range v.edges {
		if ed.source != v && ed.target != v {
			errs = append(errs, fmt.Errorf("vertex %d: incident edge (%d, %d) does not touch it",
				v.idx, ed.source.idx, ed.target.idx))
		}
	}
	want := vertexOrphan
	if len(v.edges) > 0 {
		want = vertexInner
		for _, ed := range v.edges {
			if ed.typ != edgeInner {
				want = vertexFront
				break
			}
		}
	}
	if v.typ != want {
		errs = append(errs, fmt.Errorf("vertex %d: type %d, want %d", v.idx, v.typ, want))
	}
	return errs
}

func containsEdge(edges []*edge, ed *edge) bool {
	for _, have := range edges {
		if have == ed {
			return true
		}
	}
	return false
}
