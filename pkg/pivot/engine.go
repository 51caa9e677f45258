// Package pivot implements ball-pivoting surface reconstruction: an
// oriented point cloud is converted to a triangle mesh by rolling a ball
// of each configured radius over the points and emitting a triangle
// whenever the ball rests on three of them without enclosing any other.
package pivot

import (
	"errors"
	"fmt"
	"log"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ballpivot/pkg/cloud"
	"github.com/chazu/ballpivot/pkg/geom"
	"github.com/chazu/ballpivot/pkg/mesh"
	"github.com/chazu/ballpivot/pkg/spatial"
	"github.com/chazu/ballpivot/pkg/spatial/kdtree"
)

// Fatal reconstruction errors.
var (
	ErrMissingNormals = errors.New("pivot: point cloud has no normals")
	ErrInvalidRadius  = errors.New("pivot: ball radius must be positive")
)

// Engine runs ball-pivoting reconstruction over one point cloud. It owns
// the full topology (vertices, edges, triangles); the cloud and the
// spatial index are read-only collaborators. An Engine is single-use:
// create a fresh one per reconstruction.
type Engine struct {
	hasNormals bool
	index      spatial.Index
	vertices   []*vertex
	front      edgeDeque
	border     []*edge
	mesh       *mesh.TriangleMesh

	// Log receives the debug trace; nil disables logging.
	Log *log.Logger
}

// NewEngine creates an engine for the given cloud and spatial index. The
// index must be built over exactly the cloud's points.
func NewEngine(pc *cloud.PointCloud, index spatial.Index) *Engine {
	e := &Engine{
		hasNormals: pc.HasNormals(),
		index:      index,
		mesh: &mesh.TriangleMesh{
			Vertices:      append([]v3.Vec(nil), pc.Points...),
			VertexNormals: append([]v3.Vec(nil), pc.Normals...),
			VertexColors:  append([]v3.Vec(nil), pc.Colors...),
		},
	}
	e.vertices = make([]*vertex, len(pc.Points))
	for i := range pc.Points {
		var n v3.Vec
		if e.hasNormals {
			n = pc.Normals[i]
		}
		e.vertices[i] = &vertex{idx: i, pos: pc.Points[i], normal: n}
	}
	return e
}

// Reconstruct runs ball-pivoting over the cloud with the given radii,
// building a kd-tree index internally. Callers that need a custom index
// use NewEngine and Run directly.
func Reconstruct(pc *cloud.PointCloud, radii []float64) (*mesh.TriangleMesh, error) {
	return NewEngine(pc, kdtree.New(pc.Points)).Run(radii)
}

// Run rolls a ball of each radius in turn over the point set and returns
// the accumulated mesh. Radii are processed in order; an increasing
// sequence lets later passes pivot over gaps the earlier, smaller balls
// fell through. Run fails when the cloud has no normals or a radius is
// not positive.
func (e *Engine) Run(radii []float64) (*mesh.TriangleMesh, error) {
	if !e.hasNormals {
		return nil, ErrMissingNormals
	}

	e.mesh.Triangles = e.mesh.Triangles[:0]
	e.mesh.TriangleNormals = e.mesh.TriangleNormals[:0]

	for _, radius := range radii {
		e.debugf("[Run] change to radius %.4f", radius)
		if radius <= 0 {
			return nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
		}

		e.revisitBorderEdges(radius)

		if e.front.empty() {
			e.findSeedTriangle(radius)
		} else {
			e.expandTriangulation(radius)
		}
		e.debugf("[Run] mesh has %d triangles", e.mesh.TriangleCount())
	}

	return e.mesh, nil
}

// revisitBorderEdges retries border edges after a radius change. An edge
// goes back on the front when the new ball fits its triangle and
// encloses no other point.
func (e *Engine) revisitBorderEdges(radius float64) {
	if len(e.border) == 0 {
		return
	}
	kept := e.border[:0]
	for _, ed := range e.border {
		t := ed.triangle0
		center, ok := geom.BallCenter(
			t.v0.pos, t.v1.pos, t.v2.pos,
			t.v0.normal, t.v1.normal, t.v2.normal, radius)
		if ok && e.ballEmpty(center, radius, t.v0.idx, t.v1.idx, t.v2.idx) {
			e.debugf("[Run] border edge (%d, %d) back on the front", ed.source.idx, ed.target.idx)
			ed.typ = edgeFront
			e.front.pushBack(ed)
			continue
		}
		kept = append(kept, ed)
	}
	e.border = kept
}

// ballEmpty reports whether no point outside the three given indices
// lies within radius of center. Reclassification uses the radius without
// the slack applied in the candidate tests.
func (e *Engine) ballEmpty(center v3.Vec, radius float64, i0, i1, i2 int) bool {
	for _, nb := range e.index.RadiusSearch(center, radius) {
		if nb.Index != i0 && nb.Index != i1 && nb.Index != i2 {
			return false
		}
	}
	return true
}

// linkingEdge returns the edge between v0 and v1, or nil. Edges are
// unique per unordered vertex pair, so scanning one endpoint's incident
// set suffices.
func (e *Engine) linkingEdge(v0, v1 *vertex) *edge {
	for _, ed := range v0.edges {
		if ed.source.idx == v1.idx || ed.target.idx == v1.idx {
			return ed
		}
	}
	return nil
}

// attachTriangle records t on ed, filling triangle0 before triangle1.
// Filling triangle0 also fixes the edge's winding: source and target
// are swapped when the triangle normal opposes the summed vertex
// normals. A third adjacency is logged and dropped; the triangle is
// still emitted by the caller.
func (e *Engine) attachTriangle(ed *edge, t *triangle) {
	if t == ed.triangle0 || t == ed.triangle1 {
		return
	}
	switch {
	case ed.triangle0 == nil:
		ed.triangle0 = t
		ed.typ = edgeFront
		opp := ed.oppositeVertex()
		if opp == nil {
			e.debugf("[attachTriangle] edge (%d, %d) has no opposite vertex", ed.source.idx, ed.target.idx)
			return
		}
		trNorm := ed.target.pos.Sub(ed.source.pos).Cross(opp.pos.Sub(ed.source.pos))
		trNorm = trNorm.DivScalar(trNorm.Length())
		ptNorm := ed.source.normal.Add(ed.target.normal).Add(opp.normal)
		ptNorm = ptNorm.DivScalar(ptNorm.Length())
		if ptNorm.Dot(trNorm) < 0 {
			ed.source, ed.target = ed.target, ed.source
		}
	case ed.triangle1 == nil:
		ed.triangle1 = t
		ed.typ = edgeInner
	default:
		e.debugf("[attachTriangle] edge (%d, %d) already has two adjacent triangles", ed.source.idx, ed.target.idx)
	}
}

// createTriangle allocates the triangle (v0, v1, v2), wires it into the
// edge structure, and emits it to the output mesh. The emitted winding
// follows v0's vertex normal, independent of how attachTriangle oriented
// the edges.
func (e *Engine) createTriangle(v0, v1, v2 *vertex, center v3.Vec) {
	e.debugf("[createTriangle] v0=%d v1=%d v2=%d", v0.idx, v1.idx, v2.idx)
	t := &triangle{v0: v0, v1: v1, v2: v2, ballCenter: center}

	for _, pair := range [3][2]*vertex{{v0, v1}, {v1, v2}, {v2, v0}} {
		ed := e.linkingEdge(pair[0], pair[1])
		if ed == nil {
			ed = newEdge(pair[0], pair[1])
		}
		e.attachTriangle(ed, t)
		pair[0].addEdge(ed)
		pair[1].addEdge(ed)
	}

	v0.updateType()
	v1.updateType()
	v2.updateType()

	faceNormal := geom.FaceNormal(v0.pos, v1.pos, v2.pos)
	if faceNormal.Dot(v0.normal) > -1e-16 {
		e.mesh.Triangles = append(e.mesh.Triangles, [3]int{v0.idx, v1.idx, v2.idx})
	} else {
		e.mesh.Triangles = append(e.mesh.Triangles, [3]int{v0.idx, v2.idx, v1.idx})
	}
	e.mesh.TriangleNormals = append(e.mesh.TriangleNormals, faceNormal)
}

// ballCenter computes the pivot ball center over three vertices.
func (e *Engine) ballCenter(v0, v1, v2 *vertex, radius float64) (v3.Vec, bool) {
	return geom.BallCenter(
		v0.pos, v1.pos, v2.pos,
		v0.normal, v1.normal, v2.normal, radius)
}

// compatible reports whether a triangle over the three vertices can be
// oriented consistently with their normals.
func compatible(v0, v1, v2 *vertex) bool {
	return geom.Compatible(
		v0.pos, v1.pos, v2.pos,
		v0.normal, v1.normal, v2.normal)
}

func (e *Engine) debugf(format string, args ...any) {
	if e.Log != nil {
		e.Log.Printf(format, args...)
	}
}
