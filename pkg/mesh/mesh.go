// Package mesh defines the triangle mesh produced by reconstruction.
package mesh

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// TriangleMesh is an indexed triangle mesh. Vertex attributes are
// parallel slices; Triangles holds (i, j, k) index triples into them,
// with winding order encoding orientation. TriangleNormals is parallel
// to Triangles.
type TriangleMesh struct {
	Vertices        []v3.Vec
	VertexNormals   []v3.Vec
	VertexColors    []v3.Vec
	Triangles       [][3]int
	TriangleNormals []v3.Vec
}

// VertexCount returns the number of vertices.
func (m *TriangleMesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *TriangleMesh) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty returns true if the mesh has no triangles.
func (m *TriangleMesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// Triangles3 converts the mesh to a flat triangle soup for the sdfx
// render pipeline (STL output and friends).
func (m *TriangleMesh) Triangles3() []*sdf.Triangle3 {
	tris := make([]*sdf.Triangle3, 0, len(m.Triangles))
	for _, t := range m.Triangles {
		tris = append(tris, &sdf.Triangle3{
			m.Vertices[t[0]],
			m.Vertices[t[1]],
			m.Vertices[t[2]],
		})
	}
	return tris
}
