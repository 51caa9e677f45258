// Package cloud defines the oriented point cloud consumed by the
// reconstruction engine. Positions, normals, and colors are parallel
// slices indexed by point id.
package cloud

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// PointCloud is an indexed set of 3D points with optional per-point
// unit normals and colors. The engine treats it as read-only.
type PointCloud struct {
	Points  []v3.Vec
	Normals []v3.Vec
	Colors  []v3.Vec
}

// New creates an empty PointCloud.
func New() *PointCloud {
	return &PointCloud{}
}

// Len returns the number of points.
func (pc *PointCloud) Len() int {
	return len(pc.Points)
}

// HasNormals reports whether the cloud is non-empty and every point
// carries a normal. It is false for a cloud with no points.
func (pc *PointCloud) HasNormals() bool {
	return len(pc.Points) > 0 && len(pc.Normals) == len(pc.Points)
}

// HasColors reports whether the cloud is non-empty and every point
// carries a color. It is false for a cloud with no points.
func (pc *PointCloud) HasColors() bool {
	return len(pc.Points) > 0 && len(pc.Colors) == len(pc.Points)
}

// Add appends a point with its normal. Colors stay empty; use AddColored
// when per-point colors are available.
func (pc *PointCloud) Add(p, n v3.Vec) {
	pc.Points = append(pc.Points, p)
	pc.Normals = append(pc.Normals, n)
}

// AddColored appends a point with its normal and color.
func (pc *PointCloud) AddColored(p, n, c v3.Vec) {
	pc.Points = append(pc.Points, p)
	pc.Normals = append(pc.Normals, n)
	pc.Colors = append(pc.Colors, c)
}
