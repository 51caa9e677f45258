package cloud_test

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ballpivot/pkg/cloud"
)

func TestEmptyCloud(t *testing.T) {
	pc := cloud.New()
	if pc.Len() != 0 {
		t.Errorf("Len = %d, want 0", pc.Len())
	}
	if pc.HasNormals() {
		t.Error("HasNormals = true on an empty cloud")
	}
	if pc.HasColors() {
		t.Error("HasColors = true on an empty cloud")
	}
}

func TestAdd(t *testing.T) {
	pc := cloud.New()
	pc.Add(v3.Vec{X: 1}, v3.Vec{Z: 1})
	pc.Add(v3.Vec{Y: 1}, v3.Vec{Z: 1})

	if pc.Len() != 2 {
		t.Fatalf("Len = %d, want 2", pc.Len())
	}
	if !pc.HasNormals() {
		t.Error("HasNormals = false after Add")
	}
	if pc.HasColors() {
		t.Error("HasColors = true without colors")
	}
}

func TestAddColored(t *testing.T) {
	pc := cloud.New()
	pc.AddColored(v3.Vec{X: 1}, v3.Vec{Z: 1}, v3.Vec{X: 0.5, Y: 0.5, Z: 0.5})

	if !pc.HasNormals() {
		t.Error("HasNormals = false after AddColored")
	}
	if !pc.HasColors() {
		t.Error("HasColors = false after AddColored")
	}
}

func TestPositionsOnly(t *testing.T) {
	pc := &cloud.PointCloud{Points: []v3.Vec{{X: 1}, {Y: 1}}}
	if pc.HasNormals() {
		t.Error("HasNormals = true without normals")
	}
}
