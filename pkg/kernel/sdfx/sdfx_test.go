package sdfx

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/trisect/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
)

type otherSolid struct{}

func (otherSolid) Bounds() sdf.Box3 { return sdf.Box3{} }

func mustBox(t *testing.T, k *SdfxKernel, x, y, z float64) kernel.Solid {
	t.Helper()
	s, err := k.Box(x, y, z)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	return s
}

func TestBox(t *testing.T) {
	k := &SdfxKernel{Cells: 10}
	mesh, err := k.ToMesh(mustBox(t, k, 100, 50, 25))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.VertexCount() != 3*mesh.TriangleCount() {
		t.Fatalf("vertex count %d != 3 * triangle count %d", mesh.VertexCount(), mesh.TriangleCount())
	}
	tris, dropped := mesh.Triangles()
	if len(tris) == 0 {
		t.Fatal("no valid triangles")
	}
	t.Logf("box triangle count: %d (%d degenerate)", len(tris), dropped)
}

func TestCylinder(t *testing.T) {
	k := &SdfxKernel{Cells: 10}
	cyl, err := k.Cylinder(50, 10)
	if err != nil {
		t.Fatalf("Cylinder: %v", err)
	}
	mesh, err := k.ToMesh(cyl)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
}

func TestDifference(t *testing.T) {
	k := &SdfxKernel{Cells: 16}
	box := mustBox(t, k, 100, 100, 100)
	boxMesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh(box) failed: %v", err)
	}

	cyl, err := k.Cylinder(120, 20)
	if err != nil {
		t.Fatalf("Cylinder: %v", err)
	}
	diff := k.Difference(box, k.Translate(cyl, 50, 50, 50))
	diffMesh, err := k.ToMesh(diff)
	if err != nil {
		t.Fatalf("ToMesh(diff) failed: %v", err)
	}
	// A box with a hole has more surface than a plain box.
	if diffMesh.TriangleCount() <= boxMesh.TriangleCount() {
		t.Fatalf("difference (%d triangles) should have more triangles than box (%d triangles)",
			diffMesh.TriangleCount(), boxMesh.TriangleCount())
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	translated := k.Translate(mustBox(t, k, 10, 10, 10), 100, 200, 300)
	bb := translated.Bounds()

	const tol = 0.5
	expectMin := [3]float64{100, 200, 300}
	expectMax := [3]float64{110, 210, 310}
	gotMin := [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	gotMax := [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	for i := 0; i < 3; i++ {
		if math.Abs(gotMin[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, gotMin[i], expectMin[i])
		}
		if math.Abs(gotMax[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, gotMax[i], expectMax[i])
		}
	}
}

func TestRotate(t *testing.T) {
	k := New()
	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(mustBox(t, k, 100, 10, 10), 0, 0, 90)
	bb := rotated.Bounds()

	xExtent := bb.Max.X - bb.Min.X
	yExtent := bb.Max.Y - bb.Min.Y

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}

func TestForeignSolid(t *testing.T) {
	_, err := New().ToMesh(otherSolid{})
	if !errors.Is(err, ErrForeignSolid) {
		t.Errorf("expected ErrForeignSolid, got %v", err)
	}
}
