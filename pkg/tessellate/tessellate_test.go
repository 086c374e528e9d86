package tessellate_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/chazu/trisect/pkg/geom"
	"github.com/chazu/trisect/pkg/index"
	"github.com/chazu/trisect/pkg/index/octree"
	"github.com/chazu/trisect/pkg/kernel"
	"github.com/chazu/trisect/pkg/kernel/sdfx"
	"github.com/chazu/trisect/pkg/tessellate"
)

// newKernel returns a coarse sdfx kernel for testing.
func newKernel() kernel.Kernel {
	return &sdfx.SdfxKernel{Cells: 16}
}

func makeBoard(name string, x, y, z float64) *tessellate.Node {
	return &tessellate.Node{Kind: tessellate.Board, Name: name, Size: geom.Vec3(x, y, z)}
}

func makePlace(tx, ty, tz float64, children ...*tessellate.Node) *tessellate.Node {
	return &tessellate.Node{Kind: tessellate.Place, Translation: geom.Vec3(tx, ty, tz), Children: children}
}

// meshMin returns the componentwise minimum vertex.
func meshMin(m *kernel.Mesh) geom.Vector3 {
	lo := geom.Vec3(math.Inf(1), math.Inf(1), math.Inf(1))
	for _, v := range m.Vertices {
		lo = geom.Vec3(math.Min(lo.X, v.X), math.Min(lo.Y, v.Y), math.Min(lo.Z, v.Z))
	}
	return lo
}

func TestSingleBox(t *testing.T) {
	meshes, err := tessellate.Tessellate([]*tessellate.Node{makeBoard("shelf", 60, 30, 20)}, newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}
	m := meshes[0]
	if m.IsEmpty() {
		t.Fatal("mesh should not be empty")
	}
	if m.PartName != "shelf" {
		t.Errorf("expected PartName %q, got %q", "shelf", m.PartName)
	}
}

func TestPlaceTranslates(t *testing.T) {
	k := newKernel()
	plain, err := tessellate.Tessellate([]*tessellate.Node{makeBoard("a", 40, 40, 40)}, k)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	// Nested places add up.
	moved, err := tessellate.Tessellate([]*tessellate.Node{
		makePlace(100, 0, 0, makePlace(0, 50, 0, makeBoard("a", 40, 40, 40))),
	}, k)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}

	shift := meshMin(moved[0]).Sub(meshMin(plain[0]))
	const tol = 1e-6
	if math.Abs(shift.X-100) > tol || math.Abs(shift.Y-50) > tol || math.Abs(shift.Z) > tol {
		t.Errorf("shift = %v, expected (100, 50, 0)", shift)
	}
}

func TestGroupAndOrder(t *testing.T) {
	roots := []*tessellate.Node{
		{Kind: tessellate.Group, Name: "g", Children: []*tessellate.Node{
			makeBoard("first", 20, 20, 20),
			makeBoard("second", 20, 20, 20),
		}},
		nil,
		{Kind: tessellate.Dowel, Name: "third", Length: 30, Diameter: 10},
	}
	meshes, err := tessellate.Tessellate(roots, newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	var names []string
	for _, m := range meshes {
		names = append(names, m.PartName)
	}
	if len(names) != 3 || names[0] != "first" || names[1] != "second" || names[2] != "third" {
		t.Errorf("part order = %v", names)
	}
}

func TestEmptyScene(t *testing.T) {
	meshes, err := tessellate.Tessellate(nil, newKernel())
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 0 {
		t.Errorf("expected 0 meshes, got %d", len(meshes))
	}
}

func TestUnknownKind(t *testing.T) {
	_, err := tessellate.Tessellate([]*tessellate.Node{{Kind: tessellate.Kind(42), Name: "odd"}}, newKernel())
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestScenes(t *testing.T) {
	names := tessellate.Scenes()
	if len(names) == 0 {
		t.Fatal("no scenes")
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			roots, err := tessellate.Scene(name)
			if err != nil {
				t.Fatalf("Scene: %v", err)
			}
			meshes, err := tessellate.Tessellate(roots, newKernel())
			if err != nil {
				t.Fatalf("Tessellate: %v", err)
			}
			tris, owner, _ := tessellate.Triangles(meshes)
			if len(tris) == 0 {
				t.Fatal("scene produced no triangles")
			}
			if len(owner) != len(tris) {
				t.Fatalf("owner has %d entries for %d triangles", len(owner), len(tris))
			}
		})
	}

	_, err := tessellate.Scene("nope")
	if !errors.Is(err, tessellate.ErrUnknownScene) {
		t.Errorf("expected ErrUnknownScene, got %v", err)
	}
}

// crossPairs counts intersecting pairs whose triangles belong to
// different parts.
func crossPairs(t *testing.T, scene string) int {
	t.Helper()
	roots, err := tessellate.Scene(scene)
	if err != nil {
		t.Fatal(err)
	}
	meshes, err := tessellate.Tessellate(roots, newKernel())
	if err != nil {
		t.Fatal(err)
	}
	tris, owner, _ := tessellate.Triangles(meshes)

	tree := octree.New(octree.Config{MaxObjects: 16, MaxDepth: 8, Workers: 2})
	for i, tr := range tris {
		if err := tree.Add(index.Item{ID: i, Tri: tr}); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}
	if err := tree.Build(); err != nil {
		t.Fatal(err)
	}
	pairs, err := tree.Pairs(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for _, p := range pairs.Sorted() {
		if owner[p.A] != owner[p.B] {
			n++
		}
	}
	return n
}

func TestSceneIntersections(t *testing.T) {
	if n := crossPairs(t, "apart"); n != 0 {
		t.Errorf("apart: %d pairs across parts, want 0", n)
	}
	if n := crossPairs(t, "dowel"); n == 0 {
		t.Error("dowel: no pairs across parts")
	}
}
