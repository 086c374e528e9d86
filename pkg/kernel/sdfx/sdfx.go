// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Meshes come from uniform
// marching cubes, so curved and flat faces alike end up as many small
// triangles that share edges with their neighbours.
package sdfx

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/trisect/pkg/geom"
	"github.com/chazu/trisect/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells controls marching cubes resolution along the longest
// side of the bounding box.
const DefaultMeshCells = 40

// ErrForeignSolid is returned when a solid from another kernel is passed in.
var ErrForeignSolid = errors.New("sdfx: solid not created by this kernel")

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

func (s *sdfxSolid) Bounds() sdf.Box3 {
	return s.s.BoundingBox()
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	Cells int // marching cubes cells; values below 1 mean DefaultMeshCells
}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{Cells: DefaultMeshCells}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid. Solids
// from other kernels unwrap to nil.
func unwrap(s kernel.Solid) sdf.SDF3 {
	if ss, ok := s.(*sdfxSolid); ok {
		return ss.s
	}
	return nil
}

func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Box creates a box with its minimum corner at the origin.
// sdf.Box3D centers the box at the origin, so we translate by half-dimensions.
func (k *SdfxKernel) Box(x, y, z float64) (kernel.Solid, error) {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: box: %w", err)
	}
	m := sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})
	return wrap(sdf.Transform3D(s, m)), nil
}

// Cylinder creates a cylinder along Z centered at the origin.
func (k *SdfxKernel) Cylinder(height, radius float64) (kernel.Solid, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: cylinder: %w", err)
	}
	return wrap(s), nil
}

func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees), X first, then Y, then Z.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// ToMesh tessellates a solid with marching cubes. Every triangle gets its
// own three vertices.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)
	if sdf3 == nil {
		return nil, ErrForeignSolid
	}
	cells := k.Cells
	if cells < 1 {
		cells = DefaultMeshCells
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(sdf3, renderer)

	mesh := &kernel.Mesh{
		Vertices: make([]geom.Vector3, 0, len(triangles)*3),
		Faces:    make([][3]int, 0, len(triangles)),
	}
	for i, tri := range triangles {
		for j := 0; j < 3; j++ {
			mesh.Vertices = append(mesh.Vertices, geom.FromV3(tri[j]))
		}
		mesh.Faces = append(mesh.Faces, [3]int{i * 3, i*3 + 1, i*3 + 2})
	}
	return mesh, nil
}
