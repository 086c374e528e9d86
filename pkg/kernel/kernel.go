// Package kernel defines the solid modeling interface used to generate
// triangle workloads. A kernel builds solids from primitives and booleans
// and tessellates them into meshes whose triangles feed the index.
package kernel

import (
	"github.com/deadsy/sdfx/sdf"
)

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// Bounds returns the axis-aligned bounding box.
	Bounds() sdf.Box3
}

// Kernel builds and tessellates solids.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) (Solid, error)
	Cylinder(height, radius float64) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
