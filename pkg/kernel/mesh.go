package kernel

import (
	"github.com/chazu/trisect/pkg/geom"
)

// Mesh is a triangle soup produced by a kernel. Faces index into
// Vertices, three per triangle.
type Mesh struct {
	Vertices []geom.Vector3
	Faces    [][3]int
	PartName string
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of faces, degenerate ones included.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Faces) == 0
}

// Triangles converts the faces to validated triangles. Faces that are
// degenerate (marching cubes emits slivers where the surface grazes a
// cell corner) are dropped and counted.
func (m *Mesh) Triangles() (tris []geom.Triangle, dropped int) {
	tris = make([]geom.Triangle, 0, len(m.Faces))
	for _, f := range m.Faces {
		tr, err := geom.NewTriangle(m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]])
		if err != nil {
			dropped++
			continue
		}
		tris = append(tris, tr)
	}
	return tris, dropped
}
