package geom

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
)

// Triangle is a non-degenerate triangle with its supporting plane.
type Triangle struct {
	a, b, c Vector3
	plane   Plane
}

// NewTriangle builds a triangle. Collinear or coincident vertices yield
// ErrDegenerate.
func NewTriangle(a, b, c Vector3) (Triangle, error) {
	pl, err := PlaneFromPoints(a, b, c)
	if err != nil {
		return Triangle{}, fmt.Errorf("triangle %v %v %v: %w", a, b, c, err)
	}
	return Triangle{a: a, b: b, c: c, plane: pl}, nil
}

func (t Triangle) A() Vector3 { return t.a }
func (t Triangle) B() Vector3 { return t.b }
func (t Triangle) C() Vector3 { return t.c }

// Vertices returns A, B and C in order.
func (t Triangle) Vertices() [3]Vector3 {
	return [3]Vector3{t.a, t.b, t.c}
}

// Edges returns AB, BC and CA.
func (t Triangle) Edges() [3]Segment3 {
	return [3]Segment3{
		NewSegment3(t.a, t.b),
		NewSegment3(t.b, t.c),
		NewSegment3(t.c, t.a),
	}
}

// Plane returns the supporting plane, built from the vertices as
// ThreePoints(A, B, C).
func (t Triangle) Plane() Plane {
	return t.plane
}

// Valid reports whether t came from NewTriangle.
func (t Triangle) Valid() bool {
	return t.plane.Valid()
}

func (t Triangle) Area() float64 {
	return t.plane.N.Length() / 2
}

// Contains reports whether p lies inside the triangle or on its boundary.
func (t Triangle) Contains(p Vector3) bool {
	if !t.plane.Contains(p) {
		return false
	}

	v0 := t.c.Sub(t.a)
	v1 := t.b.Sub(t.a)
	v2 := p.Sub(t.a)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	denom := d00*d11 - d01*d01
	u := (d11*d20 - d01*d21) / denom
	v := (d00*d21 - d01*d20) / denom
	if u >= 0 && v >= 0 && u+v <= 1 {
		return true
	}

	// Barycentric weights are relative to the triangle size; points within
	// Epsilon of the boundary are accepted by absolute distance instead.
	for _, e := range t.Edges() {
		if e.Contains(p) {
			return true
		}
	}
	return false
}

// Bounds returns the axis-aligned bounding box of the triangle.
func (t Triangle) Bounds() sdf.Box3 {
	lo := t.a.Min(t.b).Min(t.c)
	hi := t.a.Max(t.b).Max(t.c)
	return sdf.Box3{Min: lo.V3(), Max: hi.V3()}
}

// Finite reports whether every vertex coordinate is finite.
func (t Triangle) Finite() bool {
	return t.a.Finite() && t.b.Finite() && t.c.Finite()
}

// Equal reports whether the triangles have the same vertices in the same
// cyclic order.
func (t Triangle) Equal(o Triangle) bool {
	v := o.Vertices()
	for shift := 0; shift < 3; shift++ {
		if t.a.Equal(v[shift]) && t.b.Equal(v[(shift+1)%3]) && t.c.Equal(v[(shift+2)%3]) {
			return true
		}
	}
	return false
}

func (t Triangle) String() string {
	return fmt.Sprintf("triangle{%v, %v, %v}", t.a, t.b, t.c)
}
