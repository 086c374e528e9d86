package geom

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vector3 is a point or direction in 3D space.
type Vector3 struct {
	X, Y, Z float64
}

// Vec3 is shorthand for Vector3{X: x, Y: y, Z: z}.
func Vec3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// FromV3 converts an sdfx vector.
func FromV3(v v3.Vec) Vector3 {
	return Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

// V3 converts to an sdfx vector.
func (v Vector3) V3() v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale multiplies every component by k.
func (v Vector3) Scale(k float64) Vector3 {
	return Vector3{v.X * k, v.Y * k, v.Z * k}
}

func (v Vector3) Neg() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// Dot returns the scalar product.
func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the vector product v × o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) Length2() float64 {
	return v.Dot(v)
}

func (v Vector3) Length() float64 {
	return math.Sqrt(v.Length2())
}

// IsZero reports whether the vector is shorter than Epsilon.
func (v Vector3) IsZero() bool {
	return v.Length() < Epsilon
}

// Normalize returns the unit vector with the direction of v. A zero vector
// has no direction and normalizes to the zero vector.
func (v Vector3) Normalize() Vector3 {
	if v.IsZero() {
		return Vector3{}
	}
	return v.Scale(1 / v.Length())
}

// Equal compares component-wise within Epsilon.
func (v Vector3) Equal(o Vector3) bool {
	return nearEqual(v.X, o.X) && nearEqual(v.Y, o.Y) && nearEqual(v.Z, o.Z)
}

// Collinear reports whether v and o are parallel. The cross product is
// compared relative to the operand lengths so the test does not depend on
// scale. A zero vector is collinear with every vector.
func (v Vector3) Collinear(o Vector3) bool {
	if v.IsZero() || o.IsZero() {
		return true
	}
	return v.Cross(o).Length() <= Epsilon*v.Length()*o.Length()
}

// Codirected reports whether v and o are collinear and point the same way.
func (v Vector3) Codirected(o Vector3) bool {
	return v.Collinear(o) && v.Dot(o) >= 0
}

// Min returns the component-wise minimum.
func (v Vector3) Min(o Vector3) Vector3 {
	return Vector3{math.Min(v.X, o.X), math.Min(v.Y, o.Y), math.Min(v.Z, o.Z)}
}

// Max returns the component-wise maximum.
func (v Vector3) Max(o Vector3) Vector3 {
	return Vector3{math.Max(v.X, o.X), math.Max(v.Y, o.Y), math.Max(v.Z, o.Z)}
}

// Component returns the coordinate on axis 0 (X), 1 (Y) or 2 (Z).
func (v Vector3) Component(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		panic(fmt.Sprintf("geom: invalid axis %d", axis))
	}
}

// Finite reports whether no component is NaN or infinite.
func (v Vector3) Finite() bool {
	return finite(v.X, v.Y, v.Z)
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Vector2 is a point or direction in the plane.
type Vector2 struct {
	X, Y float64
}

// Vec2 is shorthand for Vector2{X: x, Y: y}.
func Vec2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

func (v Vector2) Scale(k float64) Vector2 {
	return Vector2{v.X * k, v.Y * k}
}

func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product of v and o
// embedded in the z = 0 plane.
func (v Vector2) Cross(o Vector2) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vector2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vector2) IsZero() bool {
	return v.Length() < Epsilon
}

// Normalize returns the unit vector with the direction of v, or the zero
// vector if v is zero.
func (v Vector2) Normalize() Vector2 {
	if v.IsZero() {
		return Vector2{}
	}
	return v.Scale(1 / v.Length())
}

func (v Vector2) Equal(o Vector2) bool {
	return nearEqual(v.X, o.X) && nearEqual(v.Y, o.Y)
}

// Collinear reports whether v and o are parallel, see Vector3.Collinear.
func (v Vector2) Collinear(o Vector2) bool {
	if v.IsZero() || o.IsZero() {
		return true
	}
	return math.Abs(v.Cross(o)) <= Epsilon*v.Length()*o.Length()
}

func (v Vector2) Codirected(o Vector2) bool {
	return v.Collinear(o) && v.Dot(o) >= 0
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
