package geom

import (
	"fmt"
	"math"
)

// PlaneKind selects how NewPlane interprets its vector arguments.
type PlaneKind int

const (
	// PointAndTwoVec: a point on the plane and two spanning vectors.
	PointAndTwoVec PlaneKind = iota
	// ThreePoints: three points on the plane.
	ThreePoints
)

func (k PlaneKind) String() string {
	switch k {
	case PointAndTwoVec:
		return "point-and-two-vectors"
	case ThreePoints:
		return "three-points"
	default:
		return "unknown"
	}
}

// Plane is the plane through P spanned by A and B. The normal N = A × B and
// its unit vector are computed once at construction.
type Plane struct {
	P, A, B, N Vector3
	unit       Vector3
	valid      bool
}

// NewPlane builds a plane. For ThreePoints, u and v are points and the
// spanning vectors are u-p and v-p; for PointAndTwoVec they are used as is.
// Zero or collinear spanning vectors yield ErrDegenerate.
func NewPlane(kind PlaneKind, p, u, v Vector3) (Plane, error) {
	var a, b Vector3
	switch kind {
	case PointAndTwoVec:
		a, b = u, v
	case ThreePoints:
		a, b = u.Sub(p), v.Sub(p)
	default:
		return Plane{}, fmt.Errorf("geom: unknown plane kind %d", int(kind))
	}

	if !p.Finite() || !a.Finite() || !b.Finite() {
		return Plane{}, fmt.Errorf("%w: plane has non-finite coordinates", ErrDegenerate)
	}
	if a.IsZero() || b.IsZero() || a.Collinear(b) {
		return Plane{}, fmt.Errorf("%w: plane spanning vectors %v and %v are collinear", ErrDegenerate, a, b)
	}

	// A valid plane may be small enough for |N| to fall under Epsilon, so
	// N is scaled directly instead of going through Normalize.
	n := a.Cross(b)
	return Plane{P: p, A: a, B: b, N: n, unit: n.Scale(1 / n.Length()), valid: true}, nil
}

// PlaneFromPointAndVectors is NewPlane(PointAndTwoVec, p, a, b).
func PlaneFromPointAndVectors(p, a, b Vector3) (Plane, error) {
	return NewPlane(PointAndTwoVec, p, a, b)
}

// PlaneFromPoints is NewPlane(ThreePoints, a, b, c).
func PlaneFromPoints(a, b, c Vector3) (Plane, error) {
	return NewPlane(ThreePoints, a, b, c)
}

// Valid reports whether the plane came from a successful constructor.
// The zero Plane is not valid.
func (pl Plane) Valid() bool {
	return pl.valid
}

// Normal returns A × B.
func (pl Plane) Normal() Vector3 {
	return pl.N
}

// UnitNormal returns the normalized A × B. It does not depend on the size
// of the spanning vectors. The zero Plane has a zero unit normal.
func (pl Plane) UnitNormal() Vector3 {
	return pl.unit
}

// SignedDistance returns the distance from the plane to p, positive on the
// side the normal points to.
func (pl Plane) SignedDistance(p Vector3) float64 {
	return p.Sub(pl.P).Dot(pl.UnitNormal())
}

func (pl Plane) Distance(p Vector3) float64 {
	return math.Abs(pl.SignedDistance(p))
}

// Contains reports whether p lies on the plane.
func (pl Plane) Contains(p Vector3) bool {
	return pl.Distance(p) < Epsilon
}

// Project returns the orthogonal projection of p onto the plane.
func (pl Plane) Project(p Vector3) Vector3 {
	return p.Sub(pl.UnitNormal().Scale(pl.SignedDistance(p)))
}

// Parallel reports whether the normals of the two planes are collinear.
// Unit normals are compared so the answer holds at any scale.
func (pl Plane) Parallel(o Plane) bool {
	return pl.unit.Collinear(o.unit)
}

// Equal reports whether the planes coincide within tolerance, regardless
// of how they were constructed or which way their normals point.
func (pl Plane) Equal(o Plane) bool {
	if !pl.valid || !o.valid {
		return false
	}
	return pl.Parallel(o) && pl.Contains(o.P) && o.Contains(pl.P)
}

func (pl Plane) String() string {
	return fmt.Sprintf("plane{P: %v, A: %v, B: %v, N: %v}", pl.P, pl.A, pl.B, pl.N)
}
