package intersect

import (
	"math"

	"github.com/chazu/trisect/pkg/geom"
)

// Planes intersects two planes. Distinct parallel planes are geom.Nop,
// coincident planes geom.Same, and otherwise the result is geom.Interval
// with the line of intersection as witness.
func Planes(p1, p2 geom.Plane) (geom.Line3, geom.Quantity) {
	if p1.Parallel(p2) {
		if p1.Contains(p2.P) {
			return geom.Line3{}, geom.Same
		}
		return geom.Line3{}, geom.Nop
	}

	// The line point is E = a·n1 + b·n2 satisfying both plane equations.
	n1 := p1.UnitNormal()
	n2 := p2.UnitNormal()
	d1 := n1.Dot(p1.P)
	d2 := n2.Dot(p2.P)
	w := n1.Dot(n2)

	det := 1 - w*w
	a := (d1 - w*d2) / det
	b := (d2 - w*d1) / det

	e := n1.Scale(a).Add(n2.Scale(b))
	return geom.Line3{P: e, V: n1.Cross(n2)}, geom.Interval
}

// SignedPlaneDistance returns the distance from p1 to p2 measured along
// p1's normal. Planes that meet are at distance zero.
func SignedPlaneDistance(p1, p2 geom.Plane) float64 {
	if !p1.Parallel(p2) {
		return 0
	}
	return p1.SignedDistance(p2.P)
}

func PlaneDistance(p1, p2 geom.Plane) float64 {
	return math.Abs(SignedPlaneDistance(p1, p2))
}

// PlaneLine intersects a plane with a line. A line lying in the plane is
// geom.Same; a parallel line off the plane is geom.Nop.
func PlaneLine(pl geom.Plane, l geom.Line3) (geom.Vector3, geom.Quantity) {
	n := pl.UnitNormal()
	if math.Abs(n.Dot(l.V.Normalize())) < geom.Epsilon {
		if pl.Contains(l.P) {
			return l.P, geom.Same
		}
		return geom.Vector3{}, geom.Nop
	}
	s := n.Dot(pl.P.Sub(l.P)) / n.Dot(l.V)
	return l.Point(s), geom.One
}

// PlanePoint is geom.One when pl contains p and geom.Nop otherwise.
func PlanePoint(pl geom.Plane, p geom.Vector3) geom.Quantity {
	if pl.Contains(p) {
		return geom.One
	}
	return geom.Nop
}
