package intersect

import (
	"math"

	"github.com/chazu/trisect/pkg/geom"
)

// Lines3 intersects two 3D lines. Parallel lines are geom.Same when one
// contains the other's anchor and geom.Nop otherwise. For crossing
// directions the closest points on both lines are solved with Cramer's
// rule and the result is geom.One only when those points agree.
func Lines3(l1, l2 geom.Line3) (geom.Vector3, geom.Quantity) {
	if l1.V.Collinear(l2.V) {
		if l1.Contains(l2.P) {
			return l1.P, geom.Same
		}
		return geom.Vector3{}, geom.Nop
	}

	w := l1.P.Sub(l2.P)
	a := l1.V.Dot(l1.V)
	b := l1.V.Dot(l2.V)
	c := l2.V.Dot(l2.V)
	d := l1.V.Dot(w)
	e := l2.V.Dot(w)

	det := a*c - b*b
	s := (b*e - c*d) / det
	t := (a*e - b*d) / det

	p1 := l1.Point(s)
	p2 := l2.Point(t)
	if !p1.Equal(p2) {
		return geom.Vector3{}, geom.Nop
	}
	return p1, geom.One
}

// LineDistance3 returns the shortest distance between two lines. It is
// zero when they intersect.
func LineDistance3(l1, l2 geom.Line3) float64 {
	if l1.V.Collinear(l2.V) {
		return l1.Distance(l2.P)
	}
	n := l1.V.Cross(l2.V)
	return math.Abs(l2.P.Sub(l1.P).Dot(n)) / n.Length()
}

// Lines2 intersects two planar lines.
func Lines2(l1, l2 geom.Line2) (geom.Vector2, geom.Quantity) {
	if l1.V.Collinear(l2.V) {
		if l1.Contains(l2.P) {
			return l1.P, geom.Same
		}
		return geom.Vector2{}, geom.Nop
	}
	t := l2.P.Sub(l1.P).Cross(l2.V) / l1.V.Cross(l2.V)
	return l1.Point(t), geom.One
}
