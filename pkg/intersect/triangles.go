package intersect

import (
	"fmt"
	"math"

	"github.com/chazu/trisect/pkg/geom"
)

// TriangleLine intersects a triangle with a line.
//
// A line crossing the triangle's plane yields at most one point. A line
// lying in the plane is classified by the signed in-plane offset of each
// vertex from the line: every combination of negative, zero and positive
// offsets maps to Nop, One or Interval.
func TriangleLine(t geom.Triangle, l geom.Line3) (geom.Segment3, geom.Quantity, error) {
	p, q := PlaneLine(t.Plane(), l)
	switch q {
	case geom.Nop:
		return geom.Segment3{}, geom.Nop, nil
	case geom.One:
		if t.Contains(p) {
			return geom.PointSegment3(p), geom.One, nil
		}
		return geom.Segment3{}, geom.Nop, nil
	}
	return coplanarTriangleLine(t, l)
}

func coplanarTriangleLine(t geom.Triangle, l geom.Line3) (geom.Segment3, geom.Quantity, error) {
	v := t.Vertices()
	m := t.Plane().UnitNormal().Cross(l.V.Normalize())

	var d [3]float64
	var zero, pos, neg []int
	for i, x := range v {
		d[i] = x.Sub(l.P).Dot(m)
		switch {
		case math.Abs(d[i]) < geom.Epsilon:
			zero = append(zero, i)
		case d[i] > 0:
			pos = append(pos, i)
		case d[i] < 0:
			neg = append(neg, i)
		}
	}

	// cross returns the point where edge ij meets the line.
	cross := func(i, j int) geom.Vector3 {
		return l.Project(v[i].Add(v[j].Sub(v[i]).Scale(d[i] / (d[i] - d[j]))))
	}

	switch {
	case len(zero) == 0 && (len(pos) == 3 || len(neg) == 3):
		return geom.Segment3{}, geom.Nop, nil

	case len(zero) == 0 && len(pos)+len(neg) == 3:
		lone, rest := pos, neg
		if len(neg) == 1 {
			lone, rest = neg, pos
		}
		a := cross(lone[0], rest[0])
		b := cross(lone[0], rest[1])
		return geom.NewSegment3(a, b), geom.Interval, nil

	case len(zero) == 1 && (len(pos) == 2 || len(neg) == 2):
		at := l.Project(v[zero[0]])
		return geom.PointSegment3(at), geom.One, nil

	case len(zero) == 1 && len(pos) == 1 && len(neg) == 1:
		return geom.NewSegment3(l.Project(v[zero[0]]), cross(pos[0], neg[0])), geom.Interval, nil

	case len(zero) == 2:
		return geom.NewSegment3(l.Project(v[zero[0]]), l.Project(v[zero[1]])), geom.Interval, nil

	case len(zero) == 3:
		// The triangle is thinner than Epsilon across the line.
		u := l.V.Normalize()
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, x := range v {
			s := x.Sub(l.P).Dot(u)
			lo = math.Min(lo, s)
			hi = math.Max(hi, s)
		}
		return geom.NewSegment3(l.P.Add(u.Scale(lo)), l.P.Add(u.Scale(hi))), geom.Interval, nil
	}

	return geom.Segment3{}, geom.Nop, fmt.Errorf("%w: offsets %v from %v", ErrUnclassified, d, l)
}

// Triangles reports whether two triangles share at least one point.
// Touching at a vertex or along an edge counts as intersecting.
func Triangles(t1, t2 geom.Triangle) (bool, error) {
	if !t1.Valid() || !t2.Valid() {
		return false, fmt.Errorf("intersect: triangles: %w", geom.ErrDegenerate)
	}

	p1, p2 := t1.Plane(), t2.Plane()
	if p1.Equal(p2) {
		return coplanarTriangles(t1, t2), nil
	}

	l, q := Planes(p1, p2)
	if q != geom.Interval {
		return false, nil
	}

	s1, q1, err := TriangleLine(t1, l)
	if err != nil || q1 == geom.Nop {
		return false, err
	}
	s2, q2, err := TriangleLine(t2, l)
	if err != nil || q2 == geom.Nop {
		return false, err
	}

	// Both pieces lie on l; compare their extents along it.
	u := l.V.Normalize()
	along := func(x geom.Vector3) float64 { return x.Sub(l.P).Dot(u) }
	_, q = Segments1(
		geom.NewSegment1(along(s1.A()), along(s1.B())),
		geom.NewSegment1(along(s2.A()), along(s2.B())),
	)
	return q != geom.Nop, nil
}

func coplanarTriangles(t1, t2 geom.Triangle) bool {
	for _, x := range t2.Vertices() {
		if t1.Contains(x) {
			return true
		}
	}
	for _, x := range t1.Vertices() {
		if t2.Contains(x) {
			return true
		}
	}
	for _, e1 := range t1.Edges() {
		for _, e2 := range t2.Edges() {
			if _, q := Segments3(e1, e2); q != geom.Nop {
				return true
			}
		}
	}
	return false
}
