package intersect

import (
	"math"

	"github.com/chazu/trisect/pkg/geom"
)

// Segments1 intersects two closed intervals. Overlaps shorter than
// geom.Epsilon collapse to a single point.
func Segments1(a, b geom.Segment1) (geom.Segment1, geom.Quantity) {
	if !a.Expanded(geom.Epsilon).Intersects(b.Interval) {
		return geom.Segment1{}, geom.Nop
	}
	lo := math.Max(a.Lo, b.Lo)
	hi := math.Min(a.Hi, b.Hi)
	if hi-lo < geom.Epsilon {
		mid := (lo + hi) / 2
		return geom.NewSegment1(mid, mid), geom.One
	}
	return geom.NewSegment1(lo, hi), geom.Interval
}

// Segments3 intersects two 3D segments. Collinear segments are clipped
// against each other along their common line; point segments are tested
// by containment.
func Segments3(s1, s2 geom.Segment3) (geom.Segment3, geom.Quantity) {
	switch {
	case s1.IsPoint() && s2.IsPoint():
		if s1.P.Equal(s2.P) {
			return geom.PointSegment3(s1.P), geom.One
		}
		return geom.Segment3{}, geom.Nop
	case s1.IsPoint():
		if s2.Contains(s1.P) {
			return geom.PointSegment3(s1.P), geom.One
		}
		return geom.Segment3{}, geom.Nop
	case s2.IsPoint():
		if s1.Contains(s2.P) {
			return geom.PointSegment3(s2.P), geom.One
		}
		return geom.Segment3{}, geom.Nop
	}

	l1, _ := s1.Line()
	l2, _ := s2.Line()

	p, q := Lines3(l1, l2)
	switch q {
	case geom.One:
		if s1.Contains(p) && s2.Contains(p) {
			return geom.PointSegment3(p), geom.One
		}
		return geom.Segment3{}, geom.Nop
	case geom.Same:
		// Work in length units along s1 so the overlap tolerance is a
		// distance, not a fraction of s1.
		u := s1.V.Normalize()
		along := func(x geom.Vector3) float64 { return x.Sub(s1.P).Dot(u) }
		r, rq := Segments1(
			geom.NewSegment1(0, s1.Length()),
			geom.NewSegment1(along(s2.A()), along(s2.B())),
		)
		switch rq {
		case geom.One:
			return geom.PointSegment3(s1.P.Add(u.Scale(r.Lo))), geom.One
		case geom.Interval:
			return geom.NewSegment3(s1.P.Add(u.Scale(r.Lo)), s1.P.Add(u.Scale(r.Hi))), geom.Interval
		}
	}
	return geom.Segment3{}, geom.Nop
}

// Segments2 is Segments3 in the plane.
func Segments2(s1, s2 geom.Segment2) (geom.Segment2, geom.Quantity) {
	switch {
	case s1.IsPoint() && s2.IsPoint():
		if s1.P.Equal(s2.P) {
			return geom.PointSegment2(s1.P), geom.One
		}
		return geom.Segment2{}, geom.Nop
	case s1.IsPoint():
		if s2.Contains(s1.P) {
			return geom.PointSegment2(s1.P), geom.One
		}
		return geom.Segment2{}, geom.Nop
	case s2.IsPoint():
		if s1.Contains(s2.P) {
			return geom.PointSegment2(s2.P), geom.One
		}
		return geom.Segment2{}, geom.Nop
	}

	l1, _ := s1.Line()
	l2, _ := s2.Line()

	p, q := Lines2(l1, l2)
	switch q {
	case geom.One:
		if s1.Contains(p) && s2.Contains(p) {
			return geom.PointSegment2(p), geom.One
		}
		return geom.Segment2{}, geom.Nop
	case geom.Same:
		u := s1.V.Normalize()
		along := func(x geom.Vector2) float64 { return x.Sub(s1.P).Dot(u) }
		r, rq := Segments1(
			geom.NewSegment1(0, s1.Length()),
			geom.NewSegment1(along(s2.A()), along(s2.B())),
		)
		switch rq {
		case geom.One:
			return geom.PointSegment2(s1.P.Add(u.Scale(r.Lo))), geom.One
		case geom.Interval:
			return geom.NewSegment2(s1.P.Add(u.Scale(r.Lo)), s1.P.Add(u.Scale(r.Hi))), geom.Interval
		}
	}
	return geom.Segment2{}, geom.Nop
}

// SegmentLine3 intersects a segment with an infinite line. A segment lying
// on the line is geom.Same and the witness is the segment start.
func SegmentLine3(s geom.Segment3, l geom.Line3) (geom.Vector3, geom.Quantity) {
	if s.IsPoint() {
		if l.Contains(s.P) {
			return s.P, geom.One
		}
		return geom.Vector3{}, geom.Nop
	}

	sl, _ := s.Line()
	p, q := Lines3(sl, l)
	switch q {
	case geom.Same:
		return s.P, geom.Same
	case geom.One:
		if s.Contains(p) {
			return p, geom.One
		}
	}
	return geom.Vector3{}, geom.Nop
}
