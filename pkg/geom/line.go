package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r1"
)

// Line3 is the infinite line P + t·V.
type Line3 struct {
	P, V Vector3
}

// NewLine3 builds a line from a point and a direction. The direction must
// not be zero.
func NewLine3(p, v Vector3) (Line3, error) {
	if v.IsZero() {
		return Line3{}, fmt.Errorf("%w: line direction %v is zero", ErrDegenerate, v)
	}
	return Line3{P: p, V: v}, nil
}

// Line3Through builds the line passing through a and b.
func Line3Through(a, b Vector3) (Line3, error) {
	if a.Equal(b) {
		return Line3{}, fmt.Errorf("%w: line through identical points %v", ErrDegenerate, a)
	}
	return Line3{P: a, V: b.Sub(a)}, nil
}

// Point returns P + t·V.
func (l Line3) Point(t float64) Vector3 {
	return l.P.Add(l.V.Scale(t))
}

// Param returns the parameter of the orthogonal projection of p.
func (l Line3) Param(p Vector3) float64 {
	return p.Sub(l.P).Dot(l.V) / l.V.Length2()
}

// Project returns the orthogonal projection of p onto the line.
func (l Line3) Project(p Vector3) Vector3 {
	u := l.V.Normalize()
	return l.P.Add(u.Scale(u.Dot(p.Sub(l.P))))
}

// Distance returns the distance from p to the line.
func (l Line3) Distance(p Vector3) float64 {
	return p.Sub(l.Project(p)).Length()
}

// Contains reports whether p lies on the line.
func (l Line3) Contains(p Vector3) bool {
	return l.Distance(p) < Epsilon
}

func (l Line3) String() string {
	return fmt.Sprintf("line{P: %v, V: %v}", l.P, l.V)
}

// Line2 is the infinite planar line P + t·V.
type Line2 struct {
	P, V Vector2
}

// NewLine2 builds a planar line from a point and a non-zero direction.
func NewLine2(p, v Vector2) (Line2, error) {
	if v.IsZero() {
		return Line2{}, fmt.Errorf("%w: line direction %v is zero", ErrDegenerate, v)
	}
	return Line2{P: p, V: v}, nil
}

// Line2Through builds the planar line passing through a and b.
func Line2Through(a, b Vector2) (Line2, error) {
	if a.Equal(b) {
		return Line2{}, fmt.Errorf("%w: line through identical points %v", ErrDegenerate, a)
	}
	return Line2{P: a, V: b.Sub(a)}, nil
}

func (l Line2) Point(t float64) Vector2 {
	return l.P.Add(l.V.Scale(t))
}

func (l Line2) Param(p Vector2) float64 {
	return p.Sub(l.P).Dot(l.V) / l.V.Dot(l.V)
}

func (l Line2) Project(p Vector2) Vector2 {
	u := l.V.Normalize()
	return l.P.Add(u.Scale(u.Dot(p.Sub(l.P))))
}

func (l Line2) Distance(p Vector2) float64 {
	return p.Sub(l.Project(p)).Length()
}

func (l Line2) Contains(p Vector2) bool {
	return l.Distance(p) < Epsilon
}

// Segment1 is a closed interval [A, B] on the real line.
type Segment1 struct {
	r1.Interval
}

// NewSegment1 returns the interval spanned by a and b in either order.
func NewSegment1(a, b float64) Segment1 {
	if a > b {
		a, b = b, a
	}
	return Segment1{r1.Interval{Lo: a, Hi: b}}
}

func (s Segment1) A() float64 { return s.Lo }
func (s Segment1) B() float64 { return s.Hi }

// Contains reports whether x lies in the interval, widened by Epsilon.
func (s Segment1) Contains(x float64) bool {
	return x >= s.Lo-Epsilon && x <= s.Hi+Epsilon
}

func (s Segment1) String() string {
	return fmt.Sprintf("[%g, %g]", s.Lo, s.Hi)
}

// Segment3 is the finite segment P + t·V for t in [0, 1]. A zero V is a
// single point and is a valid segment.
type Segment3 struct {
	P, V Vector3
}

// NewSegment3 returns the segment with endpoints a and b.
func NewSegment3(a, b Vector3) Segment3 {
	return Segment3{P: a, V: b.Sub(a)}
}

// PointSegment3 returns the degenerate segment holding only p.
func PointSegment3(p Vector3) Segment3 {
	return Segment3{P: p}
}

func (s Segment3) A() Vector3 { return s.P }
func (s Segment3) B() Vector3 { return s.P.Add(s.V) }

func (s Segment3) Point(t float64) Vector3 {
	return s.P.Add(s.V.Scale(t))
}

// IsPoint reports whether the segment has collapsed to a single point.
func (s Segment3) IsPoint() bool {
	return s.V.IsZero()
}

func (s Segment3) Length() float64 {
	return s.V.Length()
}

// Line returns the carrying line; it fails for point segments.
func (s Segment3) Line() (Line3, error) {
	return NewLine3(s.P, s.V)
}

// Closest returns the point of the segment nearest to p.
func (s Segment3) Closest(p Vector3) Vector3 {
	if s.IsPoint() {
		return s.P
	}
	t := p.Sub(s.P).Dot(s.V) / s.V.Length2()
	return s.Point(math.Max(0, math.Min(1, t)))
}

// Contains reports whether p lies on the segment.
func (s Segment3) Contains(p Vector3) bool {
	return p.Sub(s.Closest(p)).Length() < Epsilon
}

func (s Segment3) Equal(o Segment3) bool {
	return (s.A().Equal(o.A()) && s.B().Equal(o.B())) ||
		(s.A().Equal(o.B()) && s.B().Equal(o.A()))
}

func (s Segment3) String() string {
	return fmt.Sprintf("segment{%v, %v}", s.A(), s.B())
}

// Segment2 is the planar segment P + t·V for t in [0, 1].
type Segment2 struct {
	P, V Vector2
}

func NewSegment2(a, b Vector2) Segment2 {
	return Segment2{P: a, V: b.Sub(a)}
}

// PointSegment2 returns the degenerate planar segment holding only p.
func PointSegment2(p Vector2) Segment2 {
	return Segment2{P: p}
}

func (s Segment2) A() Vector2 { return s.P }
func (s Segment2) B() Vector2 { return s.P.Add(s.V) }

func (s Segment2) Point(t float64) Vector2 {
	return s.P.Add(s.V.Scale(t))
}

func (s Segment2) IsPoint() bool {
	return s.V.IsZero()
}

func (s Segment2) Line() (Line2, error) {
	return NewLine2(s.P, s.V)
}

func (s Segment2) Closest(p Vector2) Vector2 {
	if s.IsPoint() {
		return s.P
	}
	t := p.Sub(s.P).Dot(s.V) / s.V.Dot(s.V)
	return s.Point(math.Max(0, math.Min(1, t)))
}

func (s Segment2) Contains(p Vector2) bool {
	return p.Sub(s.Closest(p)).Length() < Epsilon
}

func (s Segment2) Length() float64 {
	return s.V.Length()
}

func (s Segment2) String() string {
	return fmt.Sprintf("segment{%v, %v}", s.A(), s.B())
}
