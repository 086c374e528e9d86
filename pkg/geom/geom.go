// Package geom provides the primitive value types of the intersection
// kernel: vectors, lines, segments, planes and triangles. All values are
// immutable; operations return new values. Tolerance comparisons use the
// package-scoped Epsilon and never raw floating-point equality.
package geom

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the tolerance used for every zero and equality test on
// geometric quantities in this module.
const Epsilon = 1e-6

// ErrDegenerate is returned when a primitive cannot be constructed because
// its defining data collapses: a zero direction, collinear spanning
// vectors, or collinear triangle vertices.
var ErrDegenerate = errors.New("degenerate geometry")

// Quantity classifies the result of an intersection query.
type Quantity int

const (
	Nop      Quantity = iota // no intersection
	Same                     // the objects coincide
	One                      // a single point
	Interval                 // an overlapping sub-range (segment or line)
)

func (q Quantity) String() string {
	switch q {
	case Nop:
		return "nop"
	case Same:
		return "same"
	case One:
		return "one"
	case Interval:
		return "interval"
	default:
		return "unknown"
	}
}

// nearZero reports whether |x| < Epsilon.
func nearZero(x float64) bool {
	return math.Abs(x) < Epsilon
}

// nearEqual reports whether a and b differ by at most Epsilon.
func nearEqual(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, Epsilon)
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
