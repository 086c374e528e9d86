// Package intersect computes intersections between pairs of geom
// primitives. Every function returns a witness together with a
// geom.Quantity describing what the witness means; callers switch on the
// quantity and only read the witness when it is not geom.Nop.
//
// Lines and planes report geom.Same when they coincide. Segments report
// geom.Interval for any overlap longer than geom.Epsilon and geom.One when
// they only touch.
package intersect

import "errors"

// ErrUnclassified is returned by TriangleLine when the vertex offsets from
// the line cannot be sorted into any sign pattern. It indicates NaN input
// that slipped past construction.
var ErrUnclassified = errors.New("intersect: unclassified sign pattern")
