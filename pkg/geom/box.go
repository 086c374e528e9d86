package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
)

// EmptyBox returns an inverted box that any BoxUnion or BoxInclude grows
// from.
func EmptyBox() sdf.Box3 {
	inf := math.Inf(1)
	return sdf.Box3{Min: Vec3(inf, inf, inf).V3(), Max: Vec3(-inf, -inf, -inf).V3()}
}

// BoxInclude grows b to contain p.
func BoxInclude(b sdf.Box3, p Vector3) sdf.Box3 {
	return sdf.Box3{
		Min: FromV3(b.Min).Min(p).V3(),
		Max: FromV3(b.Max).Max(p).V3(),
	}
}

// BoxUnion returns the smallest box containing a and b.
func BoxUnion(a, b sdf.Box3) sdf.Box3 {
	return sdf.Box3{
		Min: FromV3(a.Min).Min(FromV3(b.Min)).V3(),
		Max: FromV3(a.Max).Max(FromV3(b.Max)).V3(),
	}
}

// PadBox grows b by d on every side.
func PadBox(b sdf.Box3, d float64) sdf.Box3 {
	pad := Vec3(d, d, d)
	return sdf.Box3{
		Min: FromV3(b.Min).Sub(pad).V3(),
		Max: FromV3(b.Max).Add(pad).V3(),
	}
}

// BoxCenter returns the midpoint of b.
func BoxCenter(b sdf.Box3) Vector3 {
	return FromV3(b.Min).Add(FromV3(b.Max)).Scale(0.5)
}

// BoxOverlap reports whether two closed boxes share a point, allowing a
// gap of up to Epsilon.
func BoxOverlap(a, b sdf.Box3) bool {
	return a.Min.X <= b.Max.X+Epsilon && b.Min.X <= a.Max.X+Epsilon &&
		a.Min.Y <= b.Max.Y+Epsilon && b.Min.Y <= a.Max.Y+Epsilon &&
		a.Min.Z <= b.Max.Z+Epsilon && b.Min.Z <= a.Max.Z+Epsilon
}

// BoxContains reports whether inner lies entirely inside outer.
func BoxContains(outer, inner sdf.Box3) bool {
	return outer.Min.X <= inner.Min.X && inner.Max.X <= outer.Max.X &&
		outer.Min.Y <= inner.Min.Y && inner.Max.Y <= outer.Max.Y &&
		outer.Min.Z <= inner.Min.Z && inner.Max.Z <= outer.Max.Z
}

// Octants splits b at its center into eight closed boxes. Bit 0 of the
// index selects the upper X half, bit 1 the upper Y half and bit 2 the
// upper Z half.
func Octants(b sdf.Box3) [8]sdf.Box3 {
	lo, mid, hi := FromV3(b.Min), BoxCenter(b), FromV3(b.Max)
	var out [8]sdf.Box3
	for i := range out {
		bmin, bmax := lo, mid
		if i&1 != 0 {
			bmin.X, bmax.X = mid.X, hi.X
		}
		if i&2 != 0 {
			bmin.Y, bmax.Y = mid.Y, hi.Y
		}
		if i&4 != 0 {
			bmin.Z, bmax.Z = mid.Z, hi.Z
		}
		out[i] = sdf.Box3{Min: bmin.V3(), Max: bmax.V3()}
	}
	return out
}

// OverlapsBox reports whether the triangle touches the closed box b grown
// by Epsilon. It runs the separating axis test over the box face normals,
// the triangle normal and the nine edge cross products.
func (t Triangle) OverlapsBox(b sdf.Box3) bool {
	if !BoxOverlap(t.Bounds(), b) {
		return false
	}

	c := BoxCenter(b)
	half := FromV3(b.Max).Sub(FromV3(b.Min)).Scale(0.5).Add(Vec3(Epsilon, Epsilon, Epsilon))
	v0, v1, v2 := t.a.Sub(c), t.b.Sub(c), t.c.Sub(c)
	f := [3]Vector3{v1.Sub(v0), v2.Sub(v1), v0.Sub(v2)}

	separated := func(axis Vector3) bool {
		if axis.IsZero() {
			return false
		}
		p0, p1, p2 := v0.Dot(axis), v1.Dot(axis), v2.Dot(axis)
		lo := math.Min(p0, math.Min(p1, p2))
		hi := math.Max(p0, math.Max(p1, p2))
		r := half.X*math.Abs(axis.X) + half.Y*math.Abs(axis.Y) + half.Z*math.Abs(axis.Z)
		return lo > r || hi < -r
	}

	// Face normals of the box are covered by the bounds check above.
	if separated(t.plane.unit) {
		return false
	}
	axes := [3]Vector3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for _, u := range axes {
		for _, e := range f {
			if separated(u.Cross(e)) {
				return false
			}
		}
	}
	return true
}
