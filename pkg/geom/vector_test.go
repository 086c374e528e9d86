package geom

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestNormalizeUnitLength(t *testing.T) {
	tests := []struct {
		name string
		v    Vector3
	}{
		{"axis x", Vec3(5, 0, 0)},
		{"diagonal", Vec3(1, 1, 1)},
		{"negative", Vec3(-3, 4, -12)},
		{"tiny but above epsilon", Vec3(1e-5, 0, 0)},
		{"large", Vec3(1e9, -2e9, 3e9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.v.Normalize()
			if math.Abs(n.Length()-1) > Epsilon {
				t.Errorf("|Normalize(%v)| = %v, want 1", tt.v, n.Length())
			}
			if !n.Codirected(tt.v) {
				t.Errorf("Normalize(%v) = %v is not codirected with the input", tt.v, n)
			}
		})
	}
}

func TestNormalizeZero(t *testing.T) {
	for _, v := range []Vector3{{}, Vec3(1e-7, 0, 0), Vec3(1e-8, -1e-8, 1e-8)} {
		if got := v.Normalize(); got != (Vector3{}) {
			t.Errorf("Normalize(%v) = %v, want zero vector", v, got)
		}
	}
	if got := Vec2(1e-9, 0).Normalize(); got != (Vector2{}) {
		t.Errorf("Vector2 Normalize = %v, want zero vector", got)
	}
}

func TestDotCross(t *testing.T) {
	x, y, z := Vec3(1, 0, 0), Vec3(0, 1, 0), Vec3(0, 0, 1)
	if got := x.Cross(y); got != z {
		t.Errorf("x × y = %v, want %v", got, z)
	}
	if got := y.Cross(x); got != z.Neg() {
		t.Errorf("y × x = %v, want %v", got, z.Neg())
	}
	if got := Vec3(1, 2, 3).Dot(Vec3(4, -5, 6)); got != 12 {
		t.Errorf("dot = %v, want 12", got)
	}
	if got := Vec2(1, 0).Cross(Vec2(0, 1)); got != 1 {
		t.Errorf("2D cross = %v, want 1", got)
	}
}

func TestCollinearCodirected(t *testing.T) {
	tests := []struct {
		name       string
		a, b       Vector3
		collinear  bool
		codirected bool
	}{
		{"same", Vec3(1, 2, 3), Vec3(2, 4, 6), true, true},
		{"opposite", Vec3(1, 2, 3), Vec3(-1, -2, -3), true, false},
		{"orthogonal", Vec3(1, 0, 0), Vec3(0, 1, 0), false, false},
		{"zero", Vec3(0, 0, 0), Vec3(1, 1, 1), true, true},
		{"scale free", Vec3(1e-4, 0, 0), Vec3(1e4, 0, 0), true, true},
		{"slightly off", Vec3(1, 0, 0), Vec3(1, 1e-3, 0), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Collinear(tt.b); got != tt.collinear {
				t.Errorf("Collinear(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.collinear)
			}
			if got := tt.a.Codirected(tt.b); got != tt.codirected {
				t.Errorf("Codirected(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.codirected)
			}
		})
	}
}

func TestEqualWithinTolerance(t *testing.T) {
	a := Vec3(1, 2, 3)
	if !a.Equal(Vec3(1+Epsilon/2, 2, 3-Epsilon/2)) {
		t.Error("vectors within Epsilon should be equal")
	}
	if a.Equal(Vec3(1+10*Epsilon, 2, 3)) {
		t.Error("vectors 10·Epsilon apart should differ")
	}
}

func TestV3RoundTrip(t *testing.T) {
	v := Vec3(1.5, -2, 7)
	if got := FromV3(v.V3()); got != v {
		t.Errorf("FromV3(V3()) = %v, want %v", got, v)
	}
	if got := FromV3(v3.Vec{X: 1, Y: 2, Z: 3}); got != Vec3(1, 2, 3) {
		t.Errorf("FromV3 = %v", got)
	}
}

func TestComponent(t *testing.T) {
	v := Vec3(4, 5, 6)
	for axis, want := range []float64{4, 5, 6} {
		if got := v.Component(axis); got != want {
			t.Errorf("Component(%d) = %v, want %v", axis, got, want)
		}
	}
	defer func() {
		if recover() == nil {
			t.Error("Component(3) did not panic")
		}
	}()
	v.Component(3)
}

func TestQuantityString(t *testing.T) {
	want := map[Quantity]string{Nop: "nop", Same: "same", One: "one", Interval: "interval", Quantity(9): "unknown"}
	for q, s := range want {
		if q.String() != s {
			t.Errorf("Quantity(%d).String() = %q, want %q", int(q), q.String(), s)
		}
	}
}
