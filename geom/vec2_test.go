package geom

import (
	"math"
	"testing"
)

func TestCross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec2
		expected float64
	}{
		{"unit x cross unit y", Vec2{1, 0}, Vec2{0, 1}, 1},
		{"unit y cross unit x", Vec2{0, 1}, Vec2{1, 0}, -1},
		{"parallel vectors", Vec2{2, 0}, Vec2{4, 0}, 0},
		{"zero vector", Vec2{0, 0}, Vec2{5, 5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cross(tt.a, tt.b); got != tt.expected {
				t.Errorf("Cross(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestCrossSV(t *testing.T) {
	got := CrossSV(2, Vec2{1, 0})
	want := Vec2{0, 2}
	if got != want {
		t.Errorf("CrossSV = %v, want %v", got, want)
	}
}

func TestPerp(t *testing.T) {
	n := Vec2{1, 0}
	p := Perp(n)
	if p != (Vec2{0, 1}) {
		t.Errorf("Perp(%v) = %v, want (0,1)", n, p)
	}
	if math.Abs(n.Dot(p)) > 1e-12 {
		t.Errorf("Perp(%v) not orthogonal: dot=%v", n, n.Dot(p))
	}
}

func TestRotateRoundTrip(t *testing.T) {
	v := Vec2{3, 4}
	angle := 0.7
	c, s := math.Cos(angle), math.Sin(angle)
	rotated := Rotate(v, c, s)
	back := RotateInv(rotated, c, s)
	if back.Sub(v).Len() > 1e-9 {
		t.Errorf("Rotate/RotateInv round trip = %v, want %v", back, v)
	}
}

func TestSafeNormalize(t *testing.T) {
	n, length := SafeNormalize(Vec2{3, 4}, Vec2{0, 1}, 1e-6)
	if math.Abs(length-5) > 1e-9 {
		t.Errorf("length = %v, want 5", length)
	}
	if math.Abs(n.Len()-1) > 1e-9 {
		t.Errorf("normalized length = %v, want 1", n.Len())
	}

	fallback, zeroLen := SafeNormalize(Vec2{0, 0}, Vec2{0, 1}, 1e-6)
	if fallback != (Vec2{0, 1}) {
		t.Errorf("fallback = %v, want (0,1)", fallback)
	}
	if zeroLen != 0 {
		t.Errorf("length on degenerate input = %v, want 0", zeroLen)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 1) != 1 {
		t.Error("Clamp should cap at hi")
	}
	if Clamp(-5, 0, 1) != 0 {
		t.Error("Clamp should floor at lo")
	}
	if Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp should pass through in-range values")
	}
}
