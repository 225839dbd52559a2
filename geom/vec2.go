// Package geom supplies the small set of 2D vector helpers mgl64 does
// not provide on its own (cross product, rotate-by-angle, safe
// normalize). Everything else in this module uses mgl64.Vec2 directly.
package geom

import "github.com/go-gl/mathgl/mgl64"

// Vec2 is an alias so callers never need to import mgl64 themselves
// just to spell the type.
type Vec2 = mgl64.Vec2

// Cross returns the 2D cross product (scalar z-component) of a and b.
func Cross(a, b Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// CrossSV returns the cross product of a scalar (angular velocity) and
// a vector: s * (-v.y, v.x).
func CrossSV(s float64, v Vec2) Vec2 {
	return Vec2{-s * v.Y(), s * v.X()}
}

// Perp returns the left-hand perpendicular of v, i.e. (-v.y, v.x).
func Perp(v Vec2) Vec2 {
	return Vec2{-v.Y(), v.X()}
}

// Rotate rotates v by the angle whose cosine/sine are c/s.
func Rotate(v Vec2, c, s float64) Vec2 {
	return Vec2{c*v.X() - s*v.Y(), s*v.X() + c*v.Y()}
}

// RotateInv rotates v by the inverse of the angle whose cosine/sine are c/s.
func RotateInv(v Vec2, c, s float64) Vec2 {
	return Vec2{c*v.X() + s*v.Y(), -s*v.X() + c*v.Y()}
}

// SafeNormalize returns v/|v| and |v|, or fallback and 0 when v is too
// short to normalize reliably.
func SafeNormalize(v, fallback Vec2, eps float64) (Vec2, float64) {
	length := v.Len()
	if length < eps {
		return fallback, 0
	}
	return v.Mul(1 / length), length
}

// Clamp clamps x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
