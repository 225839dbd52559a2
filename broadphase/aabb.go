// Package broadphase computes per-body world-space AABBs and narrows
// the full body set down to candidate collision pairs via
// sweep-and-prune, grounded on actor/aabb.go's AABB type and the
// closed-form per-shape formulas from the C++ broadphase.hpp source.
package broadphase

import (
	"math"

	"github.com/akmonengine/rigid2d/body"
	"github.com/akmonengine/rigid2d/geom"
)

// Margin fattens every AABB before pairing so that bodies approaching
// each other are paired a tick early; narrowphase remains exact.
const Margin = 0.01

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min, Max geom.Vec2
}

// Overlaps reports whether a and other intersect on both axes.
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y()
}

// Fattened returns a grown by Margin on every side.
func (a AABB) Fattened() AABB {
	m := geom.Vec2{Margin, Margin}
	return AABB{Min: a.Min.Sub(m), Max: a.Max.Add(m)}
}

// Compute returns b's world-space AABB, fattened by Margin. ok is
// false when b has no collider, in which case the broadphase must
// skip it silently.
func Compute(b *body.Body) (aabb AABB, ok bool) {
	c := b.Collider
	if !c.HasCollider() {
		return AABB{}, false
	}

	center := b.Position.Add(rotate(c.Offset, b.Rotation))

	var halfExtent geom.Vec2
	switch c.Kind {
	case body.ColliderCircle:
		r := c.Radius * math.Max(b.Scale.X(), b.Scale.Y())
		halfExtent = geom.Vec2{r, r}

	case body.ColliderBox:
		cs, sn := math.Cos(b.Rotation), math.Sin(b.Rotation)
		hx, hy := c.HalfExtents.X()*b.Scale.X(), c.HalfExtents.Y()*b.Scale.Y()
		ex := math.Abs(cs)*hx + math.Abs(sn)*hy
		ey := math.Abs(sn)*hx + math.Abs(cs)*hy
		halfExtent = geom.Vec2{ex, ey}

	case body.ColliderConvex:
		min, max := worldVertexBounds(b, c.Vertices)
		return AABB{Min: min, Max: max}.Fattened(), true

	default:
		return AABB{}, false
	}

	return AABB{Min: center.Sub(halfExtent), Max: center.Add(halfExtent)}.Fattened(), true
}

func worldVertexBounds(b *body.Body, vertices []geom.Vec2) (min, max geom.Vec2) {
	min = geom.Vec2{math.Inf(1), math.Inf(1)}
	max = geom.Vec2{math.Inf(-1), math.Inf(-1)}
	for _, v := range vertices {
		scaled := geom.Vec2{v.X() * b.Scale.X(), v.Y() * b.Scale.Y()}
		world := b.Position.Add(rotate(scaled.Add(b.Collider.Offset), b.Rotation))
		min = geom.Vec2{math.Min(min.X(), world.X()), math.Min(min.Y(), world.Y())}
		max = geom.Vec2{math.Max(max.X(), world.X()), math.Max(max.Y(), world.Y())}
	}
	return min, max
}

func rotate(v geom.Vec2, angle float64) geom.Vec2 {
	return geom.Rotate(v, math.Cos(angle), math.Sin(angle))
}
