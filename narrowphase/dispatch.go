// Package narrowphase generates exact contact constraints for the
// candidate pairs broadphase emits, dispatching on collider kind to
// circle/circle, circle/polygon, and polygon/polygon (SAT +
// Sutherland-Hodgman clipping) paths. Ported near function-for-
// function from the C++ narrowphase.hpp source this module was
// distilled from, restructured into the teacher's
// multi-file-per-concern package layout (compare epa/'s
// epa.go/face.go/manifold.go/polytope.go split).
package narrowphase

import (
	"github.com/akmonengine/rigid2d/body"
	"github.com/akmonengine/rigid2d/contact"
)

// Collide dispatches on (a.Collider.Kind, b.Collider.Kind) and
// returns the resulting contact constraint, or ok=false if the pair
// is not in contact or either body lacks a collider.
func Collide(a, b *body.Body) (c *contact.Constraint, ok bool) {
	ca, cb := a.Collider, b.Collider
	if !ca.HasCollider() || !cb.HasCollider() {
		return nil, false
	}

	switch {
	case ca.Kind == body.ColliderCircle && cb.Kind == body.ColliderCircle:
		return circleVsCircle(a, b)

	case ca.Kind == body.ColliderCircle:
		return circleVsPolygon(b, a, false)

	case cb.Kind == body.ColliderCircle:
		return circleVsPolygon(a, b, true)

	default:
		return polygonVsPolygon(a, b)
	}
}
