package body

import "github.com/akmonengine/rigid2d/geom"

// ColliderKind tags the variant held by Collider. Narrowphase dispatch
// switches on this instead of going through a shape interface — see
// DESIGN.md for why this departs from the teacher's ShapeInterface.
type ColliderKind int

const (
	ColliderNone ColliderKind = iota
	ColliderCircle
	ColliderBox
	ColliderConvex
)

// MaxConvexVerts bounds convex polygon vertex counts, matching the
// narrowphase's MAX_POLY_VERTS.
const MaxConvexVerts = 16

// Collider is a tagged union of the shapes a Body can carry. Only the
// fields relevant to Kind are meaningful.
type Collider struct {
	Kind   ColliderKind
	Offset geom.Vec2

	Radius float64 // ColliderCircle

	HalfExtents geom.Vec2 // ColliderBox

	Vertices []geom.Vec2 // ColliderConvex, CCW order enforced on set
}

// NewCircleCollider builds a circle collider at the given local offset.
func NewCircleCollider(radius float64, offset geom.Vec2) Collider {
	return Collider{Kind: ColliderCircle, Radius: radius, Offset: offset}
}

// NewBoxCollider builds a box collider from half extents.
func NewBoxCollider(halfExtents geom.Vec2, offset geom.Vec2) Collider {
	return Collider{Kind: ColliderBox, HalfExtents: halfExtents, Offset: offset}
}

// NewConvexCollider builds a convex polygon collider. Vertices are
// re-ordered to counter-clockwise if the signed area comes in negative,
// per the CCW invariant in spec §3.
func NewConvexCollider(vertices []geom.Vec2, offset geom.Vec2) Collider {
	verts := append([]geom.Vec2(nil), vertices...)
	if len(verts) > MaxConvexVerts {
		verts = verts[:MaxConvexVerts]
	}
	if signedArea(verts) < 0 {
		reverse(verts)
	}
	return Collider{Kind: ColliderConvex, Vertices: verts, Offset: offset}
}

func signedArea(v []geom.Vec2) float64 {
	n := len(v)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += v[i].X()*v[j].Y() - v[j].X()*v[i].Y()
	}
	return area * 0.5
}

func reverse(v []geom.Vec2) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}

// HasCollider reports whether the body can participate in collision.
func (c Collider) HasCollider() bool {
	return c.Kind != ColliderNone
}
