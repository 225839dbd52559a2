package narrowphase

import (
	"math"

	"github.com/akmonengine/rigid2d/body"
	"github.com/akmonengine/rigid2d/contact"
	"github.com/akmonengine/rigid2d/geom"
)

const coincidentCenterEps = 1e-6

func circleVsCircle(a, b *body.Body) (*contact.Constraint, bool) {
	ra, rb := a.Collider.Radius, b.Collider.Radius
	posA := a.Position.Add(rotate(a.Collider.Offset, a.Rotation))
	posB := b.Position.Add(rotate(b.Collider.Offset, b.Rotation))

	d := posB.Sub(posA)
	rSum := ra + rb
	distSq := d.Dot(d)
	if distSq >= rSum*rSum {
		return nil, false
	}

	dist := math.Sqrt(distSq)
	var n vec2
	if dist < coincidentCenterEps {
		n = vec2{0, 1}
	} else {
		n = d.Mul(1 / dist)
	}

	point := contact.Point{
		Position:    posA.Add(n.Mul(ra)),
		Penetration: rSum - dist,
		Feature:     contact.Feature{TypeA: contact.FeatureVertex, TypeB: contact.FeatureVertex},
	}
	point.LocalA = rotateInv(point.Position.Sub(a.Position), a.Rotation)
	point.LocalB = rotateInv(point.Position.Sub(b.Position), b.Rotation)

	return &contact.Constraint{
		BodyA:       a.ID,
		BodyB:       b.ID,
		Normal:      n,
		Points:      []contact.Point{point},
		Friction:    contact.CombinedFriction(a.Friction, b.Friction),
		Restitution: contact.CombinedRestitution(a.Restitution, b.Restitution),
	}, true
}

// circleVsPolygon handles the mixed pair. circleIsB tells the caller
// whether the original (unflipped) ordered pair had the circle as the
// second body, so the output normal/feature orientation can be
// restored to point from the true A to the true B.
func circleVsPolygon(poly, circle *body.Body, circleIsB bool) (*contact.Constraint, bool) {
	verts := polyVertices(poly)
	n := len(verts)
	center := circle.Position.Add(rotate(circle.Collider.Offset, circle.Rotation))
	radius := circle.Collider.Radius

	bestSep := math.Inf(-1)
	bestEdge := 0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		normal := faceNormal(verts[i], verts[j])
		sep := normal.Dot(center.Sub(verts[i]))
		if sep > bestSep {
			bestSep = sep
			bestEdge = i
		}
	}

	var point contact.Point
	var normal vec2

	if bestSep <= 0 {
		// Center is inside the polygon: face contact against the
		// least-penetrating face.
		v0, v1 := verts[bestEdge], verts[(bestEdge+1)%n]
		normal = faceNormal(v0, v1)
		point = contact.Point{
			Position:    center.Sub(normal.Mul(bestSep)),
			Penetration: radius - bestSep,
			Feature: contact.Feature{
				TypeA: contact.FeatureFace, IndexA: uint8(bestEdge),
				TypeB: contact.FeatureVertex,
			},
		}
	} else {
		v0, v1 := verts[bestEdge], verts[(bestEdge+1)%n]
		edge := v1.Sub(v0)
		edgeLenSq := edge.Dot(edge)
		t := 0.0
		if edgeLenSq > 0 {
			t = geom.Clamp(center.Sub(v0).Dot(edge)/edgeLenSq, 0, 1)
		}
		closest := v0.Add(edge.Mul(t))
		d := center.Sub(closest)
		dist := d.Len()
		if dist >= radius {
			return nil, false
		}

		if dist < coincidentCenterEps {
			normal = faceNormal(v0, v1)
		} else {
			normal = d.Mul(1 / dist)
		}

		feature := contact.Feature{TypeA: contact.FeatureFace, IndexA: uint8(bestEdge), TypeB: contact.FeatureVertex}
		if t < 1e-4 {
			feature = contact.Feature{TypeA: contact.FeatureVertex, IndexA: uint8(bestEdge), TypeB: contact.FeatureVertex}
		} else if t > 1-1e-4 {
			feature = contact.Feature{TypeA: contact.FeatureVertex, IndexA: uint8((bestEdge + 1) % n), TypeB: contact.FeatureVertex}
		}

		point = contact.Point{
			Position:    closest,
			Penetration: radius - dist,
			Feature:     feature,
		}
	}

	var bodyA, bodyB *body.Body
	if circleIsB {
		bodyA, bodyB = poly, circle
	} else {
		// Original pair had circle first: negate normal and swap
		// feature sides back to (circle, poly) = (A, B).
		normal = normal.Mul(-1)
		point.Feature = contact.Feature{
			TypeA: point.Feature.TypeB, IndexA: point.Feature.IndexB,
			TypeB: point.Feature.TypeA, IndexB: point.Feature.IndexA,
		}
		bodyA, bodyB = circle, poly
	}

	point.LocalA = rotateInv(point.Position.Sub(bodyA.Position), bodyA.Rotation)
	point.LocalB = rotateInv(point.Position.Sub(bodyB.Position), bodyB.Rotation)

	return &contact.Constraint{
		BodyA:       bodyA.ID,
		BodyB:       bodyB.ID,
		Normal:      normal,
		Points:      []contact.Point{point},
		Friction:    contact.CombinedFriction(bodyA.Friction, bodyB.Friction),
		Restitution: contact.CombinedRestitution(bodyA.Restitution, bodyB.Restitution),
	}, true
}
