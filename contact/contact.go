package contact

import (
	"math"

	"github.com/akmonengine/rigid2d/body"
	"github.com/akmonengine/rigid2d/geom"
)

// Point is a single contact point between two bodies, carrying both
// the narrowphase-produced geometry and the solver's warm-startable
// accumulators and pre-step cache. Grounded on constraint/contact.go's
// ContactPoint (Position/Penetration fields); the feature key and
// impulse accumulators have no teacher analogue since the teacher's
// PBD solver never warm-starts.
type Point struct {
	Position    geom.Vec2
	Penetration float64
	LocalA      geom.Vec2 // anchor in bodyA's local frame
	LocalB      geom.Vec2 // anchor in bodyB's local frame
	Feature     Feature

	NormalImpulse  float64
	TangentImpulse float64

	// Solver scratch, populated fresh by preStep every tick.
	RA, RB       geom.Vec2
	NormalMass   float64
	TangentMass  float64
	VelocityBias float64
}

// Constraint is the set of contact points between an ordered body
// pair, plus the combined material coefficients the solver needs.
// Grounded on constraint/contact.go's ContactConstraint
// (BodyA/BodyB/Points/Normal fields).
type Constraint struct {
	BodyA, BodyB body.ID
	Normal       geom.Vec2 // world, points from A to B
	Points       []Point
	Friction     float64
	Restitution  float64
}

// PairKey packs an unordered body-pair identity for the contact map.
func PairKey(a, b body.ID) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(b)
}

// CombinedFriction is the geometric mean of the two bodies' friction
// coefficients.
func CombinedFriction(fa, fb float64) float64 {
	return math.Sqrt(fa * fb)
}

// CombinedRestitution is the larger of the two bodies' restitution
// coefficients.
func CombinedRestitution(ra, rb float64) float64 {
	return math.Max(ra, rb)
}
