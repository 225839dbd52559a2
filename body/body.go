package body

import (
	"math"

	"github.com/akmonengine/rigid2d/geom"
	"github.com/google/uuid"
)

// ID identifies a body within a Store. It is a small unsigned integer,
// not a pointer, because the contact manager's pair-key packing
// (min(a,b)<<32 | max(a,b)) needs stable numeric identity.
type ID uint32

// Body holds the transform, rigid-body state and collider of a single
// simulated entity, per spec §3.
type Body struct {
	ID ID

	// DebugTag is a host-side correlation handle only; the solver and
	// contact manager never key anything on it.
	DebugTag uuid.UUID

	Position geom.Vec2
	Rotation float64 // radians
	Scale    geom.Vec2

	LinearVelocity  geom.Vec2
	AngularVelocity float64

	Force  geom.Vec2
	Torque float64

	Mass    float64
	InvMass float64

	Inertia    float64
	InvInertia float64

	Restitution    float64
	Friction       float64
	LinearDamping  float64
	AngularDamping float64
	MaxLinearSpeed float64

	IsStatic bool

	Collider Collider
}

// NewBody constructs a body with sane defaults: unit scale, infinite
// max linear speed, no collider. Callers set Mass and Collider, then
// call RecomputeMass and ComputeInertia (the Inertia system calls
// ComputeInertia, but not RecomputeMass, for every body during
// World.Init).
func NewBody() *Body {
	return &Body{
		Scale:          geom.Vec2{1, 1},
		MaxLinearSpeed: math.Inf(1),
		DebugTag:       uuid.New(),
	}
}

// RecomputeMass enforces the invariant that static bodies (or bodies
// with non-positive mass) have zero inverse mass.
func (b *Body) RecomputeMass() {
	if b.IsStatic || b.Mass <= 0 {
		b.InvMass = 0
	} else {
		b.InvMass = 1 / b.Mass
	}
}

// SetStatic flips a body's static flag and enforces the invariant that
// static bodies carry zero velocity and zero inverse mass/inertia.
func (b *Body) SetStatic(isStatic bool) {
	b.IsStatic = isStatic
	if isStatic {
		b.LinearVelocity = geom.Vec2{}
		b.AngularVelocity = 0
	}
	b.RecomputeMass()
	ComputeInertia(b)
}

// ClearForces zeroes the accumulated force/torque. Called once per
// tick after the solver has integrated them (spec §4.5 step 8).
func (b *Body) ClearForces() {
	b.Force = geom.Vec2{}
	b.Torque = 0
}

// AddForce accumulates a world-space force for this tick.
func (b *Body) AddForce(f geom.Vec2) {
	if b.IsStatic {
		return
	}
	b.Force = b.Force.Add(f)
}

// AddTorque accumulates a torque for this tick.
func (b *Body) AddTorque(t float64) {
	if b.IsStatic {
		return
	}
	b.Torque += t
}
