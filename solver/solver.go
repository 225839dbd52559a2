// Package solver implements the sequential-impulse velocity solver
// and Baumgarte position solver, ported function-for-function from
// the C++ systems/constraintSolver.hpp source this module was
// distilled from, restructured into the teacher's idiom of exposing
// tunables as exported struct fields rather than named constants.
package solver

import (
	"math"
	"sort"

	"github.com/akmonengine/rigid2d/body"
	"github.com/akmonengine/rigid2d/contact"
	"github.com/akmonengine/rigid2d/geom"
)

// Solver holds the tunable parameters governing iteration counts and
// stabilization strength. Defaults mirror the C++ ConstraintSolverSystem.
type Solver struct {
	VelocityIterations    int
	PositionIterations    int
	Baumgarte             float64
	Slop                  float64
	MaxPositionCorrection float64
	RestitutionThreshold  float64
}

// New returns a Solver configured with the default tunables.
func New() *Solver {
	return &Solver{
		VelocityIterations:    12,
		PositionIterations:    4,
		Baumgarte:             0.2,
		Slop:                  0.005,
		MaxPositionCorrection: 0.2,
		RestitutionThreshold:  1.0,
	}
}

// Grabber is the interface the solver needs from an active mouse
// grab constraint during velocity iterations, satisfied by
// mousegrab.State. Kept as a narrow interface so this package never
// imports mousegrab (mousegrab already depends on body/geom).
type Grabber interface {
	SolveStep(store body.Store)
}

// Step runs one fixed-timestep tick: integrate velocities, solve
// contacts (pre-step, warm-start, velocity iterations interleaved
// with an optional grab step, position integration, position
// iterations), then clear forces. Mirrors
// ConstraintSolverSystem::fixedUpdate.
func (s *Solver) Step(store body.Store, cm *contact.Manager, grab Grabber, dt float64) {
	s.integrateVelocities(store, dt)

	// Visit constraints in pair-key order so the solve is reproducible.
	byKey := cm.Constraints()
	keys := make([]uint64, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	constraints := make([]*contact.Constraint, 0, len(keys))
	for _, key := range keys {
		constraints = append(constraints, byKey[key])
	}
	if len(constraints) == 0 && grab == nil {
		s.integratePositions(store, dt)
		clearForces(store)
		return
	}

	for _, cc := range constraints {
		s.preStep(store, cc)
	}
	for _, cc := range constraints {
		warmStart(store, cc)
	}

	for i := 0; i < s.VelocityIterations; i++ {
		if grab != nil {
			grab.SolveStep(store)
		}
		for _, cc := range constraints {
			solveVelocity(store, cc)
		}
	}

	s.integratePositions(store, dt)

	for i := 0; i < s.PositionIterations; i++ {
		for _, cc := range constraints {
			s.solvePosition(store, cc)
		}
	}

	clearForces(store)
}

func (s *Solver) integrateVelocities(store body.Store, dt float64) {
	for _, b := range store.Bodies() {
		if b.IsStatic {
			continue
		}

		b.LinearVelocity = b.LinearVelocity.Add(b.Force.Mul(b.InvMass * dt))
		b.AngularVelocity += b.Torque * b.InvInertia * dt

		b.LinearVelocity = b.LinearVelocity.Mul(1 / (1 + b.LinearDamping*dt))
		b.AngularVelocity *= 1 / (1 + b.AngularDamping*dt)

		speed2 := b.LinearVelocity.Dot(b.LinearVelocity)
		if max := b.MaxLinearSpeed; speed2 > max*max {
			b.LinearVelocity = b.LinearVelocity.Mul(max / math.Sqrt(speed2))
		}
	}
}

func (s *Solver) integratePositions(store body.Store, dt float64) {
	for _, b := range store.Bodies() {
		if b.IsStatic {
			continue
		}
		b.Position = b.Position.Add(b.LinearVelocity.Mul(dt))
		b.Rotation += b.AngularVelocity * dt
	}
}

func clearForces(store body.Store) {
	for _, b := range store.Bodies() {
		b.ClearForces()
	}
}

func (s *Solver) preStep(store body.Store, cc *contact.Constraint) {
	a, _ := store.Get(cc.BodyA)
	b, _ := store.Get(cc.BodyB)
	tangent := geom.Perp(cc.Normal)

	for i := range cc.Points {
		pt := &cc.Points[i]
		pt.RA = pt.Position.Sub(a.Position)
		pt.RB = pt.Position.Sub(b.Position)

		rnA, rnB := geom.Cross(pt.RA, cc.Normal), geom.Cross(pt.RB, cc.Normal)
		kn := a.InvMass + b.InvMass + a.InvInertia*rnA*rnA + b.InvInertia*rnB*rnB
		pt.NormalMass = invOrZero(kn)

		rtA, rtB := geom.Cross(pt.RA, tangent), geom.Cross(pt.RB, tangent)
		kt := a.InvMass + b.InvMass + a.InvInertia*rtA*rtA + b.InvInertia*rtB*rtB
		pt.TangentMass = invOrZero(kt)

		vA := a.LinearVelocity.Add(geom.CrossSV(a.AngularVelocity, pt.RA))
		vB := b.LinearVelocity.Add(geom.CrossSV(b.AngularVelocity, pt.RB))
		vRel := vB.Sub(vA).Dot(cc.Normal)

		pt.VelocityBias = 0
		if vRel < -s.RestitutionThreshold {
			pt.VelocityBias = -cc.Restitution * vRel
		}
	}
}

func invOrZero(k float64) float64 {
	if k > 0 {
		return 1 / k
	}
	return 0
}

func warmStart(store body.Store, cc *contact.Constraint) {
	a, _ := store.Get(cc.BodyA)
	b, _ := store.Get(cc.BodyB)
	tangent := geom.Perp(cc.Normal)

	for i := range cc.Points {
		pt := &cc.Points[i]
		p := cc.Normal.Mul(pt.NormalImpulse).Add(tangent.Mul(pt.TangentImpulse))
		applyImpulse(a, b, pt, p)
	}
}

func solveVelocity(store body.Store, cc *contact.Constraint) {
	a, _ := store.Get(cc.BodyA)
	b, _ := store.Get(cc.BodyB)
	tangent := geom.Perp(cc.Normal)

	// Friction first, using the normalImpulse accumulated by prior
	// passes, so the friction cone stays conservative.
	for i := range cc.Points {
		pt := &cc.Points[i]

		vA := a.LinearVelocity.Add(geom.CrossSV(a.AngularVelocity, pt.RA))
		vB := b.LinearVelocity.Add(geom.CrossSV(b.AngularVelocity, pt.RB))
		vt := vB.Sub(vA).Dot(tangent)

		lambda := pt.TangentMass * -vt
		maxFriction := cc.Friction * pt.NormalImpulse
		old := pt.TangentImpulse
		pt.TangentImpulse = geom.Clamp(old+lambda, -maxFriction, maxFriction)
		lambda = pt.TangentImpulse - old

		applyImpulse(a, b, pt, tangent.Mul(lambda))
	}

	for i := range cc.Points {
		pt := &cc.Points[i]

		vA := a.LinearVelocity.Add(geom.CrossSV(a.AngularVelocity, pt.RA))
		vB := b.LinearVelocity.Add(geom.CrossSV(b.AngularVelocity, pt.RB))
		vn := vB.Sub(vA).Dot(cc.Normal)

		lambda := pt.NormalMass * (-vn + pt.VelocityBias)
		old := pt.NormalImpulse
		pt.NormalImpulse = math.Max(old+lambda, 0)
		lambda = pt.NormalImpulse - old

		applyImpulse(a, b, pt, cc.Normal.Mul(lambda))
	}
}

func applyImpulse(a, b *body.Body, pt *contact.Point, p geom.Vec2) {
	a.LinearVelocity = a.LinearVelocity.Sub(p.Mul(a.InvMass))
	a.AngularVelocity -= a.InvInertia * geom.Cross(pt.RA, p)
	b.LinearVelocity = b.LinearVelocity.Add(p.Mul(b.InvMass))
	b.AngularVelocity += b.InvInertia * geom.Cross(pt.RB, p)
}

func (s *Solver) solvePosition(store body.Store, cc *contact.Constraint) {
	a, _ := store.Get(cc.BodyA)
	b, _ := store.Get(cc.BodyB)

	for i := range cc.Points {
		pt := &cc.Points[i]

		rA := rotate(pt.LocalA, a.Rotation)
		rB := rotate(pt.LocalB, b.Rotation)
		worldA := a.Position.Add(rA)
		worldB := b.Position.Add(rB)

		separation := worldB.Sub(worldA).Dot(cc.Normal)
		c := math.Min(separation+s.Slop, 0)
		if c >= 0 {
			continue
		}

		rnA, rnB := geom.Cross(rA, cc.Normal), geom.Cross(rB, cc.Normal)
		k := a.InvMass + b.InvMass + a.InvInertia*rnA*rnA + b.InvInertia*rnB*rnB
		if k <= 0 {
			continue
		}

		correction := math.Min(-s.Baumgarte*c/k, s.MaxPositionCorrection)
		p := cc.Normal.Mul(correction)

		a.Position = a.Position.Sub(p.Mul(a.InvMass))
		b.Position = b.Position.Add(p.Mul(b.InvMass))
		a.Rotation -= a.InvInertia * rnA * correction
		b.Rotation += b.InvInertia * rnB * correction
	}
}

func rotate(v geom.Vec2, angle float64) geom.Vec2 {
	return geom.Rotate(v, math.Cos(angle), math.Sin(angle))
}
