package mousegrab

import (
	"math"

	"github.com/akmonengine/rigid2d/body"
	"github.com/akmonengine/rigid2d/geom"
)

// State is the process-wide mouse-grab singleton: active/inactive
// status, the grabbed body, and the solver's pre-step scratch.
// Grounded on C++ mouseGrab.hpp's MouseGrabState.
type State struct {
	Frequency    float64 // Hz, default 5
	DampingRatio float64 // 1 = critical damping
	MaxForce     float64 // Newtons, default 500

	Active      bool
	Grabbed     body.ID
	LocalAnchor geom.Vec2
	Target      geom.Vec2

	rArm         geom.Vec2
	mass00       float64
	mass01       float64
	mass10       float64
	mass11       float64
	bias         geom.Vec2
	gamma        float64
	impulseAccum geom.Vec2
	maxImpulse   float64
}

// New returns a State with the default spring tunables.
func New() *State {
	return &State{Frequency: 5, DampingRatio: 1, MaxForce: 500}
}

const (
	circleInflation = 1.2 // ~20% on d², i.e. sqrt(1.2) radius growth
	boxInflation    = 1.1 // 10% on half-extents
)

// Update drives the acquire/release state machine and, while active,
// refreshes the spring pre-step against the current target. Call once
// per fixed tick before the solver's velocity iterations.
func (s *State) Update(store body.Store, p Pointer, dt float64) {
	if p.Pressed && !s.Active {
		s.tryGrab(store, p)
	}

	if p.Released && s.Active {
		s.Active = false
		s.Grabbed = 0
		s.impulseAccum = geom.Vec2{}
	}

	if s.Active {
		if _, ok := store.Get(s.Grabbed); !ok {
			s.Active = false
			return
		}
		s.Target = p.WorldPos
		s.preStep(store, dt)
	}
}

func (s *State) tryGrab(store body.Store, p Pointer) {
	bestDist2 := math.Inf(1)
	var bestID body.ID
	var bestLocal geom.Vec2
	found := false

	for _, b := range store.Bodies() {
		if b.IsStatic || !b.Collider.HasCollider() {
			continue
		}

		diff := p.WorldPos.Sub(b.Position)
		d2 := diff.Dot(diff)
		local := rotateInv(diff, b.Rotation)

		inside := false
		switch b.Collider.Kind {
		case body.ColliderCircle:
			r := b.Collider.Radius * math.Max(b.Scale.X(), b.Scale.Y())
			inside = d2 <= r*r*circleInflation

		case body.ColliderBox:
			halfX := b.Collider.HalfExtents.X() * b.Scale.X() * boxInflation
			halfY := b.Collider.HalfExtents.Y() * b.Scale.Y() * boxInflation
			inside = math.Abs(local.X()) <= halfX && math.Abs(local.Y()) <= halfY

		case body.ColliderConvex:
			inside = pointInConvex(local, b.Collider.Vertices, b.Scale)
		}

		if inside && d2 < bestDist2 {
			bestDist2 = d2
			bestID = b.ID
			bestLocal = local
			found = true
		}
	}

	if found {
		s.Active = true
		s.Grabbed = bestID
		s.LocalAnchor = bestLocal
		s.Target = p.WorldPos
		s.impulseAccum = geom.Vec2{}
	}
}

// pointInConvex tests local against a convex polygon (scaled, CCW,
// vertices inflated outward from the centroid by boxInflation) via
// the consistent-sign cross-product test.
func pointInConvex(local geom.Vec2, vertices []geom.Vec2, scale geom.Vec2) bool {
	n := len(vertices)
	if n < 3 {
		return false
	}

	var centroid geom.Vec2
	scaled := make([]geom.Vec2, n)
	for i, v := range vertices {
		scaled[i] = geom.Vec2{v.X() * scale.X(), v.Y() * scale.Y()}
		centroid = centroid.Add(scaled[i])
	}
	centroid = centroid.Mul(1 / float64(n))
	for i := range scaled {
		scaled[i] = centroid.Add(scaled[i].Sub(centroid).Mul(boxInflation))
	}

	allPos, allNeg := true, true
	for i := 0; i < n; i++ {
		a, b := scaled[i], scaled[(i+1)%n]
		cr := (b.X()-a.X())*(local.Y()-a.Y()) - (b.Y()-a.Y())*(local.X()-a.X())
		if cr < 0 {
			allPos = false
		}
		if cr > 0 {
			allNeg = false
		}
	}
	return allPos || allNeg
}

func (s *State) preStep(store body.Store, dt float64) {
	b, _ := store.Get(s.Grabbed)

	s.rArm = rotate(s.LocalAnchor, b.Rotation)
	rx, ry := s.rArm.X(), s.rArm.Y()
	invM, invI := b.InvMass, b.InvInertia

	omega := 2 * math.Pi * s.Frequency
	cDamping := 2 * b.Mass * s.DampingRatio * omega
	kSpring := b.Mass * omega * omega

	s.gamma = 1 / (dt * (cDamping + dt*kSpring))
	beta := dt * kSpring * s.gamma

	k00 := invM + invI*ry*ry + s.gamma
	k01 := -invI * rx * ry
	k10 := -invI * rx * ry
	k11 := invM + invI*rx*rx + s.gamma

	det := k00*k11 - k01*k10
	if math.Abs(det) > 1e-12 {
		invDet := 1 / det
		s.mass00, s.mass01 = k11*invDet, -k01*invDet
		s.mass10, s.mass11 = -k10*invDet, k00*invDet
	} else {
		s.mass00, s.mass01, s.mass10, s.mass11 = 0, 0, 0, 0
	}

	worldAnchor := b.Position.Add(s.rArm)
	errV := worldAnchor.Sub(s.Target)
	s.bias = errV.Mul(beta)
	s.maxImpulse = s.MaxForce * dt

	b.LinearVelocity = b.LinearVelocity.Add(s.impulseAccum.Mul(b.InvMass))
	b.AngularVelocity += b.InvInertia * geom.Cross(s.rArm, s.impulseAccum)
}

// SolveStep applies one velocity-iteration pass of the grab
// constraint, satisfying solver.Grabber.
func (s *State) SolveStep(store body.Store) {
	if !s.Active {
		return
	}
	b, ok := store.Get(s.Grabbed)
	if !ok {
		return
	}

	vAnchor := b.LinearVelocity.Add(geom.CrossSV(b.AngularVelocity, s.rArm))
	cDot := vAnchor.Add(s.bias).Add(s.impulseAccum.Mul(s.gamma))

	impulse := geom.Vec2{
		-(s.mass00*cDot.X() + s.mass01*cDot.Y()),
		-(s.mass10*cDot.X() + s.mass11*cDot.Y()),
	}

	oldAccum := s.impulseAccum
	s.impulseAccum = s.impulseAccum.Add(impulse)
	if mag := s.impulseAccum.Len(); mag > s.maxImpulse && mag > 0 {
		s.impulseAccum = s.impulseAccum.Mul(s.maxImpulse / mag)
	}
	impulse = s.impulseAccum.Sub(oldAccum)

	b.LinearVelocity = b.LinearVelocity.Add(impulse.Mul(b.InvMass))
	b.AngularVelocity += b.InvInertia * geom.Cross(s.rArm, impulse)
}

func rotate(v geom.Vec2, angle float64) geom.Vec2 {
	return geom.Rotate(v, math.Cos(angle), math.Sin(angle))
}

func rotateInv(v geom.Vec2, angle float64) geom.Vec2 {
	return geom.RotateInv(v, math.Cos(angle), math.Sin(angle))
}
