package rigid2d

import (
	"github.com/akmonengine/rigid2d/body"
	"github.com/akmonengine/rigid2d/broadphase"
	"github.com/akmonengine/rigid2d/contact"
	"github.com/akmonengine/rigid2d/geom"
	"github.com/akmonengine/rigid2d/mousegrab"
	"github.com/akmonengine/rigid2d/narrowphase"
	"github.com/akmonengine/rigid2d/solver"
)

// InertiaSystem computes every body's moment of inertia and its
// inverse once, at World.Init (spec §4.1: "invoked once per body at
// creation or whenever collider geometry changes"). It does not set
// InvMass; Body.RecomputeMass does that. A host that mutates a body's collider at
// runtime calls body.ComputeInertia directly rather than waiting for
// the next tick.
type InertiaSystem struct{}

func (InertiaSystem) Init(store body.Store) {
	for _, b := range store.Bodies() {
		body.ComputeInertia(b)
	}
}

func (InertiaSystem) FixedUpdate(store body.Store, dt float64) {}

// GravitySystem applies a constant acceleration to every dynamic
// body's force accumulator each tick.
type GravitySystem struct {
	Gravity geom.Vec2
}

func NewGravitySystem(g geom.Vec2) *GravitySystem {
	return &GravitySystem{Gravity: g}
}

func (GravitySystem) Init(store body.Store) {}

func (s *GravitySystem) FixedUpdate(store body.Store, dt float64) {
	for _, b := range store.Bodies() {
		if b.IsStatic {
			continue
		}
		b.AddForce(s.Gravity.Mul(b.Mass))
	}
}

// CollisionDetectionSystem runs broadphase + narrowphase and feeds
// the resulting constraints into the store's contact.Manager,
// lazily creating and registering one in the store's Context on
// first use.
type CollisionDetectionSystem struct{}

func (CollisionDetectionSystem) Init(store body.Store) {
	manager(store)
}

func (CollisionDetectionSystem) FixedUpdate(store body.Store, dt float64) {
	cm := manager(store)

	pairs := broadphase.SweepAndPrune(store.Bodies())
	constraints := make([]*contact.Constraint, 0, len(pairs))
	for _, pair := range pairs {
		a, okA := store.Get(pair.A)
		b, okB := store.Get(pair.B)
		if !okA || !okB {
			continue
		}
		if a.IsStatic && b.IsStatic {
			continue
		}
		if c, ok := narrowphase.Collide(a, b); ok {
			constraints = append(constraints, c)
		}
	}

	cm.Update(constraints)
}

// manager returns the store's contact manager, creating and
// registering one as a body.RemovalObserver on first use.
func manager(store body.Store) *contact.Manager {
	ctx := store.Context()
	if cm, ok := body.Get[*contact.Manager](ctx); ok {
		return cm
	}
	cm := contact.NewManager()
	ctx.RegisterRemovalObserver(cm)
	body.Set(ctx, cm)
	return cm
}

// MouseGrabSystem drives the pointer-driven soft constraint each
// tick, reading the host-supplied mousegrab.Pointer from the store's
// Context (set via SetPointer) and lazily creating the
// mousegrab.State singleton on first use.
type MouseGrabSystem struct{}

func (MouseGrabSystem) Init(store body.Store) {
	grabState(store)
}

func (MouseGrabSystem) FixedUpdate(store body.Store, dt float64) {
	grab := grabState(store)
	pointer, _ := body.Get[mousegrab.Pointer](store.Context())
	grab.Update(store, pointer, dt)
}

// SetPointer records the host's current pointer state for the next
// tick's MouseGrabSystem.FixedUpdate to consume.
func SetPointer(store body.Store, p mousegrab.Pointer) {
	body.Set(store.Context(), p)
}

func grabState(store body.Store) *mousegrab.State {
	ctx := store.Context()
	if g, ok := body.Get[*mousegrab.State](ctx); ok {
		return g
	}
	g := mousegrab.New()
	body.Set(ctx, g)
	return g
}

// ConstraintSolverSystem runs the sequential-impulse velocity solver
// and Baumgarte position solver for the tick's contact.Manager and
// (if active) the mouse grab constraint.
type ConstraintSolverSystem struct {
	solver *solver.Solver
}

// NewConstraintSolverSystem returns a system wrapping a solver with
// the given iteration counts, leaving other tunables at their
// defaults; use Solver() to adjust the rest.
func NewConstraintSolverSystem(velocityIterations, positionIterations int) *ConstraintSolverSystem {
	s := solver.New()
	s.VelocityIterations = velocityIterations
	s.PositionIterations = positionIterations
	return &ConstraintSolverSystem{solver: s}
}

// Solver exposes the underlying solver for tunable adjustment.
func (s *ConstraintSolverSystem) Solver() *solver.Solver {
	return s.solver
}

func (ConstraintSolverSystem) Init(store body.Store) {}

func (s *ConstraintSolverSystem) FixedUpdate(store body.Store, dt float64) {
	cm := manager(store)

	var grabber solver.Grabber
	if g, ok := body.Get[*mousegrab.State](store.Context()); ok && g.Active {
		grabber = g
	}

	s.solver.Step(store, cm, grabber, dt)
}
