package rigid2d

import (
	"math"
	"testing"

	"github.com/akmonengine/rigid2d/body"
	"github.com/akmonengine/rigid2d/geom"
	"github.com/akmonengine/rigid2d/mousegrab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFullWorld(fixedTimestep float64, gravity geom.Vec2, velIter, posIter int) *World {
	w := NewWorld(fixedTimestep)
	w.AddSystem(InertiaSystem{})
	w.AddSystem(NewGravitySystem(gravity))
	w.AddSystem(MouseGrabSystem{})
	w.AddSystem(CollisionDetectionSystem{})
	w.AddSystem(NewConstraintSolverSystem(velIter, posIter))
	return w
}

func floorBody(store body.Store) *body.Body {
	b := body.NewBody()
	b.Position = geom.Vec2{0, 0}
	b.Collider = body.NewBoxCollider(geom.Vec2{10, 0.5}, geom.Vec2{})
	b.SetStatic(true)
	store.AddBody(b)
	return b
}

func TestAccumulatorDrainsWholeSteps(t *testing.T) {
	w := NewWorld(1.0 / 60)
	store := body.NewSliceStore()

	var ticks int
	w.AddSystem(countingSystem{&ticks})
	w.Init(store)

	w.Update(store, 1.0/60*2.5)
	assert.Equal(t, 2, ticks)
}

func TestAccumulatorCapsSpiralOfDeath(t *testing.T) {
	w := NewWorld(1.0 / 60)
	store := body.NewSliceStore()

	var ticks int
	w.AddSystem(countingSystem{&ticks})
	w.Init(store)

	w.Update(store, 100) // a huge stall
	assert.Equal(t, maxAccumulatorFactor, ticks)
}

type countingSystem struct{ n *int }

func (countingSystem) Init(store body.Store) {}
func (c countingSystem) FixedUpdate(store body.Store, dt float64) {
	*c.n++
}

// Scenario 1: resting circle on a static floor settles near y≈1.0
// with low residual velocity.
func TestScenarioRestingCircleOnFloor(t *testing.T) {
	store := body.NewSliceStore()
	floorBody(store)

	circle := body.NewBody()
	circle.Position = geom.Vec2{0, 2}
	circle.Mass = 1
	circle.RecomputeMass()
	circle.Restitution = 0
	circle.Friction = 0.3
	circle.Collider = body.NewCircleCollider(0.5, geom.Vec2{})
	store.AddBody(circle)

	w := newFullWorld(1.0/240, geom.Vec2{0, -9.81}, 12, 4)
	w.Init(store)

	for i := 0; i < 240; i++ {
		w.Update(store, 1.0/240)
	}

	assert.InDelta(t, 1.0, circle.Position.Y(), 0.05)
	assert.Less(t, circle.LinearVelocity.Len(), 0.2)
}

// Scenario 2: equal-mass elastic head-on collision swaps velocities.
func TestScenarioElasticCircleSwap(t *testing.T) {
	store := body.NewSliceStore()

	a := body.NewBody()
	a.Position = geom.Vec2{0, 0}
	a.Mass = 1
	a.RecomputeMass()
	a.Restitution = 1
	a.Collider = body.NewCircleCollider(1, geom.Vec2{})
	a.LinearVelocity = geom.Vec2{1, 0}
	store.AddBody(a)

	b := body.NewBody()
	b.Position = geom.Vec2{1.5, 0}
	b.Mass = 1
	b.RecomputeMass()
	b.Restitution = 1
	b.Collider = body.NewCircleCollider(1, geom.Vec2{})
	store.AddBody(b)

	w := newFullWorld(1.0/240, geom.Vec2{}, 12, 4)
	w.Init(store)

	for i := 0; i < 3; i++ {
		w.Update(store, 1.0/240)
	}

	assert.Less(t, a.LinearVelocity.Len(), 0.05)
	assert.InDelta(t, 1.0, b.LinearVelocity.X(), 0.05)
}

// Scenario 3: a stack of 5 unit boxes settles on a static floor with
// low inter-box penetration and no box sinking through its support.
func TestScenarioBoxStackSettles(t *testing.T) {
	store := body.NewSliceStore()

	const n = 5
	boxes := make([]*body.Body, n)
	for i := 0; i < n; i++ {
		b := body.NewBody()
		b.Position = geom.Vec2{0, 1.0 + float64(i)*1.0}
		b.Mass = 1
		b.RecomputeMass()
		b.Friction = 0.3
		b.Restitution = 0.1
		b.Collider = body.NewBoxCollider(geom.Vec2{0.5, 0.5}, geom.Vec2{})
		store.AddBody(b)
		boxes[i] = b
	}
	floorBody(store)

	w := NewWorld(1.0 / 240)
	w.AddSystem(InertiaSystem{})
	w.AddSystem(NewGravitySystem(geom.Vec2{0, -9.81}))
	w.AddSystem(MouseGrabSystem{})
	w.AddSystem(CollisionDetectionSystem{})
	css := NewConstraintSolverSystem(12, 4)
	w.AddSystem(css)
	w.Init(store)

	const ticks = 30 * 240
	for i := 0; i < ticks; i++ {
		w.Update(store, 1.0/240)
	}

	slop := css.Solver().Slop
	floorTop := 0.5
	prevTop := floorTop
	var totalPenetration float64
	for i, b := range boxes {
		bottom := b.Position.Y() - 0.5
		if penetration := prevTop - bottom; penetration > 0 {
			totalPenetration += penetration
		}
		assert.GreaterOrEqual(t, b.Position.Y(), prevTop+0.5-slop, "box %d sank through its support", i)
		prevTop = b.Position.Y() + 0.5
	}
	assert.Less(t, totalPenetration/float64(n), 2*slop)
}

// Scenario 4: a frictionless unit box dropped onto a rotated static
// incline slides downhill with monotonically increasing speed, never
// sticking.
func TestScenarioBoxSlidesDownFrictionlessIncline(t *testing.T) {
	store := body.NewSliceStore()

	incline := body.NewBody()
	incline.Position = geom.Vec2{0, 0}
	incline.Rotation = 0.3
	incline.Collider = body.NewBoxCollider(geom.Vec2{5, 0.5}, geom.Vec2{})
	incline.SetStatic(true)
	store.AddBody(incline)

	cs, sn := math.Cos(incline.Rotation), math.Sin(incline.Rotation)
	landing := geom.Rotate(geom.Vec2{0, 0.5}, cs, sn)

	box := body.NewBody()
	box.Position = geom.Vec2{landing.X(), landing.Y() + 1.5}
	box.Mass = 1
	box.RecomputeMass()
	box.Friction = 0
	box.Restitution = 0
	box.Collider = body.NewBoxCollider(geom.Vec2{0.5, 0.5}, geom.Vec2{})
	store.AddBody(box)

	w := newFullWorld(1.0/240, geom.Vec2{0, -9.81}, 12, 4)
	w.Init(store)

	sampleTicks := []int{120, 240, 360, 480}
	var samples []float64
	elapsed := 0
	for _, target := range sampleTicks {
		for ; elapsed < target; elapsed++ {
			w.Update(store, 1.0/240)
		}
		samples = append(samples, box.LinearVelocity.X())
	}

	increasing := samples[0] <= samples[1] && samples[1] <= samples[2] && samples[2] <= samples[3]
	decreasing := samples[0] >= samples[1] && samples[1] >= samples[2] && samples[2] >= samples[3]
	assert.True(t, increasing || decreasing, "expected monotonic downhill velocity, got %v", samples)
	assert.Greater(t, math.Abs(samples[3]), math.Abs(samples[0]))
}

// Scenario 5: mouse grab pulls a body toward a held target with
// critically-damped, non-divergent motion.
func TestScenarioMouseGrabReachesTarget(t *testing.T) {
	store := body.NewSliceStore()

	circle := body.NewBody()
	circle.Position = geom.Vec2{0, 0}
	circle.Mass = 1
	circle.RecomputeMass()
	circle.Collider = body.NewCircleCollider(0.5, geom.Vec2{})
	store.AddBody(circle)

	w := newFullWorld(1.0/240, geom.Vec2{}, 12, 4)
	w.Init(store)

	SetPointer(store, mousegrab.Pointer{WorldPos: geom.Vec2{0, 0}, Pressed: true})
	w.Update(store, 1.0/240)

	for i := 0; i < 240; i++ {
		SetPointer(store, mousegrab.Pointer{WorldPos: geom.Vec2{2, 0}})
		w.Update(store, 1.0/240)
	}

	dist := circle.Position.Sub(geom.Vec2{2, 0}).Len()
	assert.LessOrEqual(t, dist, 0.05)
}

// Scenario 6: warm-start efficacy. A stack settling under low
// velocity iteration counts should still end up quiet: warm-started
// impulses carry most of the work across ticks.
func TestScenarioWarmStartKeepsLowIterStackQuiet(t *testing.T) {
	store := body.NewSliceStore()
	floorBody(store)

	const n = 10
	boxes := make([]*body.Body, n)
	for i := 0; i < n; i++ {
		b := body.NewBody()
		b.Position = geom.Vec2{0, 0.5 + float64(i)*1.0}
		b.Mass = 1
		b.RecomputeMass()
		b.Friction = 0.5
		b.Restitution = 0
		b.Collider = body.NewBoxCollider(geom.Vec2{0.5, 0.5}, geom.Vec2{})
		store.AddBody(b)
		boxes[i] = b
	}

	w := newFullWorld(1.0/240, geom.Vec2{0, -9.81}, 2, 4)
	w.Init(store)

	for i := 0; i < 240; i++ {
		w.Update(store, 1.0/240)
	}

	var ke float64
	for _, b := range boxes {
		ke += 0.5 * b.Mass * b.LinearVelocity.Dot(b.LinearVelocity)
	}
	assert.Less(t, ke, 0.1)
}

func TestRemovedBodyLeavesNoStaleContact(t *testing.T) {
	store := body.NewSliceStore()
	floorBody(store)

	circle := body.NewBody()
	circle.Position = geom.Vec2{0, 0.4}
	circle.Mass = 1
	circle.RecomputeMass()
	circle.Collider = body.NewCircleCollider(0.5, geom.Vec2{})
	circID := store.AddBody(circle)

	w := newFullWorld(1.0/240, geom.Vec2{0, -9.81}, 8, 4)
	w.Init(store)
	w.Update(store, 1.0/240)

	require.NoError(t, store.RemoveBody(circID))

	cm := manager(store)
	for _, c := range cm.Constraints() {
		assert.NotEqual(t, circID, c.BodyA)
		assert.NotEqual(t, circID, c.BodyB)
	}
}
