package rigid2d

import "github.com/akmonengine/rigid2d/body"

// World is the fixed-timestep accumulator driving a body.Store
// through its registered Systems each call to Update. Grounded on
// world.go's World/Step shape and C++ physicsWorld.cpp's clamp/drain
// accumulator algorithm (the teacher's own World.Step just divides an
// incoming dt into a fixed substep count with no frame-rate
// decoupling; this accumulator is ported from the C++ source since
// spec §4.7 requires it exactly).
type World struct {
	fixedTimestep float64
	accumulator   float64
	systems       []System
}

// maxAccumulatorFactor caps the accumulator at this many fixed steps
// to guard against the spiral of death after a long stall.
const maxAccumulatorFactor = 4

// maxFrameDt is the largest incoming frame delta accepted before
// clamping; larger stalls (a debugger breakpoint, a slow load) are
// treated as exactly this long.
const maxFrameDt = 0.25

// NewWorld returns a World with the given fixed timestep (seconds per
// tick), e.g. 1.0/60 or 1.0/240.
func NewWorld(fixedTimestep float64) *World {
	return &World{fixedTimestep: fixedTimestep}
}

// FixedTimestep returns the configured per-tick duration.
func (w *World) FixedTimestep() float64 {
	return w.fixedTimestep
}

// AddSystem appends sys to the pipeline; systems run in the order
// they were added.
func (w *World) AddSystem(sys System) {
	w.systems = append(w.systems, sys)
}

// Init runs every system's Init against store, once.
func (w *World) Init(store body.Store) {
	for _, sys := range w.systems {
		sys.Init(store)
	}
}

// Update folds frameDt (clamped to maxFrameDt) into the accumulator,
// caps the accumulator at maxAccumulatorFactor fixed steps, then runs
// as many whole fixed ticks as the accumulator holds. No
// interpolation is produced; callers read store state directly after
// Update returns.
func (w *World) Update(store body.Store, frameDt float64) {
	if frameDt > maxFrameDt {
		frameDt = maxFrameDt
	}
	w.accumulator += frameDt

	maxAccum := w.fixedTimestep * maxAccumulatorFactor
	if w.accumulator > maxAccum {
		w.accumulator = maxAccum
	}

	for w.accumulator >= w.fixedTimestep {
		for _, sys := range w.systems {
			sys.FixedUpdate(store, w.fixedTimestep)
		}
		w.accumulator -= w.fixedTimestep
	}
}
