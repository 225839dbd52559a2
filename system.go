// Package rigid2d is the world driver: the fixed-timestep accumulator
// loop that orchestrates the body store, broadphase, narrowphase,
// contact manager, constraint solver and mouse grab each tick. Ported
// from the C++ physicsWorld.cpp/physicsSystem.hpp source this module
// was distilled from, following the teacher's own World/AddSystem
// layout (world.go) for how systems are registered and ordered.
package rigid2d

import "github.com/akmonengine/rigid2d/body"

// System is one stage of the per-tick pipeline. Grounded on the C++
// PhysicsSystem interface's init/fixedUpdate split.
type System interface {
	// Init runs once, when World.Init is called with the store.
	Init(store body.Store)
	// FixedUpdate runs once per fixed step, in registration order.
	FixedUpdate(store body.Store, dt float64)
}
