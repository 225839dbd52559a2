// Package mousegrab implements the soft spring-damper point
// constraint that lets a pointer drag a dynamic body, ported from the
// C++ systems/mouseGrab.hpp source this module was distilled from.
// The teacher repo has no pointer/input concept of its own (it's a
// headless library consumed by a 3D engine's own input layer), so
// this package is grounded entirely on the C++ original, expressed in
// the teacher's tunable-fields-on-struct idiom.
package mousegrab

import "github.com/akmonengine/rigid2d/geom"

// Pointer is the host-supplied input state for one tick: the pointer's
// current world position and the rising/falling edges of its button.
type Pointer struct {
	WorldPos geom.Vec2
	Pressed  bool // true on the tick the button transitions down
	Released bool // true on the tick the button transitions up
}
