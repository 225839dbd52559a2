package narrowphase

import (
	"math"

	"github.com/akmonengine/rigid2d/body"
	"github.com/akmonengine/rigid2d/geom"
)

type vec2 = geom.Vec2

const maxPolyVerts = body.MaxConvexVerts

// degenerateEdgeLen is the minimum edge length below which a polygon
// edge is treated as degenerate and falls back to normal (0,1).
const degenerateEdgeLen = 1e-8

func rotate(v vec2, angle float64) vec2 {
	return geom.Rotate(v, math.Cos(angle), math.Sin(angle))
}

func rotateInv(v vec2, angle float64) vec2 {
	return geom.RotateInv(v, math.Cos(angle), math.Sin(angle))
}

// polyVertices returns the world-space vertices of b's collider,
// which must be ColliderBox or ColliderConvex.
func polyVertices(b *body.Body) []vec2 {
	c := b.Collider
	var local []vec2
	if c.Kind == body.ColliderBox {
		hx, hy := c.HalfExtents.X(), c.HalfExtents.Y()
		local = []vec2{
			{-hx, -hy}, {hx, -hy}, {hx, hy}, {-hx, hy},
		}
	} else {
		local = c.Vertices
	}

	world := make([]vec2, len(local))
	for i, v := range local {
		scaled := vec2{v.X() * b.Scale.X(), v.Y() * b.Scale.Y()}
		world[i] = b.Position.Add(rotate(scaled.Add(c.Offset), b.Rotation))
	}
	return world
}

// faceNormal returns the outward normal of the CCW edge v0->v1.
func faceNormal(v0, v1 vec2) vec2 {
	edge := v1.Sub(v0)
	n := vec2{edge.Y(), -edge.X()}
	length := n.Len()
	if length < degenerateEdgeLen {
		return vec2{0, 1}
	}
	return n.Mul(1 / length)
}
