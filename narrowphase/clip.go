package narrowphase

import "github.com/akmonengine/rigid2d/contact"

// clipVertex is one endpoint of the incident edge carried through
// Sutherland-Hodgman clipping, tracking which feature it inherits.
type clipVertex struct {
	point   vec2
	feature contact.Feature
	// refSet reports whether feature's reference-side (TypeA/IndexA)
	// has been assigned by a clip plane yet.
	refSet bool
}

// clipSegment clips the two-vertex incident edge against a single
// side plane (outward normal n, offset such that points with
// n·p - offset > 0 are outside and get cut). Clipped vertices inherit
// a FACE feature from the clip plane (clipEdgeIndex) on the side
// named by onReferenceSide; preserved endpoints keep their own
// feature. Returns the (at most 2) surviving vertices.
func clipSegment(in [2]clipVertex, n vec2, offset float64, clipEdgeIndex uint8, onReferenceSide func(f *contact.Feature, clipIndex uint8)) []clipVertex {
	var out []clipVertex

	dist := [2]float64{
		n.Dot(in[0].point) - offset,
		n.Dot(in[1].point) - offset,
	}

	if dist[0] <= 0 {
		out = append(out, in[0])
	}
	if dist[1] <= 0 {
		out = append(out, in[1])
	}

	if dist[0]*dist[1] < 0 {
		t := dist[0] / (dist[0] - dist[1])
		p := in[0].point.Add(in[1].point.Sub(in[0].point).Mul(t))
		f := in[0].feature
		onReferenceSide(&f, clipEdgeIndex)
		out = append(out, clipVertex{point: p, feature: f, refSet: true})
	}

	return out
}
