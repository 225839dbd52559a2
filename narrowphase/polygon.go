package narrowphase

import (
	"math"

	"github.com/akmonengine/rigid2d/body"
	"github.com/akmonengine/rigid2d/contact"
	"github.com/akmonengine/rigid2d/geom"
)

// referenceBias sets the band used in reference-face selection: A's
// face is the reference only when sepA >= sepB*0.95 + 0.005, otherwise
// B's face is. The fixed band keeps the choice from flipping between
// frames when the two separations are nearly tied; no prior choice is
// remembered.
const (
	referenceBiasScale  = 0.95
	referenceBiasOffset = 0.005
)

// maxSeparation returns the greatest of the per-face minimum
// separations of refVerts against incVerts, and the face achieving it.
func maxSeparation(refVerts, incVerts []vec2) (sep float64, face int) {
	sep = math.Inf(-1)
	n := len(refVerts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		normal := faceNormal(refVerts[i], refVerts[j])
		minSep := math.Inf(1)
		for _, v := range incVerts {
			s := normal.Dot(v.Sub(refVerts[i]))
			if s < minSep {
				minSep = s
			}
		}
		if minSep > sep {
			sep = minSep
			face = i
		}
	}
	return sep, face
}

func incidentEdge(incVerts []vec2, refNormal vec2) int {
	n := len(incVerts)
	best := 0
	bestDot := math.Inf(1)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		normal := faceNormal(incVerts[i], incVerts[j])
		d := normal.Dot(refNormal)
		if d < bestDot {
			bestDot = d
			best = i
		}
	}
	return best
}

func polygonVsPolygon(a, b *body.Body) (*contact.Constraint, bool) {
	vertsA := polyVertices(a)
	vertsB := polyVertices(b)

	sepA, edgeA := maxSeparation(vertsA, vertsB)
	if sepA > 0 {
		return nil, false
	}
	sepB, edgeB := maxSeparation(vertsB, vertsA)
	if sepB > 0 {
		return nil, false
	}

	var refVerts, incVerts []vec2
	var refEdge int
	flip := false
	if sepA >= sepB*referenceBiasScale+referenceBiasOffset {
		refVerts, incVerts, refEdge = vertsA, vertsB, edgeA
	} else {
		refVerts, incVerts, refEdge = vertsB, vertsA, edgeB
		flip = true
	}

	rn := len(refVerts)
	refV0, refV1 := refVerts[refEdge], refVerts[(refEdge+1)%rn]
	refNormal := faceNormal(refV0, refV1)
	tangent := geom.Perp(refNormal)

	incEdge := incidentEdge(incVerts, refNormal)
	in := len(incVerts)
	incV0, incV1 := incVerts[incEdge], incVerts[(incEdge+1)%in]

	side := [2]clipVertex{
		{point: incV0, feature: contact.Feature{TypeB: contact.FeatureVertex, IndexB: uint8(incEdge)}},
		{point: incV1, feature: contact.Feature{TypeB: contact.FeatureVertex, IndexB: uint8((incEdge + 1) % in)}},
	}

	side1Index := uint8((refEdge - 1 + rn) % rn)
	side2Index := uint8((refEdge + 1) % rn)

	setRef := func(f *contact.Feature, idx uint8) {
		f.TypeA = contact.FeatureFace
		f.IndexA = idx
	}

	clipped := clipSegment(side, tangent.Mul(-1), -tangent.Dot(refV0), side1Index, setRef)
	if len(clipped) < 2 {
		return nil, false
	}
	var pair [2]clipVertex
	copy(pair[:], clipped)
	clipped = clipSegment(pair, tangent, tangent.Dot(refV1), side2Index, setRef)
	if len(clipped) < 2 {
		return nil, false
	}

	var points []contact.Point
	refOffset := refNormal.Dot(refV0)
	for _, cv := range clipped {
		sep := refNormal.Dot(cv.point) - refOffset
		if sep > 0 {
			continue
		}
		if !cv.refSet {
			// Endpoint survived both clips unmodified: it still sits
			// on the reference face itself.
			cv.feature.TypeA = contact.FeatureFace
			cv.feature.IndexA = uint8(refEdge)
		}
		points = append(points, contact.Point{
			Position:    cv.point,
			Penetration: -sep,
			Feature:     cv.feature,
		})
		if len(points) == 2 {
			break
		}
	}
	if len(points) == 0 {
		return nil, false
	}

	normal := refNormal
	var bodyA, bodyB *body.Body
	if !flip {
		bodyA, bodyB = a, b
	} else {
		bodyA, bodyB = b, a
		normal = normal.Mul(-1)
		for i := range points {
			points[i].Feature = contact.Feature{
				TypeA: points[i].Feature.TypeB, IndexA: points[i].Feature.IndexB,
				TypeB: points[i].Feature.TypeA, IndexB: points[i].Feature.IndexA,
			}
		}
	}

	// Orient normal from A's centroid toward B's centroid.
	centroidA, centroidB := polygonCentroid(vertsA), polygonCentroid(vertsB)
	if normal.Dot(centroidB.Sub(centroidA)) < 0 {
		normal = normal.Mul(-1)
	}

	for i := range points {
		points[i].LocalA = rotateInv(points[i].Position.Sub(bodyA.Position), bodyA.Rotation)
		points[i].LocalB = rotateInv(points[i].Position.Sub(bodyB.Position), bodyB.Rotation)
	}

	return &contact.Constraint{
		BodyA:       bodyA.ID,
		BodyB:       bodyB.ID,
		Normal:      normal,
		Points:      points,
		Friction:    contact.CombinedFriction(bodyA.Friction, bodyB.Friction),
		Restitution: contact.CombinedRestitution(bodyA.Restitution, bodyB.Restitution),
	}, true
}

func polygonCentroid(verts []vec2) vec2 {
	var sum vec2
	for _, v := range verts {
		sum = sum.Add(v)
	}
	return sum.Mul(1 / float64(len(verts)))
}
