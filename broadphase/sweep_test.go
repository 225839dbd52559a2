package broadphase

import (
	"testing"

	"github.com/akmonengine/rigid2d/body"
	"github.com/akmonengine/rigid2d/geom"
)

func circleAt(store *body.SliceStore, x, y, r float64) body.ID {
	b := body.NewBody()
	b.Position = geom.Vec2{x, y}
	b.Collider = body.NewCircleCollider(r, geom.Vec2{})
	return store.AddBody(b)
}

func TestSweepAndPruneOverlappingPair(t *testing.T) {
	s := body.NewSliceStore()
	a := circleAt(s, 0, 0, 1)
	b := circleAt(s, 1.5, 0, 1)

	pairs := SweepAndPrune(s.Bodies())
	if len(pairs) != 1 {
		t.Fatalf("len(pairs) = %d, want 1", len(pairs))
	}
	got := pairs[0]
	want := orderedPair(a, b)
	if got != want {
		t.Errorf("pair = %+v, want %+v", got, want)
	}
}

// Disjoint AABBs must never produce a candidate pair.
func TestSweepAndPruneDisjointAABBsEmitNoPair(t *testing.T) {
	s := body.NewSliceStore()
	circleAt(s, 0, 0, 1)
	circleAt(s, 100, 100, 1)

	if pairs := SweepAndPrune(s.Bodies()); len(pairs) != 0 {
		t.Errorf("pairs = %v, want none", pairs)
	}
}

func TestSweepAndPruneNoYOverlapNoPair(t *testing.T) {
	s := body.NewSliceStore()
	circleAt(s, 0, 0, 1)
	circleAt(s, 0.5, 10, 1)

	if pairs := SweepAndPrune(s.Bodies()); len(pairs) != 0 {
		t.Errorf("pairs = %v, want none (y intervals disjoint)", pairs)
	}
}

func TestSweepAndPruneSkipsColliderlessBodies(t *testing.T) {
	s := body.NewSliceStore()
	circleAt(s, 0, 0, 1)
	s.AddBody(body.NewBody()) // no collider

	if pairs := SweepAndPrune(s.Bodies()); len(pairs) != 0 {
		t.Errorf("pairs = %v, want none", pairs)
	}
}

func TestSweepAndPruneNoDuplicates(t *testing.T) {
	s := body.NewSliceStore()
	circleAt(s, 0, 0, 5)
	circleAt(s, 1, 0, 5)
	circleAt(s, 2, 0, 5)

	pairs := SweepAndPrune(s.Bodies())
	seen := make(map[Pair]bool)
	for _, p := range pairs {
		if seen[p] {
			t.Errorf("duplicate pair %+v", p)
		}
		seen[p] = true
	}
	if len(pairs) != 3 {
		t.Errorf("len(pairs) = %d, want 3 (all three overlap)", len(pairs))
	}
}
