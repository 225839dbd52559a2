package broadphase

import (
	"sort"

	"github.com/akmonengine/rigid2d/body"
)

// Pair is a candidate colliding pair emitted by SweepAndPrune. A is
// always the lower body ID so contact.PairKey can be derived without
// re-sorting.
type Pair struct {
	A, B body.ID
}

type entry struct {
	id   body.ID
	aabb AABB
}

// SweepAndPrune computes each body's AABB and returns the unordered,
// duplicate-free list of candidate pairs whose fattened AABBs
// overlap. Bodies without a collider are skipped silently. Grounded
// on the C++ broadphase.hpp sortAndSweep algorithm: entries are
// sorted by aabb.min.x, then for each entry the scan advances while
// the next entry's min.x is still within the current entry's max.x.
func SweepAndPrune(bodies []*body.Body) []Pair {
	entries := make([]entry, 0, len(bodies))
	for _, b := range bodies {
		if aabb, ok := Compute(b); ok {
			entries = append(entries, entry{id: b.ID, aabb: aabb})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].aabb.Min.X() < entries[j].aabb.Min.X()
	})

	var pairs []Pair
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[j].aabb.Min.X() > entries[i].aabb.Max.X() {
				break
			}
			if !yOverlap(entries[i].aabb, entries[j].aabb) {
				continue
			}
			pairs = append(pairs, orderedPair(entries[i].id, entries[j].id))
		}
	}
	return pairs
}

func yOverlap(a, b AABB) bool {
	return a.Max.Y() >= b.Min.Y() && a.Min.Y() <= b.Max.Y()
}

func orderedPair(a, b body.ID) Pair {
	if a < b {
		return Pair{A: a, B: b}
	}
	return Pair{A: b, B: a}
}
