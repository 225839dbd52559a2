package contact

import "testing"

func TestPairKeyOrderIndependent(t *testing.T) {
	if PairKey(3, 7) != PairKey(7, 3) {
		t.Error("PairKey should be symmetric in its arguments")
	}
}

func TestPairKeyDistinctForDistinctPairs(t *testing.T) {
	if PairKey(1, 2) == PairKey(1, 3) {
		t.Error("distinct pairs should not collide")
	}
}

func TestCombinedFriction(t *testing.T) {
	if got := CombinedFriction(0.4, 0.9); got <= 0 || got*got > 0.4*0.9+1e-9 {
		t.Errorf("CombinedFriction(0.4,0.9) = %v", got)
	}
}

func TestCombinedRestitution(t *testing.T) {
	if got := CombinedRestitution(0.2, 0.8); got != 0.8 {
		t.Errorf("CombinedRestitution = %v, want 0.8", got)
	}
}

func TestFeatureKeyDistinguishesSides(t *testing.T) {
	a := Feature{TypeA: FeatureFace, IndexA: 1, TypeB: FeatureVertex, IndexB: 0}
	b := Feature{TypeA: FeatureVertex, IndexA: 0, TypeB: FeatureFace, IndexB: 1}
	if a.Key() == b.Key() {
		t.Error("swapped A/B sides should produce different keys")
	}
}
