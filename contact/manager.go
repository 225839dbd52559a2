package contact

import "github.com/akmonengine/rigid2d/body"

// Manager is the persistent contact cache. Every tick, Update
// replaces the map wholesale with a freshly narrowphase-generated
// list, donating normalImpulse/tangentImpulse from the prior tick's
// matching points by feature key so the solver can warm-start.
// Grounded on C++ contact.hpp's update/warmMatch semantics — the
// teacher's own constraint.ContactConstraint has no equivalent cache
// since its PBD solver never warm-starts.
type Manager struct {
	current map[uint64]*Constraint
}

// NewManager returns an empty contact manager.
func NewManager() *Manager {
	return &Manager{current: make(map[uint64]*Constraint)}
}

// Update replaces the cache with newContacts, donating impulse
// accumulators from the previous tick's constraint for the same
// pair-key wherever a new point's feature key matches an old one.
func (m *Manager) Update(newContacts []*Constraint) {
	next := make(map[uint64]*Constraint, len(newContacts))
	for _, c := range newContacts {
		key := PairKey(c.BodyA, c.BodyB)
		if old, ok := m.current[key]; ok {
			donateImpulses(old, c)
		}
		next[key] = c
	}
	m.current = next
}

// donateImpulses copies normalImpulse/tangentImpulse from old to new
// wherever their feature keys match, walking the (small, ≤2x2)
// cross-product of points.
func donateImpulses(old, next *Constraint) {
	for i := range next.Points {
		for j := range old.Points {
			if next.Points[i].Feature.Key() != old.Points[j].Feature.Key() {
				continue
			}
			next.Points[i].NormalImpulse = old.Points[j].NormalImpulse
			next.Points[i].TangentImpulse = old.Points[j].TangentImpulse
			break
		}
	}
}

// Constraints returns the current tick's constraints. Order is not
// guaranteed stable across calls; solver.Solver.Step sorts by pair-key
// before iterating to keep its visitation order reproducible.
func (m *Manager) Constraints() map[uint64]*Constraint {
	return m.current
}

// OnBodyRemoved implements body.RemovalObserver: it purges every
// cached constraint touching the removed body so no stale pair-key
// survives into the next tick.
func (m *Manager) OnBodyRemoved(id body.ID) {
	for key, c := range m.current {
		if c.BodyA == id || c.BodyB == id {
			delete(m.current, key)
		}
	}
}

var _ body.RemovalObserver = (*Manager)(nil)
