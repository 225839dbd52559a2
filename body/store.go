package body

import "fmt"

// Store is the body-store contract the core consumes (spec §6.2). Any
// implementation satisfying it works with World; SliceStore below is
// the reference implementation used by this module's own tests.
type Store interface {
	// Bodies returns every body currently held, in implementation-
	// defined but stable order (broadphase re-sorts by AABB anyway).
	Bodies() []*Body
	// Get looks up a body by id.
	Get(id ID) (*Body, bool)
	// AddBody inserts b, assigning it a fresh ID.
	AddBody(b *Body) ID
	// RemoveBody deletes the body with the given id, if present, and
	// notifies any registered RemovalObserver.
	RemoveBody(id ID) error
	// Context returns the store's typed singleton registry.
	Context() *Context
}

// SliceStore is a slice-backed Store: O(1) add, O(1) swap-remove,
// O(1) lookup via an id->index map. Grounded on World.Bodies /
// AddBody / RemoveBody in the teacher's world.go.
type SliceStore struct {
	bodies []*Body
	index  map[ID]int
	nextID ID
	ctx    *Context
}

// NewSliceStore returns an empty store with a fresh context.
func NewSliceStore() *SliceStore {
	return &SliceStore{
		index: make(map[ID]int),
		ctx:   NewContext(),
	}
}

func (s *SliceStore) Bodies() []*Body {
	return s.bodies
}

func (s *SliceStore) Get(id ID) (*Body, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.bodies[i], true
}

func (s *SliceStore) AddBody(b *Body) ID {
	s.nextID++
	id := s.nextID
	b.ID = id
	s.index[id] = len(s.bodies)
	s.bodies = append(s.bodies, b)
	return id
}

func (s *SliceStore) RemoveBody(id ID) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("rigid2d/body: unknown body id %d", id)
	}

	last := len(s.bodies) - 1
	s.bodies[i] = s.bodies[last]
	s.index[s.bodies[i].ID] = i
	s.bodies = s.bodies[:last]
	delete(s.index, id)

	s.ctx.notifyRemoved(id)
	return nil
}

func (s *SliceStore) Context() *Context {
	return s.ctx
}
