package body

import "reflect"

// Context is a typed singleton registry attached to a Store. It plays
// the role the C++ source gets for free from entt::registry::ctx() —
// ContactManager, PointerState and MouseGrabState all live here rather
// than as package-level globals, so tests can spin up isolated worlds.
type Context struct {
	values    map[reflect.Type]any
	observers []RemovalObserver
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{values: make(map[reflect.Type]any)}
}

// RemovalObserver is notified when a body is removed from a Store, so
// collaborators keyed by body id (the contact manager, in practice)
// can drop stale references without the store needing to know their
// concrete type.
type RemovalObserver interface {
	OnBodyRemoved(id ID)
}

// RegisterRemovalObserver adds o to the set notified on body removal.
func (c *Context) RegisterRemovalObserver(o RemovalObserver) {
	c.observers = append(c.observers, o)
}

func (c *Context) notifyRemoved(id ID) {
	for _, o := range c.observers {
		o.OnBodyRemoved(id)
	}
}

// Set stores v as the singleton value for type T.
func Set[T any](c *Context, v T) {
	c.values[reflect.TypeOf((*T)(nil)).Elem()] = v
}

// Get retrieves the singleton value for type T, if present.
func Get[T any](c *Context) (T, bool) {
	var zero T
	raw, ok := c.values[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	return v, ok
}

// Has reports whether a singleton value for type T is present.
func Has[T any](c *Context) bool {
	_, ok := c.values[reflect.TypeOf((*T)(nil)).Elem()]
	return ok
}

// Delete removes the singleton value for type T.
func Delete[T any](c *Context) {
	delete(c.values, reflect.TypeOf((*T)(nil)).Elem())
}
