package internal

// StateCell is the smallest mutable root node. It originates dirty
// notifications; it never depends on anything.
type StateCell struct {
	rt      *Runtime
	id      uint64
	value   any
	equals  func(a, b any) bool
	version uint64
	sinks   sinkBindings
}

// NewStateCell creates a root cell holding initial.
func NewStateCell(rt *Runtime, initial any) *StateCell {
	return &StateCell{
		rt:     rt,
		id:     rt.nextNodeID(),
		value:  initial,
		equals: isEqual,
	}
}

// NewStateCellEq creates a root cell with a custom equality function,
// used by SetDedup.
func NewStateCellEq(rt *Runtime, initial any, equals func(a, b any) bool) *StateCell {
	c := NewStateCell(rt, initial)
	if equals != nil {
		c.equals = equals
	}
	return c
}

// Runtime returns the runtime the cell belongs to.
func (c *StateCell) Runtime() *Runtime {
	return c.rt
}

// Get registers the reader as a sink and returns the current value.
func (c *StateCell) Get(sc *SignalContext) any {
	sc.Observe(c)
	return c.value
}

// Value returns the current value without touching the graph.
func (c *StateCell) Value() any {
	return c.value
}

// Set replaces the value unconditionally, marks the cell dirty, and
// delivers (slot, dirty) to every sink through a transient notify
// window.
func (c *StateCell) Set(v any, ac *ActionContext) {
	c.value = v
	c.version++
	ac.withNotify(func(nc *NotifyContext) {
		c.sinks.notify(DirtyYes, nc)
	})
}

// SetDedup performs Set only when the new value compares unequal to the
// old one.
func (c *StateCell) SetDedup(v any, ac *ActionContext) {
	if c.equals(c.value, v) {
		return
	}
	c.Set(v, ac)
}

// AddSink implements BindSource.
func (c *StateCell) AddSink(sink BindSink, slot Slot) {
	c.sinks.add(sink, slot)
}

// RemoveSink implements BindSource.
func (c *StateCell) RemoveSink(sink BindSink, slot Slot) {
	c.sinks.remove(sink, slot)
}

// UpdateIfNeeded implements BindSource. Cells are always authoritative.
func (c *StateCell) UpdateIfNeeded(uc *UpdateContext) {}

// Version implements BindSource.
func (c *StateCell) Version() uint64 {
	return c.version
}

func isEqual(a, b any) bool {
	return a == b
}
