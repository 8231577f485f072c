package incr

import "github.com/AnatoleLucet/incr/internal"

// State is a typed mutable root cell.
type State[T any] struct {
	cell *internal.StateCell
}

// NewState creates a state cell on the ambient runtime.
func NewState[T any](initial T) *State[T] {
	return NewStateIn[T](internal.AmbientRuntime(), initial)
}

// NewStateIn creates a state cell on an explicit runtime.
func NewStateIn[T any](rt *Runtime, initial T) *State[T] {
	return &State[T]{cell: internal.NewStateCell(rt, initial)}
}

// NewStateEq creates a state cell whose SetDedup uses a custom equality
// function instead of ==.
func NewStateEq[T any](initial T, equals func(a, b T) bool) *State[T] {
	return &State[T]{cell: internal.NewStateCellEq(internal.AmbientRuntime(), initial, func(a, b any) bool {
		return equals(as[T](a), as[T](b))
	})}
}

// Get registers the reader as a dependency and returns the current
// value.
func (s *State[T]) Get(sc *SignalContext) T {
	return as[T](s.cell.Get(sc))
}

// Set replaces the value unconditionally and notifies every sink.
func (s *State[T]) Set(v T, ac *ActionContext) {
	s.cell.Set(v, ac)
}

// SetDedup sets only when the new value compares unequal to the old.
func (s *State[T]) SetDedup(v T, ac *ActionContext) {
	s.cell.SetDedup(v, ac)
}

// Read returns the current value without an explicit context, through
// the cell's runtime.
func (s *State[T]) Read() T {
	return as[T](s.cell.Get(s.cell.Runtime().SC()))
}

// Write mutates through the cell's runtime and, outside a batch, runs
// the update phase so effects settle before it returns. Called from
// inside a running phase, the write defers to the next notify round and
// the running loop picks it up.
func (s *State[T]) Write(v T) {
	rt := s.cell.Runtime()
	rt.Action(func(ac *ActionContext) {
		s.cell.Set(v, ac)
	})
	if !rt.IsBatching() && rt.IsIdle() {
		rt.Update()
	}
}
