package internal

// SourceBinder bundles the capture/rebuild dance for a single-slot sink:
// its forward edges, its dirty state, and the identity it subscribes
// under. Leaf sinks (effects, subscriptions, stream bridges) and
// multi-input nodes build on it instead of re-implementing the edge
// bookkeeping.
type SourceBinder struct {
	sources sourceBindings
	dirty   Dirty
	sink    BindSink
	slot    Slot
}

// NewSourceBinder creates a binder for sink at slot. A fresh binder is
// dirty: its first update must run.
func NewSourceBinder(sink BindSink, slot Slot) *SourceBinder {
	return &SourceBinder{
		dirty: DirtyYes,
		sink:  sink,
		slot:  slot,
	}
}

// IsClean reports whether the last captured state is still valid.
func (b *SourceBinder) IsClean() bool {
	return b.dirty.IsClean()
}

// Check settles a maybe-dirty binder by pull-validating its sources and
// reports whether an update must run.
func (b *SourceBinder) Check(uc *UpdateContext) bool {
	switch b.dirty {
	case DirtyYes:
		return true
	case DirtyNone:
		return false
	}
	if b.sources.changed(uc) {
		b.dirty = DirtyYes
		return true
	}
	b.dirty = DirtyNone
	return false
}

// Update marks the binder clean and runs f under a fresh capture,
// rewriting the source list from the reads f performs.
func (b *SourceBinder) Update(f func(*SignalContext), uc *UpdateContext) {
	b.dirty = DirtyNone
	b.sources.rebuild(b.sink, b.slot, uc, f)
}

// OnNotify joins level into the binder's dirty state when the slot
// matches, and reports whether the sink needs scheduling: only the
// transition out of clean does.
func (b *SourceBinder) OnNotify(slot Slot, level Dirty) bool {
	if slot != b.slot {
		return false
	}
	needs := b.dirty.NeedsNotify()
	b.dirty = b.dirty.Join(level)
	return needs
}

// Clear removes every edge and returns the binder to its initial dirty
// state.
func (b *SourceBinder) Clear() {
	b.sources.clear(b.sink, b.slot)
	b.dirty = DirtyYes
}
