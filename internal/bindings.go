package internal

import "slices"

// Slot identifies which input of a multi-source sink an edge refers to.
// Single-input sinks use slot 0.
type Slot int

// BindSource is a node a sink can read and subscribe to: a state cell or
// a dependency node.
type BindSource interface {
	// AddSink installs the back-edge from this source to sink.
	AddSink(sink BindSink, slot Slot)

	// RemoveSink drops one back-edge to (sink, slot). Removing the last
	// sink may release the source's own subscriptions (see node settings).
	RemoveSink(sink BindSink, slot Slot)

	// UpdateIfNeeded brings the source up to date. A no-op for state
	// cells; dependency nodes check and possibly recompute.
	UpdateIfNeeded(uc *UpdateContext)

	// Version is incremented each time the source's value actually
	// changes. Sinks compare it against the version captured at their
	// last compute to detect real changes.
	Version() uint64
}

// BindSink receives change notifications from its sources.
type BindSink interface {
	// Notify joins level into the sink's dirty state and propagates or
	// schedules as needed. Delivered only during the notify phase.
	Notify(slot Slot, level Dirty, nc *NotifyContext)
}

// sinkEntry is one back-edge: who depends on a source, and at which of
// the sink's input slots.
type sinkEntry struct {
	sink BindSink
	slot Slot
}

// sinkBindings is the per-source list of back-edges.
type sinkBindings struct {
	entries []sinkEntry
}

func (b *sinkBindings) add(sink BindSink, slot Slot) {
	b.entries = append(b.entries, sinkEntry{sink, slot})
}

// remove drops a single matching entry. The capture rebuild can briefly
// hold two identical edges for a re-ordered read; removing one keeps the
// net count right.
func (b *sinkBindings) remove(sink BindSink, slot Slot) {
	for i, e := range b.entries {
		if e.sink == sink && e.slot == slot {
			b.entries = slices.Delete(b.entries, i, i+1)
			return
		}
	}
}

func (b *sinkBindings) isEmpty() bool {
	return len(b.entries) == 0
}

// notify delivers level to every sink. Iterates a clone to avoid
// mutation during iteration: a notified sink may detach itself.
func (b *sinkBindings) notify(level Dirty, nc *NotifyContext) {
	entries := slices.Clone(b.entries)
	for _, e := range entries {
		e.sink.Notify(e.slot, level, nc)
	}
}

// sourceBinding is one forward edge: a source this sink read during its
// last compute, the sink slot the read was recorded on, and the source's
// version at capture time.
type sourceBinding struct {
	source  BindSource
	slot    Slot
	version uint64
}

// sourceBindings is the per-sink list of forward edges, ordered by the
// order reads happened during the last compute. The ordering keeps
// re-subscription stable when a compute re-reads the same prefix and
// then diverges.
type sourceBindings struct {
	entries []sourceBinding
}

// changed brings the sources up to date in capture order and reports
// whether any of them produced a different value since capture; it stops
// at the first source whose version moved. This is the pull-validate
// half of glitch elimination: a maybe-dirty sink recomputes only when a
// concrete change is found here.
func (b *sourceBindings) changed(uc *UpdateContext) bool {
	for i := range b.entries {
		e := &b.entries[i]
		e.source.UpdateIfNeeded(uc)
		if e.source.Version() != e.version {
			return true
		}
	}
	return false
}

// clear removes every back-edge and empties the list.
func (b *sourceBindings) clear(sink BindSink, slot Slot) {
	for _, e := range b.entries {
		e.source.RemoveSink(sink, slot)
	}
	b.entries = nil
}

// rebuild runs f under a fresh compute capture. Reads observed by f form
// the new edge list; old edges not re-observed are dropped, new ones
// install back-edges. The edge lists stay consistent even if f panics.
func (b *sourceBindings) rebuild(sink BindSink, slot Slot, uc *UpdateContext, f func(*SignalContext)) {
	cc := &ComputeContext{
		uc:   uc,
		sink: sink,
		slot: slot,
		old:  b.entries,
	}
	b.entries = nil

	defer func() {
		for i := range cc.old {
			if cc.old[i].source != nil {
				cc.old[i].source.RemoveSink(sink, slot)
			}
		}
		b.entries = cc.captured
	}()

	f(cc.SC())
}
