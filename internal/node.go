package internal

import "fmt"

// Compute is the strategy a DependencyNode runs to rebuild its output.
// The strategy owns the cached output; Compute reports whether it
// actually changed.
type Compute interface {
	Compute(cc *ComputeContext) bool
}

// Discarder is an optional strategy capability consulted when a node is
// about to release its cached output. Returning false keeps the output.
type Discarder interface {
	Discard() bool
}

// NodeSettings select a dependency node's lifetime and scheduling
// behavior.
type NodeSettings struct {
	// Flush brings the node up to date on the flush lane, before
	// ordinary tasks run, so downstream effects always see it fresh.
	Flush bool

	// Hot keeps the node subscribed to its sources even with no sinks.
	// Used to preserve state such as fold accumulators.
	Hot bool

	// ModifyAlways marks a compute that is assumed to always change its
	// output; the changed check is skipped and notifications forward the
	// incoming level instead of degrading to maybe-dirty.
	ModifyAlways bool

	// Keep retains the cached output after the last sink drops; only the
	// upstream subscriptions are released.
	Keep bool
}

// DependencyNode is a generic incremental node: it holds a compute
// strategy, the tri-state dirty flag, and both edge directions.
type DependencyNode struct {
	rt       *Runtime
	id       uint64
	settings NodeSettings
	compute  Compute

	dirty   Dirty
	version uint64

	sources sourceBindings
	sinks   sinkBindings

	// on the flush lane
	scheduled bool
	// re-entrancy guard: set for the duration of the compute callback
	computing bool
	// the strategy holds a cached output
	hasValue bool
	// done observing for good; reads return the last output
	detached bool
}

// NewDependencyNode creates a node around the given strategy. Hot and
// flush nodes schedule themselves so their first compute happens on the
// next update even with no sinks; everything else computes lazily on
// first read.
func NewDependencyNode(rt *Runtime, compute Compute, settings NodeSettings) *DependencyNode {
	n := &DependencyNode{
		rt:       rt,
		id:       rt.nextNodeID(),
		settings: settings,
		compute:  compute,
		dirty:    DirtyYes,
	}
	if settings.Hot || settings.Flush {
		rt.flush.push(n)
		n.scheduled = true
	}
	return n
}

// Settings returns the node's lifetime settings.
func (n *DependencyNode) Settings() NodeSettings {
	return n.settings
}

// Runtime returns the runtime the node belongs to.
func (n *DependencyNode) Runtime() *Runtime {
	return n.rt
}

// Version implements BindSource.
func (n *DependencyNode) Version() uint64 {
	return n.version
}

// HasValue reports whether the strategy currently holds a cached output.
func (n *DependencyNode) HasValue() bool {
	return n.hasValue
}

// AddSink implements BindSource.
func (n *DependencyNode) AddSink(sink BindSink, slot Slot) {
	n.sinks.add(sink, slot)
}

// RemoveSink implements BindSource. Dropping the last sink releases the
// node's own subscriptions unless it is hot, and its cached output
// unless it is keep.
func (n *DependencyNode) RemoveSink(sink BindSink, slot Slot) {
	n.sinks.remove(sink, slot)
	if n.sinks.isEmpty() && !n.settings.Hot {
		n.release()
	}
}

// release drops all upstream edges and, policy permitting, the cached
// output. The next read recomputes from scratch.
func (n *DependencyNode) release() {
	n.sources.clear(n, 0)
	n.dirty = DirtyYes
	if n.settings.Keep {
		return
	}
	if d, ok := n.compute.(Discarder); ok && !d.Discard() {
		return
	}
	n.hasValue = false
}

// Detach force-releases the node regardless of settings: edges drop,
// the cached output stays with the strategy, and the node never
// recomputes again. Used by owners that are done observing (fold stop).
func (n *DependencyNode) Detach() {
	n.detached = true
	n.sources.clear(n, 0)
	n.dirty = DirtyYes
}

// Notify implements BindSink. The level joins into the dirty state; only
// a transition out of clean re-notifies downstream. A node whose output
// always changes forwards the incoming level; anything else degrades to
// maybe-dirty, because its output may yet prove unchanged.
func (n *DependencyNode) Notify(slot Slot, level Dirty, nc *NotifyContext) {
	needsNotify := n.dirty.NeedsNotify()
	n.dirty = n.dirty.Join(level)

	if needsNotify {
		forward := DirtyMaybe
		if n.settings.ModifyAlways {
			forward = level
		}
		n.sinks.notify(forward, nc)
	}

	if n.settings.Flush && !n.scheduled {
		n.scheduled = true
		nc.scheduleFlush(n)
	}
}

// Check settles a maybe-dirty node without computing: it pulls each
// source up to date in capture order and promotes to dirty only when a
// captured version moved. Returns the settled state.
func (n *DependencyNode) Check(uc *UpdateContext) Dirty {
	if n.dirty == DirtyMaybe {
		if n.sources.changed(uc) {
			n.dirty = DirtyYes
		} else {
			n.dirty = DirtyNone
		}
	}
	return n.dirty
}

// UpdateIfNeeded implements BindSource: check, then compute if the check
// confirms dirty.
func (n *DependencyNode) UpdateIfNeeded(uc *UpdateContext) {
	if n.computing {
		panic(fmt.Sprintf("incr: dependency cycle: %v is read during its own compute", n))
	}
	if n.detached {
		return
	}
	if n.Check(uc) != DirtyYes {
		return
	}
	n.recompute(uc)
}

// recompute runs the strategy under a fresh compute capture and rewrites
// the source list from the reads it observes.
func (n *DependencyNode) recompute(uc *UpdateContext) {
	n.dirty = DirtyNone

	changed := false
	n.sources.rebuild(n, 0, uc, func(sc *SignalContext) {
		n.computing = true
		defer func() { n.computing = false }()
		changed = n.compute.Compute(sc.cc)
	})

	n.hasValue = true
	if changed || n.settings.ModifyAlways {
		n.version++
	}
}

// runFlush is the flush-lane entry point.
func (n *DependencyNode) runFlush(uc *UpdateContext) {
	n.scheduled = false
	n.UpdateIfNeeded(uc)
}

func (n *DependencyNode) String() string {
	if s, ok := n.compute.(fmt.Stringer); ok {
		return fmt.Sprintf("node %d (%s)", n.id, s)
	}
	return fmt.Sprintf("node %d", n.id)
}
