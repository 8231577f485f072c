package internal

// The five scope tokens. Each grants a distinct set of operations and is
// passed by pointer through call chains, never stored, so phase
// discipline shows up in signatures instead of runtime checks on every
// hot-path call. The residual dynamic cases (asking for an action
// context mid-update) panic with a phase-violation message.

// ActionContext allows mutating state cells and spawning action tasks.
// Reading derived values under it is not possible: no read API takes it.
type ActionContext struct {
	rt *Runtime
}

// Runtime returns the runtime this action runs against.
func (ac *ActionContext) Runtime() *Runtime {
	return ac.rt
}

// Schedule queues f as a separate action, run before the next notify
// round. This is how work started inside an update phase requests
// further mutations without violating phase boundaries.
func (ac *ActionContext) Schedule(f func(*ActionContext)) {
	ac.rt.actions = append(ac.rt.actions, f)
}

// withNotify materialises a transient NotifyContext at the boundary of a
// mutation. Only actions can open a notify window.
func (ac *ActionContext) withNotify(f func(*NotifyContext)) {
	rt := ac.rt
	prev := rt.phase
	rt.phase = phaseNotify
	f(&NotifyContext{rt: rt})
	rt.phase = prev
}

// NotifyContext allows delivering notifications and enqueueing sinks.
// Computing or mutating under it is not possible.
type NotifyContext struct {
	rt *Runtime
}

// Schedule enqueues a task onto the given kind's bucket.
func (nc *NotifyContext) Schedule(t Task, kind TaskKind) {
	nc.rt.tasks.schedule(t, kind)
}

// scheduleFlush enqueues a flush node so it is brought up to date before
// ordinary tasks run.
func (nc *NotifyContext) scheduleFlush(n *DependencyNode) {
	nc.rt.flush.push(n)
}

// UpdateContext drives the task queue and grants check/compute on nodes.
// Delivering notifications under it is not possible; anything a compute
// changes is observed by downstream pulls, not pushes.
type UpdateContext struct {
	rt *Runtime
}

// Runtime returns the owning runtime.
func (uc *UpdateContext) Runtime() *Runtime {
	return uc.rt
}

// sc materialises a read context that records no dependencies, for
// pull-reads outside any compute.
func (uc *UpdateContext) sc() *SignalContext {
	return &SignalContext{uc: uc}
}

// ComputeContext observes reads into the current capture. One exists per
// computing node at a time; it is materialised by the rebuild in
// sourceBindings and never outlives it.
type ComputeContext struct {
	uc   *UpdateContext
	sink BindSink
	slot Slot

	// old is the previous edge list; entries are nilled out as the new
	// capture reuses them. Whatever is left keeps its back-edge only
	// until the rebuild finishes.
	old    []sourceBinding
	cursor int

	captured []sourceBinding
}

// SC materialises the read context computes hand to user code.
func (cc *ComputeContext) SC() *SignalContext {
	return &SignalContext{uc: cc.uc, cc: cc}
}

// record appends src to the capture. A read matching the next old entry
// reuses its edge untouched; anything else installs a fresh back-edge.
func (cc *ComputeContext) record(src BindSource) {
	// already captured this compute
	for i := range cc.captured {
		if cc.captured[i].source == src {
			return
		}
	}

	if cc.cursor < len(cc.old) && cc.old[cc.cursor].source == src {
		cc.old[cc.cursor].source = nil
		cc.cursor++
		cc.captured = append(cc.captured, sourceBinding{src, cc.slot, src.Version()})
		return
	}

	cc.captured = append(cc.captured, sourceBinding{src, cc.slot, src.Version()})
	src.AddSink(cc.sink, cc.slot)
}

// SignalContext allows reading values, recording the read as a
// dependency of the computing sink. Mutating or notifying under it is
// not possible.
type SignalContext struct {
	uc        *UpdateContext
	cc        *ComputeContext
	untracked bool
}

// Observe brings src up to date and records it as a dependency of the
// current compute, if any. Callers read the source's cached value after.
func (sc *SignalContext) Observe(src BindSource) {
	src.UpdateIfNeeded(sc.uc)
	if sc.cc != nil && !sc.untracked {
		sc.cc.record(src)
	}
}

// Untracked runs f with dependency recording suspended. Reads still pull
// sources up to date; they just form no edges.
func (sc *SignalContext) Untracked(f func(*SignalContext)) {
	f(&SignalContext{uc: sc.uc, cc: sc.cc, untracked: true})
}

// UC exposes the underlying update context for node implementations that
// drive check/compute directly.
func (sc *SignalContext) UC() *UpdateContext {
	return sc.uc
}
