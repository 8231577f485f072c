package internal

// effectNode is a leaf sink that re-runs a user closure when anything it
// read has changed.
type effectNode struct {
	rt     *Runtime
	f      func(*SignalContext) bool
	binder *SourceBinder
	kind   TaskKind

	scheduled bool
	done      bool
}

// NewEffect builds a leaf node around f and schedules its first run.
func NewEffect(rt *Runtime, f func(*SignalContext), kind TaskKind) *Subscription {
	return NewEffectWhile(rt, func(sc *SignalContext) bool {
		f(sc)
		return true
	}, kind)
}

// NewEffectWhile is NewEffect for closures that decide their own
// lifetime: returning false detaches the effect.
func NewEffectWhile(rt *Runtime, f func(*SignalContext) bool, kind TaskKind) *Subscription {
	e := &effectNode{rt: rt, f: f, kind: kind}
	e.binder = NewSourceBinder(e, 0)
	e.schedule()
	return &Subscription{detach: e.detach}
}

func (e *effectNode) schedule() {
	if e.scheduled || e.done {
		return
	}
	e.scheduled = true
	e.rt.tasks.schedule(e, e.kind)
}

// Notify implements BindSink. Scheduling is idempotent within a phase:
// the flag drops only when the task runs.
func (e *effectNode) Notify(slot Slot, level Dirty, nc *NotifyContext) {
	if e.done {
		return
	}
	if e.binder.OnNotify(slot, level) {
		e.schedule()
	}
}

// Run implements Task. A maybe-dirty effect pull-validates first; if its
// sources settle clean the closure is skipped entirely.
func (e *effectNode) Run(uc *UpdateContext) {
	e.scheduled = false
	if e.done {
		return
	}
	if !e.binder.Check(uc) {
		return
	}
	keep := true
	e.binder.Update(func(sc *SignalContext) {
		keep = e.f(sc)
	}, uc)
	if !keep {
		e.detach()
	}
}

func (e *effectNode) detach() {
	if e.done {
		return
	}
	e.done = true
	e.binder.Clear()
}

// Subscription is the owning handle for a leaf sink. Unsubscribing
// eagerly removes the leaf from every upstream sink list; a pending
// scheduled run becomes a no-op.
type Subscription struct {
	detach func()
}

// NewSubscription wraps an arbitrary detach action.
func NewSubscription(detach func()) *Subscription {
	return &Subscription{detach: detach}
}

// Unsubscribe detaches the sink. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.detach == nil {
		return
	}
	d := s.detach
	s.detach = nil
	d()
}
