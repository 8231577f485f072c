package internal

import (
	"errors"
	"sync"
)

type phase int8

const (
	phaseIdle phase = iota
	phaseNotify
	phaseUpdate
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseNotify:
		return "notify"
	case phaseUpdate:
		return "update"
	}
	return "invalid"
}

// ErrUpdateLoop aborts an update cycle that never settles, typically an
// effect and an action feeding each other forever.
var ErrUpdateLoop = errors.New("incr: possible infinite update loop detected")

const updateLoopLimit = 1e5

// Runtime owns the task queues and drives the phase transitions:
//
//	idle ──action──► notifying ──queue drained──► updating ──tasks drained──► idle
//
// The whole graph is affine to the goroutine driving the runtime; no
// synchronisation guards node state.
type Runtime struct {
	phase phase

	flush flushQueue
	tasks *taskQueue

	// actions deferred to the next notify round
	actions []func(*ActionContext)
	// work for the next quiescence
	idleTasks []func()

	batchDepth int
	running    bool
	nodeID     uint64

	waitersMu sync.Mutex
	waiters   []chan struct{}
}

// NewRuntime creates an empty runtime.
func NewRuntime() *Runtime {
	return &Runtime{tasks: newTaskQueue()}
}

func (rt *Runtime) nextNodeID() uint64 {
	rt.nodeID++
	return rt.nodeID
}

// AC produces an action token. Only valid while no phase is running;
// work inside a phase schedules actions instead.
func (rt *Runtime) AC() *ActionContext {
	if rt.phase != phaseIdle {
		panic("incr: action context requested during the " + rt.phase.String() +
			" phase; use SpawnAction to defer the mutation")
	}
	return &ActionContext{rt: rt}
}

// SC produces a read token that records no dependencies.
func (rt *Runtime) SC() *SignalContext {
	return rt.UC().sc()
}

// UC produces an update token for driving check/compute directly.
func (rt *Runtime) UC() *UpdateContext {
	if rt.phase == phaseNotify {
		panic("incr: update context requested during the notify phase")
	}
	return &UpdateContext{rt: rt}
}

// Action runs f immediately when the runtime is idle, otherwise defers
// it to the next notify round.
func (rt *Runtime) Action(f func(*ActionContext)) {
	if rt.phase != phaseIdle {
		rt.actions = append(rt.actions, f)
		return
	}
	f(&ActionContext{rt: rt})
}

// SpawnAction always defers f to the next notify round, regardless of
// the current phase.
func (rt *Runtime) SpawnAction(f func(*ActionContext)) {
	rt.actions = append(rt.actions, f)
}

// ScheduleIdle queues f to run the next time the runtime reaches
// quiescence.
func (rt *Runtime) ScheduleIdle(f func()) {
	rt.idleTasks = append(rt.idleTasks, f)
}

// Batch defers the update that ambient-style writes trigger until the
// outermost batch completes, so effects see only the final coalesced
// state.
func (rt *Runtime) Batch(f func()) {
	rt.batchDepth++
	defer func() {
		rt.batchDepth--
		if rt.batchDepth == 0 {
			rt.Update()
		}
	}()
	f()
}

// IsBatching reports whether a batch is open.
func (rt *Runtime) IsBatching() bool {
	return rt.batchDepth > 0
}

// IsIdle reports whether no phase is currently running.
func (rt *Runtime) IsIdle() bool {
	return rt.phase == phaseIdle
}

func (rt *Runtime) hasWork() bool {
	return !rt.flush.isEmpty() || !rt.tasks.isEmpty()
}

// Update runs the complete update phase to quiescence: deferred actions
// deliver their notifications, the flush lane drains, then task buckets
// in ascending priority. Actions spawned along the way start another
// round. Waiters wake and idle tasks run once everything settles.
func (rt *Runtime) Update() {
	if rt.phase != phaseIdle {
		panic("incr: Update called during the " + rt.phase.String() + " phase")
	}

	rounds := 0
	for {
		rounds++
		if rounds > updateLoopLimit {
			panic(ErrUpdateLoop)
		}

		rt.drainActions()

		if rt.hasWork() {
			rt.phase = phaseUpdate
			uc := &UpdateContext{rt: rt}
			for rt.hasWork() {
				rt.flush.drain(uc)
				rt.tasks.drain(uc)
			}
			rt.phase = phaseIdle
		}

		if len(rt.actions) > 0 {
			continue
		}

		rt.wake()

		if len(rt.idleTasks) > 0 {
			tasks := rt.idleTasks
			rt.idleTasks = nil
			for _, f := range tasks {
				f()
			}
			if rt.hasWork() || len(rt.actions) > 0 {
				continue
			}
		}
		return
	}
}

// Run executes f with the runtime marked as running, then drains phases
// to quiescence. WaitForUpdate is only valid inside.
func (rt *Runtime) Run(f func()) {
	if rt.running {
		panic("incr: Run re-entered")
	}
	rt.running = true
	defer func() { rt.running = false }()

	f()
	rt.Update()
}

// WaitForUpdate settles every pending phase and returns once the runtime
// is idle again.
func (rt *Runtime) WaitForUpdate() {
	if !rt.running {
		panic("incr: WaitForUpdate requires a running runtime; call it from inside Runtime.Run")
	}
	rt.Update()
}

// WaitForIdle returns a channel closed the next time the runtime settles.
// An already-idle runtime returns a closed channel. This is the
// primitive async adapters block on.
func (rt *Runtime) WaitForIdle() <-chan struct{} {
	ch := make(chan struct{})
	if rt.phase == phaseIdle && !rt.hasWork() && len(rt.actions) == 0 {
		close(ch)
		return ch
	}
	rt.waitersMu.Lock()
	rt.waiters = append(rt.waiters, ch)
	rt.waitersMu.Unlock()
	return ch
}

func (rt *Runtime) wake() {
	rt.waitersMu.Lock()
	waiters := rt.waiters
	rt.waiters = nil
	rt.waitersMu.Unlock()

	for _, ch := range waiters {
		close(ch)
	}
}

func (rt *Runtime) drainActions() {
	for len(rt.actions) > 0 {
		acts := rt.actions
		rt.actions = nil
		for _, f := range acts {
			f(&ActionContext{rt: rt})
		}
	}
}
