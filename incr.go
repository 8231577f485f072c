// Package incr is an incremental reactive computation runtime: state
// cells, derived values, and effects form a dependency graph that is
// kept consistent with push-notify + pull-recompute, glitch-free and
// with minimal recomputation.
//
// The engine lives in the internal package; this facade adds the typed
// surface on top of its any-valued nodes.
package incr

import "github.com/AnatoleLucet/incr/internal"

// Re-exported engine types. Combinator authors build on DependencyNode,
// Compute, and SourceBinder; applications mostly see the contexts and
// Subscription.
type (
	Runtime        = internal.Runtime
	ActionContext  = internal.ActionContext
	NotifyContext  = internal.NotifyContext
	UpdateContext  = internal.UpdateContext
	ComputeContext = internal.ComputeContext
	SignalContext  = internal.SignalContext
	Subscription   = internal.Subscription
	TaskKind       = internal.TaskKind
	NodeSettings   = internal.NodeSettings
	Compute        = internal.Compute
	DependencyNode = internal.DependencyNode
	SourceBinder   = internal.SourceBinder
	Slot           = internal.Slot
	BindSource     = internal.BindSource
	BindSink       = internal.BindSink
	Dirty          = internal.Dirty
)

var (
	// KindRender runs before default work within an update phase.
	KindRender = internal.KindRender
	// KindDefault is where ordinary effects run.
	KindDefault = internal.KindDefault

	// ErrUpdateLoop aborts an update cycle that never settles.
	ErrUpdateLoop = internal.ErrUpdateLoop
)

// Readable is anything with a current value that reads can depend on.
type Readable[T any] interface {
	Get(sc *SignalContext) T
}

// NewRuntime creates an empty runtime. Use Bind to make it the current
// goroutine's ambient runtime for the no-handle constructors below.
func NewRuntime() *Runtime {
	return internal.NewRuntime()
}

// Bind makes rt the ambient runtime of the current goroutine. Pair with
// Release when the goroutine is done with it.
func Bind(rt *Runtime) {
	internal.BindRuntime(rt)
}

// Release unbinds the current goroutine's ambient runtime.
func Release() {
	internal.ReleaseRuntime()
}

// NewNode creates a dependency node around a compute strategy, for
// combinator authors. The strategy reads sources through the compute
// context it is handed and reports whether its output changed.
func NewNode(rt *Runtime, compute Compute, settings NodeSettings) *DependencyNode {
	return internal.NewDependencyNode(rt, compute, settings)
}

// Update runs the ambient runtime's update phase to quiescence.
func Update() {
	internal.AmbientRuntime().Update()
}

// Batch coalesces the writes inside f into a single update cycle.
func Batch(f func()) {
	internal.AmbientRuntime().Batch(f)
}

// SpawnAction defers a mutation to the ambient runtime's next notify
// round. This is how effect closures request writes.
func SpawnAction(f func(*ActionContext)) {
	internal.AmbientRuntime().SpawnAction(f)
}

// WaitForUpdate settles the ambient runtime and returns once it is idle.
// Panics when the goroutine has no bound runtime.
func WaitForUpdate() {
	rt, ok := internal.BoundRuntime()
	if !ok {
		panic("incr: no runtime bound to this goroutine; call Bind or use Runtime.Run first")
	}
	rt.WaitForUpdate()
}

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}
