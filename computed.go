package incr

import "github.com/AnatoleLucet/incr/internal"

// computedBody is the compute strategy behind Computed: it owns the
// cached value and the equality cutoff.
type computedBody[T any] struct {
	fn     func(*SignalContext) T
	equals func(a, b T) bool
	value  T
	has    bool
}

func (b *computedBody[T]) Compute(cc *ComputeContext) bool {
	v := b.fn(cc.SC())
	changed := true
	if b.equals != nil && b.has {
		changed = !b.equals(b.value, v)
	}
	b.value = v
	b.has = true
	return changed
}

func (b *computedBody[T]) Discard() bool {
	var zero T
	b.value = zero
	b.has = false
	return true
}

// Computed is a typed derived value. It recomputes lazily: a read pulls
// it up to date, and a maybe-dirty read that finds no concrete upstream
// change costs nothing.
type Computed[T any] struct {
	node *internal.DependencyNode
	body *computedBody[T]
}

// NewComputed creates a derived value on the ambient runtime. Without an
// equality function every recompute counts as a change.
func NewComputed[T any](fn func(*SignalContext) T) *Computed[T] {
	return newDerived(internal.AmbientRuntime(), fn, nil, NodeSettings{})
}

// NewComputedEq creates a derived value with an equality cutoff:
// recomputes that produce an equal value do not propagate.
func NewComputedEq[T any](fn func(*SignalContext) T, equals func(a, b T) bool) *Computed[T] {
	return newDerived(internal.AmbientRuntime(), fn, equals, NodeSettings{})
}

// NewComputedIn creates a derived value on an explicit runtime.
func NewComputedIn[T any](rt *Runtime, fn func(*SignalContext) T) *Computed[T] {
	return newDerived(rt, fn, nil, NodeSettings{})
}

func newDerived[T any](rt *Runtime, fn func(*SignalContext) T, equals func(a, b T) bool, settings NodeSettings) *Computed[T] {
	body := &computedBody[T]{fn: fn, equals: equals}
	return &Computed[T]{
		node: internal.NewDependencyNode(rt, body, settings),
		body: body,
	}
}

// Get pulls the node up to date, registers the dependency, and returns
// the cached value.
func (c *Computed[T]) Get(sc *SignalContext) T {
	sc.Observe(c.node)
	return c.body.value
}

// Read returns the current value without an explicit context, through
// the node's runtime.
func (c *Computed[T]) Read() T {
	return c.Get(c.node.Runtime().SC())
}

// Node exposes the underlying dependency node, for combinators that
// need to adjust subscriptions directly.
func (c *Computed[T]) Node() *DependencyNode {
	return c.node
}

// Map derives a value by applying f to src.
func Map[T, U any](src Readable[T], f func(T) U) *Computed[U] {
	return NewComputed(func(sc *SignalContext) U {
		return f(src.Get(sc))
	})
}

// MapEq is Map with an equality cutoff on the derived value.
func MapEq[T, U any](src Readable[T], f func(T) U, equals func(a, b U) bool) *Computed[U] {
	return NewComputedEq(func(sc *SignalContext) U {
		return f(src.Get(sc))
	}, equals)
}

// WithKeep re-exposes src through a node that retains its cached output
// after the last sink drops; only the upstream subscription is released.
func WithKeep[T any](src Readable[T]) *Computed[T] {
	return newDerived(internal.AmbientRuntime(), func(sc *SignalContext) T {
		return src.Get(sc)
	}, nil, NodeSettings{Keep: true, ModifyAlways: true})
}

// WithHot re-exposes src through a node that stays subscribed to its
// sources even with no sinks, keeping upstream state warm.
func WithHot[T any](src Readable[T]) *Computed[T] {
	return newDerived(internal.AmbientRuntime(), func(sc *SignalContext) T {
		return src.Get(sc)
	}, nil, NodeSettings{Hot: true, ModifyAlways: true})
}
