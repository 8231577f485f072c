package incr

import "github.com/AnatoleLucet/incr/internal"

// foldBody accumulates every change of its source into acc. The node is
// hot (the accumulator must keep observing with no sinks) and flushed
// (it must see every phase's value, not just the latest when someone
// finally reads).
type foldBody[T, A any] struct {
	src Readable[T]
	fn  func(A, T) A
	acc A
}

func (b *foldBody[T, A]) Compute(cc *ComputeContext) bool {
	b.acc = b.fn(b.acc, b.src.Get(cc.SC()))
	return true
}

// Fold is a running accumulation over a reactive source.
type Fold[A any] struct {
	node *internal.DependencyNode
	acc  func() A
}

// NewFold creates an accumulator on the ambient runtime: on every change
// of src, acc = f(acc, value). The initial accumulation runs on the next
// update.
func NewFold[T, A any](src Readable[T], initial A, f func(A, T) A) *Fold[A] {
	return NewFoldIn(internal.AmbientRuntime(), src, initial, f)
}

// NewFoldIn is NewFold on an explicit runtime.
func NewFoldIn[T, A any](rt *Runtime, src Readable[T], initial A, f func(A, T) A) *Fold[A] {
	body := &foldBody[T, A]{src: src, fn: f, acc: initial}
	node := internal.NewDependencyNode(rt, body, NodeSettings{
		Hot:          true,
		Flush:        true,
		ModifyAlways: true,
	})
	return &Fold[A]{
		node: node,
		acc:  func() A { return body.acc },
	}
}

// Get pulls the accumulator up to date, registers the dependency, and
// returns the current accumulation.
func (f *Fold[A]) Get(sc *SignalContext) A {
	sc.Observe(f.node)
	return f.acc()
}

// Stop detaches the accumulator from its sources and returns the final
// accumulation.
func (f *Fold[A]) Stop() A {
	f.node.Detach()
	return f.acc()
}
