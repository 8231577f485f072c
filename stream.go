package incr

import "github.com/AnatoleLucet/incr/internal"

// Stream bridges a reactive source into a pull-style sequence for async
// adapters: TryNext yields a value per change, the waker signals when a
// parked consumer should poll again.
type Stream[T any] struct {
	node *internal.StreamNode
}

// NewStream creates a stream over src on the ambient runtime. A fresh
// stream is ready: the first TryNext yields the current value.
func NewStream[T any](src Readable[T]) *Stream[T] {
	return NewStreamIn(internal.AmbientRuntime(), src)
}

// NewStreamIn is NewStream on an explicit runtime.
func NewStreamIn[T any](rt *Runtime, src Readable[T]) *Stream[T] {
	return &Stream[T]{
		node: internal.NewStreamNode(rt, func(sc *SignalContext) any {
			return src.Get(sc)
		}),
	}
}

// TryNext returns the next value if one is ready. When it reports false
// the consumer should park and arm SetWaker.
func (s *Stream[T]) TryNext() (T, bool) {
	v, ok := s.node.TryNext()
	if !ok {
		var zero T
		return zero, false
	}
	return as[T](v), true
}

// SetWaker registers a callback fired on the next change; consumed when
// fired.
func (s *Stream[T]) SetWaker(w func()) {
	s.node.SetWaker(w)
}

// Close detaches the stream from its sources.
func (s *Stream[T]) Close() {
	s.node.Close()
}
