package internal

// StreamNode bridges a reactive read into a pull-style sequence: a plain
// state machine of (ready, bindings, waker). Each TryNext performs one
// read with dependency capture; a notification arms ready again and
// fires the waker so an async adapter can poll.
type StreamNode struct {
	rt     *Runtime
	read   func(*SignalContext) any
	binder *SourceBinder

	ready bool
	waker func()
	done  bool
}

// NewStreamNode creates a bridge around read. A fresh stream is ready:
// the first TryNext yields the current value.
func NewStreamNode(rt *Runtime, read func(*SignalContext) any) *StreamNode {
	s := &StreamNode{rt: rt, read: read, ready: true}
	s.binder = NewSourceBinder(s, 0)
	return s
}

// Notify implements BindSink.
func (s *StreamNode) Notify(slot Slot, level Dirty, nc *NotifyContext) {
	if s.done || !s.binder.OnNotify(slot, level) {
		return
	}
	s.ready = true
	if w := s.waker; w != nil {
		s.waker = nil
		w()
	}
}

// TryNext returns the next value if one is ready. When it reports false
// the caller should park and arm SetWaker.
func (s *StreamNode) TryNext() (any, bool) {
	if s.done || !s.ready {
		return nil, false
	}
	s.ready = false
	var v any
	uc := &UpdateContext{rt: s.rt}
	s.binder.Update(func(sc *SignalContext) {
		v = s.read(sc)
	}, uc)
	return v, true
}

// SetWaker registers a callback fired on the next notification. Replaced
// wholesale by each call; consumed when fired.
func (s *StreamNode) SetWaker(w func()) {
	s.waker = w
}

// Close detaches the stream from its sources.
func (s *StreamNode) Close() {
	if s.done {
		return
	}
	s.done = true
	s.waker = nil
	s.binder.Clear()
}
