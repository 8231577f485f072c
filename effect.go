package incr

import "github.com/AnatoleLucet/incr/internal"

// NewEffect builds a leaf sink that re-runs f whenever anything it read
// has changed, and schedules its first run. The returned Subscription
// owns the effect: unsubscribing detaches it from every source.
func NewEffect(f func(*SignalContext)) *Subscription {
	return internal.NewEffect(internal.AmbientRuntime(), f, KindDefault)
}

// NewEffectWith is NewEffect on a chosen task kind.
func NewEffectWith(f func(*SignalContext), kind TaskKind) *Subscription {
	return internal.NewEffect(internal.AmbientRuntime(), f, kind)
}

// NewEffectIn is NewEffect on an explicit runtime.
func NewEffectIn(rt *Runtime, f func(*SignalContext)) *Subscription {
	return internal.NewEffect(rt, f, KindDefault)
}

// NewEffectWhile runs f like an effect until it returns false, then
// detaches itself.
func NewEffectWhile(f func(*SignalContext) bool) *Subscription {
	return internal.NewEffectWhile(internal.AmbientRuntime(), f, KindDefault)
}
