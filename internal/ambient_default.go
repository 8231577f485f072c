//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// The ambient registry maps goroutines to their default runtime, for the
// facade constructors that take no explicit handle. Explicit runtime
// handles threaded through scope tokens stay the primary API; this is
// the documented single escape hatch for ergonomic reads and writes.
var runtimes sync.Map

// AmbientRuntime returns the runtime bound to the current goroutine,
// creating and binding one on first use.
func AmbientRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

// BindRuntime makes rt the current goroutine's ambient runtime.
func BindRuntime(rt *Runtime) {
	runtimes.Store(goid.Get(), rt)
}

// ReleaseRuntime unbinds the current goroutine's ambient runtime. The
// next AmbientRuntime call creates and binds a fresh one; BoundRuntime
// reports none until then.
func ReleaseRuntime() {
	runtimes.Delete(goid.Get())
}

// BoundRuntime returns the current goroutine's ambient runtime without
// creating one.
func BoundRuntime() (*Runtime, bool) {
	if r, ok := runtimes.Load(goid.Get()); ok {
		return r.(*Runtime), true
	}
	return nil, false
}
