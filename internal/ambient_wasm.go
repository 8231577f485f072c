//go:build wasm

package internal

import "sync"

// On wasm everything runs on one thread; a single global runtime
// replaces the per-goroutine registry.

var ambientMu sync.Mutex
var ambient *Runtime

// AmbientRuntime returns the global runtime, creating it on first use.
func AmbientRuntime() *Runtime {
	ambientMu.Lock()
	defer ambientMu.Unlock()
	if ambient == nil {
		ambient = NewRuntime()
	}
	return ambient
}

// BindRuntime makes rt the global runtime.
func BindRuntime(rt *Runtime) {
	ambientMu.Lock()
	defer ambientMu.Unlock()
	ambient = rt
}

// ReleaseRuntime unbinds the global runtime.
func ReleaseRuntime() {
	ambientMu.Lock()
	defer ambientMu.Unlock()
	ambient = nil
}

// BoundRuntime returns the global runtime without creating one.
func BoundRuntime() (*Runtime, bool) {
	ambientMu.Lock()
	defer ambientMu.Unlock()
	return ambient, ambient != nil
}
