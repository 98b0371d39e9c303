package engine

import "sync"

// The package-level facade wraps one shared Engine for hosts that
// want a single global controller. Nothing in the engine itself
// depends on it; explicit construction via New remains the primary
// API.

var (
	defaultMu     sync.Mutex
	defaultEngine *Engine
)

// SetDefault installs the shared engine returned by Default.
func SetDefault(e *Engine) {
	defaultMu.Lock()
	defaultEngine = e
	defaultMu.Unlock()
}

// Default returns the shared engine, or nil if none was installed.
func Default() *Engine {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultEngine
}
