// Package motion counts repeated navigation key presses and decides
// when the hint pipeline should trigger. It owns the per-key press
// counters with timeout reset, the key-repeat classifier, and the
// debouncer that coalesces overlapping trigger requests.
package motion

import (
	"sync"
	"time"
)

// TrackerConfig configures press counting.
type TrackerConfig struct {
	// DefaultCount is the presses required to trigger for keys
	// without a per-key override.
	DefaultCount int

	// PerKeyCount overrides the required count for specific keys.
	PerKeyCount map[string]int

	// Timeout resets a key's counter when no further press arrives
	// in time.
	Timeout time.Duration
}

// keyState is one key's independent counter and reset timer.
// At most one live timer exists per key.
type keyState struct {
	count int
	timer *time.Timer
}

// Tracker counts presses per key name. Press reports when a key has
// reached its required count, resetting that key's counter.
type Tracker struct {
	cfg TrackerConfig

	mu     sync.Mutex
	states map[string]*keyState
}

// NewTracker creates a Tracker.
func NewTracker(cfg TrackerConfig) *Tracker {
	return &Tracker{
		cfg:    cfg,
		states: make(map[string]*keyState),
	}
}

// Required returns the press count that triggers for key.
func (t *Tracker) Required(key string) int {
	if n, ok := t.cfg.PerKeyCount[key]; ok {
		return n
	}
	return t.cfg.DefaultCount
}

// Press records one press of key. It returns true when the press
// reaches the key's required count; the counter then resets to zero.
// Every press rearms the key's timeout timer, cancelling the
// previously pending one.
func (t *Tracker) Press(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.states[key]
	if !ok {
		st = &keyState{}
		t.states[key] = st
	}

	st.count++
	if st.timer != nil {
		st.timer.Stop()
		st.timer = nil
	}

	if st.count >= t.Required(key) {
		st.count = 0
		return true
	}

	st.timer = time.AfterFunc(t.cfg.Timeout, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if cur, ok := t.states[key]; ok && cur == st {
			cur.count = 0
			cur.timer = nil
		}
	})
	return false
}

// Count returns key's current counter value.
func (t *Tracker) Count(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.states[key]; ok {
		return st.count
	}
	return 0
}

// Reset clears one key's counter and pending timer.
func (t *Tracker) Reset(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.states[key]; ok {
		if st.timer != nil {
			st.timer.Stop()
		}
		delete(t.states, key)
	}
}

// ResetAll clears every key's state.
func (t *Tracker) ResetAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, st := range t.states {
		if st.timer != nil {
			st.timer.Stop()
		}
	}
	t.states = make(map[string]*keyState)
}
