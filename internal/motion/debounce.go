package motion

import (
	"sync"
	"time"
)

// Debouncer coalesces overlapping trigger requests. A request arriving
// while a run is in progress replaces any previously queued request,
// so at most one additional run executes after the current one
// completes and the most recent request wins. No queue is built.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending func()
	timer   *time.Timer
	running bool
}

// NewDebouncer creates a Debouncer with the given trailing delay.
// A zero delay still coalesces requests that overlap a running
// pipeline.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Do schedules fn. Requests within the delay window collapse into
// one; a request during an active run is parked until the run
// finishes.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = fn
	if d.running {
		return
	}
	d.rearmLocked(d.delay)
}

// rearmLocked schedules fire after wait, replacing any pending timer.
// Caller holds d.mu.
func (d *Debouncer) rearmLocked(wait time.Duration) {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(wait, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	if fn == nil || d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	go func() {
		fn()

		d.mu.Lock()
		d.running = false
		again := d.pending != nil
		if again {
			d.rearmLocked(d.delay)
		}
		d.mu.Unlock()
	}()
}

// Busy reports whether a run is currently executing.
func (d *Debouncer) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Stop drops any pending request. An in-progress run finishes
// normally.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
