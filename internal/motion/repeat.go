package motion

import (
	"sync"
	"time"
)

// RepeatDetector classifies rapid consecutive presses as keyboard
// auto-repeat, as opposed to deliberate distinct presses. Repeat
// state is global across keys: holding one key and then another is
// still repeating.
type RepeatDetector struct {
	// Threshold is the inter-press gap at or below which presses are
	// classified as repeating.
	Threshold time.Duration

	// ResetDelay is the gap at or above which the repeating state
	// clears. Gaps between Threshold and ResetDelay keep the current
	// classification.
	ResetDelay time.Duration

	mu        sync.Mutex
	last      time.Time
	repeating bool
}

// NewRepeatDetector creates a detector.
func NewRepeatDetector(threshold, resetDelay time.Duration) *RepeatDetector {
	return &RepeatDetector{Threshold: threshold, ResetDelay: resetDelay}
}

// Observe records a press at the given time and returns whether the
// stream is currently classified as repeating.
func (d *RepeatDetector) Observe(now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.last.IsZero() {
		gap := now.Sub(d.last)
		switch {
		case gap <= d.Threshold:
			d.repeating = true
		case gap >= d.ResetDelay:
			d.repeating = false
		}
	}
	d.last = now
	return d.repeating
}

// Repeating returns the current classification without recording a
// press.
func (d *RepeatDetector) Repeating() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.repeating
}

// Reset clears the detector state.
func (d *RepeatDetector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = time.Time{}
	d.repeating = false
}
