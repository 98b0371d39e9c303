package renderer

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dshills/hintleap/internal/hint"
	"github.com/dshills/hintleap/internal/words"
)

// fakeBackend records marker calls and can inject delays and
// per-label failures.
type fakeBackend struct {
	mu      sync.Mutex
	placed  []string
	flushes int
	delay   time.Duration
	fail    map[string]bool
}

func (f *fakeBackend) PlaceMarker(line, col int, label string, style Style) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[label] {
		return errors.New("backend refused marker")
	}
	f.placed = append(f.placed, label)
	return nil
}

func (f *fakeBackend) ClearAll() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.placed = nil
	return nil
}

func (f *fakeBackend) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushes++
	return nil
}

func (f *fakeBackend) placedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.placed)
}

func makeMappings(n int) []hint.Mapping {
	out := make([]hint.Mapping, n)
	for i := range out {
		out[i] = hint.Mapping{
			Word:       words.Word{Text: "w", Line: i, Col: 0},
			Label:      fmt.Sprintf("L%02d", i),
			RenderLine: i,
		}
	}
	return out
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestDisplayAllSyncHead(t *testing.T) {
	backend := &fakeBackend{}
	s := NewScheduler(backend, WithSyncBatch(5), WithAsyncBatch(3))

	s.DisplayAll(makeMappings(5), NewTicket())

	// Five mappings fit entirely in the sync head: all placed and
	// flushed by the time DisplayAll returns.
	if got := backend.placedCount(); got != 5 {
		t.Errorf("placed = %d immediately after DisplayAll, want 5", got)
	}
	if backend.flushes == 0 {
		t.Error("no flush issued after synchronous head")
	}
}

func TestDisplayAllAsyncRemainder(t *testing.T) {
	backend := &fakeBackend{}
	s := NewScheduler(backend, WithSyncBatch(4), WithAsyncBatch(4))

	s.DisplayAll(makeMappings(20), NewTicket())

	if got := backend.placedCount(); got < 4 {
		t.Errorf("placed = %d immediately after DisplayAll, want >= 4", got)
	}
	waitFor(t, func() bool { return backend.placedCount() == 20 })
	waitFor(t, func() bool { return !s.IsRendering() })
}

func TestDisplayAllCancellation(t *testing.T) {
	backend := &fakeBackend{delay: 5 * time.Millisecond}
	s := NewScheduler(backend, WithSyncBatch(1), WithAsyncBatch(1))

	ticket := NewTicket()
	s.DisplayAll(makeMappings(50), ticket)
	ticket.Cancel()

	waitFor(t, func() bool { return !s.IsRendering() })
	if got := backend.placedCount(); got >= 50 {
		t.Errorf("placed = %d after cancellation, want fewer than 50", got)
	}
}

func TestDisplayAllSupersedesPrevious(t *testing.T) {
	backend := &fakeBackend{delay: 2 * time.Millisecond}
	s := NewScheduler(backend, WithSyncBatch(1), WithAsyncBatch(1))

	first := NewTicket()
	s.DisplayAll(makeMappings(40), first)

	second := NewTicket()
	s.DisplayAll(makeMappings(3), second)

	if !first.Cancelled() {
		t.Error("starting a new render must cancel the previous ticket")
	}
	if second.Cancelled() {
		t.Error("the new ticket must stay live")
	}
	waitFor(t, func() bool { return !s.IsRendering() })
}

func TestRenderFailureSkipsAndContinues(t *testing.T) {
	backend := &fakeBackend{fail: map[string]bool{"L01": true}}
	s := NewScheduler(backend, WithSyncBatch(10))

	s.DisplayAll(makeMappings(4), NewTicket())

	// L01 fails, the remaining three land.
	if got := backend.placedCount(); got != 3 {
		t.Errorf("placed = %d, want 3 (one marker fails)", got)
	}
}

func TestHighlightCandidatesFiltersByPrefix(t *testing.T) {
	backend := &fakeBackend{}
	s := NewScheduler(backend)

	mappings := []hint.Mapping{
		{Label: "A"},
		{Label: "AA"},
		{Label: "AB"},
		{Label: "B"},
	}
	s.HighlightCandidates("A", mappings, NewTicket())

	waitFor(t, func() bool { return backend.placedCount() == 3 })
	waitFor(t, func() bool { return !s.IsRendering() })

	backend.mu.Lock()
	defer backend.mu.Unlock()
	for _, label := range backend.placed {
		if label[0] != 'A' {
			t.Errorf("highlighted label %q does not match prefix A", label)
		}
	}
}

func TestHighlightCandidatesReturnsImmediately(t *testing.T) {
	backend := &fakeBackend{delay: 20 * time.Millisecond}
	s := NewScheduler(backend)

	start := time.Now()
	s.HighlightCandidates("L", makeMappings(10), NewTicket())
	elapsed := time.Since(start)

	// Scheduling must not wait for the render itself (10 markers at
	// 20ms each would take 200ms synchronously).
	if elapsed > 50*time.Millisecond {
		t.Errorf("HighlightCandidates blocked for %v, want immediate return", elapsed)
	}
	waitFor(t, func() bool { return !s.IsRendering() })
}

func TestClearRemovesMarkersAndCancels(t *testing.T) {
	backend := &fakeBackend{}
	s := NewScheduler(backend, WithSyncBatch(10))

	ticket := NewTicket()
	s.DisplayAll(makeMappings(5), ticket)
	s.Clear()

	if !ticket.Cancelled() {
		t.Error("Clear must cancel the current ticket")
	}
	if got := backend.placedCount(); got != 0 {
		t.Errorf("placed = %d after Clear, want 0", got)
	}
}

func TestIsRenderingWhileInFlight(t *testing.T) {
	backend := &fakeBackend{delay: 5 * time.Millisecond}
	s := NewScheduler(backend, WithSyncBatch(1), WithAsyncBatch(1))

	s.DisplayAll(makeMappings(10), NewTicket())
	if !s.IsRendering() {
		t.Error("IsRendering() = false during async batch, want true")
	}
	waitFor(t, func() bool { return !s.IsRendering() })
}
