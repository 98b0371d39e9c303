package motion

import (
	"sync"
	"testing"
	"time"
)

// runCounter tracks pipeline runs and which request produced them.
type runCounter struct {
	mu   sync.Mutex
	runs []int
	gate chan struct{}
}

func (c *runCounter) fn(id int) func() {
	return func() {
		if c.gate != nil {
			<-c.gate
		}
		c.mu.Lock()
		c.runs = append(c.runs, id)
		c.mu.Unlock()
	}
}

func (c *runCounter) snapshot() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int, len(c.runs))
	copy(out, c.runs)
	return out
}

func waitRuns(t *testing.T, c *runCounter, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(c.snapshot()) >= n {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("wanted %d runs, got %v", n, c.snapshot())
}

func TestDebouncerRunsOnce(t *testing.T) {
	c := &runCounter{}
	d := NewDebouncer(10 * time.Millisecond)

	d.Do(c.fn(1))
	waitRuns(t, c, 1)

	time.Sleep(50 * time.Millisecond)
	if got := c.snapshot(); len(got) != 1 {
		t.Errorf("runs = %v, want exactly one", got)
	}
}

func TestDebouncerCoalescesBurst(t *testing.T) {
	c := &runCounter{}
	d := NewDebouncer(30 * time.Millisecond)

	// A burst within the delay window collapses to one run carrying
	// the most recent request.
	d.Do(c.fn(1))
	d.Do(c.fn(2))
	d.Do(c.fn(3))
	waitRuns(t, c, 1)

	if got := c.snapshot(); len(got) != 1 || got[0] != 3 {
		t.Errorf("runs = %v, want [3]", got)
	}
}

func TestDebouncerOneTrailingRun(t *testing.T) {
	c := &runCounter{gate: make(chan struct{})}
	d := NewDebouncer(0)

	d.Do(c.fn(1))

	// Wait for run 1 to start, then pile on requests while it is
	// blocked. They must coalesce into a single trailing run with
	// the latest context.
	deadline := time.Now().Add(time.Second)
	for !d.Busy() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	d.Do(c.fn(2))
	d.Do(c.fn(3))
	d.Do(c.fn(4))

	c.gate <- struct{}{} // release run 1
	c.gate <- struct{}{} // release the trailing run
	waitRuns(t, c, 2)

	time.Sleep(30 * time.Millisecond)
	got := c.snapshot()
	if len(got) != 2 {
		t.Fatalf("runs = %v, want exactly two", got)
	}
	if got[0] != 1 || got[1] != 4 {
		t.Errorf("runs = %v, want [1 4]", got)
	}
}

func TestDebouncerStopDropsPending(t *testing.T) {
	c := &runCounter{}
	d := NewDebouncer(50 * time.Millisecond)

	d.Do(c.fn(1))
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	if got := c.snapshot(); len(got) != 0 {
		t.Errorf("runs = %v after Stop, want none", got)
	}
}
