package input

import (
	"errors"
	"sync"
)

// ErrSourceClosed is returned by ReadChar once a source has shut down.
var ErrSourceClosed = errors.New("keystroke source closed")

// Source is a blocking single-keystroke read primitive. ReadChar
// blocks the calling goroutine until a key arrives; it never blocks
// other engine work.
type Source interface {
	ReadChar() (Event, error)
}

// Injector re-injects a key into the host's ordinary input handling.
// Used when the resolver cancels on a pass-through key so the
// keystroke is not lost.
type Injector interface {
	InjectKey(ev Event) error
}

// CursorMover moves the host cursor to a buffer position.
type CursorMover interface {
	MoveCursor(line, col int) error
}

// ChanSource is a Source fed by a channel. The host's event loop
// forwards key events into the channel while a hint session is
// active.
type ChanSource struct {
	ch chan Event

	mu     sync.Mutex
	closed bool
}

// NewChanSource creates a ChanSource with a small buffer so the host
// event loop never blocks on a slow reader.
func NewChanSource() *ChanSource {
	return &ChanSource{ch: make(chan Event, 16)}
}

// Feed delivers a key event to the reader. Returns false if the
// source is closed or the buffer is full (the event is dropped rather
// than blocking the host).
func (s *ChanSource) Feed(ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- ev:
		return true
	default:
		return false
	}
}

// ReadChar blocks until an event is fed or the source closes.
func (s *ChanSource) ReadChar() (Event, error) {
	ev, ok := <-s.ch
	if !ok {
		return Event{}, ErrSourceClosed
	}
	return ev, nil
}

// Close shuts the source down; pending and future reads fail with
// ErrSourceClosed.
func (s *ChanSource) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
