package renderer

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/hintleap/internal/hint"
)

const (
	// defaultSyncBatch is how many markers DisplayAll renders before
	// handing the remainder to the async path.
	defaultSyncBatch = 18

	// defaultAsyncBatch is the async chunk size. The ticket is
	// checked at every chunk boundary, so one chunk bounds how long
	// a cancelled render can keep drawing.
	defaultAsyncBatch = 8
)

// Scheduler renders hint mappings through a Backend. The first markers
// of a batch are drawn synchronously so the nearest hints appear
// immediately; the rest is rendered in small asynchronous batches with
// cooperative cancellation between them.
type Scheduler struct {
	backend Backend
	logger  *slog.Logger

	syncBatch  int
	asyncBatch int

	markerStyle    Style
	candidateStyle Style

	mu      sync.Mutex
	current *Ticket

	inflight atomic.Int32
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSyncBatch sets the synchronous head size of DisplayAll.
func WithSyncBatch(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.syncBatch = n
		}
	}
}

// WithAsyncBatch sets the asynchronous chunk size.
func WithAsyncBatch(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.asyncBatch = n
		}
	}
}

// WithMarkerStyle sets the style for hint labels.
func WithMarkerStyle(style Style) SchedulerOption {
	return func(s *Scheduler) {
		s.markerStyle = style
	}
}

// WithCandidateStyle sets the style for labels matching a partial
// keystroke sequence.
func WithCandidateStyle(style Style) SchedulerOption {
	return func(s *Scheduler) {
		s.candidateStyle = style
	}
}

// WithLogger sets the scheduler's logger.
func WithLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScheduler creates a Scheduler for the given backend.
func NewScheduler(backend Backend, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		backend:        backend,
		logger:         slog.Default(),
		syncBatch:      defaultSyncBatch,
		asyncBatch:     defaultAsyncBatch,
		markerStyle:    DefaultMarkerStyle(),
		candidateStyle: DefaultCandidateStyle(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// adopt installs ticket as the current render operation, cancelling
// whichever operation held the slot before.
func (s *Scheduler) adopt(ticket *Ticket) {
	s.mu.Lock()
	if s.current != nil && s.current != ticket {
		s.current.Cancel()
	}
	s.current = ticket
	s.mu.Unlock()
}

// Cancel aborts the current render operation, if any.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	if s.current != nil {
		s.current.Cancel()
	}
	s.mu.Unlock()
}

// IsRendering reports whether an asynchronous batch is in flight.
func (s *Scheduler) IsRendering() bool {
	return s.inflight.Load() > 0
}

// DisplayAll renders mappings under the given ticket. The first
// syncBatch markers are drawn before DisplayAll returns, followed by
// one Flush; the remainder renders in background batches that yield
// between chunks and stop at the first cancelled ticket check.
func (s *Scheduler) DisplayAll(mappings []hint.Mapping, ticket *Ticket) {
	s.adopt(ticket)

	head := min(s.syncBatch, len(mappings))
	s.renderChunk(mappings[:head], s.markerStyle, ticket)
	s.flush()

	rest := mappings[head:]
	if len(rest) == 0 || ticket.Cancelled() {
		return
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Add(-1)
		s.renderBatches(rest, s.markerStyle, ticket)
	}()
}

// HighlightCandidates re-renders the mappings whose label starts with
// partial, using the candidate style. It schedules the work and
// returns immediately; callers must not wait on it before reading the
// next keystroke.
func (s *Scheduler) HighlightCandidates(partial string, mappings []hint.Mapping, ticket *Ticket) {
	s.adopt(ticket)

	want := strings.ToUpper(partial)
	matched := make([]hint.Mapping, 0, len(mappings))
	for _, m := range mappings {
		if strings.HasPrefix(strings.ToUpper(m.Label), want) {
			matched = append(matched, m)
		}
	}
	if len(matched) == 0 {
		return
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Add(-1)
		s.renderBatches(matched, s.candidateStyle, ticket)
	}()
}

// renderBatches draws mappings in asyncBatch-sized chunks, flushing
// after each and checking the ticket at every chunk boundary.
func (s *Scheduler) renderBatches(mappings []hint.Mapping, style Style, ticket *Ticket) {
	for start := 0; start < len(mappings); start += s.asyncBatch {
		if ticket.Cancelled() {
			return
		}
		end := min(start+s.asyncBatch, len(mappings))
		s.renderChunk(mappings[start:end], style, ticket)
		s.flush()
	}
}

// renderChunk draws one chunk of markers. Individual failures are
// logged and skipped; rendering is best effort.
func (s *Scheduler) renderChunk(mappings []hint.Mapping, style Style, ticket *Ticket) {
	for _, m := range mappings {
		if ticket.Cancelled() {
			return
		}
		if err := s.backend.PlaceMarker(m.RenderLine, m.RenderCol, m.Label, style); err != nil {
			s.logger.Warn("hint marker render failed",
				"label", m.Label,
				"line", m.RenderLine,
				"col", m.RenderCol,
				"error", err)
		}
	}
}

func (s *Scheduler) flush() {
	if err := s.backend.Flush(); err != nil {
		s.logger.Warn("render flush failed", "error", err)
	}
}

// Clear cancels the current operation and removes all markers.
func (s *Scheduler) Clear() {
	s.Cancel()
	if err := s.backend.ClearAll(); err != nil {
		s.logger.Warn("marker clear failed", "error", err)
	}
	s.flush()
}
