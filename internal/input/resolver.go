package input

import (
	"log/slog"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/dshills/hintleap/internal/hint"
	"github.com/dshills/hintleap/internal/renderer"
)

// Outcome is the terminal state of one resolution run.
type Outcome int

const (
	// OutcomeCancelled means no jump happened; the session should be
	// hidden.
	OutcomeCancelled Outcome = iota

	// OutcomeJumped means the cursor moved to the resolved mapping.
	OutcomeJumped

	// OutcomePassthrough means a non-hint key was forwarded to the
	// host's ordinary input handling before cancelling.
	OutcomePassthrough
)

// Result reports how a resolution run ended.
type Result struct {
	Outcome Outcome

	// Mapping is the resolved target when Outcome is OutcomeJumped.
	Mapping hint.Mapping

	// Passthrough is the forwarded key when Outcome is
	// OutcomePassthrough.
	Passthrough Event
}

// Resolver consumes keystrokes until a hint label is unambiguously
// typed, the user cancels, or a non-hint key passes through. While
// more input is needed it schedules a background highlight of the
// still-matching candidates; the next keystroke is always read
// without waiting for that highlight to finish.
type Resolver struct {
	source    Source
	mover     CursorMover
	scheduler *renderer.Scheduler
	injector  Injector
	logger    *slog.Logger

	// highlight gates the candidate re-render between keystrokes. It
	// is atomic because configuration reloads flip it while a Resolve
	// loop may be blocked reading input.
	highlight atomic.Bool
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithInjector sets the pass-through key injector.
func WithInjector(inj Injector) ResolverOption {
	return func(r *Resolver) { r.injector = inj }
}

// WithCandidateHighlight sets whether still-matching candidates are
// re-rendered after each ambiguous keystroke.
func WithCandidateHighlight(enabled bool) ResolverOption {
	return func(r *Resolver) { r.highlight.Store(enabled) }
}

// WithResolverLogger sets the resolver's logger.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a Resolver. Candidate highlighting is enabled
// unless switched off.
func NewResolver(source Source, mover CursorMover, scheduler *renderer.Scheduler, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		source:    source,
		mover:     mover,
		scheduler: scheduler,
		logger:    slog.Default(),
	}
	r.highlight.Store(true)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetCandidateHighlight enables or disables the candidate re-render
// between keystrokes. Safe to call while a resolution is in progress.
func (r *Resolver) SetCandidateHighlight(enabled bool) {
	r.highlight.Store(enabled)
}

// Resolve runs the disambiguation state machine against session.
// A session without visible hints cancels immediately. Keystroke
// source failures are treated as cancellation, never as fatal
// errors.
func (r *Resolver) Resolve(session *hint.Session) Result {
	if session == nil || !session.Visible() {
		return Result{Outcome: OutcomeCancelled}
	}

	prefix := ""
	for {
		ev, err := r.source.ReadChar()
		if err != nil {
			r.logger.Debug("keystroke read failed", "error", err)
			return Result{Outcome: OutcomeCancelled}
		}

		if ev.IsEscape() {
			return Result{Outcome: OutcomeCancelled}
		}

		// A lowercase letter on the first keystroke is ordinary
		// navigation input, not a hint character. Forward it to the
		// host so the keystroke is not lost, then cancel.
		if prefix == "" && ev.IsLowerLetter() {
			if r.injector != nil {
				if err := r.injector.InjectKey(ev); err != nil {
					r.logger.Warn("key re-injection failed", "key", ev.String(), "error", err)
				}
			}
			return Result{Outcome: OutcomePassthrough, Passthrough: ev}
		}

		if !ev.IsRune() {
			return Result{Outcome: OutcomeCancelled}
		}

		prefix += string(unicode.ToUpper(ev.Rune))
		candidates := session.CandidatesFor(prefix)

		switch {
		case len(candidates) == 0:
			return Result{Outcome: OutcomeCancelled}

		case len(candidates) == 1 && strings.EqualFold(candidates[0].Label, prefix):
			return r.jump(candidates[0])
		}

		// More input needed. Schedule the candidate highlight and go
		// straight back to reading the next keystroke: waiting for
		// the render here would add its full latency to perceived
		// input lag.
		if r.highlight.Load() {
			ticket := renderer.NewTicket()
			r.scheduler.HighlightCandidates(prefix, session.Mappings(), ticket)
		}
	}
}

func (r *Resolver) jump(m hint.Mapping) Result {
	if err := r.mover.MoveCursor(m.Word.Line, m.Word.Col); err != nil {
		r.logger.Warn("cursor move failed",
			"label", m.Label,
			"line", m.Word.Line,
			"col", m.Word.Col,
			"error", err)
		return Result{Outcome: OutcomeCancelled}
	}
	return Result{Outcome: OutcomeJumped, Mapping: m}
}
