// Package engine coordinates the hint pipeline: motion tracking
// decides when to trigger, words are detected and assigned labels,
// the scheduler renders them, and the resolver consumes keystrokes
// until a jump or cancellation. The engine owns the single active
// session; starting a new cycle always retires the previous one
// first.
package engine

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dshills/hintleap/internal/config"
	"github.com/dshills/hintleap/internal/hint"
	"github.com/dshills/hintleap/internal/input"
	"github.com/dshills/hintleap/internal/motion"
	"github.com/dshills/hintleap/internal/renderer"
	"github.com/dshills/hintleap/internal/words"
)

// Context is the host state captured at trigger time. When several
// triggers coalesce, the most recent context wins.
type Context struct {
	Viewport words.Viewport
	Cursor   words.Position
	Mode     hint.Mode
}

// Deps are the collaborators an Engine is constructed with. Words,
// Backend, Keys, and Mover are required; Injector and Logger are
// optional.
type Deps struct {
	// Words detects candidate words in the host viewport.
	Words words.Source

	// Backend renders hint markers.
	Backend renderer.Backend

	// Keys is the blocking keystroke source consumed while hints
	// are visible.
	Keys input.Source

	// Mover jumps the host cursor.
	Mover input.CursorMover

	// Injector re-injects pass-through keys into ordinary host
	// input handling.
	Injector input.Injector

	Logger *slog.Logger
}

// Engine is the motion-triggered hint controller.
type Engine struct {
	logger *slog.Logger

	source    words.Source
	scheduler *renderer.Scheduler
	resolver  *input.Resolver
	assigner  *hint.Assigner
	debouncer *motion.Debouncer

	mu      sync.Mutex
	cfg     config.Config
	tracker *motion.Tracker
	repeat  *motion.RepeatDetector
	session *hint.Session
	ticket  *renderer.Ticket
}

// New creates an Engine. The configuration is validated up front: an
// invalid configuration never starts a session.
func New(cfg config.Config, deps Deps) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Words == nil || deps.Backend == nil || deps.Keys == nil || deps.Mover == nil {
		return nil, errors.New("engine requires word source, render backend, keystroke source, and cursor mover")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	scheduler := renderer.NewScheduler(deps.Backend, renderer.WithLogger(logger))

	var resolverOpts []input.ResolverOption
	if deps.Injector != nil {
		resolverOpts = append(resolverOpts, input.WithInjector(deps.Injector))
	}
	resolverOpts = append(resolverOpts,
		input.WithResolverLogger(logger),
		input.WithCandidateHighlight(cfg.HighlightSelected))

	e := &Engine{
		logger:    logger,
		source:    deps.Words,
		scheduler: scheduler,
		resolver:  input.NewResolver(deps.Keys, deps.Mover, scheduler, resolverOpts...),
		assigner:  hint.NewAssigner(),
		debouncer: motion.NewDebouncer(cfg.DebounceDelay()),
		cfg:       cfg,
	}
	e.applyConfigLocked(cfg)
	return e, nil
}

// applyConfigLocked rebuilds the motion state for cfg. Caller holds
// e.mu or has exclusive access.
func (e *Engine) applyConfigLocked(cfg config.Config) {
	e.cfg = cfg
	e.tracker = motion.NewTracker(motion.TrackerConfig{
		DefaultCount: cfg.DefaultMotionCount,
		PerKeyCount:  cfg.PerKeyMotionCount,
		Timeout:      cfg.MotionTimeout(),
	})
	e.repeat = motion.NewRepeatDetector(cfg.KeyRepeatThreshold(), cfg.KeyRepeatResetDelay())
	e.resolver.SetCandidateHighlight(cfg.HighlightSelected)
}

// SetConfig swaps in a new validated configuration, resetting motion
// counters. Used by the config file watcher for live reload.
func (e *Engine) SetConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	e.applyConfigLocked(cfg)
	e.mu.Unlock()
	e.logger.Info("configuration reloaded")
	return nil
}

// Config returns the current configuration.
func (e *Engine) Config() config.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Active reports whether a hint session is currently visible. Hosts
// route key events into the engine's keystroke source while active.
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session != nil && e.session.Visible()
}

// HandleKey records one press of a navigation key. When the key
// reaches its required count the hint pipeline is triggered with ctx,
// unless the press stream is classified as keyboard auto-repeat and
// suppression is enabled. Overlapping triggers are debounced: at most
// one run is queued behind the one in progress, carrying the latest
// context.
func (e *Engine) HandleKey(key string, ctx Context) {
	e.mu.Lock()
	repeating := e.repeat.Observe(time.Now())
	fired := e.tracker.Press(key)
	suppress := repeating && e.cfg.SuppressOnKeyRepeat
	e.mu.Unlock()

	if !fired {
		return
	}
	if suppress {
		e.logger.Debug("hint trigger suppressed during key repeat", "key", key)
		return
	}
	e.debouncer.Do(func() { e.run(ctx) })
}

// Trigger runs the pipeline immediately, bypassing motion counting.
// Exposed for host commands that show hints on demand.
func (e *Engine) Trigger(ctx Context) {
	e.debouncer.Do(func() { e.run(ctx) })
}

// run executes one full hint cycle: detect, assign, display, resolve.
func (e *Engine) run(ctx Context) {
	detected := e.source.DetectWords(ctx.Viewport)
	if len(detected) == 0 {
		return
	}

	e.mu.Lock()
	cfg := e.cfg
	e.mu.Unlock()

	labels := hint.Generate(len(detected), cfg.LabelConfig())
	pos := hint.LabelStart
	if cfg.HintPosition == "end" {
		pos = hint.LabelEnd
	}
	mappings := e.assigner.Assign(ctx.Mode, detected, labels, ctx.Cursor, hint.Options{
		Direction:    hint.ParseDirection(cfg.DirectionalFilter),
		SkipAdjacent: cfg.SkipAdjacent,
		Position:     pos,
	})
	if len(mappings) == 0 {
		return
	}

	// One visible session at a time: retire the previous cycle
	// before the new hints go up.
	e.Hide()

	session := hint.NewSession(mappings)
	ticket := renderer.NewTicket()
	e.mu.Lock()
	e.session = session
	e.ticket = ticket
	e.mu.Unlock()

	e.scheduler.DisplayAll(mappings, ticket)

	res := e.resolver.Resolve(session)
	switch res.Outcome {
	case input.OutcomeJumped:
		e.logger.Debug("hint jump",
			"label", res.Mapping.Label,
			"line", res.Mapping.Word.Line,
			"col", res.Mapping.Word.Col)
	case input.OutcomePassthrough:
		e.logger.Debug("hint key passed through", "key", res.Passthrough.String())
	}

	e.Hide()
}

// Hide retires the current session: the render ticket is cancelled,
// the session cleared, and all markers removed. Hiding with no active
// session is a no-op, so Hide is idempotent.
func (e *Engine) Hide() {
	e.mu.Lock()
	session, ticket := e.session, e.ticket
	e.session, e.ticket = nil, nil
	e.mu.Unlock()

	if ticket != nil {
		ticket.Cancel()
	}
	if session != nil {
		session.Clear()
	}
	if session != nil || ticket != nil {
		e.scheduler.Clear()
	}
}

// Shutdown stops pending work. The engine must not be used after.
func (e *Engine) Shutdown() {
	e.debouncer.Stop()
	e.Hide()
}
