package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hintleap/internal/config"
	"github.com/dshills/hintleap/internal/engine"
	"github.com/dshills/hintleap/internal/input"
	"github.com/dshills/hintleap/internal/renderer"
	"github.com/dshills/hintleap/internal/script"
	"github.com/dshills/hintleap/internal/words"
)

// viewer is a minimal read-only file viewer hosting the hint engine.
type viewer struct {
	screen tcell.Screen
	engine *engine.Engine
	keys   *input.ChanSource
	filter *script.Filter
	logger *slog.Logger

	mu    sync.Mutex
	lines []string
	line  int // cursor, buffer coordinates
	col   int
	top   int // first visible buffer line
}

func newViewer(path string, cfg config.Config, logger *slog.Logger) (*viewer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	v := &viewer{
		screen: screen,
		keys:   input.NewChanSource(),
		logger: logger,
		lines:  lines,
	}

	var source words.Source = words.NewRegexSource(nil, cfg.MinWordLength)
	if cfg.WordFilterScript != "" {
		src, err := os.ReadFile(cfg.WordFilterScript)
		if err != nil {
			screen.Fini()
			return nil, fmt.Errorf("open word filter: %w", err)
		}
		v.filter = script.NewFilter(logger)
		if err := v.filter.Load(string(src)); err != nil {
			v.filter.Close()
			screen.Fini()
			return nil, err
		}
		source = script.NewFilteredSource(source, v.filter)
	}

	terminal := renderer.NewTerminal(screen, v.redraw)
	eng, err := engine.New(cfg, engine.Deps{
		Words:    source,
		Backend:  &offsetBackend{viewer: v, inner: terminal},
		Keys:     v.keys,
		Mover:    v,
		Injector: v,
		Logger:   logger,
	})
	if err != nil {
		if v.filter != nil {
			v.filter.Close()
		}
		screen.Fini()
		return nil, err
	}
	v.engine = eng
	return v, nil
}

// Shutdown releases the terminal. Safe after a failed Run.
func (v *viewer) Shutdown() {
	v.engine.Shutdown()
	v.keys.Close()
	if v.filter != nil {
		v.filter.Close()
	}
	v.screen.Fini()
}

// Run drives the event loop until quit.
func (v *viewer) Run() error {
	v.redraw()
	v.screen.Show()

	for {
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
			v.redraw()
			v.screen.Show()
		case *tcell.EventKey:
			// While hints are visible, every key belongs to the
			// resolver.
			if v.engine.Active() {
				v.keys.Feed(translateKey(ev))
				continue
			}
			if done := v.handleNavKey(ev); done {
				return nil
			}
		}
	}
}

// handleNavKey processes one key in normal navigation. Returns true
// on quit.
func (v *viewer) handleNavKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.moveBy(-1, 0)
		return false
	case tcell.KeyDown:
		v.moveBy(1, 0)
		return false
	case tcell.KeyLeft:
		v.moveBy(0, -1)
		return false
	case tcell.KeyRight:
		v.moveBy(0, 1)
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'h':
		v.moveBy(0, -1)
		v.engine.HandleKey("h", v.context())
	case 'j':
		v.moveBy(1, 0)
		v.engine.HandleKey("j", v.context())
	case 'k':
		v.moveBy(-1, 0)
		v.engine.HandleKey("k", v.context())
	case 'l':
		v.moveBy(0, 1)
		v.engine.HandleKey("l", v.context())
	}
	return false
}

// InjectKey re-applies a key the resolver declined to consume, so a
// navigation keystroke typed at the hint prompt is not lost.
func (v *viewer) InjectKey(ev input.Event) error {
	if !ev.IsRune() {
		return nil
	}
	switch ev.Rune {
	case 'h':
		v.moveBy(0, -1)
	case 'j':
		v.moveBy(1, 0)
	case 'k':
		v.moveBy(-1, 0)
	case 'l':
		v.moveBy(0, 1)
	}
	return nil
}

// MoveCursor jumps to a buffer position.
func (v *viewer) MoveCursor(line, col int) error {
	v.mu.Lock()
	v.line, v.col = line, col
	v.clampLocked()
	v.mu.Unlock()

	v.redraw()
	v.screen.Show()
	return nil
}

func (v *viewer) moveBy(dl, dc int) {
	v.mu.Lock()
	v.line += dl
	v.col += dc
	v.clampLocked()
	v.mu.Unlock()

	v.redraw()
	v.screen.Show()
}

// clampLocked keeps the cursor inside the buffer and scrolls it into
// view. Caller holds v.mu.
func (v *viewer) clampLocked() {
	if v.line < 0 {
		v.line = 0
	}
	if v.line >= len(v.lines) {
		v.line = len(v.lines) - 1
	}
	if v.col < 0 {
		v.col = 0
	}
	if max := len(v.lines[v.line]); v.col > max {
		v.col = max
	}

	_, height := v.screen.Size()
	if height < 1 {
		height = 1
	}
	if v.line < v.top {
		v.top = v.line
	}
	if v.line >= v.top+height {
		v.top = v.line - height + 1
	}
}

// context captures the current viewport and cursor for a trigger.
func (v *viewer) context() engine.Context {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, height := v.screen.Size()
	end := min(v.top+height, len(v.lines))
	visible := make([]string, end-v.top)
	copy(visible, v.lines[v.top:end])

	return engine.Context{
		Viewport: words.Viewport{Top: v.top, Lines: visible},
		Cursor:   words.Position{Line: v.line, Col: v.col},
		Mode:     "normal",
	}
}

// redraw repaints the file content. It does not Show; callers flush
// when their batch is complete.
func (v *viewer) redraw() {
	v.mu.Lock()
	top, line, col := v.top, v.line, v.col
	lines := v.lines
	v.mu.Unlock()

	width, height := v.screen.Size()
	style := tcell.StyleDefault
	for row := 0; row < height; row++ {
		text := ""
		if top+row < len(lines) {
			text = lines[top+row]
		}
		x := 0
		for _, r := range text {
			if x >= width {
				break
			}
			v.screen.SetContent(x, row, r, nil, style)
			x++
		}
		for ; x < width; x++ {
			v.screen.SetContent(x, row, ' ', nil, style)
		}
	}
	v.screen.ShowCursor(col, line-top)
}

// offsetBackend translates the engine's buffer coordinates into
// screen rows before handing markers to the terminal backend.
type offsetBackend struct {
	viewer *viewer
	inner  *renderer.Terminal
}

func (b *offsetBackend) PlaceMarker(line, col int, label string, style renderer.Style) error {
	b.viewer.mu.Lock()
	top := b.viewer.top
	b.viewer.mu.Unlock()

	row := line - top
	if row < 0 {
		return fmt.Errorf("marker line %d above viewport", line)
	}
	return b.inner.PlaceMarker(row, col, label, style)
}

func (b *offsetBackend) ClearAll() error {
	return b.inner.ClearAll()
}

func (b *offsetBackend) Flush() error {
	return b.inner.Flush()
}

// translateKey converts a tcell key event for the resolver.
func translateKey(ev *tcell.EventKey) input.Event {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.NewSpecialEvent(input.KeyEscape)
	case tcell.KeyEnter:
		return input.NewSpecialEvent(input.KeyEnter)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.NewSpecialEvent(input.KeyBackspace)
	case tcell.KeyRune:
		return input.NewRuneEvent(ev.Rune())
	default:
		return input.Event{}
	}
}
