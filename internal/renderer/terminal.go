package renderer

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal is a Backend that draws markers directly onto a tcell
// screen. Line and column are screen coordinates; the host translates
// buffer positions before handing mappings to the scheduler.
type Terminal struct {
	mu      sync.Mutex
	screen  tcell.Screen
	restore func()
}

// NewTerminal creates a tcell marker backend. The restore callback
// repaints the base content beneath the markers; ClearAll invokes it
// to erase the overlay.
func NewTerminal(screen tcell.Screen, restore func()) *Terminal {
	return &Terminal{screen: screen, restore: restore}
}

// PlaceMarker writes the label's characters starting at (col, line).
func (t *Terminal) PlaceMarker(line, col int, label string, style Style) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := convertStyle(style)
	x := col
	for _, r := range label {
		t.screen.SetContent(x, line, r, nil, st)
		x++
	}
	return nil
}

// ClearAll repaints the base content, erasing every marker.
func (t *Terminal) ClearAll() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.restore != nil {
		t.restore()
	}
	return nil
}

// Flush pushes pending screen updates to the terminal.
func (t *Terminal) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
	return nil
}

func convertStyle(style Style) tcell.Style {
	st := tcell.StyleDefault
	if style.Foreground != ColorDefault {
		r, g, b := style.Foreground.RGB()
		st = st.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}
	if style.Background != ColorDefault {
		r, g, b := style.Background.RGB()
		st = st.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}
	if style.Bold {
		st = st.Bold(true)
	}
	return st
}
