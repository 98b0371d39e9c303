package hint

import (
	"sort"
	"sync"

	"github.com/dshills/hintleap/internal/words"
)

// Mode identifies the host interaction mode an assignment was computed
// for (e.g. "normal", "visual"). Assignments are cached per mode.
type Mode string

// Direction restricts candidate words relative to the cursor.
type Direction int

const (
	// DirectionNone keeps all candidate words.
	DirectionNone Direction = iota

	// DirectionUp keeps words at or before the cursor.
	DirectionUp

	// DirectionDown keeps words at or after the cursor.
	DirectionDown
)

// ParseDirection maps a configuration string to a Direction.
// Unknown values fall back to DirectionNone.
func ParseDirection(s string) Direction {
	switch s {
	case "up":
		return DirectionUp
	case "down":
		return DirectionDown
	default:
		return DirectionNone
	}
}

// LabelPosition selects where a hint label is rendered relative to its
// word.
type LabelPosition int

const (
	// LabelStart renders the label over the word's first character.
	LabelStart LabelPosition = iota

	// LabelEnd renders the label over the word's last character.
	LabelEnd
)

// Mapping binds one word to one hint label for the current session.
type Mapping struct {
	Word  words.Word
	Label string

	// RenderLine/RenderCol is where the label overlay is drawn.
	RenderLine int
	RenderCol  int
}

// Options control one assignment pass.
type Options struct {
	Direction Direction

	// SkipAdjacent drops candidates immediately adjacent to an
	// already-ranked word to reduce visual clutter.
	SkipAdjacent bool

	Position LabelPosition
}

// Assigner maps detected words to labels, nearest-first. Results are
// cached per mode so computing one mode's assignment never touches
// another mode's cache.
type Assigner struct {
	mu    sync.Mutex
	cache map[Mode][]Mapping
}

// NewAssigner creates an empty Assigner.
func NewAssigner() *Assigner {
	return &Assigner{cache: make(map[Mode][]Mapping)}
}

// Assign ranks ws by distance from cursor and pairs them with labels
// in allocator order. Words beyond len(labels) receive no hint. The
// result is stored in the mode's cache slot.
func (a *Assigner) Assign(mode Mode, ws []words.Word, labels []string, cursor words.Position, opts Options) []Mapping {
	candidates := filterDirection(ws, cursor, opts.Direction)
	ranked := rankByDistance(candidates, cursor)
	if opts.SkipAdjacent {
		ranked = dropAdjacent(ranked)
	}

	n := min(len(ranked), len(labels))
	mappings := make([]Mapping, 0, n)
	for i := 0; i < n; i++ {
		w := ranked[i]
		line, col := w.Line, w.Col
		if opts.Position == LabelEnd && len(w.Text) > 0 {
			col = w.Col + len(w.Text) - 1
		}
		mappings = append(mappings, Mapping{
			Word:       w,
			Label:      labels[i],
			RenderLine: line,
			RenderCol:  col,
		})
	}

	a.mu.Lock()
	a.cache[mode] = mappings
	a.mu.Unlock()
	return mappings
}

// Cached returns the last assignment computed for mode, if any.
func (a *Assigner) Cached(mode Mode) ([]Mapping, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	m, ok := a.cache[mode]
	return m, ok
}

// Invalidate clears one mode's cache slot without touching others.
func (a *Assigner) Invalidate(mode Mode) {
	a.mu.Lock()
	delete(a.cache, mode)
	a.mu.Unlock()
}

// InvalidateAll clears every mode's cache slot.
func (a *Assigner) InvalidateAll() {
	a.mu.Lock()
	a.cache = make(map[Mode][]Mapping)
	a.mu.Unlock()
}

// filterDirection narrows ws to the cursor side selected by dir.
// DirectionDown keeps words strictly below the cursor line plus words
// on the cursor line at or after the cursor column; DirectionUp is the
// mirror condition.
func filterDirection(ws []words.Word, cursor words.Position, dir Direction) []words.Word {
	if dir == DirectionNone {
		return ws
	}
	out := make([]words.Word, 0, len(ws))
	for _, w := range ws {
		switch dir {
		case DirectionDown:
			if w.Line > cursor.Line || (w.Line == cursor.Line && w.Col >= cursor.Col) {
				out = append(out, w)
			}
		case DirectionUp:
			if w.Line < cursor.Line || (w.Line == cursor.Line && w.Col <= cursor.Col) {
				out = append(out, w)
			}
		}
	}
	return out
}

// rankByDistance sorts ws by line delta from the cursor, then column
// delta. The sort is stable so equally distant words keep detection
// order.
func rankByDistance(ws []words.Word, cursor words.Position) []words.Word {
	ranked := make([]words.Word, len(ws))
	copy(ranked, ws)
	sort.SliceStable(ranked, func(i, j int) bool {
		di := abs(ranked[i].Line - cursor.Line)
		dj := abs(ranked[j].Line - cursor.Line)
		if di != dj {
			return di < dj
		}
		return abs(ranked[i].Col-cursor.Col) < abs(ranked[j].Col-cursor.Col)
	})
	return ranked
}

// dropAdjacent removes words that directly abut (or sit one column
// from) a word already accepted in rank order.
func dropAdjacent(ranked []words.Word) []words.Word {
	out := make([]words.Word, 0, len(ranked))
	for _, w := range ranked {
		adjacent := false
		for _, kept := range out {
			if w.Line != kept.Line {
				continue
			}
			if gap(kept, w) <= 1 {
				adjacent = true
				break
			}
		}
		if !adjacent {
			out = append(out, w)
		}
	}
	return out
}

// gap returns the column distance between two words on the same line,
// measured between their closest edges. Overlapping words report 0.
func gap(a, b words.Word) int {
	if a.Col > b.Col {
		a, b = b, a
	}
	end := a.Col + len(a.Text)
	if b.Col <= end {
		return 0
	}
	return b.Col - end
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
