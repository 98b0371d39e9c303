package renderer

import "sync"

// MatchFunc registers one highlight region with the host and returns
// a host-assigned match ID. It mirrors the legacy match-highlight API
// of Vim-like hosts (matchaddpos).
type MatchFunc func(line, col, length int, style Style) (int, error)

// ClearMatchesFunc removes previously registered match IDs.
type ClearMatchesFunc func(ids []int) error

// MatchHighlight is a Backend for hosts without a batched marker API.
// Each marker becomes one host highlight region; ClearAll removes the
// accumulated regions in a single call.
type MatchHighlight struct {
	add   MatchFunc
	clear ClearMatchesFunc

	mu  sync.Mutex
	ids []int
}

// NewMatchHighlight creates a legacy match-highlight backend.
func NewMatchHighlight(add MatchFunc, clear ClearMatchesFunc) *MatchHighlight {
	return &MatchHighlight{add: add, clear: clear}
}

// PlaceMarker registers a highlight region covering the label.
func (m *MatchHighlight) PlaceMarker(line, col int, label string, style Style) error {
	id, err := m.add(line, col, len(label), style)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.ids = append(m.ids, id)
	m.mu.Unlock()
	return nil
}

// ClearAll removes every region registered since the last clear.
// Calling it with no regions registered is a no-op.
func (m *MatchHighlight) ClearAll() error {
	m.mu.Lock()
	ids := m.ids
	m.ids = nil
	m.mu.Unlock()

	if len(ids) == 0 {
		return nil
	}
	return m.clear(ids)
}

// Flush is a no-op: the legacy API applies highlights immediately.
func (m *MatchHighlight) Flush() error {
	return nil
}
