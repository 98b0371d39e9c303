package hint

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Session owns the hint mappings of the current interaction. A session
// is visible exactly while it holds mappings; clearing it hides the
// hints. The engine guarantees at most one visible session at a time.
type Session struct {
	id string

	mu       sync.Mutex
	mappings []Mapping
}

// NewSession creates a session owning the given mappings.
func NewSession(mappings []Mapping) *Session {
	return &Session{
		id:       uuid.NewString(),
		mappings: mappings,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Mappings returns the session's current mappings.
func (s *Session) Mappings() []Mapping {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mappings
}

// Visible reports whether the session has hints on screen.
// Visibility is derived from the mapping set: non-empty means visible.
func (s *Session) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.mappings) > 0
}

// Clear destroys the session's mappings, hiding it. Clearing an
// already-cleared session is a no-op.
func (s *Session) Clear() {
	s.mu.Lock()
	s.mappings = nil
	s.mu.Unlock()
}

// CandidatesFor returns the mappings whose label starts with prefix.
// Matching ignores case, so labels generated from lowercase key rows
// stay reachable from the uppercased keystroke prefix.
func (s *Session) CandidatesFor(prefix string) []Mapping {
	s.mu.Lock()
	defer s.mu.Unlock()

	want := strings.ToUpper(prefix)
	var out []Mapping
	for _, m := range s.mappings {
		if strings.HasPrefix(strings.ToUpper(m.Label), want) {
			out = append(out, m)
		}
	}
	return out
}

// Find returns the mapping whose label equals label, ignoring case.
func (s *Session) Find(label string) (Mapping, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.mappings {
		if strings.EqualFold(m.Label, label) {
			return m, true
		}
	}
	return Mapping{}, false
}
