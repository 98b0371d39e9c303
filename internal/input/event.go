// Package input provides the keystroke boundary of the hint engine:
// a blocking single-keystroke source, a re-injection hook for keys
// the engine declines to consume, and the interactive resolver that
// disambiguates typed hint labels.
package input

import (
	"time"
	"unicode"
)

// Key identifies a pressed key.
type Key int

const (
	// KeyNone is the zero Event key.
	KeyNone Key = iota

	// KeyRune is a character key; the character is in Event.Rune.
	KeyRune

	KeyEscape
	KeyEnter
	KeyBackspace
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Timestamp time.Time
}

// NewRuneEvent creates an event for a character key.
func NewRuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r, Timestamp: time.Now()}
}

// NewSpecialEvent creates an event for a non-character key.
func NewSpecialEvent(key Key) Event {
	return Event{Key: key, Timestamp: time.Now()}
}

// IsRune returns true for character key events.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsEscape returns true for the Escape key.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape
}

// IsLowerLetter returns true for a lowercase letter character. The
// resolver treats such keys as ordinary navigation input rather than
// hint characters.
func (e Event) IsLowerLetter() bool {
	return e.IsRune() && unicode.IsLower(e.Rune)
}

// String returns a short description for logs.
func (e Event) String() string {
	switch e.Key {
	case KeyRune:
		return string(e.Rune)
	case KeyEscape:
		return "Esc"
	case KeyEnter:
		return "Enter"
	case KeyBackspace:
		return "BS"
	default:
		return "None"
	}
}
