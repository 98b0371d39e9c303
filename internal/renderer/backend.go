// Package renderer drives a render backend through a hybrid
// sync-first/async-rest batching protocol with cooperative, ticket
// based cancellation.
package renderer

// Color is a 24-bit RGB color, or ColorDefault for the terminal
// default.
type Color int32

// ColorDefault leaves the cell's color untouched.
const ColorDefault Color = -1

// ColorFromRGB builds a Color from components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color(int32(r)<<16 | int32(g)<<8 | int32(b))
}

// RGB returns the color components. Only meaningful for non-default
// colors.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Style is the visual style of a hint marker.
type Style struct {
	Foreground Color
	Background Color
	Bold       bool
}

// DefaultMarkerStyle is the style used for hint labels when the host
// does not configure one.
func DefaultMarkerStyle() Style {
	return Style{
		Foreground: ColorFromRGB(0, 0, 0),
		Background: ColorFromRGB(255, 215, 0),
		Bold:       true,
	}
}

// DefaultCandidateStyle highlights the labels still matching a partial
// keystroke sequence.
func DefaultCandidateStyle() Style {
	return Style{
		Foreground: ColorFromRGB(0, 0, 0),
		Background: ColorFromRGB(0, 255, 135),
		Bold:       true,
	}
}

// Backend renders hint markers. The scheduler depends only on this
// abstraction; concrete backends adapt it to a host's drawing API.
type Backend interface {
	// PlaceMarker draws label at the given buffer position.
	PlaceMarker(line, col int, label string, style Style) error

	// ClearAll removes every marker placed by this backend.
	ClearAll() error

	// Flush makes previously placed markers visible. The scheduler
	// issues one Flush after the synchronous head of a batch and one
	// after each asynchronous batch.
	Flush() error
}
