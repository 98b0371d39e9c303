// Package words defines the word-source boundary for the hint engine.
//
// Tokenization itself lives on the host side: an editor supplies a
// Source that scans its viewport and returns candidate words. The
// package also ships a small regex-based Source so the demo binary
// (and tests) can run without a host editor.
package words

import "regexp"

// Position is a line/column location in the host buffer.
// Lines and columns are zero-based.
type Position struct {
	Line int
	Col  int
}

// Word is a navigable token detected in the viewport.
// Words are immutable once produced by a Source.
type Word struct {
	// Text is the token text as it appears in the buffer.
	Text string

	// Line is the zero-based buffer line of the first character.
	Line int

	// Col is the zero-based column of the first character.
	Col int
}

// Position returns the word's start position.
func (w Word) Position() Position {
	return Position{Line: w.Line, Col: w.Col}
}

// Viewport is the visible slice of the host buffer.
type Viewport struct {
	// Top is the buffer line number of Lines[0].
	Top int

	// Lines holds the visible line contents, top to bottom.
	Lines []string
}

// Source detects candidate words in a viewport.
// Implementations must be safe for repeated calls; the engine may
// invoke DetectWords on every triggered motion.
type Source interface {
	DetectWords(vp Viewport) []Word
}

// defaultPattern matches runs of word characters.
var defaultPattern = regexp.MustCompile(`[A-Za-z0-9_]+`)

// RegexSource is a built-in Source that scans viewport lines with a
// regular expression. Hosts with real tokenizers should supply their
// own Source instead.
type RegexSource struct {
	pattern *regexp.Regexp

	// MinLength drops words shorter than this many bytes.
	// Zero means no minimum.
	MinLength int
}

// NewRegexSource creates a RegexSource. A nil pattern uses the default
// word-character pattern.
func NewRegexSource(pattern *regexp.Regexp, minLength int) *RegexSource {
	if pattern == nil {
		pattern = defaultPattern
	}
	return &RegexSource{pattern: pattern, MinLength: minLength}
}

// DetectWords scans each viewport line for pattern matches.
func (s *RegexSource) DetectWords(vp Viewport) []Word {
	var out []Word
	for i, line := range vp.Lines {
		for _, loc := range s.pattern.FindAllStringIndex(line, -1) {
			text := line[loc[0]:loc[1]]
			if s.MinLength > 0 && len(text) < s.MinLength {
				continue
			}
			out = append(out, Word{
				Text: text,
				Line: vp.Top + i,
				Col:  loc[0],
			})
		}
	}
	return out
}
