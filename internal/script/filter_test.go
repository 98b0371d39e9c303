package script

import (
	"testing"

	"github.com/dshills/hintleap/internal/words"
)

func testWords() []words.Word {
	return []words.Word{
		{Text: "short", Line: 1, Col: 0},
		{Text: "a", Line: 2, Col: 0},
		{Text: "longer_word", Line: 3, Col: 4},
	}
}

func TestFilterNoPredicatePassesAll(t *testing.T) {
	f := NewFilter(nil)
	defer f.Close()

	got := f.Apply(testWords())
	if len(got) != 3 {
		t.Errorf("len(words) = %d with no predicate, want 3", len(got))
	}
}

func TestFilterPredicate(t *testing.T) {
	f := NewFilter(nil)
	defer f.Close()

	err := f.Load(`return function(text, line, col) return #text > 2 end`)
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	got := f.Apply(testWords())
	if len(got) != 2 {
		t.Fatalf("len(words) = %d, want 2", len(got))
	}
	for _, w := range got {
		if len(w.Text) <= 2 {
			t.Errorf("word %q survived the length predicate", w.Text)
		}
	}
}

func TestFilterSeesPosition(t *testing.T) {
	f := NewFilter(nil)
	defer f.Close()

	if err := f.Load(`return function(text, line, col) return line >= 2 end`); err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	got := f.Apply(testWords())
	if len(got) != 2 {
		t.Fatalf("len(words) = %d, want 2", len(got))
	}
	if got[0].Line != 2 || got[1].Line != 3 {
		t.Errorf("kept lines = %d,%d; want 2,3", got[0].Line, got[1].Line)
	}
}

func TestFilterLoadRejectsNonFunction(t *testing.T) {
	f := NewFilter(nil)
	defer f.Close()

	if err := f.Load(`return 42`); err == nil {
		t.Error("Load() = nil for non-function chunk, want error")
	}
	if err := f.Load(`this is not lua`); err == nil {
		t.Error("Load() = nil for invalid Lua, want error")
	}
}

func TestFilterScriptErrorFailsOpen(t *testing.T) {
	f := NewFilter(nil)
	defer f.Close()

	if err := f.Load(`return function(text, line, col) error("boom") end`); err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	// Every call errors; every word must survive.
	got := f.Apply(testWords())
	if len(got) != 3 {
		t.Errorf("len(words) = %d with failing script, want 3", len(got))
	}
}

func TestFilteredSource(t *testing.T) {
	f := NewFilter(nil)
	defer f.Close()
	if err := f.Load(`return function(text, line, col) return text ~= "skip" end`); err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	base := words.NewRegexSource(nil, 0)
	src := NewFilteredSource(base, f)

	got := src.DetectWords(words.Viewport{Lines: []string{"keep skip keep"}})
	if len(got) != 2 {
		t.Fatalf("len(words) = %d, want 2", len(got))
	}
	for _, w := range got {
		if w.Text == "skip" {
			t.Error("filtered word leaked through FilteredSource")
		}
	}
}
