// Package script hosts optional user scripting for the hint engine.
// A Lua chunk can prune candidate words before labels are assigned,
// for hosts that want programmable filtering without recompiling.
package script

import (
	"fmt"
	"log/slog"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hintleap/internal/words"
)

// Filter runs a user-supplied Lua predicate over detected words.
//
// gopher-lua's LState is not goroutine-safe; all calls are serialized
// through a mutex. Script failures fail open: the word is kept and
// the error logged, so a broken script never disables navigation.
type Filter struct {
	mu     sync.Mutex
	state  *lua.LState
	fn     lua.LValue
	logger *slog.Logger
}

// NewFilter creates a Filter with an empty predicate (every word
// passes).
func NewFilter(logger *slog.Logger) *Filter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Filter{
		state:  lua.NewState(),
		logger: logger,
	}
}

// Load compiles src, which must return a function taking (text, line,
// col) and returning a truthy value to keep the word.
func (f *Filter) Load(src string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.state.DoString(src); err != nil {
		return fmt.Errorf("load word filter: %w", err)
	}

	ret := f.state.Get(-1)
	f.state.Pop(1)
	if _, ok := ret.(*lua.LFunction); !ok {
		return fmt.Errorf("word filter chunk must return a function, returned %s", ret.Type())
	}
	f.fn = ret
	return nil
}

// Apply filters ws through the loaded predicate. With no predicate
// loaded, ws is returned unchanged.
func (f *Filter) Apply(ws []words.Word) []words.Word {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fn == nil {
		return ws
	}

	out := make([]words.Word, 0, len(ws))
	for _, w := range ws {
		if f.keep(w) {
			out = append(out, w)
		}
	}
	return out
}

// keep evaluates the predicate for one word. Caller holds f.mu.
func (f *Filter) keep(w words.Word) bool {
	err := f.state.CallByParam(lua.P{
		Fn:      f.fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(w.Text), lua.LNumber(w.Line), lua.LNumber(w.Col))
	if err != nil {
		f.logger.Warn("word filter script failed, keeping word",
			"word", w.Text, "error", err)
		return true
	}

	ret := f.state.Get(-1)
	f.state.Pop(1)
	return lua.LVAsBool(ret)
}

// Close releases the Lua state.
func (f *Filter) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Close()
}

// FilteredSource decorates a words.Source with a Filter.
type FilteredSource struct {
	src    words.Source
	filter *Filter
}

// NewFilteredSource wraps src so detected words pass through filter.
func NewFilteredSource(src words.Source, filter *Filter) *FilteredSource {
	return &FilteredSource{src: src, filter: filter}
}

// DetectWords detects via the wrapped source, then filters.
func (s *FilteredSource) DetectWords(vp words.Viewport) []words.Word {
	return s.filter.Apply(s.src.DetectWords(vp))
}
