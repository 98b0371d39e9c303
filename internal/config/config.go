// Package config holds the engine's canonical configuration. Legacy
// option spellings are folded into one struct at this boundary; core
// packages never see an alias.
package config

import (
	"time"

	"github.com/dshills/hintleap/internal/hint"
)

// Config is the canonical engine configuration.
type Config struct {
	// Motion triggering.
	DefaultMotionCount int            `toml:"defaultMotionCount" yaml:"defaultMotionCount"`
	PerKeyMotionCount  map[string]int `toml:"perKeyMotionCount" yaml:"perKeyMotionCount"`
	MotionTimeoutMS    int            `toml:"motionTimeout" yaml:"motionTimeout"`
	DebounceDelayMS    int            `toml:"debounceDelay" yaml:"debounceDelay"`

	// Key-repeat suppression.
	SuppressOnKeyRepeat    bool `toml:"suppressOnKeyRepeat" yaml:"suppressOnKeyRepeat"`
	KeyRepeatThresholdMS   int  `toml:"keyRepeatThreshold" yaml:"keyRepeatThreshold"`
	KeyRepeatResetDelayMS  int  `toml:"keyRepeatResetDelay" yaml:"keyRepeatResetDelay"`

	// Hint label space.
	SingleCharKeys      []string `toml:"singleCharKeys" yaml:"singleCharKeys"`
	MultiCharKeys       []string `toml:"multiCharKeys" yaml:"multiCharKeys"`
	MaxSingleCharHints  int      `toml:"maxSingleCharHints" yaml:"maxSingleCharHints"`
	UseNumericFallback  bool     `toml:"useNumericFallback" yaml:"useNumericFallback"`
	NumericOnly         bool     `toml:"numericOnly" yaml:"numericOnly"`
	AllowThreeCharHints bool     `toml:"allowThreeCharHints" yaml:"allowThreeCharHints"`

	// Assignment.
	DirectionalFilter string `toml:"directionalFilter" yaml:"directionalFilter"`
	SkipAdjacent      bool   `toml:"skipAdjacent" yaml:"skipAdjacent"`
	HintPosition      string `toml:"hintPosition" yaml:"hintPosition"`

	// Rendering.
	HighlightSelected bool `toml:"highlightSelected" yaml:"highlightSelected"`

	// Word detection (built-in source only).
	MinWordLength int `toml:"minWordLength" yaml:"minWordLength"`

	// WordFilterScript is an optional path to a Lua chunk returning a
	// predicate function(text, line, col) used to prune detected words.
	WordFilterScript string `toml:"wordFilterScript" yaml:"wordFilterScript"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		DefaultMotionCount:    3,
		MotionTimeoutMS:       2000,
		DebounceDelayMS:       50,
		SuppressOnKeyRepeat:   true,
		KeyRepeatThresholdMS:  30,
		KeyRepeatResetDelayMS: 300,
		SingleCharKeys: []string{
			"A", "S", "D", "F", "G", "H", "J", "K", "L", "N", "M",
		},
		MultiCharKeys: []string{
			"B", "C", "E", "I", "O", "P", "Q", "R", "T", "U",
			"V", "W", "X", "Y", "Z",
		},
		MaxSingleCharHints: 11,
		UseNumericFallback: true,
		DirectionalFilter:  "none",
		HintPosition:       "start",
		HighlightSelected:  true,
		MinWordLength:      2,
	}
}

// MotionTimeout returns the motion counter reset timeout.
func (c Config) MotionTimeout() time.Duration {
	return time.Duration(c.MotionTimeoutMS) * time.Millisecond
}

// DebounceDelay returns the trigger coalescing window.
func (c Config) DebounceDelay() time.Duration {
	return time.Duration(c.DebounceDelayMS) * time.Millisecond
}

// KeyRepeatThreshold returns the gap classifying presses as repeat.
func (c Config) KeyRepeatThreshold() time.Duration {
	return time.Duration(c.KeyRepeatThresholdMS) * time.Millisecond
}

// KeyRepeatResetDelay returns the gap clearing the repeat state.
func (c Config) KeyRepeatResetDelay() time.Duration {
	return time.Duration(c.KeyRepeatResetDelayMS) * time.Millisecond
}

// LabelConfig builds the hint allocator configuration.
func (c Config) LabelConfig() hint.LabelConfig {
	return hint.LabelConfig{
		SingleCharKeys:     c.SingleCharKeys,
		MultiCharKeys:      c.MultiCharKeys,
		MaxSingleCharHints: c.MaxSingleCharHints,
		UseNumericFallback: c.UseNumericFallback,
		NumericOnly:        c.NumericOnly,
		AllowThreeChar:     c.AllowThreeCharHints,
	}
}

// Validate checks the configuration. It collects every problem rather
// than stopping at the first; an invalid configuration must never
// start a session.
func (c Config) Validate() error {
	errs := &ValidationErrors{}

	if c.DefaultMotionCount < 1 {
		errs.Add("defaultMotionCount", "must be >= 1")
	}
	for key, n := range c.PerKeyMotionCount {
		if n < 1 {
			errs.Add("perKeyMotionCount."+key, "must be >= 1")
		}
	}
	if c.MotionTimeoutMS < 0 {
		errs.Add("motionTimeout", "must be >= 0")
	}
	if c.DebounceDelayMS < 0 {
		errs.Add("debounceDelay", "must be >= 0")
	}
	if c.KeyRepeatThresholdMS < 0 {
		errs.Add("keyRepeatThreshold", "must be >= 0")
	}
	if c.KeyRepeatResetDelayMS < c.KeyRepeatThresholdMS {
		errs.Add("keyRepeatResetDelay", "must be >= keyRepeatThreshold")
	}

	if err := c.LabelConfig().Validate(); err != nil {
		errs.Add("hintKeys", err.Error())
	}

	switch c.DirectionalFilter {
	case "none", "up", "down":
	default:
		errs.Add("directionalFilter", "must be one of none, up, down")
	}
	switch c.HintPosition {
	case "start", "end":
	default:
		errs.Add("hintPosition", "must be start or end")
	}
	if c.MinWordLength < 0 {
		errs.Add("minWordLength", "must be >= 0")
	}

	return errs.AsError()
}
