package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.DefaultMotionCount = 0
	cfg.MotionTimeoutMS = -1
	cfg.DirectionalFilter = "sideways"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	msg := err.Error()
	for _, want := range []string{"defaultMotionCount", "motionTimeout", "directionalFilter"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing problem for %s", msg, want)
		}
	}
}

func TestValidateRejectsOverlappingKeySets(t *testing.T) {
	cfg := Default()
	cfg.SingleCharKeys = []string{"A", "B"}
	cfg.MultiCharKeys = []string{"B", "C"}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil with overlapping key sets, want error")
	}
}

func TestValidateRejectsNonDigitNumericOnly(t *testing.T) {
	cfg := Default()
	cfg.NumericOnly = true // default multiCharKeys are letters

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() = nil with numericOnly letter keys, want error")
	}
}

func TestDurationAccessors(t *testing.T) {
	cfg := Config{
		MotionTimeoutMS:       2000,
		DebounceDelayMS:       50,
		KeyRepeatThresholdMS:  30,
		KeyRepeatResetDelayMS: 300,
	}

	if got := cfg.MotionTimeout(); got != 2*time.Second {
		t.Errorf("MotionTimeout() = %v, want 2s", got)
	}
	if got := cfg.DebounceDelay(); got != 50*time.Millisecond {
		t.Errorf("DebounceDelay() = %v, want 50ms", got)
	}
	if got := cfg.KeyRepeatThreshold(); got != 30*time.Millisecond {
		t.Errorf("KeyRepeatThreshold() = %v, want 30ms", got)
	}
	if got := cfg.KeyRepeatResetDelay(); got != 300*time.Millisecond {
		t.Errorf("KeyRepeatResetDelay() = %v, want 300ms", got)
	}
}

func TestNormalizeCanonicalNames(t *testing.T) {
	cfg, unknown, err := Normalize(map[string]any{
		"defaultMotionCount": 2,
		"perKeyMotionCount":  map[string]any{"v": 1, "h": 3},
		"debounceDelay":      75,
		"highlightSelected":  false,
		"wordFilterScript":   "filters/min.lua",
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v, want nil", err)
	}
	if len(unknown) != 0 {
		t.Errorf("unknown = %v, want none", unknown)
	}
	if cfg.DefaultMotionCount != 2 {
		t.Errorf("DefaultMotionCount = %d, want 2", cfg.DefaultMotionCount)
	}
	if cfg.PerKeyMotionCount["h"] != 3 || cfg.PerKeyMotionCount["v"] != 1 {
		t.Errorf("PerKeyMotionCount = %v, want h:3 v:1", cfg.PerKeyMotionCount)
	}
	if cfg.DebounceDelayMS != 75 {
		t.Errorf("DebounceDelayMS = %d, want 75", cfg.DebounceDelayMS)
	}
	if cfg.HighlightSelected {
		t.Error("HighlightSelected = true, want false")
	}
	if cfg.WordFilterScript != "filters/min.lua" {
		t.Errorf("WordFilterScript = %q, want filters/min.lua", cfg.WordFilterScript)
	}
}

func TestNormalizeLegacyAliases(t *testing.T) {
	cfg, _, err := Normalize(map[string]any{
		"motion_count": 5,
		"use_numbers":  false,
		"markers":      "QWER",
		"direction":    "down",
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v, want nil", err)
	}
	if cfg.DefaultMotionCount != 5 {
		t.Errorf("DefaultMotionCount = %d via motion_count, want 5", cfg.DefaultMotionCount)
	}
	if cfg.UseNumericFallback {
		t.Error("UseNumericFallback = true via use_numbers false")
	}
	want := []string{"Q", "W", "E", "R"}
	if len(cfg.SingleCharKeys) != len(want) {
		t.Fatalf("SingleCharKeys = %v via markers, want %v", cfg.SingleCharKeys, want)
	}
	for i := range want {
		if cfg.SingleCharKeys[i] != want[i] {
			t.Errorf("SingleCharKeys[%d] = %q, want %q", i, cfg.SingleCharKeys[i], want[i])
		}
	}
	if cfg.DirectionalFilter != "down" {
		t.Errorf("DirectionalFilter = %q via direction, want down", cfg.DirectionalFilter)
	}
}

func TestNormalizeSnakeCaseSpellings(t *testing.T) {
	cfg, _, err := Normalize(map[string]any{
		"key_repeat_threshold":   40,
		"suppress_on_key_repeat": false,
		"max_single_char_hints":  7,
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v, want nil", err)
	}
	if cfg.KeyRepeatThresholdMS != 40 {
		t.Errorf("KeyRepeatThresholdMS = %d, want 40", cfg.KeyRepeatThresholdMS)
	}
	if cfg.SuppressOnKeyRepeat {
		t.Error("SuppressOnKeyRepeat = true, want false")
	}
	if cfg.MaxSingleCharHints != 7 {
		t.Errorf("MaxSingleCharHints = %d, want 7", cfg.MaxSingleCharHints)
	}
}

func TestNormalizeUnknownAndBadTypes(t *testing.T) {
	_, unknown, err := Normalize(map[string]any{
		"no_such_option":     true,
		"defaultMotionCount": "three",
	})
	if len(unknown) != 1 || unknown[0] != "no_such_option" {
		t.Errorf("unknown = %v, want [no_such_option]", unknown)
	}
	if err == nil {
		t.Error("Normalize() = nil error for non-integer motion count, want error")
	}
}
