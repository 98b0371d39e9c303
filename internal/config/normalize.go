package config

import (
	"fmt"
	"strings"
)

// Normalize folds a raw option map into the canonical Config. Option
// names are matched case-insensitively with underscores ignored, so
// the snake_case spellings of older configurations keep working, and
// a handful of renamed legacy options are mapped to their current
// names. Unknown options are reported in unknown rather than treated
// as errors.
func Normalize(raw map[string]any) (Config, []string, error) {
	cfg := Default()
	errs := &ValidationErrors{}
	var unknown []string

	for name, value := range raw {
		if !applyOption(&cfg, canonicalName(name), name, value, errs) {
			unknown = append(unknown, name)
		}
	}

	return cfg, unknown, errs.AsError()
}

// canonicalName lowercases and strips underscores, then maps retired
// option names onto their replacements.
func canonicalName(name string) string {
	key := strings.ReplaceAll(strings.ToLower(name), "_", "")
	switch key {
	case "motioncount":
		return "defaultmotioncount"
	case "usenumbers", "usenumericmulticharhints":
		return "usenumericfallback"
	case "markers":
		return "singlecharkeys"
	case "direction":
		return "directionalfilter"
	}
	return key
}

// applyOption sets one canonical field. Returns false for unknown
// names; coercion failures are collected in errs.
func applyOption(cfg *Config, key, name string, value any, errs *ValidationErrors) bool {
	switch key {
	case "defaultmotioncount":
		setInt(&cfg.DefaultMotionCount, name, value, errs)
	case "perkeymotioncount":
		setIntMap(&cfg.PerKeyMotionCount, name, value, errs)
	case "motiontimeout":
		setInt(&cfg.MotionTimeoutMS, name, value, errs)
	case "debouncedelay":
		setInt(&cfg.DebounceDelayMS, name, value, errs)
	case "suppressonkeyrepeat":
		setBool(&cfg.SuppressOnKeyRepeat, name, value, errs)
	case "keyrepeatthreshold":
		setInt(&cfg.KeyRepeatThresholdMS, name, value, errs)
	case "keyrepeatresetdelay":
		setInt(&cfg.KeyRepeatResetDelayMS, name, value, errs)
	case "singlecharkeys":
		setKeyList(&cfg.SingleCharKeys, name, value, errs)
	case "multicharkeys":
		setKeyList(&cfg.MultiCharKeys, name, value, errs)
	case "maxsinglecharhints":
		setInt(&cfg.MaxSingleCharHints, name, value, errs)
	case "usenumericfallback":
		setBool(&cfg.UseNumericFallback, name, value, errs)
	case "numericonly":
		setBool(&cfg.NumericOnly, name, value, errs)
	case "allowthreecharhints":
		setBool(&cfg.AllowThreeCharHints, name, value, errs)
	case "directionalfilter":
		setString(&cfg.DirectionalFilter, name, value, errs)
	case "skipadjacent":
		setBool(&cfg.SkipAdjacent, name, value, errs)
	case "hintposition":
		setString(&cfg.HintPosition, name, value, errs)
	case "highlightselected":
		setBool(&cfg.HighlightSelected, name, value, errs)
	case "minwordlength":
		setInt(&cfg.MinWordLength, name, value, errs)
	case "wordfilterscript":
		setString(&cfg.WordFilterScript, name, value, errs)
	default:
		return false
	}
	return true
}

func setInt(dst *int, name string, value any, errs *ValidationErrors) {
	switch v := value.(type) {
	case int:
		*dst = v
	case int64:
		*dst = int(v)
	case float64:
		*dst = int(v)
	default:
		errs.Add(name, fmt.Sprintf("expected integer, got %T", value))
	}
}

func setBool(dst *bool, name string, value any, errs *ValidationErrors) {
	v, ok := value.(bool)
	if !ok {
		errs.Add(name, fmt.Sprintf("expected boolean, got %T", value))
		return
	}
	*dst = v
}

func setString(dst *string, name string, value any, errs *ValidationErrors) {
	v, ok := value.(string)
	if !ok {
		errs.Add(name, fmt.Sprintf("expected string, got %T", value))
		return
	}
	*dst = v
}

// setKeyList accepts either a list of one-character strings or a bare
// string whose characters become the keys (the legacy "markers"
// spelling).
func setKeyList(dst *[]string, name string, value any, errs *ValidationErrors) {
	switch v := value.(type) {
	case string:
		keys := make([]string, 0, len(v))
		for _, r := range v {
			keys = append(keys, string(r))
		}
		*dst = keys
	case []any:
		keys := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				errs.Add(name, fmt.Sprintf("expected string entries, got %T", item))
				return
			}
			keys = append(keys, s)
		}
		*dst = keys
	case []string:
		*dst = v
	default:
		errs.Add(name, fmt.Sprintf("expected string or list, got %T", value))
	}
}

func setIntMap(dst *map[string]int, name string, value any, errs *ValidationErrors) {
	out := make(map[string]int)
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			var n int
			setInt(&n, name+"."+key, item, errs)
			out[key] = n
		}
	case map[string]int:
		for key, n := range v {
			out[key] = n
		}
	default:
		errs.Add(name, fmt.Sprintf("expected table of integers, got %T", value))
		return
	}
	*dst = out
}
