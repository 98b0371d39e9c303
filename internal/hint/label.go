package hint

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LabelConfig controls how the hint label space is generated.
type LabelConfig struct {
	// SingleCharKeys are keys emitted as one-character labels, in
	// priority order. Each entry must be exactly one character.
	SingleCharKeys []string

	// MultiCharKeys are keys combined into two-character (and, with
	// AllowThreeChar, three-character) labels. Must be disjoint from
	// SingleCharKeys.
	MultiCharKeys []string

	// MaxSingleCharHints caps how many single-character labels are
	// emitted before switching to combinations.
	MaxSingleCharHints int

	// UseNumericFallback appends two-digit labels ("01".."99", then
	// "00") once the key combinations are exhausted.
	UseNumericFallback bool

	// NumericOnly requires every MultiCharKeys entry to be a digit.
	NumericOnly bool

	// AllowThreeChar permits recursion to three-character
	// combinations when two-character labels and the numeric
	// fallback cannot cover the demand.
	AllowThreeChar bool
}

// Validate checks the configuration at construction time.
// An invalid configuration must never reach Generate.
func (c LabelConfig) Validate() error {
	var problems []string

	for _, k := range c.SingleCharKeys {
		if utf8.RuneCountInString(k) != 1 {
			problems = append(problems, fmt.Sprintf("singleCharKeys entry %q is not a single character", k))
		}
	}
	for _, k := range c.MultiCharKeys {
		if utf8.RuneCountInString(k) != 1 {
			problems = append(problems, fmt.Sprintf("multiCharKeys entry %q is not a single character", k))
		}
	}

	single := make(map[string]struct{}, len(c.SingleCharKeys))
	for _, k := range c.SingleCharKeys {
		single[k] = struct{}{}
	}
	for _, k := range c.MultiCharKeys {
		if _, ok := single[k]; ok {
			problems = append(problems, fmt.Sprintf("key %q appears in both singleCharKeys and multiCharKeys", k))
		}
	}

	if c.MaxSingleCharHints < 0 {
		problems = append(problems, fmt.Sprintf("maxSingleCharHints = %d, must be >= 0", c.MaxSingleCharHints))
	}

	if c.NumericOnly {
		for _, k := range c.MultiCharKeys {
			r, _ := utf8.DecodeRuneInString(k)
			if !unicode.IsDigit(r) {
				problems = append(problems, fmt.Sprintf("numericOnly requires digit keys, got %q", k))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid hint key configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// numericOrder is the fallback label sequence: "01".."09", "10".."99",
// and "00" last, since it is visually the least distinctive.
func numericOrder() []string {
	out := make([]string, 0, 100)
	for i := 1; i <= 99; i++ {
		out = append(out, fmt.Sprintf("%02d", i))
	}
	return append(out, "00")
}

// Generate produces up to count pairwise-distinct hint labels.
//
// Single-character labels come first (bounded by MaxSingleCharHints),
// then two-character combinations over MultiCharKeys in row-major
// order, then the numeric fallback, then three-character combinations
// when allowed. If the configured space is smaller than count the
// full space is returned; callers must treat words beyond the label
// capacity as unhinted rather than as an error.
//
// No multi-character label begins with a character reserved for
// single-character hints, so the first keystroke of any label is
// unambiguous. The returned set is prefix-free: no label is a strict
// prefix of another, so typing any label in full always resolves it.
func Generate(count int, cfg LabelConfig) []string {
	if count <= 0 {
		return nil
	}

	labels := make([]string, 0, count)
	seen := make(map[string]struct{}, count)
	reserved := make(map[byte]struct{}, len(cfg.SingleCharKeys))
	for _, k := range cfg.SingleCharKeys {
		reserved[k[0]] = struct{}{}
	}

	add := func(label string) bool {
		if len(labels) >= count {
			return false
		}
		if _, dup := seen[label]; dup {
			return true
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
		return len(labels) < count
	}

	// Step 1: single-character labels.
	n := min(count, cfg.MaxSingleCharHints, len(cfg.SingleCharKeys))
	for i := 0; i < n; i++ {
		add(cfg.SingleCharKeys[i])
	}

	// Step 2: two-character combinations. With three-character labels
	// allowed, pairs the demand cannot be covered with as doubles are
	// held back and extended in step 4, so no emitted double is a
	// prefix of a longer label.
	doubleBudget := len(cfg.MultiCharKeys) * len(cfg.MultiCharKeys)
	if cfg.AllowThreeChar {
		doubleBudget = doublesToEmit(count-len(labels), len(cfg.MultiCharKeys))
	}
	if len(labels) < count {
		emitted := 0
	doubles:
		for _, first := range cfg.MultiCharKeys {
			for _, second := range cfg.MultiCharKeys {
				if emitted >= doubleBudget {
					break doubles
				}
				emitted++
				if !add(first + second) {
					break doubles
				}
			}
		}
	}

	// Step 3: numeric fallback. Labels whose leading digit is
	// reserved for a single-character hint are skipped to keep the
	// first keystroke unambiguous.
	if len(labels) < count && cfg.UseNumericFallback {
		for _, label := range numericOrder() {
			if _, ok := reserved[label[0]]; ok {
				continue
			}
			if !add(label) {
				break
			}
		}
	}

	// Step 4: three-character combinations over the held-back pairs.
	// Pairs already emitted as labels (including numeric fallback
	// collisions) are never extended; every label must be resolvable
	// by typing it in full.
	if len(labels) < count && cfg.AllowThreeChar {
	triples:
		for _, first := range cfg.MultiCharKeys {
			for _, second := range cfg.MultiCharKeys {
				if _, used := seen[first+second]; used {
					continue
				}
				for _, third := range cfg.MultiCharKeys {
					if !add(first + second + third) {
						break triples
					}
				}
			}
		}
	}

	return labels
}

// doublesToEmit picks how many two-character combinations are emitted
// as labels when three-character labels are allowed. Each pair held
// back yields keyCount triples instead of one double, so the budget is
// the largest double count whose combined capacity still covers the
// demand. Shorter labels are preferred whenever capacity permits.
func doublesToEmit(demand, keyCount int) int {
	pairs := keyCount * keyCount
	if demand <= 0 {
		return 0
	}
	if keyCount <= 1 {
		return 1
	}
	if demand <= pairs {
		return pairs
	}
	budget := (pairs*keyCount - demand) / (keyCount - 1)
	if budget < 0 {
		return 0
	}
	return budget
}
