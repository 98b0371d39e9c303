package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ParseError wraps a file-level load failure with its path.
type ParseError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadFile reads, normalizes, and validates a configuration file.
// The format is chosen by extension: .toml, .yaml, or .yml. The
// returned unknown slice names options the file sets that the engine
// does not recognize; callers typically log them.
func LoadFile(path string) (Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, nil, fmt.Errorf("read config: %w", err)
	}

	raw := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Config{}, nil, &ParseError{Path: path, Err: err}
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, nil, &ParseError{Path: path, Err: err}
		}
	default:
		return Config{}, nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	cfg, unknown, err := Normalize(raw)
	if err != nil {
		return Config{}, unknown, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, unknown, err
	}
	return cfg, unknown, nil
}
