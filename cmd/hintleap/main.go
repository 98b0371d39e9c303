// Package main is the hintleap demo: a read-only file viewer where
// repeated navigation presses overlay jump hints.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dshills/hintleap/internal/config"
	"github.com/dshills/hintleap/internal/engine"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logger, closeLog, err := newLogger(opts.LogFile, opts.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, unknown, err := config.LoadFile(opts.ConfigPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
			return 1
		}
		for _, name := range unknown {
			logger.Warn("unknown config option", "option", name)
		}
		cfg = loaded
	}

	viewer, err := newViewer(opts.File, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer viewer.Shutdown()

	// Live config reload while the viewer runs.
	if opts.ConfigPath != "" {
		watcher, err := config.NewWatcher(opts.ConfigPath, func(cfg config.Config) {
			if err := viewer.engine.SetConfig(cfg); err != nil {
				logger.Warn("rejected reloaded config", "error", err)
			}
		}, logger)
		if err != nil {
			logger.Warn("config watching unavailable", "error", err)
		} else {
			defer watcher.Close()
		}
	}

	engine.SetDefault(viewer.engine)

	if err := viewer.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type options struct {
	ConfigPath string
	LogFile    string
	LogLevel   string
	File       string
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml or .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file (default: discard)")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "hintleap - hint-based jump navigation demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: hintleap [options] <file>\n\n")
		fmt.Fprintf(os.Stderr, "Keys: h/j/k/l or arrows move; repeat a motion key to show hints;\n")
		fmt.Fprintf(os.Stderr, "type a hint label to jump; Esc cancels; q quits.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("hintleap %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.File = flag.Arg(0)
	return opts
}

// newLogger builds a slog.Logger. A terminal app cannot log to the
// screen it draws on, so logs go to a file or nowhere.
func newLogger(path, level string) (*slog.Logger, func(), error) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, nil, fmt.Errorf("invalid log level %q", level)
	}

	var w io.Writer = io.Discard
	closeLog := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeLog = func() { f.Close() }
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), closeLog, nil
}
