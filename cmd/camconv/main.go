// Command camconv is the CLI entrypoint for the CamConv batch converter.
//
// It parses flags, validates configuration and the root directory, and
// either runs system diagnostics (--check) or the conversion pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/backmassage/camconv/internal/check"
	"github.com/backmassage/camconv/internal/config"
	"github.com/backmassage/camconv/internal/display"
	"github.com/backmassage/camconv/internal/logging"
	"github.com/backmassage/camconv/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Bootstrap phase: the logger doesn't exist yet, so errors go directly
	// to stderr via fmt. Once NewLogger succeeds, all output goes through
	// the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if path := config.ConfigFileArg(os.Args[1:]); path != "" {
		if err := config.LoadFile(&cfg, path); err != nil {
			fmt.Fprintf(os.Stderr, "camconv: %v\n", err)
			return 1
		}
	}
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "camconv: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "camconv: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "camconv: %v\n", err)
		return 1
	}
	defer log.Close()

	// Logger available; all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	// The root directory must exist before a run starts; an inaccessible
	// root is the one fatal precondition of the pipeline.
	rootAbs, err := absPath(cfg.RootDir)
	if err != nil {
		log.Error("Directory not found: %s", cfg.RootDir)
		return 1
	}
	fi, err := os.Stat(rootAbs)
	if err != nil || !fi.IsDir() {
		log.Error("Not a directory: %s", cfg.RootDir)
		return 1
	}
	cfg.RootDir = rootAbs

	log.Info("=== CamConv v%s (%s) ===", version, commit)
	log.Info("Directory selected: %s", cfg.RootDir)
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}
	log.Info("")

	// Fail fast if ffmpeg/ffprobe are unavailable.
	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		return 1
	}

	stats := pipeline.Run(context.Background(), &cfg, log, &startGate{})

	if stats.Failed > 0 {
		return 1
	}
	return 0
}

// startGate is the CLI's stand-in for a front-end start control: the
// pipeline disables it for the duration of a run and re-enables it on
// return. A single-shot CLI never races itself, but the guard keeps the
// contract honest for embedders.
type startGate struct {
	mu      sync.Mutex
	running bool
}

func (g *startGate) Disable() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		panic("conversion run already in progress")
	}
	g.running = true
}

func (g *startGate) Enable() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.running = false
}

// absPath returns the absolute path with symlinks resolved.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
