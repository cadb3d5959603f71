// Package config holds runtime configuration: defaults, CLI flag parsing, an
// optional YAML override file, and validation. All defaults match the
// camcorder tree layout this tool was written for (JVC/Panasonic .MOD discs).
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadFile], and then mutated by [ParseFlags] before
// being passed (by pointer) to packages that need it.
type Config struct {
	// Root of the tree to convert (set from the positional arg).
	RootDir string

	// File classification. Extensions carry a leading dot and are matched
	// case-insensitively.
	SourceExt        string   // Default: ".MOD".
	TargetExt        string   // Default: ".MP4".
	SidecarExts      []string // Default: ".MOI", ".PGI".
	OriginalsDirName string   // Default: "Original files". Per-directory archive subfolder.

	// External tools.
	FFmpegBin  string // Default: "ffmpeg".
	FFprobeBin string // Default: "ffprobe".

	// Behavior flags.
	DryRun bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path (rotated).
	CheckOnly bool      // Run --check diagnostics and exit.

	// Optional YAML override file path (from --config).
	ConfigFile string
}

// DefaultConfig returns a Config with the stock camcorder defaults. Used as
// the base before [LoadFile] and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		SourceExt:        ".MOD",
		TargetExt:        ".MP4",
		SidecarExts:      []string{".MOI", ".PGI"},
		OriginalsDirName: "Original files",
		FFmpegBin:        "ffmpeg",
		FFprobeBin:       "ffprobe",
		ColorMode:        ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks extension and folder-name fields for consistency. When not
// in CheckOnly mode, it also requires a root directory.
func (c *Config) Validate() error {
	if err := validateExt(c.SourceExt, "source"); err != nil {
		return err
	}
	if err := validateExt(c.TargetExt, "target"); err != nil {
		return err
	}
	if strings.EqualFold(c.SourceExt, c.TargetExt) {
		return errors.New("source and target extensions must differ")
	}
	for _, ext := range c.SidecarExts {
		if err := validateExt(ext, "sidecar"); err != nil {
			return err
		}
		if strings.EqualFold(ext, c.SourceExt) {
			return fmt.Errorf("sidecar extension %q collides with the source extension", ext)
		}
	}

	if c.OriginalsDirName == "" {
		return errors.New("originals folder name must not be empty")
	}
	if strings.ContainsAny(c.OriginalsDirName, `/\`) {
		return fmt.Errorf("originals folder name %q must not contain a path separator", c.OriginalsDirName)
	}

	if c.FFmpegBin == "" || c.FFprobeBin == "" {
		return errors.New("ffmpeg and ffprobe binary names must not be empty")
	}

	if c.CheckOnly {
		return nil
	}
	if c.RootDir == "" {
		return errors.New("need exactly one directory argument")
	}
	return nil
}

func validateExt(ext, kind string) error {
	if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("invalid %s extension %q (use a leading dot, e.g. .MOD)", kind, ext)
	}
	return nil
}

// IsConvertible reports whether name carries the source extension.
func (c *Config) IsConvertible(name string) bool {
	return strings.EqualFold(filepath.Ext(name), c.SourceExt)
}

// IsSidecar reports whether name carries one of the sidecar extensions.
func (c *Config) IsSidecar(name string) bool {
	ext := filepath.Ext(name)
	for _, s := range c.SidecarExts {
		if strings.EqualFold(ext, s) {
			return true
		}
	}
	return false
}

// OutputPath derives the destination path for a source file: same directory,
// same stem, target extension.
func (c *Config) OutputPath(src string) string {
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(src), stem+c.TargetExt)
}
