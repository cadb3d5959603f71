package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into classification, behavior, display, and utility.
// Boolean toggles (e.g. --no-color) are captured and applied after Parse so
// Config defaults (and YAML file values) hold unless the flag is set.

import (
	"flag"
	"fmt"
	"os"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and exits.
// On error it returns non-nil (e.g. unknown flag, missing positional arg).
// Registered defaults come from cfg, so values loaded by [LoadFile] survive
// unless the user passes the corresponding flag.
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("camconv", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var toggles toggleFlags

	defineClassificationFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &toggles)
	defineUtilityFlags(fs, cfg, &toggles)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyToggleFlags(cfg, &toggles)

	if toggles.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if toggles.showVersion {
		fmt.Fprintln(os.Stdout, "camconv v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// toggleFlags holds boolean flags that are applied after Parse.
// These either override ColorMode or trigger exit (showHelp, showVersion).
type toggleFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineClassificationFlags registers extension and folder overrides.
func defineClassificationFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.SourceExt, "source-ext", cfg.SourceExt, "Source extension to convert")
	fs.StringVar(&cfg.TargetExt, "target-ext", cfg.TargetExt, "Destination extension")
	fs.StringVar(&cfg.OriginalsDirName, "originals", cfg.OriginalsDirName, "Archive subfolder name")
	fs.StringVar(&cfg.FFmpegBin, "ffmpeg", cfg.FFmpegBin, "Encoder binary")
	fs.StringVar(&cfg.FFprobeBin, "ffprobe", cfg.FFprobeBin, "Inspection binary")
}

// defineBehaviorFlags registers --dry-run.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not convert or move files")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, t *toggleFlags) {
	fs.BoolVar(&t.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&t.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --config, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, t *toggleFlags) {
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML config file")
	fs.StringVar(&cfg.ConfigFile, "C", cfg.ConfigFile, "Same as --config")
	fs.BoolVar(&t.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&t.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&t.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&t.showHelp, "h", false, "Same as --help")
}

// applyToggleFlags copies toggle flag values into cfg.
func applyToggleFlags(cfg *Config, t *toggleFlags) {
	if t.noColor {
		cfg.ColorMode = ColorNever
	} else if t.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets RootDir from the single positional arg when not in
// CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("need exactly one directory argument")
	}
	cfg.RootDir = NormalizeDirArg(args[0])
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "CamConv v" + version + " - camcorder .MOD to .MP4 batch converter"},
		{"", ""},
		{"  camconv [OPTIONS] <directory>", ""},
		{"", ""},
		{"Classification", ""},
		{"  --source-ext <.EXT>", "Source extension to convert (default: .MOD)"},
		{"  --target-ext <.EXT>", "Destination extension (default: .MP4)"},
		{"  --originals <name>", "Archive subfolder name (default: 'Original files')"},
		{"  --ffmpeg <path>", "Encoder binary (default: ffmpeg)"},
		{"  --ffprobe <path>", "Inspection binary (default: ffprobe)"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Preview only; do not convert or move files"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -C, --config <path>", "YAML config file"},
		{"  -l, --log <path>", "Append logs to file (rotated)"},
		{"  -c, --check", "System diagnostics (ffmpeg, ffprobe)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
