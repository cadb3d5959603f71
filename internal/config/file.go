package config

// This file implements the optional YAML override file (--config). Pointer
// fields distinguish "absent" from "set to the zero value", so only keys
// present in the file override the defaults. Flags parsed afterwards still
// win because their registered defaults come from the already-overlaid cfg.

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	SourceExt    *string   `yaml:"source_ext"`
	TargetExt    *string   `yaml:"target_ext"`
	SidecarExts  *[]string `yaml:"sidecar_exts"`
	OriginalsDir *string   `yaml:"originals_dir"`
	FFmpeg       *string   `yaml:"ffmpeg"`
	FFprobe      *string   `yaml:"ffprobe"`
	LogFile      *string   `yaml:"log_file"`
}

// LoadFile reads a YAML override file and applies its keys onto cfg.
// Unknown keys are rejected so typos surface immediately.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.SourceExt != nil {
		cfg.SourceExt = *fc.SourceExt
	}
	if fc.TargetExt != nil {
		cfg.TargetExt = *fc.TargetExt
	}
	if fc.SidecarExts != nil {
		cfg.SidecarExts = *fc.SidecarExts
	}
	if fc.OriginalsDir != nil {
		cfg.OriginalsDirName = *fc.OriginalsDir
	}
	if fc.FFmpeg != nil {
		cfg.FFmpegBin = *fc.FFmpeg
	}
	if fc.FFprobe != nil {
		cfg.FFprobeBin = *fc.FFprobe
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	cfg.ConfigFile = path
	return nil
}

// ConfigFileArg scans raw CLI args for --config/-C so the file can be loaded
// before the full flag parse (flag defaults must reflect the file's values).
func ConfigFileArg(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--config" || a == "-config" || a == "-C":
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		case strings.HasPrefix(a, "-config="):
			return strings.TrimPrefix(a, "-config=")
		case strings.HasPrefix(a, "--C="):
			return strings.TrimPrefix(a, "--C=")
		case strings.HasPrefix(a, "-C="):
			return strings.TrimPrefix(a, "-C=")
		}
	}
	return ""
}
