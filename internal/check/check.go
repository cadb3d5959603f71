// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation (CheckDeps) for the ffmpeg and ffprobe binaries.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/camconv/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability and version
// of the encoder and inspection binaries. Returns false if either is missing.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkTool(log, cfg.FFmpegBin)
	ok = checkTool(log, cfg.FFprobeBin) && ok
	return ok
}

// checkTool verifies bin is on PATH and logs its version string.
func checkTool(log Logger, bin string) bool {
	if _, err := exec.LookPath(bin); err != nil {
		log.Error("%s not found", bin)
		return false
	}
	cmd := exec.Command(bin, "-version")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", bin, err)
		return true
	}
	log.Success("%s", firstLine(string(out)))
	return true
}

// CheckDeps verifies both external binaries are available before a run.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegBin); err != nil {
		if cfg.FFmpegBin == "ffmpeg" {
			return ErrFfmpegNotFound
		}
		return errors.New(cfg.FFmpegBin + " not found on PATH")
	}
	if _, err := exec.LookPath(cfg.FFprobeBin); err != nil {
		if cfg.FFprobeBin == "ffprobe" {
			return ErrFfprobeNotFound
		}
		return errors.New(cfg.FFprobeBin + " not found on PATH")
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return s
}
