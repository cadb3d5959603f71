// Package logging provides the leveled, timestamped logger shared by the
// whole tool, including the overwrite-in-place progress line used while an
// encode is running. Appended lines go to stdout (errors to stderr) and,
// when configured, to a rotated log file; progress lines are TTY-only and
// never written to the file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/backmassage/camconv/internal/config"
	"github.com/backmassage/camconv/internal/term"
)

// progressWidth pads overwrite lines so a shorter update fully covers the
// previous one.
const progressWidth = 100

// Logger provides leveled, optionally colored logging with an optional
// rotating file sink. All methods are goroutine-safe.
type Logger struct {
	mu         sync.Mutex
	file       io.WriteCloser
	tty        bool
	inProgress bool // an overwrite line is currently displayed
}

// NewLogger configures colors from cfg and optionally opens the rotating log
// file. Call Close when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	l := &Logger{tty: term.IsTerminal(os.Stdout)}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		l.file = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // MiB
			MaxBackups: 3,
		}
	}
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level, color, text string) {
	ts := time.Now().Format("15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()

	l.endProgressLocked()

	plain := "[" + ts + "] [" + level + "] " + text + "\n"
	out := os.Stdout
	if level == "ERROR" {
		out = os.Stderr
	}
	if color != "" {
		_, _ = io.WriteString(out, "["+ts+"] "+color+"["+level+"]"+term.NC+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, plain)
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
}

// Progress writes an overwrite-in-place status line (no newline, leading
// carriage return). At most one such line is visible at a time; the next
// appended line terminates it. No-op when stdout is not a TTY, so piped
// output stays free of control characters.
func (l *Logger) Progress(format string, args ...interface{}) {
	if !l.tty {
		return
	}
	ts := time.Now().Format("15:04:05")
	text := "[" + ts + "] " + fmt.Sprintf(format, args...)
	if len(text) < progressWidth {
		text += strings.Repeat(" ", progressWidth-len(text))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(os.Stdout, "\r"+text)
	l.inProgress = true
}

// EndProgress terminates an active overwrite line with a newline. Safe to
// call when no progress line is active.
func (l *Logger) EndProgress() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.endProgressLocked()
}

func (l *Logger) endProgressLocked() {
	if l.inProgress {
		_, _ = io.WriteString(os.Stdout, "\n")
		l.inProgress = false
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", term.Blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", term.Green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", term.Yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), also to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", term.Red, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.line("DEBUG", term.Cyan, fmt.Sprintf(format, args...))
}
