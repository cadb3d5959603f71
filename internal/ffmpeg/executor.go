package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/backmassage/camconv/internal/config"
)

// tailLines bounds the captured diagnostic tail used in failure reports.
const tailLines = 20

// Job is a running encode subprocess. Stderr is the live line-oriented
// status stream; it must be drained to EOF before Wait is called, because
// Wait closes the pipe.
type Job struct {
	cmd    *exec.Cmd
	tail   *tailBuffer
	Stderr io.Reader
}

// Start launches the encoder for src → dst with its stderr piped. The
// returned job's Stderr tees into a bounded tail buffer so the last
// diagnostic lines survive for failure reports.
func Start(ctx context.Context, cfg *config.Config, src, dst string) (*Job, error) {
	args := BuildArgs(cfg, src, dst)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	pipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	tail := newTailBuffer(tailLines)
	j := &Job{cmd: cmd, tail: tail, Stderr: io.TeeReader(pipe, tail)}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", args[0], err)
	}
	return j, nil
}

// Wait blocks until the subprocess exits. Call only after Stderr has been
// read to EOF.
func (j *Job) Wait() error {
	return j.cmd.Wait()
}

// StderrTail returns the last captured diagnostic lines.
func (j *Job) StderrTail() string {
	return j.tail.String()
}

// tailBuffer is an io.Writer keeping the last max lines written to it.
// Lines may be terminated by \n or \r (the encoder terminates status
// updates with a bare \r).
type tailBuffer struct {
	mu    sync.Mutex
	max   int
	cur   []byte
	lines []string
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range p {
		if c == '\n' || c == '\r' {
			if len(b.cur) > 0 {
				b.push(string(b.cur))
				b.cur = b.cur[:0]
			}
			continue
		}
		b.cur = append(b.cur, c)
	}
	return len(p), nil
}

func (b *tailBuffer) push(line string) {
	b.lines = append(b.lines, line)
	if len(b.lines) > b.max {
		b.lines = b.lines[1:]
	}
}

// String joins the retained lines, including a trailing unterminated line.
func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	lines := b.lines
	if len(b.cur) > 0 {
		lines = append(append([]string(nil), lines...), string(b.cur))
	}
	return strings.Join(lines, "\n")
}
