// Package probe estimates a video file's total frame count from a single
// ffprobe call, for driving the per-file progress bar.
package probe

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/backmassage/camconv/internal/config"
)

// EstimateFrames queries the first video stream's duration and frame rate
// and returns floor(duration × rate). Any invocation or parse failure is an
// error; the caller treats the file as unconvertible and moves on.
func EstimateFrames(ctx context.Context, cfg *config.Config, path string) (int64, error) {
	cmd := exec.CommandContext(ctx, cfg.FFprobeBin,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=duration,r_frame_rate",
		"-of", "default=nokey=1:noprint_wrappers=1",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) && len(ee.Stderr) > 0 {
			return 0, fmt.Errorf("%s %q: %s", cfg.FFprobeBin, path, strings.TrimSpace(string(ee.Stderr)))
		}
		return 0, fmt.Errorf("%s %q: %w", cfg.FFprobeBin, path, err)
	}

	frames, err := ParseOutput(out)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", cfg.FFprobeBin, path, err)
	}
	return frames, nil
}

// ParseOutput converts raw ffprobe plain output into a frame count. The
// output is two lines for the selected stream: frame rate first, then
// duration in seconds. Exported for testing without a real ffprobe binary.
func ParseOutput(out []byte) (int64, error) {
	var fields []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			fields = append(fields, line)
		}
	}
	if len(fields) != 2 {
		return 0, fmt.Errorf("expected frame rate and duration, got %d field(s)", len(fields))
	}

	rate, err := ParseRate(fields[0])
	if err != nil {
		return 0, err
	}

	duration, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", fields[1])
	}
	if duration <= 0 {
		return 0, fmt.Errorf("non-positive duration %q", fields[1])
	}

	frames := int64(duration * rate) // truncation == floor for positive values
	if frames <= 0 {
		return 0, fmt.Errorf("estimated %d frames from duration %s and rate %s", frames, fields[1], fields[0])
	}
	return frames, nil
}

// ParseRate parses a frame rate expressed either as a rational
// "numerator/denominator" (the usual ffprobe form, e.g. "30000/1001") or as
// a plain decimal.
func ParseRate(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid frame rate %q", s)
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid frame rate %q", s)
		}
		if d == 0 {
			return 0, fmt.Errorf("zero denominator in frame rate %q", s)
		}
		return n / d, nil
	}

	rate, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate %q", s)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("non-positive frame rate %q", s)
	}
	return rate, nil
}
