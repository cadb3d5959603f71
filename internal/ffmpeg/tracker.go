package ffmpeg

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/backmassage/camconv/internal/display"
)

// TrackResult summarizes one job's tracked status stream.
type TrackResult struct {
	LastFrame int64
	Completed bool          // the bar reached 100% before the stream ended
	Elapsed   time.Duration // tracking start to completion (or to EOF)
}

// Track consumes the encoder's status stream until EOF, reporting rendered
// progress through report. Interim lines are reported with done=false
// (overwrite-in-place); when the computed percentage reaches 100 a single
// final line with the elapsed wall time is reported with done=true and no
// further updates follow, though the stream is still drained so the
// subprocess is never blocked on a full pipe.
//
// The reported percentage is monotonic non-decreasing and clamped to
// [0, 100]. A non-positive totalFrames yields an indeterminate frame-counter
// display; no division is performed in that case.
func Track(r io.Reader, totalFrames int64, report func(line string, done bool)) TrackResult {
	start := time.Now()
	var res TrackResult
	var maxPct float64

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(scanStatusLines)

	for sc.Scan() {
		frame, ok := ParseProgressLine(sc.Text())
		if !ok || res.Completed {
			continue
		}
		if frame > res.LastFrame {
			res.LastFrame = frame
		}

		if totalFrames <= 0 {
			report(fmt.Sprintf("frame %d (total unknown)", res.LastFrame), false)
			continue
		}

		pct := Percent(res.LastFrame, totalFrames)
		if pct < maxPct {
			pct = maxPct
		}
		maxPct = pct

		if pct >= 100 {
			res.Completed = true
			res.Elapsed = time.Since(start)
			report(fmt.Sprintf("Conversion complete: 100%% - %s", display.FormatDuration(res.Elapsed)), true)
			continue
		}
		report(fmt.Sprintf("%6.2f%% [%s]", pct, Bar(res.LastFrame, totalFrames)), false)
	}

	if !res.Completed {
		res.Elapsed = time.Since(start)
	}
	return res
}

// scanStatusLines splits on \n or \r; the encoder terminates in-place status
// updates with a bare \r.
func scanStatusLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
