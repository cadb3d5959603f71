package ffmpeg

import (
	"regexp"
	"strconv"
	"strings"
)

// The encoder emits its current frame counter inline in status lines, e.g.
// "frame=  123 fps= 25 q=28.0 size=    1024KiB time=00:00:05.12 ...".
var progressRe = regexp.MustCompile(`frame=\s*(\d+)`)

// BarWidth is the fixed cell count of the rendered progress bar.
const BarWidth = 20

// ParseProgressLine extracts the current frame counter from one encoder
// status line. ok is false for lines without a frame counter.
func ParseProgressLine(line string) (frame int64, ok bool) {
	m := progressRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Percent returns min(current/total×100, 100). total must be positive.
func Percent(current, total int64) float64 {
	p := float64(current) / float64(total) * 100
	if p > 100 {
		p = 100
	}
	return p
}

// Bar renders the fixed-width bar: floor(BarWidth×current/total) filled
// cells, never more than BarWidth. total must be positive.
func Bar(current, total int64) string {
	filled := int(int64(BarWidth) * current / total)
	if filled > BarWidth {
		filled = BarWidth
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("|", filled) + strings.Repeat("-", BarWidth-filled)
}
