// Package ffmpeg builds and supervises encode subprocesses: the fixed
// command line, the live stderr stream carrying frame-counter status lines,
// the pure progress parser and bar math, and the tracker loop that turns the
// stream into overwrite-in-place progress output.
package ffmpeg
