package ffmpeg

import "github.com/backmassage/camconv/internal/config"

// BuildArgs returns the full encode invocation for src → dst. Encode
// parameters are deliberately fixed: the container change alone is the
// point, and ffmpeg's defaults for the target extension are what the legacy
// workflow produced. -y lets a manual retry of a previously failed file
// replace its partial output.
func BuildArgs(cfg *config.Config, src, dst string) []string {
	return []string{cfg.FFmpegBin, "-hide_banner", "-i", src, "-y", dst}
}
