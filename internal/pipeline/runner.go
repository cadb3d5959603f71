package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/camconv/internal/config"
	"github.com/backmassage/camconv/internal/display"
	"github.com/backmassage/camconv/internal/ffmpeg"
	"github.com/backmassage/camconv/internal/logging"
	"github.com/backmassage/camconv/internal/probe"
)

// Controller gates the start trigger of whatever front end launched the run.
// Run disables it on entry and re-enables it when the run returns, so a
// second run cannot start while one is in flight.
type Controller interface {
	Disable()
	Enable()
}

// Run drives full conversion of every convertible file under cfg.RootDir and
// returns only after all directories are processed. Individual job failures
// never halt the run; they are accumulated in the returned stats.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, ctrl Controller) RunStats {
	ctrl.Disable()
	defer ctrl.Enable()

	var stats RunStats
	start := time.Now()

	log.Info("Scanning...")
	total, err := CountConvertible(cfg, cfg.RootDir)
	if err != nil {
		log.Error("Directory scan failed: %v", err)
		return stats
	}
	stats.Total = total
	log.Info("Found %d %s files across all folders", total, cfg.SourceExt)

	dirs, err := Scan(cfg, cfg.RootDir)
	if err != nil {
		log.Error("Directory scan failed: %v", err)
		return stats
	}

	log.Info("Starting conversion process...")
	for _, d := range dirs {
		if len(d.Convertible) == 0 {
			continue
		}
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}
		processDir(ctx, cfg, log, d, &stats)
	}

	logSummary(log, &stats, time.Since(start))
	return stats
}

// processDir converts every convertible file in one directory, then
// relocates that directory's sidecar files. Called only for directories with
// at least one convertible file, so the originals subfolder is created
// exactly when there is something to archive.
func processDir(ctx context.Context, cfg *config.Config, log *logging.Logger, d DirFiles, stats *RunStats) {
	if cfg.DryRun {
		for _, name := range d.Convertible {
			stats.Current++
			log.Info("[%d/%d] [DRY] Would convert %s", stats.Current, stats.Total, filepath.Join(d.Dir, name))
		}
		return
	}

	originals := filepath.Join(d.Dir, cfg.OriginalsDirName)
	if err := os.MkdirAll(originals, 0o755); err != nil {
		log.Error("Cannot create %s: %v", originals, err)
		for _, name := range d.Convertible {
			stats.Current++
			stats.RecordFailure(filepath.Join(d.Dir, name))
		}
		return
	}

	converted := 0
	for _, name := range d.Convertible {
		stats.Current++
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}
		if convertFile(ctx, cfg, log, d.Dir, name, originals, stats) {
			converted++
		}
	}

	relocateSidecars(cfg, log, d, originals)

	log.Info("Conversion complete for folder '%s'. Converted %d files.", d.Dir, converted)
	logFailures(log, stats)
}

// convertFile runs one job: estimate → encode → archive. Returns true when
// the file was converted and its original archived.
func convertFile(ctx context.Context, cfg *config.Config, log *logging.Logger, dir, name, originals string, stats *RunStats) bool {
	src := filepath.Join(dir, name)
	dst := cfg.OutputPath(src)

	fi, err := os.Stat(src)
	if err != nil {
		stats.RecordFailure(src)
		log.Error("File not found: %s", src)
		return false
	}
	log.Debug(cfg.Verbose, "  Source: %s", display.FormatBytes(fi.Size()))

	totalFrames, err := probe.EstimateFrames(ctx, cfg, src)
	if err != nil {
		stats.RecordFailure(src)
		log.Error("Skipping file due to error in frame count: %v", err)
		return false
	}

	log.Info("[%d/%d] Starting conversion for %s", stats.Current, stats.Total, src)
	job, err := ffmpeg.Start(ctx, cfg, src, dst)
	if err != nil {
		stats.RecordFailure(src)
		log.Error("Cannot start encoder: %v", err)
		return false
	}

	prefix := fmt.Sprintf("[%d/%d] ", stats.Current, stats.Total)
	trackCh := make(chan ffmpeg.TrackResult, 1)
	go func() {
		trackCh <- ffmpeg.Track(job.Stderr, totalFrames, func(line string, done bool) {
			if done {
				log.EndProgress()
				log.Success("%s%s", prefix, line)
			} else {
				log.Progress("%s%s", prefix, line)
			}
		})
	}()

	// Job completion = stream fully drained AND subprocess exit, in that
	// order: Wait closes the stderr pipe, so the tracker must hit EOF first.
	tr := <-trackCh
	waitErr := job.Wait()
	log.EndProgress()

	if waitErr != nil {
		stats.RecordFailure(src)
		log.Error("Error converting %s: %v", src, waitErr)
		logStderrTail(log, job.StderrTail())
		return false
	}

	if !tr.Completed {
		log.Debug(cfg.Verbose, "  Progress stream ended at frame %d of %d", tr.LastFrame, totalFrames)
	}
	log.Info("Conversion completed for %s", src)

	if err := archive(src, filepath.Join(originals, name)); err != nil {
		stats.RecordFailure(src)
		log.Error("Converted but could not archive %s: %v", src, err)
		return false
	}

	stats.Converted++
	stats.SourceBytes += fi.Size()
	return true
}

// archive moves src into the originals folder, refusing to overwrite an
// existing archived file of the same name.
func archive(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%s already exists", dst)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(src, dst)
}

// relocateSidecars moves the directory's sidecar files into the originals
// folder after all convertible files are processed. Best-effort: errors are
// logged but never added to the run's failure list. Sidecars are moved from
// their discovered directory, not the process working directory.
func relocateSidecars(cfg *config.Config, log *logging.Logger, d DirFiles, originals string) {
	for _, name := range d.Sidecars {
		src := filepath.Join(d.Dir, name)
		if err := archive(src, filepath.Join(originals, name)); err != nil {
			log.Warn("Error moving file %s: %v", src, err)
		}
	}
}

func logFailures(log *logging.Logger, stats *RunStats) {
	if len(stats.FailedFiles) == 0 {
		return
	}
	log.Warn("Unable to convert some files:")
	for _, f := range stats.FailedFiles {
		log.Warn("- %s", f)
	}
}

func logStderrTail(log *logging.Logger, tail string) {
	if tail == "" {
		return
	}
	log.Error("Last encoder output:")
	for _, l := range strings.Split(strings.TrimSpace(tail), "\n") {
		log.Error("  %s", l)
	}
}

func logSummary(log *logging.Logger, stats *RunStats, elapsed time.Duration) {
	log.Info("==============================")
	log.Info("Done: %d converted, %d failed in %s", stats.Converted, stats.Failed, display.FormatDuration(elapsed))
	if stats.SourceBytes > 0 {
		log.Info("Archived originals: %s", display.FormatBytes(stats.SourceBytes))
	}
	logFailures(log, stats)
}
