package pipeline

// RunStats tracks aggregate counters across one conversion run. Every
// discovered job ends either in Converted or in Failed; FailedFiles holds
// the failed source paths in failure order.
type RunStats struct {
	Total       int // convertible files discovered up front
	Current     int // 1-based index of the file being processed
	Converted   int
	Failed      int
	FailedFiles []string
	SourceBytes int64 // bytes of successfully archived originals
}

// RecordFailure marks one source file as failed.
func (s *RunStats) RecordFailure(path string) {
	s.Failed++
	s.FailedFiles = append(s.FailedFiles, path)
}
