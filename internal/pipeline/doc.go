// Package pipeline orchestrates directory discovery, sequential per-file
// conversion, archival of originals, and batch summary reporting.
package pipeline
