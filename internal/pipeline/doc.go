// Package pipeline collects a video's content and formats it into documents.
//
// An export runs as an ordered list of Steps over a shared *model.Export:
// video details, then comment pagination, then the transcript, then
// formatting. Steps run strictly in sequence and the pipeline stops at the
// first failing step, so a failed export never yields partial documents.
//
// Exporter assembles the steps for one call and is the entry point used by
// the CLI. BatchProcessor runs independent exports for several videos with a
// bounded number of goroutines using errgroup; each export stays sequential.
package pipeline
