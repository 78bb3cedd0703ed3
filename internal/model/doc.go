// Package model defines the data structures shared across ytcomments.
//
// This package contains the following main types:
//   - Comment: A discussion entry with its one-level reply list
//   - VideoDetails: Title, description and canonical watch URL of a video
//   - PageResult: One page of comment threads plus its continuation token
//   - Document: A named text artifact produced by an export
//   - Export: The per-call working state passed through pipeline steps
//
// Keeping these types in their own package lets the client, the formatters
// and the pipeline share them without import cycles.
package model
