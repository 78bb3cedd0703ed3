package model

import "time"

// Export holds the working state of one collect-and-format call.
// Pipeline steps read and fill it in order. It is created per call and
// dropped once the documents are returned; the credential is never stored here.
type Export struct {
	// VideoID is the normalized identifier being exported.
	VideoID string

	// Mode is the set of requested content kinds.
	Mode Mode

	// Details is filled by the details step.
	Details *VideoDetails

	// Comments is the accumulated comment list in arrival order.
	Comments []Comment

	// PagesFetched counts comment pages requested so far.
	PagesFetched int

	// Transcript is the transcript text, when requested.
	Transcript string

	// Documents are the formatted outputs.
	Documents []Document

	// StartedAt is when the export began.
	StartedAt time.Time

	// FinishedAt is when the last step completed.
	FinishedAt time.Time
}

// NewExport creates an Export for the given identifier and mode.
func NewExport(videoID string, mode Mode) *Export {
	return &Export{
		VideoID:   videoID,
		Mode:      mode,
		StartedAt: time.Now(),
	}
}

// Duration returns how long the export took, or zero if it has not finished.
func (e *Export) Duration() time.Duration {
	if e.FinishedAt.IsZero() {
		return 0
	}
	return e.FinishedAt.Sub(e.StartedAt)
}
