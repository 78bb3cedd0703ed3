package pipeline

import "errors"

var (
	// ErrNoContentRequested is returned when an export is started with an empty mode.
	ErrNoContentRequested = errors.New("no content requested: mode must include comments or transcript")

	// ErrEmptyPage is returned when a fetcher reports success without a page.
	ErrEmptyPage = errors.New("fetcher returned no page")
)
