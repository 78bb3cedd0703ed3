package document

import "errors"

var (
	// ErrUnknownFormat is returned by NewFormatter for unsupported format names.
	ErrUnknownFormat = errors.New("unknown format: use text, markdown or json")

	// ErrFileExists is returned by Save when a target file exists and
	// overwriting is disabled.
	ErrFileExists = errors.New("file already exists: use --force to overwrite")

	// ErrNoDetails is returned when an export reaches formatting without
	// video details.
	ErrNoDetails = errors.New("export has no video details")
)
