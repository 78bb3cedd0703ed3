package youtube

import (
	"errors"
	"fmt"
)

// Client errors.
// Every error returned by this package matches one of these sentinels with
// errors.Is, except context cancellation which is returned as the context error.
var (
	// ErrMissingCredential is returned when no API key is supplied.
	// It is returned before any network request is issued.
	ErrMissingCredential = errors.New("missing credential: an API key is required")

	// ErrMissingIdentifier is returned when the video identifier is empty.
	ErrMissingIdentifier = errors.New("missing identifier: a video ID or URL is required")

	// ErrVideoNotFound is returned when the API reports no video for the identifier.
	ErrVideoNotFound = errors.New("video not found")

	// ErrRemoteRequestFailed is matched by every *RemoteError.
	ErrRemoteRequestFailed = errors.New("remote request failed")
)

// RemoteError describes a transport or API level failure.
// Status is the HTTP status code reported by the API, or 0 when the request
// never produced a response (DNS, TLS, connection reset and so on).
type RemoteError struct {
	// Op is the API operation that failed, e.g. "videos.list".
	Op string

	// Status is the HTTP status code, 0 for transport failures.
	Status int

	// Message is the diagnostic message from the API or transport.
	Message string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s: HTTP %d: %s", ErrRemoteRequestFailed, e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrRemoteRequestFailed, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRemoteRequestFailed.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteRequestFailed
}

// ErrorKind is the closed set of failure categories produced by the client
// and the export pipeline.
type ErrorKind int

const (
	// KindNone means there was no error.
	KindNone ErrorKind = iota

	// KindMissingCredential corresponds to ErrMissingCredential.
	KindMissingCredential

	// KindMissingIdentifier corresponds to ErrMissingIdentifier.
	KindMissingIdentifier

	// KindVideoNotFound corresponds to ErrVideoNotFound.
	KindVideoNotFound

	// KindRemoteRequestFailed corresponds to ErrRemoteRequestFailed.
	KindRemoteRequestFailed

	// KindOther covers everything else, including cancellation.
	KindOther
)

// String returns a human-readable name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMissingCredential:
		return "missing credential"
	case KindMissingIdentifier:
		return "missing identifier"
	case KindVideoNotFound:
		return "video not found"
	case KindRemoteRequestFailed:
		return "remote request failed"
	default:
		return "other"
	}
}

// Kind classifies err into an ErrorKind. Wrapped errors are unwrapped.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMissingCredential):
		return KindMissingCredential
	case errors.Is(err, ErrMissingIdentifier):
		return KindMissingIdentifier
	case errors.Is(err, ErrVideoNotFound):
		return KindVideoNotFound
	case errors.Is(err, ErrRemoteRequestFailed):
		return KindRemoteRequestFailed
	default:
		return KindOther
	}
}

// ErrInvalidProxyAddress is returned when the proxy address is not "host:port".
var ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")
