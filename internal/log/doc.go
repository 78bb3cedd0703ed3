// Package log provides secure logging for ytcomments, built on top of the
// standard slog package.
//
// The SecureHandler wraps any slog.Handler and masks values that could leak
// the YouTube Data API key or other credentials:
//   - attributes whose key names a credential (api_key, key, authorization, ...)
//   - values that look like a Google API key or a bearer token
//   - "key=" query parameters embedded in URLs and error messages
//
// Verbose mode lowers the level to Debug but never disables masking.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("request", "url", "https://www.googleapis.com/youtube/v3/videos?key=AIza...")
//	// url=https://www.googleapis.com/youtube/v3/videos?key=***REDACTED***
package log
