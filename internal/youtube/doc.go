// Package youtube talks to the YouTube Data API v3 for ytcomments.
//
// It provides two things:
//   - Normalize, which turns a watch URL or short link into a bare video ID
//   - Client, which reads video metadata and pages of comment threads
//
// The client wraps the official google.golang.org/api/youtube/v3 service.
// The API key is passed on every call as the "key" query parameter and is
// never stored on the Client, so a single Client can serve several callers
// with different credentials.
//
// All remote failures are reported as *RemoteError values that match
// ErrRemoteRequestFailed with errors.Is. Use Kind to branch on the error
// category without inspecting messages.
package youtube
