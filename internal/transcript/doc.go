// Package transcript obtains video transcripts from caption tracks.
//
// A Source returns the full transcript text of a video. Two implementations
// read real caption data:
//   - CaptionSource uses github.com/hightemp/youtube-transcript-api-go
//   - PlayerSource uses the caption tracks exposed by github.com/kkdai/youtube/v2
//
// Chain tries several sources in order. There is no built-in fallback text:
// when no caption track can be read, ErrTranscriptUnavailable is returned.
package transcript
