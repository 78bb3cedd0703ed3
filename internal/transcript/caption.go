package transcript

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"time"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
)

// DefaultLanguages is the caption language preference used when none is configured.
var DefaultLanguages = []string{"pt", "pt-BR", "en", "en-US", "en-GB"}

// DefaultCaptionTimeout bounds one CaptionSource fetch.
const DefaultCaptionTimeout = 30 * time.Second

// CaptionSource reads transcripts through the timedtext caption API.
// Preferred languages are tried first, then any available track.
//
// The track list is read with the library's own HTTP client, which honours
// HTTP_PROXY only. Callers routing traffic through another proxy should
// leave this source out.
type CaptionSource struct {
	languages  []string
	timeout    time.Duration
	list       func(videoID string) (*ytapi.TranscriptList, error)
	fetchTrack func(track *ytapi.Transcript) ([]string, error)
}

// NewCaptionSource creates a CaptionSource with the given language preference.
// An empty list selects DefaultLanguages. Track bodies are downloaded with hc,
// or with a client bounded by timeout when hc is nil. A timeout <= 0 selects
// DefaultCaptionTimeout.
func NewCaptionSource(languages []string, hc *http.Client, timeout time.Duration) *CaptionSource {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	if timeout <= 0 {
		timeout = DefaultCaptionTimeout
	}
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	api := ytapi.NewYouTubeTranscriptApi()
	return &CaptionSource{
		languages: languages,
		timeout:   timeout,
		list:      api.ListTranscripts,
		fetchTrack: func(track *ytapi.Transcript) ([]string, error) {
			if err := track.Fetch(hc); err != nil {
				return nil, err
			}
			segments := make([]string, 0, len(track.Entries))
			for _, e := range track.Entries {
				segments = append(segments, e.Text)
			}
			return segments, nil
		},
	}
}

// Name implements Source.
func (s *CaptionSource) Name() string { return "captions" }

// Fetch implements Source.
func (s *CaptionSource) Fetch(ctx context.Context, videoID string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	segments, err := runWithContext(ctx, func() ([]string, error) {
		list, err := s.list(videoID)
		if err != nil {
			return nil, err
		}
		track, err := selectTrack(list, s.languages)
		if err != nil {
			return nil, err
		}
		return s.fetchTrack(track)
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch captions for %s: %w", videoID, err)
	}

	text := joinSegments(segments)
	if text == "" {
		return "", fmt.Errorf("%w: caption track for %s is empty", ErrTranscriptUnavailable, videoID)
	}
	return text, nil
}

// selectTrack picks the first preferred language available. Otherwise it
// falls back to any track: manual tracks before generated ones, and the
// lowest language code within each group.
func selectTrack(list *ytapi.TranscriptList, languages []string) (*ytapi.Transcript, error) {
	if track, err := list.FindTranscript(languages); err == nil {
		return track, nil
	}

	for _, tracks := range []map[string]*ytapi.Transcript{list.ManuallyCreatedTranscripts, list.GeneratedTranscripts} {
		for _, code := range slices.Sorted(maps.Keys(tracks)) {
			if tracks[code] != nil {
				return tracks[code], nil
			}
		}
	}
	return nil, fmt.Errorf("%w: no caption tracks for %s", ErrTranscriptUnavailable, list.VideoID)
}
