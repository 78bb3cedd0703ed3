package transcript

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kkdai/youtube/v2"
)

// PlayerSource reads the caption tracks advertised by the video player.
// The player response is fetched once; languages are then tried in order.
type PlayerSource struct {
	languages  []string
	video      func(ctx context.Context, videoID string) (*youtube.Video, error)
	transcript func(ctx context.Context, video *youtube.Video, language string) ([]string, error)
}

// NewPlayerSource creates a PlayerSource for the given languages.
// An empty list selects DefaultLanguages. hc may be nil to use http.DefaultClient.
func NewPlayerSource(languages []string, hc *http.Client) *PlayerSource {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	if hc == nil {
		hc = http.DefaultClient
	}

	client := &youtube.Client{HTTPClient: hc}
	return &PlayerSource{
		languages: languages,
		video:     client.GetVideoContext,
		transcript: func(ctx context.Context, video *youtube.Video, language string) ([]string, error) {
			transcript, err := client.GetTranscriptCtx(ctx, video, language)
			if err != nil {
				return nil, err
			}
			segments := make([]string, 0, len(transcript))
			for _, seg := range transcript {
				segments = append(segments, seg.Text)
			}
			return segments, nil
		},
	}
}

// Name implements Source.
func (s *PlayerSource) Name() string { return "player" }

// Fetch implements Source.
func (s *PlayerSource) Fetch(ctx context.Context, videoID string) (string, error) {
	video, err := s.video(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("failed to read player response for %s: %w", videoID, err)
	}

	var errs []error
	for _, lang := range s.languages {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		segments, err := s.transcript(ctx, video, lang)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", lang, err))
			continue
		}
		if text := joinSegments(segments); text != "" {
			return text, nil
		}
		errs = append(errs, fmt.Errorf("%s: empty track", lang))
	}
	return "", fmt.Errorf("%w: no player caption track for %s: %w", ErrTranscriptUnavailable, videoID, errors.Join(errs...))
}
