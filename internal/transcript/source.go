package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTranscriptUnavailable is returned when no caption text could be obtained.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")

	// ErrNoSource is returned when a transcript is requested without a configured source.
	ErrNoSource = errors.New("no transcript source configured")
)

// Source produces the transcript text of a video.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string

	// Fetch returns the transcript text for videoID.
	Fetch(ctx context.Context, videoID string) (string, error)
}

// Chain tries each source in order and returns the first non-empty transcript.
type Chain struct {
	sources []Source
}

// NewChain creates a Chain over the given sources. nil sources are skipped.
func NewChain(sources ...Source) *Chain {
	c := &Chain{}
	for _, s := range sources {
		if s != nil {
			c.sources = append(c.sources, s)
		}
	}
	return c
}

// Name implements Source.
func (c *Chain) Name() string {
	names := make([]string, len(c.sources))
	for i, s := range c.sources {
		names[i] = s.Name()
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

// Fetch implements Source. When every source fails the returned error
// matches ErrTranscriptUnavailable and each source's error.
func (c *Chain) Fetch(ctx context.Context, videoID string) (string, error) {
	if len(c.sources) == 0 {
		return "", ErrNoSource
	}

	errs := []error{ErrTranscriptUnavailable}
	for _, s := range c.sources {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := s.Fetch(ctx, videoID)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			errs = append(errs, fmt.Errorf("%s: empty transcript", s.Name()))
			continue
		}
		return text, nil
	}
	return "", errors.Join(errs...)
}

// joinSegments joins caption segments with single spaces, dropping blanks.
func joinSegments(segments []string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Join(strings.Fields(s), " ")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// runWithContext runs fn in a goroutine and returns early if ctx is done.
// fn keeps running in the background after cancellation; its result is discarded.
func runWithContext(ctx context.Context, fn func() ([]string, error)) ([]string, error) {
	type result struct {
		segments []string
		err      error
	}
	ch := make(chan result, 1)

	go func() {
		segments, err := fn()
		ch <- result{segments, err}
	}()

	select {
	case r := <-ch:
		return r.segments, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
