package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/nao1215/ytcomments/internal/document"
	"github.com/nao1215/ytcomments/internal/model"
	"github.com/nao1215/ytcomments/internal/transcript"
)

// Fetcher reads video data from the remote API.
// *youtube.Client implements it.
type Fetcher interface {
	// FetchVideoDetails reads the metadata of one video.
	FetchVideoDetails(ctx context.Context, credential, identifier string) (*model.VideoDetails, error)

	// FetchCommentsPage reads one page of comment threads. A nil token
	// requests the first page; a nil NextPageToken marks the last page.
	FetchCommentsPage(ctx context.Context, credential, identifier string, token *string) (*model.PageResult, error)
}

// DetailsStep fetches the video details.
type DetailsStep struct {
	fetcher    Fetcher
	credential string
}

// NewDetailsStep creates a DetailsStep.
func NewDetailsStep(fetcher Fetcher, credential string) *DetailsStep {
	return &DetailsStep{fetcher: fetcher, credential: credential}
}

// Name implements Step.
func (s *DetailsStep) Name() string { return "details" }

// Do implements Step.
func (s *DetailsStep) Do(ctx context.Context, exp *model.Export) error {
	details, err := s.fetcher.FetchVideoDetails(ctx, s.credential, exp.VideoID)
	if err != nil {
		return fmt.Errorf("failed to fetch video details: %w", err)
	}
	exp.Details = details
	return nil
}

// CommentsStep walks every comment page and accumulates the threads.
type CommentsStep struct {
	fetcher    Fetcher
	credential string
	logger     *slog.Logger
}

// NewCommentsStep creates a CommentsStep. logger may be nil.
func NewCommentsStep(fetcher Fetcher, credential string, logger *slog.Logger) *CommentsStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentsStep{fetcher: fetcher, credential: credential, logger: logger}
}

// Name implements Step.
func (s *CommentsStep) Name() string { return "comments" }

// Do implements Step.
//
// Pages are requested one after the other, each with the token returned by
// the previous page, until a page carries no token. There is no page cap.
// If any page fails, the comments gathered so far are dropped.
func (s *CommentsStep) Do(ctx context.Context, exp *model.Export) error {
	var (
		acc   []model.Comment
		token *string
		pages int
	)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		page, err := s.fetcher.FetchCommentsPage(ctx, s.credential, exp.VideoID, token)
		if err != nil {
			return fmt.Errorf("failed to fetch comments page %d: %w", pages+1, err)
		}
		if page == nil {
			return fmt.Errorf("%w: comments page %d", ErrEmptyPage, pages+1)
		}
		pages++
		acc = slices.Concat(acc, page.Comments)

		s.logger.Debug("comments page fetched",
			"video", exp.VideoID,
			"page", pages,
			"threads", len(page.Comments),
			"total_threads", len(acc),
		)

		if !page.HasMore() {
			break
		}
		token = page.NextPageToken
	}

	exp.Comments = acc
	exp.PagesFetched = pages
	return nil
}

// TranscriptStep obtains the transcript text from a Source.
type TranscriptStep struct {
	source transcript.Source
}

// NewTranscriptStep creates a TranscriptStep.
func NewTranscriptStep(source transcript.Source) *TranscriptStep {
	return &TranscriptStep{source: source}
}

// Name implements Step.
func (s *TranscriptStep) Name() string { return "transcript" }

// Do implements Step.
func (s *TranscriptStep) Do(ctx context.Context, exp *model.Export) error {
	if s.source == nil {
		return transcript.ErrNoSource
	}
	text, err := s.source.Fetch(ctx, exp.VideoID)
	if err != nil {
		return fmt.Errorf("failed to fetch transcript: %w", err)
	}
	exp.Transcript = text
	return nil
}

// FormatStep renders the collected content into documents.
type FormatStep struct {
	formatter document.Formatter
}

// NewFormatStep creates a FormatStep.
func NewFormatStep(formatter document.Formatter) *FormatStep {
	return &FormatStep{formatter: formatter}
}

// Name implements Step.
func (s *FormatStep) Name() string { return "format" }

// Do implements Step.
func (s *FormatStep) Do(_ context.Context, exp *model.Export) error {
	docs, err := document.Build(s.formatter, exp)
	if err != nil {
		return err
	}
	exp.Documents = docs
	return nil
}
