package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nao1215/ytcomments/internal/document"
	"github.com/nao1215/ytcomments/internal/model"
	"github.com/nao1215/ytcomments/internal/transcript"
	"github.com/nao1215/ytcomments/internal/youtube"
)

// Exporter collects a video's content and formats it into documents.
// It keeps no state between calls: every call fetches everything again.
type Exporter struct {
	fetcher     Fetcher
	transcripts transcript.Source
	formatter   document.Formatter
	logger      *slog.Logger
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithTranscriptSource sets the source used when the transcript is requested.
func WithTranscriptSource(source transcript.Source) ExporterOption {
	return func(e *Exporter) {
		e.transcripts = source
	}
}

// WithFormatter sets the document formatter. The default is plain text.
func WithFormatter(f document.Formatter) ExporterOption {
	return func(e *Exporter) {
		e.formatter = f
	}
}

// WithExporterLogger sets the logger passed to the pipeline.
func WithExporterLogger(logger *slog.Logger) ExporterOption {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// NewExporter creates an Exporter reading through fetcher.
func NewExporter(fetcher Fetcher, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		fetcher:   fetcher,
		formatter: document.NewTextFormatter(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// CollectAndFormat fetches the content selected by mode for identifier and
// returns one document per requested kind. identifier may be a bare video ID
// or a watch/short URL. On any failure no documents are returned.
func (e *Exporter) CollectAndFormat(ctx context.Context, credential, identifier string, mode model.Mode) ([]model.Document, error) {
	exp, err := e.Run(ctx, credential, identifier, mode)
	if err != nil {
		return nil, err
	}
	return exp.Documents, nil
}

// Run is CollectAndFormat returning the whole export, including counts and
// timings. The export is nil when an error is returned.
func (e *Exporter) Run(ctx context.Context, credential, identifier string, mode model.Mode) (*model.Export, error) {
	id := strings.TrimSpace(youtube.Normalize(strings.TrimSpace(identifier)))
	if id == "" {
		return nil, youtube.ErrMissingIdentifier
	}
	if mode&model.ModeAll == 0 {
		return nil, ErrNoContentRequested
	}

	exp := model.NewExport(id, mode)
	if err := e.newPipeline(credential, mode).Execute(ctx, exp); err != nil {
		return nil, err
	}
	return exp, nil
}

// newPipeline assembles the steps needed for mode.
func (e *Exporter) newPipeline(credential string, mode model.Mode) *Pipeline {
	p := New(WithLogger(e.logger))
	p.AddStep(NewDetailsStep(e.fetcher, credential))
	if mode.Includes(model.KindComments) {
		p.AddStep(NewCommentsStep(e.fetcher, credential, e.logger))
	}
	if mode.Includes(model.KindTranscript) {
		p.AddStep(NewTranscriptStep(e.transcripts))
	}
	p.AddStep(NewFormatStep(e.formatter))
	return p
}
