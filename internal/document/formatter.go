package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/ytcomments/internal/model"
)

// Filename labels per content kind.
const (
	CommentsLabel   = "comentarios_"
	TranscriptLabel = "transcricao_"
)

// Header source lines per content kind.
const (
	commentsSourceLine   = "Comentários extraídos de"
	transcriptSourceLine = "Transcrição extraída de"
)

// Separator closes the document header.
const Separator = "-------------------------------------------------------"

// Formatter renders one content kind of an export.
type Formatter interface {
	// Name returns the format name used on the command line.
	Name() string

	// Extension returns the file extension including the dot.
	Extension() string

	// Format writes the document body for kind to w.
	Format(w io.Writer, exp *model.Export, kind model.ContentKind) error
}

// NewFormatter returns the formatter registered under name.
// An empty name selects the plain-text formatter.
func NewFormatter(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "text", "txt":
		return NewTextFormatter(), nil
	case "markdown", "md":
		return NewMarkdownFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Label returns the filename label for a content kind.
func Label(kind model.ContentKind) string {
	switch kind {
	case model.KindComments:
		return CommentsLabel
	case model.KindTranscript:
		return TranscriptLabel
	default:
		return ""
	}
}

// Filename builds "<label><clean title><ext>".
func Filename(kind model.ContentKind, title, ext string) string {
	return Label(kind) + CleanName(title) + ext
}

// sourceLine returns the header line naming where the content came from.
func sourceLine(kind model.ContentKind) string {
	if kind == model.KindTranscript {
		return transcriptSourceLine
	}
	return commentsSourceLine
}

// Build formats every content kind requested by the export's mode,
// comments first, and returns one Document per kind.
func Build(f Formatter, exp *model.Export) ([]model.Document, error) {
	if exp.Details == nil {
		return nil, ErrNoDetails
	}

	kinds := exp.Mode.Kinds()
	docs := make([]model.Document, 0, len(kinds))
	for _, kind := range kinds {
		var sb strings.Builder
		if err := f.Format(&sb, exp, kind); err != nil {
			return nil, fmt.Errorf("failed to format %s as %s: %w", kind, f.Name(), err)
		}
		docs = append(docs, model.Document{
			Kind:     kind,
			Filename: Filename(kind, exp.Details.Title, f.Extension()),
			Content:  sb.String(),
		})
	}
	return docs, nil
}
