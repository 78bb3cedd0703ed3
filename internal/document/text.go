package document

import (
	"io"
	"strings"

	"github.com/nao1215/ytcomments/internal/model"
)

// TextFormatter renders the plain-text layout.
type TextFormatter struct{}

// NewTextFormatter creates a TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Name implements Formatter.
func (f *TextFormatter) Name() string { return "text" }

// Extension implements Formatter.
func (f *TextFormatter) Extension() string { return ".txt" }

// Format implements Formatter.
func (f *TextFormatter) Format(w io.Writer, exp *model.Export, kind model.ContentKind) error {
	if exp.Details == nil {
		return ErrNoDetails
	}

	var sb strings.Builder
	f.writeHeader(&sb, exp.Details, kind)

	switch kind {
	case model.KindComments:
		for _, c := range exp.Comments {
			writeCommentLine(&sb, "", c)
			for _, r := range c.Replies {
				writeCommentLine(&sb, "  ", r)
			}
		}
	case model.KindTranscript:
		sb.WriteString(exp.Transcript)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// writeHeader writes title, description, source line and separator.
func (f *TextFormatter) writeHeader(sb *strings.Builder, d *model.VideoDetails, kind model.ContentKind) {
	sb.WriteString(d.Title)
	sb.WriteString("\n\n")
	sb.WriteString(d.Description)
	sb.WriteString("\n\n")
	sb.WriteString(sourceLine(kind))
	sb.WriteString(": ")
	sb.WriteString(d.WatchURL)
	sb.WriteString("\n\n")
	sb.WriteString(Separator)
	sb.WriteString("\n\n")
}

// writeCommentLine writes "<indent><author>: <text>\n" with markup stripped.
func writeCommentLine(sb *strings.Builder, indent string, c model.Comment) {
	sb.WriteString(indent)
	sb.WriteString(c.AuthorDisplayName)
	sb.WriteString(": ")
	sb.WriteString(StripMarkup(c.TextDisplay))
	sb.WriteString("\n")
}
