package document

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/ytcomments/internal/model"
)

// MarkdownFormatter renders exports as GitHub Flavored Markdown.
// Comment bodies are stripped of markup the same way as in plain text.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name implements Formatter.
func (f *MarkdownFormatter) Name() string { return "markdown" }

// Extension implements Formatter.
func (f *MarkdownFormatter) Extension() string { return ".md" }

// Format implements Formatter.
func (f *MarkdownFormatter) Format(w io.Writer, exp *model.Export, kind model.ContentKind) error {
	if exp.Details == nil {
		return ErrNoDetails
	}

	md := markdown.NewMarkdown(w)
	f.writeHeader(md, exp, kind)

	switch kind {
	case model.KindComments:
		f.writeComments(md, exp.Comments)
	case model.KindTranscript:
		md.H2("Transcript")
		md.PlainText(exp.Transcript)
	}

	return md.Build()
}

// writeHeader writes the title, description and a small summary table.
func (f *MarkdownFormatter) writeHeader(md *markdown.Markdown, exp *model.Export, kind model.ContentKind) {
	d := exp.Details
	md.H1(d.Title)
	if d.Description != "" {
		md.PlainText(d.Description)
	}
	md.PlainTextf("%s: %s", sourceLine(kind), d.WatchURL)

	if kind == model.KindComments {
		md.Table(markdown.TableSet{
			Header: []string{"Property", "Value"},
			Rows: [][]string{
				{"Video ID", "`" + d.ID + "`"},
				{"Threads", strconv.Itoa(len(exp.Comments))},
				{"Comments (with replies)", strconv.Itoa(model.CountComments(exp.Comments))},
				{"Pages", strconv.Itoa(exp.PagesFetched)},
			},
		})
	}
	md.HorizontalRule()
}

// writeComments writes each thread as a paragraph followed by its replies.
func (f *MarkdownFormatter) writeComments(md *markdown.Markdown, comments []model.Comment) {
	if len(comments) == 0 {
		md.Note("No comments.")
		return
	}
	for _, c := range comments {
		md.PlainTextf("**%s**: %s", c.AuthorDisplayName, StripMarkup(c.TextDisplay))
		if !c.HasReplies() {
			continue
		}
		replies := make([]string, 0, len(c.Replies))
		for _, r := range c.Replies {
			replies = append(replies, fmt.Sprintf("**%s**: %s", r.AuthorDisplayName, StripMarkup(r.TextDisplay)))
		}
		md.BulletList(replies...)
	}
}
