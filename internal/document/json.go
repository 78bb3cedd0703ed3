package document

import (
	"encoding/json"
	"io"

	"github.com/nao1215/ytcomments/internal/model"
)

// JSONFormatter renders exports as indented JSON for downstream tooling.
// Comment text keeps its original markup so consumers can choose how to render it.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name implements Formatter.
func (f *JSONFormatter) Name() string { return "json" }

// Extension implements Formatter.
func (f *JSONFormatter) Extension() string { return ".json" }

// jsonDocument is the JSON layout of one document.
type jsonDocument struct {
	Kind       string              `json:"kind"`
	Video      *model.VideoDetails `json:"video"`
	Comments   []model.Comment     `json:"comments,omitempty"`
	Total      int                 `json:"total_comments,omitempty"`
	Transcript string              `json:"transcript,omitempty"`
}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, exp *model.Export, kind model.ContentKind) error {
	if exp.Details == nil {
		return ErrNoDetails
	}

	doc := jsonDocument{
		Kind:  kind.String(),
		Video: exp.Details,
	}
	switch kind {
	case model.KindComments:
		doc.Comments = exp.Comments
		doc.Total = model.CountComments(exp.Comments)
	case model.KindTranscript:
		doc.Transcript = exp.Transcript
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
