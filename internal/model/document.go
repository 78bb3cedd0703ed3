package model

// ContentKind identifies the type of content a document carries.
type ContentKind int

const (
	// KindComments is the threaded comment listing.
	KindComments ContentKind = iota + 1

	// KindTranscript is the video transcript.
	KindTranscript
)

// String returns the lowercase name of the content kind.
func (k ContentKind) String() string {
	switch k {
	case KindComments:
		return "comments"
	case KindTranscript:
		return "transcript"
	default:
		return "unknown"
	}
}

// Document is a named text artifact ready to be saved as a file.
type Document struct {
	// Kind is the content type held by the document.
	Kind ContentKind `json:"kind"`

	// Filename is the file name derived from the video title.
	Filename string `json:"filename"`

	// Content is the full text body.
	Content string `json:"content"`
}
