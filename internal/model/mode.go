package model

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects which content kinds an export produces.
// It is a bit set so that several kinds can be requested at once.
type Mode uint8

const (
	// ModeComments requests the comment listing.
	ModeComments Mode = 1 << iota

	// ModeTranscript requests the transcript.
	ModeTranscript

	// ModeAll requests every content kind.
	ModeAll = ModeComments | ModeTranscript
)

// ErrInvalidMode is returned by ParseMode for unknown mode names.
var ErrInvalidMode = errors.New("invalid mode: use comments, transcript or all")

// ParseMode parses a mode name or a comma separated list of names.
// Accepted names are "comments", "transcript" and "all" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	var m Mode
	for part := range strings.SplitSeq(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "comments", "comment":
			m |= ModeComments
		case "transcript", "transcription":
			m |= ModeTranscript
		case "all":
			m |= ModeAll
		case "":
			continue
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidMode, part)
		}
	}
	if m == 0 {
		return 0, ErrInvalidMode
	}
	return m, nil
}

// Includes reports whether the mode requests the given content kind.
func (m Mode) Includes(kind ContentKind) bool {
	switch kind {
	case KindComments:
		return m&ModeComments != 0
	case KindTranscript:
		return m&ModeTranscript != 0
	default:
		return false
	}
}

// Kinds returns the requested content kinds in output order.
func (m Mode) Kinds() []ContentKind {
	var kinds []ContentKind
	for _, k := range []ContentKind{KindComments, KindTranscript} {
		if m.Includes(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// String returns the canonical textual form of the mode.
func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeComments:
		return "comments"
	case ModeTranscript:
		return "transcript"
	default:
		return "none"
	}
}
