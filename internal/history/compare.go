package history

// Change summarizes how an export differs from the previous one of the same
// video and kind.
type Change struct {
	// HasPrevious is false for the first export of a video and kind.
	HasPrevious bool

	// CommentDelta is the difference in comment count (replies included).
	CommentDelta int

	// ThreadDelta is the difference in top-level thread count.
	ThreadDelta int

	// ContentChanged reports whether the document digest differs.
	ContentChanged bool
}

// Compare reports the change from prev to cur. prev may be nil.
func Compare(prev, cur *Entry) Change {
	if prev == nil || cur == nil {
		return Change{}
	}
	return Change{
		HasPrevious:    true,
		CommentDelta:   cur.Comments - prev.Comments,
		ThreadDelta:    cur.Threads - prev.Threads,
		ContentChanged: cur.Digest != prev.Digest,
	}
}
