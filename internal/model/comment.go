package model

// Comment is one discussion entry on a video.
// Top-level comments may carry replies; replies never carry replies of their own.
type Comment struct {
	// ID is the platform's opaque comment identifier.
	ID string `json:"id"`

	// AuthorDisplayName is the name shown next to the comment.
	AuthorDisplayName string `json:"author_display_name"`

	// AuthorProfileImageURL points at the author's avatar.
	// It is passed through as received and never fetched or validated.
	AuthorProfileImageURL string `json:"author_profile_image_url,omitempty"`

	// TextDisplay is the comment body as rendered by the platform.
	// It may contain inline markup such as <b> or <a href=...>.
	TextDisplay string `json:"text_display"`

	// PublishedAt is the ISO 8601 publication timestamp as received.
	PublishedAt string `json:"published_at,omitempty"`

	// LikeCount is the number of likes, never negative.
	LikeCount int64 `json:"like_count"`

	// Replies holds the comment's replies in arrival order.
	// nil is the only "no replies" state; a non-nil slice is never empty.
	Replies []Comment `json:"replies,omitempty"`
}

// HasReplies reports whether the comment carries at least one reply.
func (c Comment) HasReplies() bool {
	return len(c.Replies) > 0
}

// CountComments returns the number of comments including replies.
func CountComments(comments []Comment) int {
	total := 0
	for _, c := range comments {
		total += 1 + len(c.Replies)
	}
	return total
}

// PageResult is the result of fetching one page of comment threads.
type PageResult struct {
	// Comments are the page's top-level comments with replies inlined.
	Comments []Comment

	// NextPageToken is the continuation token for the following page.
	// nil means this page was the last one.
	NextPageToken *string
}

// HasMore reports whether another page can be requested.
func (p *PageResult) HasMore() bool {
	return p != nil && p.NextPageToken != nil
}
