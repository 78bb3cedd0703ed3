package model

// watchURLPrefix is the fixed template used to build canonical watch URLs.
const watchURLPrefix = "https://www.youtube.com/watch?v="

// VideoDetails is the descriptive metadata of a single video.
type VideoDetails struct {
	// ID is the identifier the details were requested for.
	ID string `json:"id"`

	// Title is the video title.
	Title string `json:"title"`

	// WatchURL is the canonical watch URL derived from ID.
	WatchURL string `json:"watch_url"`

	// Description is the video description. It may be empty.
	Description string `json:"description"`
}

// WatchURL returns the canonical watch URL for a video identifier.
// The URL is always synthesized from the identifier; URLs returned by the
// remote API are ignored.
func WatchURL(id string) string {
	return watchURLPrefix + id
}
