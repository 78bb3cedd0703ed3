package youtube

import (
	"net/url"
	"strings"
)

// Host fragments recognized as the video platform.
const (
	platformHost  = "youtube.com"
	shortLinkHost = "youtu.be"
)

// Normalize extracts a video identifier from free-form input.
//
// Accepted shapes:
//   - https://www.youtube.com/watch?v=ID (any host containing youtube.com)
//   - https://youtu.be/ID
//   - ID (returned unchanged)
//
// The "v" query parameter wins when present. Input that does not parse as an
// absolute URL of the platform is returned unchanged; it is assumed to already
// be an identifier. No identifier syntax validation is done here; a malformed
// identifier surfaces later as a remote failure.
func Normalize(input string) string {
	u, err := url.Parse(input)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return input
	}

	host := strings.ToLower(u.Hostname())
	if !strings.Contains(host, platformHost) && !strings.Contains(host, shortLinkHost) {
		return input
	}

	if v := u.Query().Get("v"); v != "" {
		return v
	}

	if strings.Contains(host, shortLinkHost) {
		segment, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		if segment != "" {
			return segment
		}
	}

	return input
}

// NormalizeAll normalizes a list of inputs.
// Blank entries are skipped and duplicates are dropped, keeping first-seen order.
func NormalizeAll(inputs []string) []string {
	seen := make(map[string]bool, len(inputs))
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		id := Normalize(in)
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
