// Package main provides the entry point for the ytcomments CLI.
//
// ytcomments exports the comments and transcript of YouTube videos as
// plain-text documents, using the YouTube Data API v3.
//
// Usage:
//
//	ytcomments export <video-id-or-url>
//	ytcomments export --mode all --list videos.txt
//
// See --help for all available options.
package main

func main() {
	Execute()
}
