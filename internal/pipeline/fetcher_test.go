package pipeline

import (
	"context"
	"sync"

	"github.com/nao1215/ytcomments/internal/model"
	"github.com/nao1215/ytcomments/internal/youtube"
)

// fakeFetcher serves canned details and comment pages.
// It mirrors the credential and identifier checks of the real client.
type fakeFetcher struct {
	mu sync.Mutex

	details    map[string]*model.VideoDetails
	pages      []*model.PageResult
	failOnPage int
	pageErr    error

	detailCalls int
	pageCalls   int
	tokens      []*string
}

func (f *fakeFetcher) FetchVideoDetails(_ context.Context, credential, identifier string) (*model.VideoDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if credential == "" {
		return nil, youtube.ErrMissingCredential
	}
	f.detailCalls++
	d, ok := f.details[identifier]
	if !ok {
		return nil, youtube.ErrVideoNotFound
	}
	return d, nil
}

func (f *fakeFetcher) FetchCommentsPage(_ context.Context, credential, _ string, token *string) (*model.PageResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if credential == "" {
		return nil, youtube.ErrMissingCredential
	}
	f.pageCalls++
	f.tokens = append(f.tokens, token)
	if f.failOnPage == f.pageCalls {
		return nil, f.pageErr
	}
	if f.pageCalls > len(f.pages) {
		return &model.PageResult{}, nil
	}
	return f.pages[f.pageCalls-1], nil
}

func strPtr(s string) *string { return &s }

// testVideo returns details for the standard test video.
func testVideo(id string) *model.VideoDetails {
	return &model.VideoDetails{
		ID:          id,
		Title:       "Test Video",
		WatchURL:    model.WatchURL(id),
		Description: "Desc",
	}
}

// threads builds n comments without replies.
func threads(prefix string, n int) []model.Comment {
	out := make([]model.Comment, n)
	for i := range out {
		out[i] = model.Comment{AuthorDisplayName: prefix, TextDisplay: "t"}
	}
	return out
}
