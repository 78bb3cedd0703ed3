package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/ytcomments/internal/document"
	"github.com/nao1215/ytcomments/internal/model"
	"github.com/nao1215/ytcomments/internal/transcript"
	"github.com/nao1215/ytcomments/internal/youtube"
)

// staticSource is a transcript source returning fixed text.
type staticSource struct {
	text string
	err  error
}

func (s staticSource) Name() string { return "static" }

func (s staticSource) Fetch(context.Context, string) (string, error) { return s.text, s.err }

func TestCollectAndFormatEndToEnd(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{
		details: map[string]*model.VideoDetails{"XYZ": testVideo("XYZ")},
		pages: []*model.PageResult{{
			Comments: []model.Comment{
				{
					AuthorDisplayName: "Author1",
					TextDisplay:       "text1",
					Replies:           []model.Comment{{AuthorDisplayName: "ReplyAuthor", TextDisplay: "replytext"}},
				},
				{AuthorDisplayName: "Author2", TextDisplay: "text2"},
			},
		}},
	}

	docs, err := NewExporter(f).CollectAndFormat(context.Background(), "K", "XYZ", model.ModeComments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}

	want := "Test Video\n\nDesc\n\nComentários extraídos de: https://www.youtube.com/watch?v=XYZ\n\n" +
		"-------------------------------------------------------\n\n" +
		"Author1: text1\n  ReplyAuthor: replytext\nAuthor2: text2\n"
	if docs[0].Content != want {
		t.Errorf("unexpected content:\n%q\nwant:\n%q", docs[0].Content, want)
	}
	if docs[0].Filename != "comentarios_test_video.txt" {
		t.Errorf("unexpected filename: %s", docs[0].Filename)
	}
}

func TestCollectAndFormatPagination(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{
		details: map[string]*model.VideoDetails{"XYZ": testVideo("XYZ")},
		pages: []*model.PageResult{
			{Comments: threads("p1", 3), NextPageToken: strPtr("t2")},
			{Comments: threads("p2", 2), NextPageToken: strPtr("t3")},
			{Comments: threads("p3", 4)},
		},
	}

	exp, err := NewExporter(f).Run(context.Background(), "K", "XYZ", model.ModeComments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.pageCalls != 3 {
		t.Errorf("expected 3 page fetches, got %d", f.pageCalls)
	}
	if len(exp.Comments) != 9 {
		t.Errorf("expected 9 comments, got %d", len(exp.Comments))
	}
	if exp.PagesFetched != 3 {
		t.Errorf("expected 3 pages, got %d", exp.PagesFetched)
	}
	if f.tokens[0] != nil || *f.tokens[1] != "t2" || *f.tokens[2] != "t3" {
		t.Errorf("tokens not chained correctly: %v", f.tokens)
	}
	if exp.Comments[0].AuthorDisplayName != "p1" || exp.Comments[8].AuthorDisplayName != "p3" {
		t.Error("comments not kept in arrival order")
	}
}

func TestCollectAndFormatFailures(t *testing.T) {
	t.Parallel()

	t.Run("video not found yields no documents", func(t *testing.T) {
		t.Parallel()

		f := &fakeFetcher{}
		docs, err := NewExporter(f).CollectAndFormat(context.Background(), "K", "missing", model.ModeComments)
		if !errors.Is(err, youtube.ErrVideoNotFound) {
			t.Fatalf("expected ErrVideoNotFound, got %v", err)
		}
		if docs != nil {
			t.Errorf("expected no documents, got %d", len(docs))
		}
		if f.pageCalls != 0 {
			t.Error("comments must not be fetched after a details failure")
		}
	})

	t.Run("missing credential", func(t *testing.T) {
		t.Parallel()

		f := &fakeFetcher{details: map[string]*model.VideoDetails{"XYZ": testVideo("XYZ")}}
		_, err := NewExporter(f).CollectAndFormat(context.Background(), "", "XYZ", model.ModeAll)
		if youtube.Kind(err) != youtube.KindMissingCredential {
			t.Fatalf("expected missing credential, got %v", err)
		}
	})

	t.Run("missing identifier", func(t *testing.T) {
		t.Parallel()

		f := &fakeFetcher{}
		_, err := NewExporter(f).CollectAndFormat(context.Background(), "K", "   ", model.ModeComments)
		if !errors.Is(err, youtube.ErrMissingIdentifier) {
			t.Fatalf("expected ErrMissingIdentifier, got %v", err)
		}
		if f.detailCalls != 0 {
			t.Error("no fetch expected without an identifier")
		}
	})

	t.Run("empty mode", func(t *testing.T) {
		t.Parallel()

		_, err := NewExporter(&fakeFetcher{}).CollectAndFormat(context.Background(), "K", "XYZ", 0)
		if !errors.Is(err, ErrNoContentRequested) {
			t.Fatalf("expected ErrNoContentRequested, got %v", err)
		}
	})

	t.Run("page failure discards earlier pages", func(t *testing.T) {
		t.Parallel()

		remote := &youtube.RemoteError{Op: "commentThreads.list", Status: 500, Message: "backend error"}
		f := &fakeFetcher{
			details: map[string]*model.VideoDetails{"XYZ": testVideo("XYZ")},
			pages: []*model.PageResult{
				{Comments: threads("p1", 2), NextPageToken: strPtr("t2")},
			},
			failOnPage: 2,
			pageErr:    remote,
		}

		docs, err := NewExporter(f).CollectAndFormat(context.Background(), "K", "XYZ", model.ModeComments)
		if !errors.Is(err, youtube.ErrRemoteRequestFailed) {
			t.Fatalf("expected remote failure, got %v", err)
		}
		if docs != nil {
			t.Error("partial results must not be returned")
		}
		if !strings.Contains(err.Error(), "page 2") {
			t.Errorf("expected failing page in message, got %v", err)
		}
	})

	t.Run("nil page is an error", func(t *testing.T) {
		t.Parallel()

		f := &fakeFetcher{
			details: map[string]*model.VideoDetails{"XYZ": testVideo("XYZ")},
			pages:   []*model.PageResult{nil},
		}
		docs, err := NewExporter(f).CollectAndFormat(context.Background(), "K", "XYZ", model.ModeComments)
		if !errors.Is(err, ErrEmptyPage) {
			t.Fatalf("expected ErrEmptyPage, got %v", err)
		}
		if docs != nil {
			t.Error("no documents expected")
		}
	})

	t.Run("transcript without source", func(t *testing.T) {
		t.Parallel()

		f := &fakeFetcher{details: map[string]*model.VideoDetails{"XYZ": testVideo("XYZ")}}
		_, err := NewExporter(f).CollectAndFormat(context.Background(), "K", "XYZ", model.ModeTranscript)
		if !errors.Is(err, transcript.ErrNoSource) {
			t.Fatalf("expected ErrNoSource, got %v", err)
		}
	})

	t.Run("transcript failure aborts the whole export", func(t *testing.T) {
		t.Parallel()

		f := &fakeFetcher{details: map[string]*model.VideoDetails{"XYZ": testVideo("XYZ")}}
		src := staticSource{err: transcript.ErrTranscriptUnavailable}
		docs, err := NewExporter(f, WithTranscriptSource(src)).
			CollectAndFormat(context.Background(), "K", "XYZ", model.ModeAll)
		if !errors.Is(err, transcript.ErrTranscriptUnavailable) {
			t.Fatalf("expected ErrTranscriptUnavailable, got %v", err)
		}
		if docs != nil {
			t.Error("no documents expected")
		}
	})
}

func TestCollectAndFormatModes(t *testing.T) {
	t.Parallel()

	t.Run("all produces comments then transcript", func(t *testing.T) {
		t.Parallel()

		f := &fakeFetcher{
			details: map[string]*model.VideoDetails{"XYZ": testVideo("XYZ")},
			pages:   []*model.PageResult{{Comments: threads("a", 1)}},
		}
		e := NewExporter(f, WithTranscriptSource(staticSource{text: "spoken words"}))

		docs, err := e.CollectAndFormat(context.Background(), "K", "https://youtu.be/XYZ", model.ModeAll)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(docs) != 2 {
			t.Fatalf("expected 2 documents, got %d", len(docs))
		}
		if docs[1].Filename != "transcricao_test_video.txt" {
			t.Errorf("unexpected transcript filename: %s", docs[1].Filename)
		}
		if !strings.HasSuffix(docs[1].Content, "-------------------------------------------------------\n\nspoken words") {
			t.Errorf("unexpected transcript content: %q", docs[1].Content)
		}
	})

	t.Run("transcript only skips comments", func(t *testing.T) {
		t.Parallel()

		f := &fakeFetcher{details: map[string]*model.VideoDetails{"XYZ": testVideo("XYZ")}}
		e := NewExporter(f, WithTranscriptSource(staticSource{text: "words"}))

		if _, err := e.CollectAndFormat(context.Background(), "K", "XYZ", model.ModeTranscript); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.pageCalls != 0 {
			t.Errorf("expected no comment fetches, got %d", f.pageCalls)
		}
	})

	t.Run("markdown formatter", func(t *testing.T) {
		t.Parallel()

		f := &fakeFetcher{
			details: map[string]*model.VideoDetails{"XYZ": testVideo("XYZ")},
			pages:   []*model.PageResult{{Comments: threads("a", 1)}},
		}
		e := NewExporter(f, WithFormatter(document.NewMarkdownFormatter()))

		docs, err := e.CollectAndFormat(context.Background(), "K", "XYZ", model.ModeComments)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(docs[0].Filename, ".md") {
			t.Errorf("expected .md file, got %s", docs[0].Filename)
		}
	})

	t.Run("no caching between calls", func(t *testing.T) {
		t.Parallel()

		f := &fakeFetcher{details: map[string]*model.VideoDetails{"XYZ": testVideo("XYZ")}}
		e := NewExporter(f)

		for range 2 {
			if _, err := e.CollectAndFormat(context.Background(), "K", "XYZ", model.ModeComments); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if f.detailCalls != 2 || f.pageCalls != 2 {
			t.Errorf("expected 2 detail and 2 page calls, got %d and %d", f.detailCalls, f.pageCalls)
		}
	})
}
