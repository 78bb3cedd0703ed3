package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// newTestClient starts a fake API server and returns a Client pointed at it.
// The returned counter tracks how many requests reached the server.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(WithEndpoint(srv.URL+"/"), WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return c, &hits
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body)) //nolint:errcheck // test server
}

func TestClientFetchVideoDetails(t *testing.T) {
	t.Parallel()

	t.Run("maps snippet and synthesizes watch URL", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasSuffix(r.URL.Path, "/videos") {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("id") != "XYZ" {
				t.Errorf("expected id=XYZ, got %q", q.Get("id"))
			}
			if q.Get("key") != "K" {
				t.Errorf("expected key=K, got %q", q.Get("key"))
			}
			if q.Get("part") != "snippet" {
				t.Errorf("expected part=snippet, got %q", q.Get("part"))
			}
			writeJSON(w, http.StatusOK, `{"items":[{"id":"XYZ","snippet":{"title":"Test Video","description":"Desc"}}]}`)
		})

		details, err := c.FetchVideoDetails(context.Background(), "K", "XYZ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if details.Title != "Test Video" || details.Description != "Desc" {
			t.Errorf("unexpected details: %+v", details)
		}
		if details.WatchURL != "https://www.youtube.com/watch?v=XYZ" {
			t.Errorf("unexpected watch URL: %s", details.WatchURL)
		}
	})

	t.Run("zero items is video not found", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, `{"items":[]}`)
		})

		_, err := c.FetchVideoDetails(context.Background(), "K", "missing")
		if !errors.Is(err, ErrVideoNotFound) {
			t.Fatalf("expected ErrVideoNotFound, got %v", err)
		}
	})

	t.Run("API error becomes RemoteError", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusForbidden, `{"error":{"code":403,"message":"quota exceeded"}}`)
		})

		_, err := c.FetchVideoDetails(context.Background(), "K", "XYZ")
		if !errors.Is(err, ErrRemoteRequestFailed) {
			t.Fatalf("expected ErrRemoteRequestFailed, got %v", err)
		}
		var remote *RemoteError
		if !errors.As(err, &remote) {
			t.Fatalf("expected *RemoteError, got %T", err)
		}
		if remote.Status != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", remote.Status)
		}
		if !strings.Contains(remote.Message, "quota exceeded") {
			t.Errorf("expected diagnostic message, got %q", remote.Message)
		}
	})
}

func TestClientFetchCommentsPage(t *testing.T) {
	t.Parallel()

	t.Run("maps threads and replies", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasSuffix(r.URL.Path, "/commentThreads") {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("maxResults") != "100" {
				t.Errorf("expected maxResults=100, got %q", q.Get("maxResults"))
			}
			if q.Get("videoId") != "XYZ" {
				t.Errorf("expected videoId=XYZ, got %q", q.Get("videoId"))
			}
			if q.Has("pageToken") {
				t.Errorf("first page must not send pageToken")
			}
			writeJSON(w, http.StatusOK, `{
				"nextPageToken": "page-2",
				"items": [
					{"snippet": {"topLevelComment": {"id": "c1", "snippet": {
						"authorDisplayName": "Author1", "textDisplay": "text1",
						"authorProfileImageUrl": "https://img/1", "publishedAt": "2024-01-01T00:00:00Z", "likeCount": 5}}},
					 "replies": {"comments": [{"id": "r1", "snippet": {"authorDisplayName": "ReplyAuthor", "textDisplay": "replytext"}}]}},
					{"snippet": {"topLevelComment": {"id": "c2", "snippet": {"authorDisplayName": "Author2", "textDisplay": "text2"}}},
					 "replies": {"comments": []}}
				]
			}`)
		})

		page, err := c.FetchCommentsPage(context.Background(), "K", "XYZ", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Comments) != 2 {
			t.Fatalf("expected 2 comments, got %d", len(page.Comments))
		}

		first := page.Comments[0]
		if first.AuthorDisplayName != "Author1" || first.TextDisplay != "text1" || first.LikeCount != 5 {
			t.Errorf("unexpected first comment: %+v", first)
		}
		if first.PublishedAt != "2024-01-01T00:00:00Z" || first.AuthorProfileImageURL != "https://img/1" {
			t.Errorf("unexpected first comment metadata: %+v", first)
		}
		if len(first.Replies) != 1 || first.Replies[0].AuthorDisplayName != "ReplyAuthor" {
			t.Errorf("unexpected replies: %+v", first.Replies)
		}
		if first.Replies[0].Replies != nil {
			t.Error("replies must not carry replies")
		}
		if page.Comments[1].Replies != nil {
			t.Error("empty replies collection must map to nil")
		}
		if page.NextPageToken == nil || *page.NextPageToken != "page-2" {
			t.Errorf("unexpected next page token: %v", page.NextPageToken)
		}
	})

	t.Run("passes token and reports last page", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("pageToken"); got != "page-2" {
				t.Errorf("expected pageToken=page-2, got %q", got)
			}
			writeJSON(w, http.StatusOK, `{"items":[]}`)
		})

		token := "page-2"
		page, err := c.FetchCommentsPage(context.Background(), "K", "XYZ", &token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.NextPageToken != nil {
			t.Errorf("expected nil token on last page, got %q", *page.NextPageToken)
		}
		if page.HasMore() {
			t.Error("last page should not report more")
		}
	})

	t.Run("server error is remote failure", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{"error":{"code":500,"message":"backend error"}}`)
		})

		_, err := c.FetchCommentsPage(context.Background(), "K", "XYZ", nil)
		if Kind(err) != KindRemoteRequestFailed {
			t.Fatalf("expected remote failure, got %v", err)
		}
	})
}

func TestClientArgumentChecks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		credential string
		identifier string
		wantErr    error
	}{
		{name: "empty credential", credential: "", identifier: "XYZ", wantErr: ErrMissingCredential},
		{name: "empty identifier", credential: "K", identifier: "", wantErr: ErrMissingIdentifier},
		{name: "blank identifier", credential: "K", identifier: "  ", wantErr: ErrMissingIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, hits := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, `{"items":[]}`)
			})

			if _, err := c.FetchVideoDetails(context.Background(), tt.credential, tt.identifier); !errors.Is(err, tt.wantErr) {
				t.Errorf("FetchVideoDetails: expected %v, got %v", tt.wantErr, err)
			}
			if _, err := c.FetchCommentsPage(context.Background(), tt.credential, tt.identifier, nil); !errors.Is(err, tt.wantErr) {
				t.Errorf("FetchCommentsPage: expected %v, got %v", tt.wantErr, err)
			}
			if n := hits.Load(); n != 0 {
				t.Errorf("expected no network calls, got %d", n)
			}
		})
	}
}

func TestClientCancelledContext(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"items":[]}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchCommentsPage(ctx, "K", "XYZ", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, ErrRemoteRequestFailed) {
		t.Error("cancellation must not be reported as a remote failure")
	}
}

func TestScrubKey(t *testing.T) {
	t.Parallel()

	got := scrubKey("https://youtube.googleapis.com/youtube/v3/videos?id=XYZ&key=AIzaSecret")
	if strings.Contains(got, "AIzaSecret") {
		t.Errorf("key not scrubbed: %s", got)
	}
	if !strings.Contains(got, "id=XYZ") {
		t.Errorf("other params lost: %s", got)
	}
}

func TestNewClientProxy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{name: "valid proxy", address: "127.0.0.1:1080"},
		{name: "missing port", address: "127.0.0.1", wantErr: true},
		{name: "port out of range", address: "127.0.0.1:70000", wantErr: true},
		{name: "empty host", address: ":1080", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewClient(WithProxy(tt.address))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidProxyAddress) {
					t.Errorf("expected ErrInvalidProxyAddress, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
