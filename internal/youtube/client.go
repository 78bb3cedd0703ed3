package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nao1215/ytcomments/internal/model"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

const (
	// MaxPageSize is the largest page size commentThreads.list accepts.
	MaxPageSize = 100

	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 30 * time.Second

	// keyParam is the query parameter carrying the API key.
	keyParam = "key"
)

// Client reads video metadata and comment threads from the YouTube Data API.
// It holds no credential; every call takes the API key as a parameter.
type Client struct {
	service      *ytapi.Service
	httpClient   *http.Client
	endpoint     string
	userAgent    string
	proxyAddress string
	timeout      time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for API requests.
// When set, WithTimeout and WithProxy are ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithEndpoint overrides the API base URL, e.g. for a local test server.
// The endpoint must end with a slash.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithUserAgent sets the User-Agent sent with API requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithProxy routes API requests through a SOCKS5 proxy at "host:port".
func WithProxy(address string) Option {
	return func(c *Client) {
		c.proxyAddress = address
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a Client. It does not contact the API.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		hc, err := newHTTPClient(c.proxyAddress, c.timeout)
		if err != nil {
			return nil, err
		}
		c.httpClient = hc
	}

	svcOpts := []option.ClientOption{option.WithHTTPClient(c.httpClient)}
	if c.endpoint != "" {
		svcOpts = append(svcOpts, option.WithEndpoint(c.endpoint))
	}
	if c.userAgent != "" {
		svcOpts = append(svcOpts, option.WithUserAgent(c.userAgent))
	}

	svc, err := ytapi.NewService(context.Background(), svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	c.service = svc

	return c, nil
}

// HTTPClient returns the HTTP client used for API requests, so other
// YouTube requests can share its proxy and timeout.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// FetchVideoDetails reads the metadata of a single video.
//
// The watch URL of the result is always built from identifier. If the API
// returns no items, ErrVideoNotFound is returned.
func (c *Client) FetchVideoDetails(ctx context.Context, credential, identifier string) (*model.VideoDetails, error) {
	if err := checkArgs(credential, identifier); err != nil {
		return nil, err
	}

	const op = "videos.list"
	resp, err := c.service.Videos.List([]string{"snippet"}).
		Id(identifier).
		Context(ctx).
		Do(googleapi.QueryParameter(keyParam, credential))
	if err != nil {
		return nil, remoteError(ctx, op, credential, err)
	}
	if len(resp.Items) == 0 || resp.Items[0] == nil {
		return nil, fmt.Errorf("%w: %s", ErrVideoNotFound, identifier)
	}

	details := &model.VideoDetails{
		ID:       identifier,
		WatchURL: model.WatchURL(identifier),
	}
	if snippet := resp.Items[0].Snippet; snippet != nil {
		details.Title = snippet.Title
		details.Description = snippet.Description
	}

	return details, nil
}

// FetchCommentsPage reads one page of top-level comment threads with their
// inlined replies. A nil token requests the first page. The returned
// NextPageToken is nil on the last page.
func (c *Client) FetchCommentsPage(ctx context.Context, credential, identifier string, token *string) (*model.PageResult, error) {
	if err := checkArgs(credential, identifier); err != nil {
		return nil, err
	}

	const op = "commentThreads.list"
	call := c.service.CommentThreads.List([]string{"snippet", "replies"}).
		VideoId(identifier).
		MaxResults(MaxPageSize).
		Context(ctx)
	if token != nil {
		call = call.PageToken(*token)
	}

	resp, err := call.Do(googleapi.QueryParameter(keyParam, credential))
	if err != nil {
		return nil, remoteError(ctx, op, credential, err)
	}

	page := &model.PageResult{
		Comments: make([]model.Comment, 0, len(resp.Items)),
	}
	for _, thread := range resp.Items {
		if thread == nil || thread.Snippet == nil {
			continue
		}
		comment := mapComment(thread.Snippet.TopLevelComment)
		if thread.Replies != nil && len(thread.Replies.Comments) > 0 {
			replies := make([]model.Comment, 0, len(thread.Replies.Comments))
			for _, r := range thread.Replies.Comments {
				replies = append(replies, mapComment(r))
			}
			comment.Replies = replies
		}
		page.Comments = append(page.Comments, comment)
	}
	if resp.NextPageToken != "" {
		next := resp.NextPageToken
		page.NextPageToken = &next
	}

	return page, nil
}

// mapComment converts an API comment into a flat model.Comment.
// Replies are attached by the caller.
func mapComment(c *ytapi.Comment) model.Comment {
	if c == nil {
		return model.Comment{}
	}
	out := model.Comment{ID: c.Id}
	if s := c.Snippet; s != nil {
		out.AuthorDisplayName = s.AuthorDisplayName
		out.AuthorProfileImageURL = s.AuthorProfileImageUrl
		out.TextDisplay = s.TextDisplay
		out.PublishedAt = s.PublishedAt
		out.LikeCount = max(s.LikeCount, 0)
	}
	return out
}

// checkArgs validates the arguments shared by both read operations.
func checkArgs(credential, identifier string) error {
	if credential == "" {
		return ErrMissingCredential
	}
	if strings.TrimSpace(identifier) == "" {
		return ErrMissingIdentifier
	}
	return nil
}

// remoteError converts an API or transport failure into a *RemoteError.
// Context cancellation is passed through so callers can tell it apart.
// The credential is scrubbed from any URL carried by the error.
func remoteError(ctx context.Context, op, credential string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Code)
		}
		return &RemoteError{Op: op, Status: apiErr.Code, Message: msg, Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		scrubbed := &url.Error{Op: urlErr.Op, URL: scrubKey(urlErr.URL), Err: urlErr.Err}
		return &RemoteError{Op: op, Message: scrubbed.Error(), Err: scrubbed}
	}

	msg := err.Error()
	if credential != "" {
		msg = strings.ReplaceAll(msg, credential, "REDACTED")
	}
	return &RemoteError{Op: op, Message: msg, Err: errors.New(msg)}
}

// scrubKey removes the API key from a request URL.
func scrubKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has(keyParam) {
		q.Set(keyParam, "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
