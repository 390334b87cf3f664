package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// DefaultTimeout bounds every request issued by the Client.
const DefaultTimeout = 30 * time.Second

// snippetLimit caps how much of an error response body is kept for diagnostics.
const snippetLimit = 200

// Client reads a repository's contents through the GitHub contents API.
//
// Client provides the two reads the aggregation pipeline needs:
//   - ListDirectory for structured directory listings
//   - ReadText for raw file content by download URL
//
// A non-success response is never treated as an empty result; it surfaces
// as a *RemoteError carrying the status code and a body snippet. Transport
// failures (DNS, connection, timeout) surface as the wrapped net/http error.
// The Client never retries; tolerance decisions belong to callers.
//
// Example usage:
//
//	client := github.NewClient("someuser", "projects", "main")
//
//	entries, err := client.ListDirectory(ctx, "projects")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range entries {
//	    fmt.Println(e.Name, e.Kind)
//	}
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	owner      string
	repo       string
	ref        string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithBaseURL points the client at a different API endpoint.
// Useful for GitHub Enterprise hosts and for tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithUserAgent overrides the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a Client for the given repository.
//
// ref selects the branch, tag or commit to read from; an empty ref uses
// the repository's default branch.
func NewClient(owner, repo, ref string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		userAgent:  "showcase",
		owner:      owner,
		repo:       repo,
		ref:        ref,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListDirectory lists the contents of a directory in the repository.
//
// path is relative to the repository root; an empty path lists the root.
// The returned entries are in API order, not sorted.
//
// Returns a *RemoteError for non-success responses (404 for a missing
// path, 403 when rate limited, and so on).
func (c *Client) ListDirectory(ctx context.Context, path string) ([]Entry, error) {
	u := c.contentsURL(path)

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var items []contentsItem
	if err := json.Unmarshal(body, &items); err != nil {
		// A lone object instead of an array means path named a file.
		return nil, fmt.Errorf("decode listing for %q: %w", path, err)
	}

	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		entries = append(entries, it.toEntry())
	}
	return entries, nil
}

// ReadText fetches raw text content from a download URL.
//
// The URL comes from a previously listed Entry; the content is returned
// verbatim, without trimming or normalization.
func (c *Client) ReadText(ctx context.Context, rawURL string) (string, error) {
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// contentsURL builds the contents API URL for a repository path.
func (c *Client) contentsURL(path string) string {
	u := fmt.Sprintf("%s/repos/%s/%s/contents", c.baseURL, url.PathEscape(c.owner), url.PathEscape(c.repo))
	if path != "" {
		// Escape each segment but keep the separators.
		segs := strings.Split(path, "/")
		for i, s := range segs {
			segs[i] = url.PathEscape(s)
		}
		u += "/" + strings.Join(segs, "/")
	}
	if c.ref != "" {
		u += "?ref=" + url.QueryEscape(c.ref)
	}
	return u
}

// get performs a GET request and returns the body, mapping non-2xx
// responses to *RemoteError.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, snippetLimit))
		return nil, &RemoteError{
			StatusCode: resp.StatusCode,
			URL:        u,
			Snippet:    strings.TrimSpace(string(snippet)),
		}
	}

	return io.ReadAll(resp.Body)
}
