// Package feed fetches and decodes the openfootball tournament document.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/okian/porra/internal/domain/model"
	"github.com/valyala/fasthttp"
)

const (
	// DefaultTimeout bounds one fetch.
	DefaultTimeout = 8 * time.Second
	// DefaultMaxBodySize caps the document size.
	DefaultMaxBodySize = 8 << 20
)

// Source yields the raw feed document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	// Name identifies the source in logs and snapshots.
	Name() string
}

// Client fetches the feed over HTTP. A single attempt is made.
type Client struct {
	url     string
	timeout time.Duration
	client  *fasthttp.Client
}

// NewClient returns a Client for url.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:     url,
		timeout: DefaultTimeout,
		client: &fasthttp.Client{
			Name:                "porra",
			ReadTimeout:         DefaultTimeout,
			WriteTimeout:        DefaultTimeout,
			MaxIdleConnDuration: time.Minute,
			MaxResponseBodySize: DefaultMaxBodySize,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name is the feed URL.
func (c *Client) Name() string { return c.url }

// Fetch downloads the document. Every failure wraps ErrFeedUnavailable.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrFeedUnavailable, c.url, err)
	}
	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return nil, fmt.Errorf("%w: get %s: status %d", ErrFeedUnavailable, c.url, code)
	}
	// resp is released on return.
	return append([]byte(nil), resp.Body()...), nil
}

// FileSource reads the feed from disk.
type FileSource struct {
	Path string
}

// Name is the file path.
func (f FileSource) Name() string { return f.Path }

// Fetch reads the file. Failures wrap ErrFeedUnavailable.
func (f FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	return data, nil
}

// Decode parses an openfootball document. A document without rounds is valid.
func Decode(data []byte) (*model.Feed, error) {
	var f model.Feed
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}
	for i, r := range f.Rounds {
		if r.Name == "" {
			return nil, fmt.Errorf("%w: round %d has no name", ErrMalformedFeed, i)
		}
	}
	return &f, nil
}
