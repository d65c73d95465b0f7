// Package http provides an HTTP-based implementation of clipprune.Fetcher for
// loading continuation pages and canonical redirects from sites that serve
// their articles without JavaScript.
package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/clipprune"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize caps the bytes read from a response.
const DefaultMaxBodySize = 8 << 20

// DefaultUserAgent is sent unless WithUserAgent overrides it.
const DefaultUserAgent = "clipprune/1.0 (+https://github.com/fwojciec/clipprune)"

var _ clipprune.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML over plain HTTP. Unlike rod.Fetcher it does not run
// scripts, so pages assembled client-side come back incomplete.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBody   int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize caps the response body. Longer bodies fail with EFETCH.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBody = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		maxBody:   DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{
		Timeout: f.timeout,
	}
	return f
}

// Fetch retrieves the HTML content from the given URL. A 404 or 410 maps to
// ENOTFOUND, every other failure to EFETCH.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", clipprune.WrapError(clipprune.EFETCH, err, "invalid request for %s", url)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", clipprune.WrapError(clipprune.EFETCH, err, "request %s", url)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		return "", clipprune.Errorf(clipprune.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		return "", clipprune.Errorf(clipprune.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return "", clipprune.WrapError(clipprune.EFETCH, err, "read %s", url)
	}
	if int64(len(body)) > f.maxBody {
		return "", clipprune.Errorf(clipprune.EFETCH, "response for %s exceeds %d bytes", url, f.maxBody)
	}

	// Shift_JIS and EUC-JP pages are common; decode to UTF-8 from the header
	// or the meta declaration.
	r, err := charset.NewReader(bytes.NewReader(body), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", clipprune.WrapError(clipprune.EFETCH, err, "decode %s", url)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", clipprune.WrapError(clipprune.EFETCH, err, "decode %s", url)
	}
	return string(decoded), nil
}

// Close is a no-op; http.Client needs no cleanup.
func (f *Fetcher) Close() error {
	return nil
}
