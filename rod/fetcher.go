// Package rod provides a clipprune.Fetcher that renders pages in headless
// Chrome, for continuation pages and redirects whose article is assembled by
// scripts.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/clipprune"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 10 * time.Second

// DefaultSettle is how long the DOM must stay unchanged before the HTML is
// read.
const DefaultSettle = 300 * time.Millisecond

var _ clipprune.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation. Every
// fetch runs in a fresh tab, isolated from the page being pruned.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	session      *Session
	timeout      time.Duration
	settle       time.Duration
	recycleAfter int
	closed       atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the bound on a single page load.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettle sets how long the DOM must stay unchanged before reading it.
// Zero reads as soon as the load event fired.
func WithSettle(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithRecycleAfter sets how many fetches one browser process serves before
// it is replaced.
func WithRecycleAfter(n int) Option {
	return func(f *Fetcher) {
		f.recycleAfter = n
	}
}

// NewFetcher launches a headless Chrome browser. Close must be called when
// the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		settle:       DefaultSettle,
		recycleAfter: DefaultRecycleAfter,
	}
	for _, opt := range opts {
		opt(f)
	}
	session, err := NewSession(WithTabLimit(f.recycleAfter))
	if err != nil {
		return nil, err
	}
	f.session = session
	return f, nil
}

// Fetch navigates a new tab to the URL and returns the rendered HTML once
// loading finished and the DOM settled.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", clipprune.Errorf(clipprune.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.session.OpenTab()
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", f.fail(ctx, err, url)
	}
	if err := page.WaitLoad(); err != nil {
		return "", f.fail(ctx, err, url)
	}
	if f.settle > 0 {
		if err := page.WaitDOMStable(f.settle, 0); err != nil {
			return "", f.fail(ctx, err, url)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", f.fail(ctx, err, url)
	}
	return html, nil
}

// fail returns the context error when the fetch was cut short, EFETCH
// otherwise.
func (f *Fetcher) fail(ctx context.Context, err error, url string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return clipprune.WrapError(clipprune.EFETCH, err, "load %s", url)
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.session.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.session.LauncherPID()
}
