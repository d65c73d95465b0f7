package clipprune

import "context"

// Fetcher retrieves HTML from URLs. The pipeline uses it as the offscreen
// channel for pagination and redirects; the CLI uses it for URL inputs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch loads the URL in a context isolated from the page being pruned
	// and returns the HTML once loading completed.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
