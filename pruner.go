package clipprune

import (
	"context"
	"time"
)

// Status is the user-facing result of a pipeline run.
type Status int

// Pipeline statuses.
const (
	// StatusSkipped means a gate stopped the run before any mutation.
	StatusSkipped Status = iota

	// StatusGarbageOnly means the rule table was skipped and only the
	// post-pass cleanup ran.
	StatusGarbageOnly

	// StatusCompleted means a rule pruned the document.
	StatusCompleted

	// StatusUnsupported means no rule matched the page.
	StatusUnsupported

	// StatusRedirected means the page URL was not canonical and the
	// redirect was not followed.
	StatusRedirected
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusGarbageOnly:
		return "garbage-only"
	case StatusCompleted:
		return "completed"
	case StatusUnsupported:
		return "unsupported"
	case StatusRedirected:
		return "redirected"
	}
	return "unknown"
}

// Message returns the status message shown to the user at the end of a run.
// Statuses that end without a post-pass have no message.
func (s Status) Message() string {
	switch s {
	case StatusGarbageOnly:
		return "Garbages are removed."
	case StatusCompleted:
		return "Completed."
	case StatusUnsupported:
		return "Sorry, this page is not supported yet."
	}
	return ""
}

// Options are supplied by the host once per run.
type Options struct {
	// UnfoldingMode stitches multi-page articles into one document.
	UnfoldingMode bool

	// AlreadyPruned is the idempotency marker from a previous run on the
	// same document. When set the run does nothing.
	AlreadyPruned bool

	// ClipperActive tells the pipeline a third-party clipping tool already
	// took over the page. The pipeline also detects known clippers itself.
	ClipperActive bool

	// ForceGarbagePass runs the post-pass cleanup even when a gate skipped
	// the rule table.
	ForceGarbagePass bool

	// FollowRedirects fetches canonical URLs reported by rules and prunes
	// the fetched document instead.
	FollowRedirects bool

	// StripTags overrides the tags removed by the post-pass.
	StripTags []string
}

// Result reports how a run ended.
type Result struct {
	Status Status

	// Rule names the rule that completed the page.
	Rule string

	// URL is the URL of the pruned document after redirects.
	URL string

	// Location is the canonical URL of an unfollowed redirect.
	Location string

	// Pages counts the documents merged into the result, the first included.
	Pages int

	// Redirects lists the canonical URLs that were followed.
	Redirects []string

	// AlreadyPruned is the idempotency marker to hand back on the next run.
	AlreadyPruned bool

	Duration time.Duration
}

// Pruner runs the pruning pipeline over a page.
type Pruner interface {
	// Prune gates, dispatches and cleans the page, mutating page.Doc in place.
	// It blocks until the run, including any pagination, has finished.
	Prune(ctx context.Context, page *Page, opts Options) (*Result, error)
}

// Notifier shows the status message of a finished run to the user.
type Notifier interface {
	Notify(ctx context.Context, status Status, url string)
}
