// Package prune runs the pruning pipeline: the gates, first-match dispatch
// over the rule table, pagination of multi-page articles and the post-pass
// cleanup that every finished run ends with.
package prune

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/clipprune"
	"github.com/fwojciec/clipprune/bloom"
	prunehtml "github.com/fwojciec/clipprune/html"
	"golang.org/x/net/html"
)

var _ clipprune.Pruner = (*Pipeline)(nil)

// Pipeline defaults.
const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultDebounce     = 100 * time.Millisecond
	DefaultMaxPages     = 20
	DefaultMaxRedirects = 3
)

// Sizing of the filter remembering merged page URLs.
const (
	seenExpectedURLs      = 256
	seenFalsePositiveRate = 0.001
)

// DefaultStripTags are the elements the post-pass removes from the document.
var DefaultStripTags = []string{"script", "iframe", "object", "embed", "video", "audio"}

// Pipeline prunes pages. Rules and Styles are required; without a Fetcher
// paginated articles fail with EFETCH and redirects are reported instead of
// followed. Zero durations and counts select the defaults.
type Pipeline struct {
	Rules    clipprune.RuleTable
	Styles   clipprune.StyleResolver
	Fetcher  clipprune.Fetcher
	Notifier clipprune.Notifier
	Limiter  clipprune.DomainLimiter

	// FetchTimeout bounds each attempt to load a continuation or redirect.
	FetchTimeout time.Duration

	// Debounce is the pause after merging a page, before dispatching again.
	// A negative value disables it.
	Debounce time.Duration

	// MaxPages bounds the pages merged into one document, the first included.
	MaxPages int

	// MaxRedirects bounds the canonical redirects followed in one run.
	MaxRedirects int

	// RetryDelays are the waits between fetch attempts. Nil selects
	// DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration

	// RetryLog, if set, receives a line per retried fetch.
	RetryLog LogFunc
}

// Task is a run in progress.
type Task struct {
	done   chan struct{}
	cancel context.CancelFunc
	result *clipprune.Result
	err    error
}

// Done is closed once the run has stopped touching the document.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Cancel asks the run to stop at its next suspension point: a fetch, a
// rate limit wait or the debounce pause.
func (t *Task) Cancel() {
	t.cancel()
}

// Wait blocks until the run finished and returns its outcome. When ctx ends
// first the run is cancelled and Wait still waits for it to stop.
func (t *Task) Wait(ctx context.Context) (*clipprune.Result, error) {
	select {
	case <-t.done:
	case <-ctx.Done():
		t.cancel()
		<-t.done
		if t.err == nil && t.result == nil {
			return nil, ctx.Err()
		}
	}
	return t.result, t.err
}

// Start runs the pipeline over page in a new goroutine. The caller must not
// touch page until the task is done.
func (p *Pipeline) Start(ctx context.Context, page *clipprune.Page, opts clipprune.Options) *Task {
	runCtx, cancel := context.WithCancel(ctx)
	t := &Task{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		defer close(t.done)
		defer cancel()
		t.result, t.err = p.run(runCtx, page, opts)
	}()
	return t
}

// Prune runs the pipeline over page and waits for it to finish.
func (p *Pipeline) Prune(ctx context.Context, page *clipprune.Page, opts clipprune.Options) (*clipprune.Result, error) {
	return p.Start(ctx, page, opts).Wait(ctx)
}

func (p *Pipeline) run(ctx context.Context, page *clipprune.Page, opts clipprune.Options) (*clipprune.Result, error) {
	begin := time.Now()
	if p.Rules == nil || p.Styles == nil {
		return nil, clipprune.Errorf(clipprune.EINVALID, "pipeline requires a rule table and a style resolver")
	}
	if page == nil || page.Doc == nil {
		return nil, clipprune.Errorf(clipprune.EINVALID, "page has no document")
	}

	res := &clipprune.Result{URL: page.URL, Pages: 1}
	defer func() { res.Duration = time.Since(begin) }()

	if opts.AlreadyPruned || opts.ClipperActive || prunehtml.ClipperActive(page.Doc) {
		if !opts.ForceGarbagePass {
			res.Status = clipprune.StatusSkipped
			res.AlreadyPruned = opts.AlreadyPruned
			return res, nil
		}
		res.Status = clipprune.StatusGarbageOnly
		return p.finish(ctx, page, opts, res)
	}

	page.Unfolding = opts.UnfoldingMode
	seen := bloom.NewFilter(seenExpectedURLs, seenFalsePositiveRate)
	seen.Add(page.URL)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := p.Rules.Dispatch(ctx, page)
		if err != nil {
			return nil, err
		}

		switch v.Outcome {
		case clipprune.Completed:
			res.Status = clipprune.StatusCompleted
			res.Rule = v.Rule
			return p.finish(ctx, page, opts, res)

		case clipprune.NotApplicable:
			res.Status = clipprune.StatusUnsupported
			return p.finish(ctx, page, opts, res)

		case clipprune.Pending:
			if err := p.unfold(ctx, v, seen, res); err != nil {
				return nil, err
			}

		case clipprune.Redirected:
			if !opts.FollowRedirects || p.Fetcher == nil {
				res.Status = clipprune.StatusRedirected
				res.Rule = v.Rule
				res.Location = v.Location
				return res, nil
			}
			if err := p.redirect(ctx, v, page, seen, res); err != nil {
				return nil, err
			}

		default:
			return nil, clipprune.Errorf(clipprune.EINTERNAL, "%s: unexpected outcome %s", v.Rule, v.Outcome)
		}
	}
}

// unfold fetches the page named by the continuation and merges it into the
// live document.
func (p *Pipeline) unfold(ctx context.Context, v clipprune.Verdict, seen *bloom.Filter, res *clipprune.Result) error {
	cont := v.Continuation
	if cont == nil || cont.Merge == nil {
		return clipprune.Errorf(clipprune.EINVALID, "%s: pending without a continuation", v.Rule)
	}
	if res.Pages >= p.maxPages() {
		return clipprune.Errorf(clipprune.EFETCH, "%s: article has more than %d pages", v.Rule, p.maxPages())
	}
	if seen.TestAndAdd(cont.URL) {
		return clipprune.Errorf(clipprune.EFETCH, "%s: page %s was already merged", v.Rule, cont.URL)
	}

	doc, err := p.load(ctx, cont.URL)
	if err != nil {
		return err
	}
	if err := cont.Merge(doc); err != nil {
		return err
	}
	res.Pages++

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.debounce()):
	}
	return nil
}

// redirect replaces the page with the document at the canonical location.
func (p *Pipeline) redirect(ctx context.Context, v clipprune.Verdict, page *clipprune.Page, seen *bloom.Filter, res *clipprune.Result) error {
	if len(res.Redirects) >= p.maxRedirects() {
		return clipprune.Errorf(clipprune.EFETCH, "%s: more than %d redirects", v.Rule, p.maxRedirects())
	}
	if seen.TestAndAdd(v.Location) {
		return clipprune.Errorf(clipprune.EFETCH, "%s: redirect loop at %s", v.Rule, v.Location)
	}

	doc, err := p.load(ctx, v.Location)
	if err != nil {
		return err
	}
	page.URL = v.Location
	page.Doc = doc
	res.URL = v.Location
	res.Redirects = append(res.Redirects, v.Location)
	return nil
}

// load fetches and parses the document at target through the offscreen
// fetcher, honoring the rate limit, the per-attempt timeout and retries.
func (p *Pipeline) load(ctx context.Context, target string) (*html.Node, error) {
	if p.Fetcher == nil {
		return nil, clipprune.Errorf(clipprune.EFETCH, "can not load %s: no fetcher configured", target)
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, clipprune.WrapError(clipprune.EFETCH, err, "can not load %s", target)
	}
	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	fetch := func(ctx context.Context, target string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, p.fetchTimeout())
		defer cancel()
		return p.Fetcher.Fetch(ctx, target)
	}
	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	raw, err := FetchWithRetryDelays(ctx, target, fetch, p.RetryLog, delays)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, clipprune.WrapError(clipprune.EFETCH, err, "can not load next page %s", target)
	}

	doc, err := prunehtml.ParseString(raw)
	if err != nil {
		return nil, clipprune.WrapError(clipprune.EFETCH, err, "can not parse %s", target)
	}
	return doc, nil
}

// finish runs the post-pass, sets the idempotency marker and reports the
// status once.
func (p *Pipeline) finish(ctx context.Context, page *clipprune.Page, opts clipprune.Options, res *clipprune.Result) (*clipprune.Result, error) {
	tags := opts.StripTags
	if tags == nil {
		tags = DefaultStripTags
	}
	if err := Clean(page.Doc, p.Styles, tags); err != nil {
		return nil, err
	}
	res.AlreadyPruned = true
	if p.Notifier != nil {
		p.Notifier.Notify(ctx, res.Status, res.URL)
	}
	return res, nil
}

func (p *Pipeline) fetchTimeout() time.Duration {
	if p.FetchTimeout > 0 {
		return p.FetchTimeout
	}
	return DefaultFetchTimeout
}

func (p *Pipeline) debounce() time.Duration {
	if p.Debounce < 0 {
		return 0
	}
	if p.Debounce > 0 {
		return p.Debounce
	}
	return DefaultDebounce
}

func (p *Pipeline) maxPages() int {
	if p.MaxPages > 0 {
		return p.MaxPages
	}
	return DefaultMaxPages
}

func (p *Pipeline) maxRedirects() int {
	if p.MaxRedirects > 0 {
		return p.MaxRedirects
	}
	return DefaultMaxRedirects
}
