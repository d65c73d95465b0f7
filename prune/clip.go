package prune

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/clipprune"
	prunehtml "github.com/fwojciec/clipprune/html"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// Input is one page to clip. When HTML is empty the page is fetched from URL.
type Input struct {
	URL  string
	HTML string
}

// Clipper prunes a batch of pages concurrently and writes each one as a
// clip. Pruner and Writer are required, Converter is needed for markdown
// clips and Fetcher for inputs without HTML.
type Clipper struct {
	Pruner    clipprune.Pruner
	Fetcher   clipprune.Fetcher
	Extractor clipprune.MetadataExtractor
	Converter clipprune.Converter
	Writer    clipprune.ClipWriter

	Options     clipprune.Options
	Format      clipprune.Format
	RunID       string
	Concurrency int
	RetryDelays []time.Duration

	// Now returns the clip time. Defaults to time.Now.
	Now func() time.Time
}

// BatchResult holds the outcome of a batch.
type BatchResult struct {
	Written int
	Failed  int
	Bytes   int
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Status    clipprune.Status
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

type clipResult struct {
	position int
	url      string
	clip     *clipprune.Clip
	err      error
}

// ClipAll clips every input. A failing input is reported through progress
// and counted; it does not stop the others.
func (c *Clipper) ClipAll(ctx context.Context, inputs []Input, progress ProgressFunc) (*BatchResult, error) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	total := len(inputs)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan clipResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	go func() {
		for i, in := range inputs {
			g.Go(func() error {
				resultCh <- c.clipOne(gctx, i, in)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var result BatchResult
	var completed atomic.Int64
	for r := range resultCh {
		completed.Add(1)
		if r.err == nil {
			r.err = c.Writer.WriteClip(ctx, r.clip)
		}
		if r.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       r.url,
					Error:     r.err,
				})
			}
			continue
		}
		result.Written++
		result.Bytes += len(r.clip.Content)
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       r.url,
				Status:    r.clip.Status,
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return &result, nil
}

// clipOne loads, prunes and renders a single input.
func (c *Clipper) clipOne(ctx context.Context, position int, in Input) clipResult {
	result := clipResult{position: position, url: in.URL}

	raw := in.HTML
	if raw == "" {
		if c.Fetcher == nil {
			result.err = clipprune.Errorf(clipprune.EINVALID, "no HTML and no fetcher for %s", in.URL)
			return result
		}
		delays := c.RetryDelays
		if delays == nil {
			delays = DefaultRetryDelays()
		}
		fetched, err := FetchWithRetryDelays(ctx, in.URL, c.Fetcher.Fetch, nil, delays)
		if err != nil {
			result.err = clipprune.WrapError(clipprune.EFETCH, err, "fetch %s", in.URL)
			return result
		}
		raw = fetched
	}

	meta := &clipprune.Metadata{}
	if c.Extractor != nil {
		if m, err := c.Extractor.Extract(raw, in.URL); err == nil && m != nil {
			meta = m
		}
	}

	doc, err := prunehtml.ParseString(raw)
	if err != nil {
		result.err = clipprune.WrapError(clipprune.EINVALID, err, "parse %s", in.URL)
		return result
	}
	page := &clipprune.Page{URL: in.URL, Doc: doc}
	res, err := c.Pruner.Prune(ctx, page, c.Options)
	if err != nil {
		result.err = err
		return result
	}

	content, err := c.render(page.Doc, res.URL)
	if err != nil {
		result.err = err
		return result
	}

	title := meta.Title
	if title == "" {
		title = documentTitle(page.Doc)
	}
	result.url = res.URL
	result.clip = &clipprune.Clip{
		RunID:       c.RunID,
		SourceURL:   res.URL,
		Title:       title,
		Author:      meta.Author,
		Site:        meta.Site,
		Excerpt:     meta.Excerpt,
		Rule:        res.Rule,
		Status:      res.Status,
		Format:      c.format(),
		Content:     content,
		ContentHash: ComputeHash(content),
		ClippedAt:   c.now(),
	}
	return result
}

func (c *Clipper) render(doc *html.Node, pageURL string) (string, error) {
	body := prunehtml.Body(doc)
	if body == nil {
		return "", clipprune.Errorf(clipprune.ESTRUCTURE, "document has no body")
	}
	out, err := prunehtml.RenderChildren(body)
	if err != nil {
		return "", err
	}
	if c.format() == clipprune.FormatMarkdown {
		if c.Converter == nil {
			return "", clipprune.Errorf(clipprune.EINVALID, "markdown clips need a converter")
		}
		return c.Converter.Convert(out, pageURL)
	}
	return out, nil
}

func (c *Clipper) format() clipprune.Format {
	if c.Format == "" {
		return clipprune.FormatHTML
	}
	return c.Format
}

func (c *Clipper) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func documentTitle(doc *html.Node) string {
	titles := prunehtml.ElementsByTag(doc, "title")
	if len(titles) == 0 {
		return ""
	}
	return strings.TrimSpace(prunehtml.Text(titles[0]))
}

// ComputeHash returns the xxhash of content in hex.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
