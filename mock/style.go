package mock

import (
	"context"

	"github.com/fwojciec/clipprune"
	"golang.org/x/net/html"
)

var (
	_ clipprune.StyleResolver = (*StyleResolver)(nil)
	_ clipprune.ComputedStyle = (*ComputedStyle)(nil)
	_ clipprune.DomainLimiter = (*DomainLimiter)(nil)
)

// StyleResolver is a mock implementation of clipprune.StyleResolver.
type StyleResolver struct {
	ResolveFn func(doc *html.Node) (clipprune.ComputedStyle, error)
}

func (r *StyleResolver) Resolve(doc *html.Node) (clipprune.ComputedStyle, error) {
	return r.ResolveFn(doc)
}

// ComputedStyle is a mock implementation of clipprune.ComputedStyle.
type ComputedStyle struct {
	HiddenFn func(n *html.Node) bool
}

func (s *ComputedStyle) Hidden(n *html.Node) bool {
	return s.HiddenFn(n)
}

// DomainLimiter is a mock implementation of clipprune.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
