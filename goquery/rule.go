package goquery

import (
	"context"
	"errors"
	"regexp"

	"github.com/fwojciec/clipprune"
)

// Ensure rule kinds implement clipprune.Rule at compile time.
var (
	_ clipprune.Rule = (*SiteRule)(nil)
	_ clipprune.Rule = (*CanonicalRule)(nil)
)

// SiteRule prunes the pages of one site layout. Prune runs only for URLs
// matching Pattern and returns the outcome; failures are recorded on the
// Editor.
type SiteRule struct {
	Site    string
	Pattern *regexp.Regexp
	Prune   func(e *Editor) clipprune.Outcome
}

// Name returns the site name.
func (r *SiteRule) Name() string {
	return r.Site
}

// Match reports whether the URL matches the rule pattern.
func (r *SiteRule) Match(url string) bool {
	return r.Pattern.MatchString(url)
}

// Source returns the URL pattern.
func (r *SiteRule) Source() string {
	return r.Pattern.String()
}

// Apply prunes page when its URL matches.
func (r *SiteRule) Apply(ctx context.Context, page *clipprune.Page) (clipprune.Verdict, error) {
	if !r.Match(page.URL) {
		return clipprune.Verdict{Outcome: clipprune.NotApplicable}, nil
	}
	if err := ctx.Err(); err != nil {
		return clipprune.Verdict{}, err
	}
	if page.Doc == nil {
		return clipprune.Verdict{}, clipprune.Errorf(clipprune.EINVALID, "%s: page has no document", r.Site)
	}

	e := NewEditor(page)
	outcome := r.Prune(e)
	if err := e.Err(); err != nil {
		return clipprune.Verdict{Rule: r.Site}, annotate(r.Site, err)
	}

	v := clipprune.Verdict{Outcome: outcome, Rule: r.Site}
	switch outcome {
	case clipprune.Pending:
		if e.next == nil {
			return v, clipprune.Errorf(clipprune.EINVALID, "%s: pending without a continuation", r.Site)
		}
		v.Continuation = e.next
	case clipprune.Redirected:
		return v, clipprune.Errorf(clipprune.EINVALID, "%s: site rules cannot redirect", r.Site)
	case clipprune.NotApplicable:
		v.Rule = ""
	}
	return v, nil
}

// CanonicalRule sends URLs carrying tracking parameters or alternative
// paths to their canonical form. Rewrite receives the submatches of Pattern
// and returns the canonical URL, or "" when the URL is already canonical.
type CanonicalRule struct {
	Site    string
	Pattern *regexp.Regexp
	Rewrite func(m []string) (string, error)
}

// Name returns the site name with a canonical: prefix.
func (r *CanonicalRule) Name() string {
	return "canonical:" + r.Site
}

// Match reports whether the URL matches the rule pattern.
func (r *CanonicalRule) Match(url string) bool {
	return r.Pattern.MatchString(url)
}

// Source returns the URL pattern.
func (r *CanonicalRule) Source() string {
	return r.Pattern.String()
}

// Apply reports the canonical location of page.URL. The document is never touched.
func (r *CanonicalRule) Apply(_ context.Context, page *clipprune.Page) (clipprune.Verdict, error) {
	m := r.Pattern.FindStringSubmatch(page.URL)
	if m == nil {
		return clipprune.Verdict{Outcome: clipprune.NotApplicable}, nil
	}
	location, err := r.Rewrite(m)
	if err != nil {
		return clipprune.Verdict{Rule: r.Name()}, annotate(r.Name(), err)
	}
	if location == "" || location == page.URL {
		return clipprune.Verdict{Outcome: clipprune.NotApplicable}, nil
	}
	return clipprune.Verdict{
		Outcome:  clipprune.Redirected,
		Rule:     r.Name(),
		Location: location,
	}, nil
}

// annotate prefixes the error message with the rule name, keeping the code.
func annotate(name string, err error) error {
	var e *clipprune.Error
	if !errors.As(err, &e) {
		return clipprune.WrapError(clipprune.EINTERNAL, err, "%s", name)
	}
	return &clipprune.Error{
		Code:    e.Code,
		Message: name + ": " + e.Message,
		Err:     err,
	}
}
