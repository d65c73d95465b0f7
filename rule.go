package clipprune

import (
	"context"

	"golang.org/x/net/html"
)

// Outcome is the result of offering a page to a rule.
type Outcome int

// Rule outcomes.
const (
	// NotApplicable means the rule declined the page without touching it.
	NotApplicable Outcome = iota

	// Completed means the rule pruned the document to its article.
	Completed

	// Pending means the rule needs another page merged into the document
	// before it can finish. The verdict carries the Continuation.
	Pending

	// Redirected means the URL is not canonical. The verdict carries the
	// canonical Location; the document was not touched.
	Redirected
)

func (o Outcome) String() string {
	switch o {
	case NotApplicable:
		return "not-applicable"
	case Completed:
		return "completed"
	case Pending:
		return "pending"
	case Redirected:
		return "redirected"
	}
	return "unknown"
}

// Verdict is what dispatching a page produced.
type Verdict struct {
	Outcome Outcome

	// Rule names the rule that produced the verdict. Empty when no rule matched.
	Rule string

	// Continuation is set when Outcome is Pending.
	Continuation *Continuation

	// Location is set when Outcome is Redirected.
	Location string
}

// Continuation is the resumable state of a paginated article: the page to
// fetch next and how to merge it into the live document.
type Continuation struct {
	// URL is the absolute URL of the page to fetch.
	URL string

	// Merge moves the article content of the fetched document into the live
	// document. It returns an ESTRUCTURE error when the fetched page does not
	// have the expected markup.
	Merge func(fetched *html.Node) error
}

// Rule is a site handler: it recognizes pages by URL and prunes them.
type Rule interface {
	// Name identifies the rule in logs and listings.
	Name() string

	// Match reports whether the rule applies to the URL. It must not look at
	// the document.
	Match(url string) bool

	// Apply prunes the page. Returning NotApplicable is only allowed when
	// the document was left untouched. An error means the rule matched but
	// could not finish; the document is then in an unspecified state.
	Apply(ctx context.Context, page *Page) (Verdict, error)
}

// RuleTable is an ordered list of rules dispatched by first match.
type RuleTable interface {
	// Dispatch offers the page to each rule in order and returns the first
	// verdict other than NotApplicable. A verdict with Outcome NotApplicable
	// and no Rule means the page is unsupported.
	Dispatch(ctx context.Context, page *Page) (Verdict, error)

	// Rules returns the rules in dispatch order.
	Rules() []Rule

	// Lookup returns the first rule whose URL pattern matches url, or nil.
	// The document is not consulted, so the rule may still decline.
	Lookup(url string) Rule
}
