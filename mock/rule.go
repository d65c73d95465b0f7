package mock

import (
	"context"

	"github.com/fwojciec/clipprune"
)

var (
	_ clipprune.Rule      = (*Rule)(nil)
	_ clipprune.RuleTable = (*RuleTable)(nil)
)

// Rule is a mock implementation of clipprune.Rule.
type Rule struct {
	NameFn  func() string
	MatchFn func(url string) bool
	ApplyFn func(ctx context.Context, page *clipprune.Page) (clipprune.Verdict, error)
}

func (r *Rule) Name() string {
	return r.NameFn()
}

func (r *Rule) Match(url string) bool {
	return r.MatchFn(url)
}

func (r *Rule) Apply(ctx context.Context, page *clipprune.Page) (clipprune.Verdict, error) {
	return r.ApplyFn(ctx, page)
}

// RuleTable is a mock implementation of clipprune.RuleTable.
type RuleTable struct {
	DispatchFn func(ctx context.Context, page *clipprune.Page) (clipprune.Verdict, error)
	RulesFn    func() []clipprune.Rule
	LookupFn   func(url string) clipprune.Rule
}

func (t *RuleTable) Dispatch(ctx context.Context, page *clipprune.Page) (clipprune.Verdict, error) {
	return t.DispatchFn(ctx, page)
}

func (t *RuleTable) Rules() []clipprune.Rule {
	return t.RulesFn()
}

func (t *RuleTable) Lookup(url string) clipprune.Rule {
	return t.LookupFn(url)
}
