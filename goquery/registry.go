package goquery

import (
	"context"

	"github.com/fwojciec/clipprune"
)

var _ clipprune.RuleTable = (*Registry)(nil)

// Registry is the ordered rule table. Rules are offered a page in the order
// they were registered and the first rule that does not decline wins.
type Registry struct {
	rules []clipprune.Rule
}

// NewRegistry creates a Registry holding rules in the given order.
func NewRegistry(rules ...clipprune.Rule) *Registry {
	r := &Registry{}
	r.Register(rules...)
	return r
}

// NewDefaultRegistry creates a Registry holding DefaultRules.
func NewDefaultRegistry() *Registry {
	return NewRegistry(DefaultRules()...)
}

// Register appends rules to the end of the table.
func (r *Registry) Register(rules ...clipprune.Rule) {
	r.rules = append(r.rules, rules...)
}

// Rules returns the rules in dispatch order.
func (r *Registry) Rules() []clipprune.Rule {
	out := make([]clipprune.Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Lookup returns the first rule whose pattern matches url, or nil. The
// document is not consulted, so a rule returned here may still decline.
func (r *Registry) Lookup(url string) clipprune.Rule {
	for _, rule := range r.rules {
		if rule.Match(url) {
			return rule
		}
	}
	return nil
}

// Dispatch offers page to each matching rule in order and returns the first
// verdict that is not NotApplicable. Errors stop the dispatch.
func (r *Registry) Dispatch(ctx context.Context, page *clipprune.Page) (clipprune.Verdict, error) {
	if page == nil {
		return clipprune.Verdict{}, clipprune.Errorf(clipprune.EINVALID, "dispatch: nil page")
	}
	for _, rule := range r.rules {
		if !rule.Match(page.URL) {
			continue
		}
		v, err := rule.Apply(ctx, page)
		if err != nil {
			return v, err
		}
		if v.Outcome != clipprune.NotApplicable {
			if v.Rule == "" {
				v.Rule = rule.Name()
			}
			return v, nil
		}
	}
	return clipprune.Verdict{Outcome: clipprune.NotApplicable}, nil
}
