package main

import (
	"fmt"

	"github.com/fwojciec/clipprune"
)

// Run executes the match command. Only URL patterns are consulted, so the
// printed rule may still decline the page once its document is seen.
func (c *MatchCmd) Run(deps *Dependencies) error {
	rule := deps.Rules.Lookup(c.URL)
	if rule == nil {
		err := clipprune.Errorf(clipprune.ENOTFOUND, "no rule matches %s", c.URL)
		fmt.Fprintf(deps.Stderr, "error: %s\n", clipprune.ErrorMessage(err))
		return err
	}
	pattern := ""
	if p, ok := rule.(patterned); ok {
		pattern = p.Source()
	}
	fmt.Fprintf(deps.Stdout, "%s\t%s\n", rule.Name(), pattern)
	return nil
}
