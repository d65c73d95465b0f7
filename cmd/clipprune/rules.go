package main

import (
	"fmt"
	"text/tabwriter"
)

// patterned is implemented by rules that can show their URL pattern.
type patterned interface {
	Source() string
}

// Run executes the rules command.
func (c *RulesCmd) Run(deps *Dependencies) error {
	rules := deps.Rules.Rules()
	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for i, rule := range rules {
		pattern := ""
		if p, ok := rule.(patterned); ok {
			pattern = p.Source()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, rule.Name(), pattern)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "%d rules\n", len(rules))
	return nil
}
