package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/clipprune"
)

// Ensure LoggingRuleTable implements clipprune.RuleTable.
var _ clipprune.RuleTable = (*LoggingRuleTable)(nil)

// LoggingRuleTable wraps a RuleTable and logs every dispatch.
type LoggingRuleTable struct {
	next   clipprune.RuleTable
	logger *slog.Logger
}

// NewLoggingRuleTable creates a new LoggingRuleTable.
func NewLoggingRuleTable(next clipprune.RuleTable, logger *slog.Logger) *LoggingRuleTable {
	return &LoggingRuleTable{next: next, logger: logger}
}

// Dispatch logs the verdict and delegates to the wrapped table.
func (t *LoggingRuleTable) Dispatch(ctx context.Context, page *clipprune.Page) (v clipprune.Verdict, err error) {
	defer func(begin time.Time) {
		rule := v.Rule
		if rule == "" {
			rule = "(none)"
		}
		attrs := []any{
			"url", page.URL,
			"rule", rule,
			"outcome", v.Outcome.String(),
			"duration", time.Since(begin),
		}
		if v.Location != "" {
			attrs = append(attrs, "location", v.Location)
		}
		if v.Continuation != nil {
			attrs = append(attrs, "next", v.Continuation.URL)
		}
		attrs = append(attrs, "err", err)
		t.logger.Info("dispatch", attrs...)
	}(time.Now())
	return t.next.Dispatch(ctx, page)
}

// Rules delegates to the wrapped table.
func (t *LoggingRuleTable) Rules() []clipprune.Rule {
	return t.next.Rules()
}

// Lookup delegates to the wrapped table.
func (t *LoggingRuleTable) Lookup(url string) clipprune.Rule {
	return t.next.Lookup(url)
}
