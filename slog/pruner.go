package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/clipprune"
)

// Ensure the decorators implement their interfaces.
var (
	_ clipprune.Pruner   = (*LoggingPruner)(nil)
	_ clipprune.Notifier = (*Notifier)(nil)
)

// LoggingPruner wraps a Pruner and logs every run.
type LoggingPruner struct {
	next   clipprune.Pruner
	logger *slog.Logger
}

// NewLoggingPruner creates a new LoggingPruner.
func NewLoggingPruner(next clipprune.Pruner, logger *slog.Logger) *LoggingPruner {
	return &LoggingPruner{next: next, logger: logger}
}

// Prune logs the run outcome and delegates to the wrapped pruner.
func (p *LoggingPruner) Prune(ctx context.Context, page *clipprune.Page, opts clipprune.Options) (res *clipprune.Result, err error) {
	url := page.URL
	defer func(begin time.Time) {
		attrs := []any{"url", url}
		if res != nil {
			attrs = append(attrs,
				"status", res.Status.String(),
				"rule", res.Rule,
				"pages", res.Pages,
			)
			if len(res.Redirects) > 0 {
				attrs = append(attrs, "redirects", res.Redirects)
			}
		}
		attrs = append(attrs,
			"duration", time.Since(begin),
			"err", err,
		)
		p.logger.Info("prune", attrs...)
	}(time.Now())
	return p.next.Prune(ctx, page, opts)
}

// Notifier shows status messages as log records.
type Notifier struct {
	logger *slog.Logger
}

// NewNotifier creates a Notifier writing to logger.
func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Notify logs the message of status. Statuses without a message are ignored.
func (n *Notifier) Notify(ctx context.Context, status clipprune.Status, url string) {
	msg := status.Message()
	if msg == "" {
		return
	}
	n.logger.InfoContext(ctx, "[clipprune] "+msg, "url", url, "status", status.String())
}
