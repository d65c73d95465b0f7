package mock

import (
	"context"

	"github.com/fwojciec/clipprune"
)

var (
	_ clipprune.Pruner   = (*Pruner)(nil)
	_ clipprune.Notifier = (*Notifier)(nil)
)

// Pruner is a mock implementation of clipprune.Pruner.
type Pruner struct {
	PruneFn func(ctx context.Context, page *clipprune.Page, opts clipprune.Options) (*clipprune.Result, error)
}

func (p *Pruner) Prune(ctx context.Context, page *clipprune.Page, opts clipprune.Options) (*clipprune.Result, error) {
	return p.PruneFn(ctx, page, opts)
}

// Notifier is a mock implementation of clipprune.Notifier.
type Notifier struct {
	NotifyFn func(ctx context.Context, status clipprune.Status, url string)
}

func (n *Notifier) Notify(ctx context.Context, status clipprune.Status, url string) {
	n.NotifyFn(ctx, status, url)
}
