package mock

import (
	"context"

	"github.com/fwojciec/clipprune"
)

var _ clipprune.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of clipprune.Fetcher. A nil CloseFn
// makes Close a no-op.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

// Pages returns a Fetcher serving the documents in pages by URL. Unknown
// URLs fail with ENOTFOUND.
func Pages(pages map[string]string) *Fetcher {
	return &Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			raw, ok := pages[url]
			if !ok {
				return "", clipprune.Errorf(clipprune.ENOTFOUND, "no page at %s", url)
			}
			return raw, nil
		},
	}
}
