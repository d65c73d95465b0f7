package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/clipprune"
	"github.com/fwojciec/clipprune/mock"
	pruneslog "github.com/fwojciec/clipprune/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingPruner_Prune(t *testing.T) {
	t.Parallel()

	t.Run("logs status rule and pages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Pruner{
			PruneFn: func(_ context.Context, page *clipprune.Page, _ clipprune.Options) (*clipprune.Result, error) {
				return &clipprune.Result{Status: clipprune.StatusCompleted, Rule: "paged", URL: page.URL, Pages: 3}, nil
			},
		}

		pruner := pruneslog.NewLoggingPruner(inner, logger)
		res, err := pruner.Prune(context.Background(), &clipprune.Page{URL: "https://example.com/1"}, clipprune.Options{})

		require.NoError(t, err)
		assert.Equal(t, 3, res.Pages)
		output := buf.String()
		assert.Contains(t, output, "prune")
		assert.Contains(t, output, "url=https://example.com/1")
		assert.Contains(t, output, "status=completed")
		assert.Contains(t, output, "rule=paged")
		assert.Contains(t, output, "pages=3")
	})

	t.Run("logs error without a result", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Pruner{
			PruneFn: func(_ context.Context, _ *clipprune.Page, _ clipprune.Options) (*clipprune.Result, error) {
				return nil, errors.New("next page failed")
			},
		}

		pruner := pruneslog.NewLoggingPruner(inner, logger)
		_, err := pruner.Prune(context.Background(), &clipprune.Page{URL: "https://example.com"}, clipprune.Options{})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "err=\"next page failed\"")
		assert.NotContains(t, output, "status=")
	})
}

func TestNotifier_Notify(t *testing.T) {
	t.Parallel()

	t.Run("logs the status message", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n := pruneslog.NewNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

		n.Notify(context.Background(), clipprune.StatusUnsupported, "https://example.com")

		assert.Contains(t, buf.String(), "Sorry, this page is not supported yet.")
		assert.Contains(t, buf.String(), "status=unsupported")
	})

	t.Run("ignores statuses without a message", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n := pruneslog.NewNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

		n.Notify(context.Background(), clipprune.StatusSkipped, "https://example.com")

		assert.Empty(t, buf.String())
	})
}
