//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/clipprune"
	"github.com/fwojciec/clipprune/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns the DOM after scripts ran", func(t *testing.T) {
		t.Parallel()

		url := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><div id="honbun">placeholder</div>
<script>document.getElementById('honbun').textContent = 'article text';</script>
</body></html>`))
		})
		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), url)

		require.NoError(t, err)
		assert.Contains(t, html, "article text")
		assert.NotContains(t, html, "placeholder")
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		defer fetcher.Close()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = fetcher.Fetch(ctx, "http://127.0.0.1:1/")

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("slow page runs into the fetch timeout", func(t *testing.T) {
		t.Parallel()

		url := serve(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
			_, _ = w.Write([]byte(`<html><body>late</body></html>`))
		})
		fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(100 * time.Millisecond))
		require.NoError(t, err)
		defer fetcher.Close()

		_, err = fetcher.Fetch(context.Background(), url)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("keeps working across browser recycling", func(t *testing.T) {
		t.Parallel()

		url := serve(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><body><p>` + r.URL.Query().Get("page") + `</p></body></html>`))
		})
		fetcher, err := rod.NewFetcher(rod.WithRecycleAfter(1), rod.WithSettle(0))
		require.NoError(t, err)
		defer fetcher.Close()

		for _, page := range []string{"1", "2", "3"} {
			html, err := fetcher.Fetch(context.Background(), url+"/?page="+page)
			require.NoError(t, err)
			assert.Contains(t, html, "<p>"+page+"</p>")
		}
	})
}

func TestFetcher_Close(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close())

	_, err = fetcher.Fetch(context.Background(), "http://example.com")
	assert.Equal(t, clipprune.EINVALID, clipprune.ErrorCode(err))
	assert.Contains(t, clipprune.ErrorMessage(err), "closed")
}
