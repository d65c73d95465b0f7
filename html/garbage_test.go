package html_test

import (
	"testing"

	"github.com/fwojciec/clipprune"
	prunehtml "github.com/fwojciec/clipprune/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestIsWhitespace(t *testing.T) {
	t.Parallel()

	assert.True(t, prunehtml.IsWhitespace(""))
	assert.True(t, prunehtml.IsWhitespace(" \t\r\n"))
	assert.True(t, prunehtml.IsWhitespace("\ufeff \u3000"))
	assert.False(t, prunehtml.IsWhitespace(" x "))
}

func TestIsGarbage(t *testing.T) {
	t.Parallel()

	_, body := parse(t, `<div id="d"> <!--c-->text</div><ul id="u"> <li>a</li></ul><ul id="bad">stray<li>b</li></ul>`)
	d := byID(t, body, "d")
	space, comment, text := d.FirstChild, d.FirstChild.NextSibling, d.LastChild
	listSpace := byID(t, body, "u").FirstChild
	stray := byID(t, body, "bad").FirstChild

	tests := []struct {
		name       string
		node       *html.Node
		structural bool
		want       bool
		code       string
	}{
		{name: "comment", node: comment, want: true},
		{name: "element", node: d, structural: true, want: false},
		{name: "whitespace in a text container", node: space, want: false},
		{name: "whitespace in a text container, structural", node: space, structural: true, want: true},
		{name: "text in a text container, structural", node: text, structural: true, want: true},
		{name: "whitespace in a list", node: listSpace, want: true},
		{name: "text in a list", node: stray, code: clipprune.ESTRUCTURE},
		{name: "nil", node: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := prunehtml.IsGarbage(tt.node, tt.structural)
			if tt.code != "" {
				require.Error(t, err)
				assert.Equal(t, tt.code, clipprune.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoveGarbage(t *testing.T) {
	t.Parallel()

	t.Run("removes comments only by default", func(t *testing.T) {
		t.Parallel()

		_, body := parse(t, `<div id="d"> <!--c-->text<p>x<!--nested--></p></div>`)
		d := byID(t, body, "d")
		require.NoError(t, prunehtml.RemoveGarbage(d, false))

		assert.Equal(t, ` text<p>x<!--nested--></p>`, inner(t, d))
	})

	t.Run("structural removes every text child", func(t *testing.T) {
		t.Parallel()

		_, body := parse(t, `<div id="d"> <!--c-->text<p>x</p></div>`)
		d := byID(t, body, "d")
		require.NoError(t, prunehtml.RemoveGarbage(d, true))

		assert.Equal(t, `<p>x</p>`, inner(t, d))
	})

	t.Run("leaves the tree alone on invalid markup", func(t *testing.T) {
		t.Parallel()

		_, body := parse(t, `<ul id="u"><!--c-->stray<li>a</li></ul>`)
		u := byID(t, body, "u")
		err := prunehtml.RemoveGarbage(u, false)

		require.Error(t, err)
		assert.Equal(t, clipprune.ESTRUCTURE, clipprune.ErrorCode(err))
		assert.Equal(t, `<!--c-->stray<li>a</li>`, inner(t, u))
	})

	t.Run("rejects text nodes", func(t *testing.T) {
		t.Parallel()

		_, body := parse(t, `text`)
		err := prunehtml.RemoveGarbage(body.FirstChild, false)

		require.Error(t, err)
		assert.Equal(t, clipprune.EINVALID, clipprune.ErrorCode(err))
	})

	t.Run("recursive cleans every level", func(t *testing.T) {
		t.Parallel()

		_, body := parse(t, `<!--a--><div><!--b--><table><tbody> <tr> <td>x<!--c--></td></tr></tbody></table></div>`)
		require.NoError(t, prunehtml.RemoveGarbageRecursively(body))

		assert.Equal(t, `<div><table><tbody><tr><td>x</td></tr></tbody></table></div>`, inner(t, body))
	})
}
