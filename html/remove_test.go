package html_test

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/clipprune"
	prunehtml "github.com/fwojciec/clipprune/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const articlePage = `<body><nav>X</nav><article id="a"><p>body</p></article><footer>F</footer></body>`

func TestRemoveAll(t *testing.T) {
	t.Parallel()

	t.Run("detaches every kind of target", func(t *testing.T) {
		t.Parallel()

		doc, body := parse(t, `<p id="a"></p><p id="b"></p><p class="c"></p><p id="keep"></p>`)
		sel := goquery.NewDocumentFromNode(doc).Find(".c")

		err := prunehtml.RemoveAll(byID(t, body, "a"), []any{[]*html.Node{byID(t, body, "b")}, sel})

		require.NoError(t, err)
		assert.Equal(t, `<p id="keep"></p>`, inner(t, body))
	})

	t.Run("detached targets are not an error", func(t *testing.T) {
		t.Parallel()

		_, body := parse(t, `<p id="a"></p>`)
		a := byID(t, body, "a")
		require.NoError(t, prunehtml.RemoveAll(a))
		require.NoError(t, prunehtml.RemoveAll(a))

		assert.Empty(t, inner(t, body))
	})

	t.Run("nil removes nothing", func(t *testing.T) {
		t.Parallel()

		var missing *html.Node
		require.NoError(t, prunehtml.RemoveAll(nil, missing))
	})

	t.Run("rejects invalid targets before removing anything", func(t *testing.T) {
		t.Parallel()

		_, body := parse(t, `<p id="a"></p>`)
		err := prunehtml.RemoveAll(byID(t, body, "a"), 42)

		require.Error(t, err)
		assert.Equal(t, clipprune.EINVALID, clipprune.ErrorCode(err))
		assert.Equal(t, `<p id="a"></p>`, inner(t, body))
	})
}

func TestRemoveInner(t *testing.T) {
	t.Parallel()

	_, body := parse(t, `<div id="d"><p>text</p></div><iframe id="f" src="https://ads.example.com/"></iframe><p id="t">words</p>`)
	text := byID(t, body, "t").FirstChild

	err := prunehtml.RemoveInner(byID(t, body, "d"), byID(t, body, "f"), text)

	require.NoError(t, err)
	assert.Equal(t, `<div id="d"></div><iframe id="f" src=""></iframe><p id="t"></p>`, inner(t, body))
}

func TestRemoveBeforeAfter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		apply func(a *html.Node) error
		want  string
	}{
		{
			name:  "before",
			apply: func(a *html.Node) error { return prunehtml.RemoveBefore(a) },
			want:  `<article id="a"><p>body</p></article><footer>F</footer>`,
		},
		{
			name:  "after",
			apply: func(a *html.Node) error { return prunehtml.RemoveAfter(a) },
			want:  `<nav>X</nav><article id="a"><p>body</p></article>`,
		},
		{
			name:  "after including the target",
			apply: func(a *html.Node) error { return prunehtml.RemoveAfter(a, prunehtml.Offset(-1)) },
			want:  `<nav>X</nav>`,
		},
		{
			name:  "before including the target",
			apply: func(a *html.Node) error { return prunehtml.RemoveBefore(a, prunehtml.Offset(1)) },
			want:  `<footer>F</footer>`,
		},
		{
			name:  "offset stops at the last sibling",
			apply: func(a *html.Node) error { return prunehtml.RemoveBefore(a, prunehtml.Offset(5)) },
			want:  `<footer>F</footer>`,
		},
		{
			name:  "offset stops at the first sibling",
			apply: func(a *html.Node) error { return prunehtml.RemoveAfter(a, prunehtml.Offset(-5)) },
			want:  `<nav>X</nav>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, body := parse(t, articlePage)
			require.NoError(t, tt.apply(byID(t, body, "a")))
			assert.Equal(t, tt.want, inner(t, body))
		})
	}
}

func TestRemoveSiblings_Garbage(t *testing.T) {
	t.Parallel()

	const page = `<div id="p"> <!--c--> <span id="t">T</span> x</div>`

	t.Run("garbage of the parent goes first", func(t *testing.T) {
		t.Parallel()

		_, body := parse(t, page)
		require.NoError(t, prunehtml.RemoveBefore(byID(t, body, "t"), prunehtml.Offset(-2)))

		assert.Equal(t, `  <span id="t">T</span> x`, inner(t, byID(t, body, "p")))
	})

	t.Run("preserved garbage counts as siblings", func(t *testing.T) {
		t.Parallel()

		_, body := parse(t, page)
		err := prunehtml.RemoveBefore(byID(t, body, "t"), prunehtml.Offset(-2), prunehtml.PreserveGarbage())
		require.NoError(t, err)

		assert.Equal(t, `<!--c--> <span id="t">T</span> x`, inner(t, byID(t, body, "p")))
	})

	t.Run("applies to every target", func(t *testing.T) {
		t.Parallel()

		_, body := parse(t, `<ul><li class="x">1</li><li>2</li></ul><ol><li class="x">3</li><li>4</li></ol>`)
		require.NoError(t, prunehtml.RemoveAfter(prunehtml.ElementsByClass(body, "x")))

		assert.Equal(t, `<ul><li class="x">1</li></ul><ol><li class="x">3</li></ol>`, inner(t, body))
	})

	t.Run("detached target does nothing", func(t *testing.T) {
		t.Parallel()

		_, body := parse(t, articlePage)
		a := byID(t, body, "a")
		require.NoError(t, prunehtml.RemoveAll(a))
		require.NoError(t, prunehtml.RemoveAfter(a))

		assert.Equal(t, `<nav>X</nav><footer>F</footer>`, inner(t, body))
	})
}

func TestMoveBefore(t *testing.T) {
	t.Parallel()

	t.Run("moves targets in order", func(t *testing.T) {
		t.Parallel()

		_, body := parse(t, `<div id="anchor"></div><p id="one">1</p><p id="two">2</p>`)
		err := prunehtml.MoveBefore(byID(t, body, "anchor"), byID(t, body, "two"), byID(t, body, "one"))

		require.NoError(t, err)
		assert.Equal(t, `<p id="two">2</p><p id="one">1</p><div id="anchor"></div>`, inner(t, body))
	})

	t.Run("rejects a detached anchor", func(t *testing.T) {
		t.Parallel()

		_, body := parse(t, `<p id="one">1</p>`)
		err := prunehtml.MoveBefore(&html.Node{Type: html.ElementNode, Data: "div"}, byID(t, body, "one"))

		require.Error(t, err)
		assert.Equal(t, clipprune.EINVALID, clipprune.ErrorCode(err))
	})

	t.Run("rejects moving the anchor", func(t *testing.T) {
		t.Parallel()

		_, body := parse(t, `<p id="one">1</p>`)
		one := byID(t, body, "one")
		err := prunehtml.MoveBefore(one, one)

		require.Error(t, err)
		assert.Equal(t, clipprune.EINVALID, clipprune.ErrorCode(err))
	})
}

func TestRemoveElements(t *testing.T) {
	t.Parallel()

	t.Run("removes tags at any depth", func(t *testing.T) {
		t.Parallel()

		doc, body := parse(t, `<head><script>h()</script></head><div><script>b()</script><p>keep<iframe></iframe></p></div><video></video>`)
		require.NoError(t, prunehtml.RemoveElements(doc, "script", "iframe", "video"))

		assert.Equal(t, `<div><p>keep</p></div>`, inner(t, body))
		assert.Empty(t, prunehtml.ElementsByTag(doc, "script"))
	})

	t.Run("rejects text roots", func(t *testing.T) {
		t.Parallel()

		_, body := parse(t, `text`)
		err := prunehtml.RemoveElements(body.FirstChild, "script")

		require.Error(t, err)
		assert.Equal(t, clipprune.EINVALID, clipprune.ErrorCode(err))
	})
}
