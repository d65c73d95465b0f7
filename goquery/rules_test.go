package goquery_test

import (
	"context"
	"testing"

	"github.com/fwojciec/clipprune"
	"github.com/fwojciec/clipprune/goquery"
	prunehtml "github.com/fwojciec/clipprune/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules_GetNews(t *testing.T) {
	t.Parallel()

	p := page(t, "http://getnews.jp/archives/312345", `<body>`+
		`<div id="hdr">header</div>`+
		`<div id="wrap"><div class="post">`+
		`<div id="adingoBeagle1">ad</div>`+
		`<div class="post-bodycopy">`+
		`<p>share</p><p>tweet</p><p>Article text</p>`+
		`<p>関連記事リンク<a href="/archives/1">older</a></p>`+
		`<div id="bookmark_single">bookmark</div><div>after</div>`+
		`</div>`+
		`<div class="clear"></div><div class="pagebar">1 2 3</div>`+
		`</div></div>`+
		`<div id="footer">footer</div></body>`)

	v, err := goquery.NewDefaultRegistry().Dispatch(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, clipprune.Completed, v.Outcome)
	assert.Equal(t, "Gadget Tsushin", v.Rule)
	assert.Equal(t, `<div id="wrap"><div class="post"><div class="post-bodycopy"><p>Article text</p></div></div></div>`, body(t, p))
}

func TestDefaultRules_GetNewsKeepsOrdinaryLastParagraph(t *testing.T) {
	t.Parallel()

	p := page(t, "http://getnews.jp/archives/312345", `<body>`+
		`<div class="post"><div class="post-bodycopy">`+
		`<p>share</p><p>tweet</p><p>Article text</p><p>Closing words</p>`+
		`<div id="bookmark_single">bookmark</div>`+
		`</div></div></body>`)

	_, err := goquery.NewDefaultRegistry().Dispatch(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, `<div class="post"><div class="post-bodycopy"><p>Article text</p><p>Closing words</p></div></div>`, body(t, p))
}

func TestDefaultRules_Moongift(t *testing.T) {
	t.Parallel()

	p := page(t, "http://moongift.jp/2013/05/20130501/", `<body>`+
		`<div id="nav">nav</div>`+
		`<div class="main">`+
		`<div class="head"><h1 class="title">Tool</h1><span>2013.05.01</span></div>`+
		`<div class="post_body"><p>Review</p>`+
		`<div class="box"><p><a href="http://www.moongift.jp/moongift_premium/">premium</a></p></div>`+
		`<div class="social">share</div><p>tail</p>`+
		`</div>`+
		`<div class="comments">comments</div>`+
		`</div></body>`)

	v, err := goquery.NewDefaultRegistry().Dispatch(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, "MOONGIFT", v.Rule)
	assert.Equal(t, `<div class="main"><div class="head"><h1 class="title">Tool</h1></div><div class="post_body"><p>Review</p></div></div>`, body(t, p))
}

func TestDefaultRules_BrokenLayout(t *testing.T) {
	t.Parallel()

	p := page(t, "http://www.asahi.com/national/update/0501/TKY201305010001.html", `<body><p>redesigned</p></body>`)

	_, err := goquery.NewDefaultRegistry().Dispatch(context.Background(), p)

	require.Error(t, err)
	assert.Equal(t, clipprune.ESTRUCTURE, clipprune.ErrorCode(err))
	assert.Equal(t, "asahi.com: #HeadLine not found", clipprune.ErrorMessage(err))
}

func TestDefaultRules_Unsupported(t *testing.T) {
	t.Parallel()

	p := page(t, "https://example.com/article", `<body><p>x</p></body>`)

	v, err := goquery.NewDefaultRegistry().Dispatch(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, clipprune.Verdict{Outcome: clipprune.NotApplicable}, v)
	assert.Equal(t, `<p>x</p>`, body(t, p))
}

const makotoFirst = `<body>` +
	`<div id="hdr">header</div>` +
	`<div id="wrapper"><div id="tmplMain">` +
	`<div class="navi">navi</div>` +
	`<div id="tmplBody"><div class="inner">` +
	`<p>Page one</p>` +
	`<div class="ctrl"><span>1/2</span><span><a href="news001_2.html">next</a></span></div>` +
	`</div></div>` +
	`<div id="side">side</div>` +
	`</div></div></body>`

const makotoSecond = `<body>` +
	`<div id="notice">notice</div>` +
	`<div id="tmplBody"><div class="inner">` +
	`<div class="ctrl"><a href="news001.html">prev</a></div>` +
	`<p>Page two</p>` +
	`<div class="ctrl" id="end"><a href="news001.html">top</a></div>` +
	`</div></div></body>`

func TestDefaultRules_BizMakotoUnfolds(t *testing.T) {
	t.Parallel()

	registry := goquery.NewDefaultRegistry()
	p := page(t, "http://bizmakoto.jp/makoto/articles/1301/01/news001.html", makotoFirst)
	p.Unfolding = true

	v, err := registry.Dispatch(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, clipprune.Pending, v.Outcome)
	assert.Equal(t, "Business Media Makoto", v.Rule)
	require.NotNil(t, v.Continuation)
	assert.Equal(t, "http://bizmakoto.jp/makoto/articles/1301/01/news001_2.html", v.Continuation.URL)

	fetched, err := prunehtml.ParseString(makotoSecond)
	require.NoError(t, err)
	require.NoError(t, v.Continuation.Merge(fetched))

	v, err = registry.Dispatch(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, clipprune.Completed, v.Outcome)
	assert.Equal(t, `<div id="wrapper"><div id="tmplMain"><div id="tmplBody"><div class="inner"><p>Page one</p><p>Page two</p></div></div></div></div>`, body(t, p))
}

func TestDefaultRules_BizMakotoRejectsUnexpectedPage(t *testing.T) {
	t.Parallel()

	p := page(t, "http://bizmakoto.jp/makoto/articles/1301/01/news001.html", makotoFirst)
	p.Unfolding = true

	v, err := goquery.NewDefaultRegistry().Dispatch(context.Background(), p)
	require.NoError(t, err)
	require.NotNil(t, v.Continuation)

	fetched, err := prunehtml.ParseString(`<body><div id="tmplBody"><p>a</p><p>b</p></div></body>`)
	require.NoError(t, err)
	err = v.Continuation.Merge(fetched)

	require.Error(t, err)
	assert.Equal(t, clipprune.ESTRUCTURE, clipprune.ErrorCode(err))
}

func TestDefaultRules_BizMakotoWithoutUnfolding(t *testing.T) {
	t.Parallel()

	p := page(t, "http://bizmakoto.jp/makoto/articles/1301/01/news001.html", makotoFirst)

	v, err := goquery.NewDefaultRegistry().Dispatch(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, clipprune.Completed, v.Outcome)
	assert.Contains(t, body(t, p), `class="ctrl"`)
	assert.NotContains(t, body(t, p), "navi")
}
