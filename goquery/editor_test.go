package goquery_test

import (
	"testing"

	"github.com/fwojciec/clipprune"
	"github.com/fwojciec/clipprune/goquery"
	prunehtml "github.com/fwojciec/clipprune/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const editorPage = `<html><head><title> Old title </title></head><body>` +
	`<div id="main"><section><p class="lead">lead</p><p>text</p></section></div>` +
	`<div id="side" class="box">side</div>` +
	`</body></html>`

func TestEditor_FirstErrorSticks(t *testing.T) {
	t.Parallel()

	p := page(t, "https://test.example/articles/1", editorPage)
	e := goquery.NewEditor(p)

	assert.Nil(t, e.MustID("missing"))
	e.Remove(e.ID("side"))
	e.Check(false, "second failure")

	require.Error(t, e.Err())
	assert.Equal(t, clipprune.ESTRUCTURE, clipprune.ErrorCode(e.Err()))
	assert.Equal(t, "#missing not found", clipprune.ErrorMessage(e.Err()))
	assert.Nil(t, e.ID("main"))
	assert.Empty(t, e.Class("box"))
	assert.Empty(t, e.Select("p"))
	assert.Contains(t, body(t, p), `id="side"`)
}

func TestEditor_Lookups(t *testing.T) {
	t.Parallel()

	p := page(t, "https://test.example/articles/1", editorPage)
	e := goquery.NewEditor(p)

	main := e.MustID("main")
	require.NotNil(t, main)
	assert.Len(t, e.Tag("p"), 2)
	assert.Len(t, e.SelectIn(main, "p.lead"), 1)
	assert.Equal(t, "side", prunehtml.Text(e.MustClass("box")))
	assert.Equal(t, "lead", prunehtml.Text(e.MustOne("p.lead")))

	lead := e.MustClassIn(main, "lead")
	assert.Same(t, main, e.Up(lead, 2))
	assert.Equal(t, "section", e.Closest(lead, "section").Data)
	assert.Equal(t, "https://test.example/articles/1", e.URL())
	assert.Same(t, p.Doc, e.Root())
	assert.Equal(t, 1, e.Document().Find("#side").Length())
	require.NoError(t, e.Err())
}

func TestEditor_MustOneFailsOnSeveral(t *testing.T) {
	t.Parallel()

	e := goquery.NewEditor(page(t, "https://test.example/articles/1", editorPage))

	assert.Nil(t, e.MustOne("p"))
	assert.Equal(t, clipprune.ESTRUCTURE, clipprune.ErrorCode(e.Err()))
}

func TestEditor_UpPastTheRootFails(t *testing.T) {
	t.Parallel()

	e := goquery.NewEditor(page(t, "https://test.example/articles/1", editorPage))

	assert.Nil(t, e.Up(e.MustID("main"), 10))
	assert.Equal(t, clipprune.ESTRUCTURE, clipprune.ErrorCode(e.Err()))
}

func TestEditor_ClosestStopsAtBody(t *testing.T) {
	t.Parallel()

	e := goquery.NewEditor(page(t, "https://test.example/articles/1", editorPage))

	assert.Nil(t, e.Closest(e.MustID("main"), "html"))
	assert.Equal(t, clipprune.ESTRUCTURE, clipprune.ErrorCode(e.Err()))
}

func TestEditor_Edits(t *testing.T) {
	t.Parallel()

	p := page(t, "https://test.example/articles/1", editorPage)
	e := goquery.NewEditor(p)

	main := e.MustID("main")
	e.Append(main, e.ID("side"))
	e.AddStyle(e.MustClass("lead"), "visibility: hidden")
	e.AddStyle(e.MustClass("lead"), "color: red")
	e.RemoveByClass(main, "box")
	e.SetTitle("New title")

	require.NoError(t, e.Err())
	assert.Equal(t, `<div id="main"><section><p class="lead" style="visibility: hidden; color: red">lead</p><p>text</p></section></div>`, body(t, p))
	assert.Equal(t, "New title", e.Title())
}

func TestEditor_AppendToNilFails(t *testing.T) {
	t.Parallel()

	e := goquery.NewEditor(page(t, "https://test.example/articles/1", editorPage))
	e.Append(nil, e.ID("side"))

	assert.Equal(t, clipprune.EINVALID, clipprune.ErrorCode(e.Err()))
}
