package douceur_test

import (
	"testing"

	"github.com/fwojciec/clipprune"
	"github.com/fwojciec/clipprune/douceur"
	prunehtml "github.com/fwojciec/clipprune/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stylePage = `<html><head>
<style>
.ad { display: none }
#banner { visibility: hidden }
.shown.ad { display: block }
.forced { display: none !important }
</style>
<style media="print">.print-only { display: none }</style>
<style>
@media screen { .narrow { display: none } }
@media print { .paper { display: none } }
</style>
</head><body>
<div id="plain">plain</div>
<div id="ad" class="ad">ad</div>
<div id="banner">banner</div>
<div id="shown" class="shown ad">shown</div>
<div id="inline" style="display:none">inline</div>
<div id="inline-visible" class="ad" style="display: block">inline visible</div>
<div id="forced" class="forced" style="display: block">forced</div>
<div id="attr" hidden>attr</div>
<div id="print" class="print-only">print</div>
<div id="narrow" class="narrow">narrow</div>
<div id="paper" class="paper">paper</div>
<div id="collapsed" style="visibility: HIDDEN">collapsed</div>
</body></html>`

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	doc, err := prunehtml.ParseString(stylePage)
	require.NoError(t, err)
	style, err := douceur.NewResolver().Resolve(doc)
	require.NoError(t, err)

	tests := []struct {
		id     string
		hidden bool
	}{
		{id: "plain", hidden: false},
		{id: "ad", hidden: true},
		{id: "banner", hidden: true},
		{id: "shown", hidden: false},
		{id: "inline", hidden: true},
		{id: "inline-visible", hidden: false},
		{id: "forced", hidden: true},
		{id: "attr", hidden: true},
		{id: "print", hidden: false},
		{id: "narrow", hidden: true},
		{id: "paper", hidden: false},
		{id: "collapsed", hidden: true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()

			n := prunehtml.ElementByID(doc, tt.id)
			require.NotNil(t, n)
			assert.Equal(t, tt.hidden, style.Hidden(n))
		})
	}
}

func TestStyle_Hidden_Specificity(t *testing.T) {
	t.Parallel()

	doc, err := prunehtml.ParseString(`<html><head><style>
#main { display: block }
div { display: none }
.box.keep { visibility: visible }
div.box { visibility: hidden }
</style></head><body>
<div id="main">Article</div>
<div id="side">side</div>
<div id="kept" class="box keep">kept</div>
<div id="boxed" class="box">boxed</div>
</body></html>`)
	require.NoError(t, err)
	style, err := douceur.NewResolver().Resolve(doc)
	require.NoError(t, err)

	assert.False(t, style.Hidden(prunehtml.ElementByID(doc, "main")))
	assert.True(t, style.Hidden(prunehtml.ElementByID(doc, "side")))
	assert.False(t, style.Hidden(prunehtml.ElementByID(doc, "kept")))
	assert.True(t, style.Hidden(prunehtml.ElementByID(doc, "boxed")))
}

func TestResolver_Resolve_MediaQueries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		media  string
		hidden bool
	}{
		{media: "(min-width: 1px)", hidden: true},
		{media: "only screen and (max-width: 600px)", hidden: true},
		{media: "all and (orientation: landscape)", hidden: true},
		{media: "not print", hidden: true},
		{media: "print, (min-width: 1px)", hidden: true},
		{media: "print", hidden: false},
		{media: "not screen", hidden: false},
		{media: "speech and (min-width: 1px)", hidden: false},
	}

	for _, tt := range tests {
		t.Run(tt.media, func(t *testing.T) {
			t.Parallel()

			doc, err := prunehtml.ParseString(`<html><head><style>@media ` + tt.media +
				` { .ad { display: none } }</style></head><body><div id="ad" class="ad">ad</div></body></html>`)
			require.NoError(t, err)
			style, err := douceur.NewResolver().Resolve(doc)
			require.NoError(t, err)

			assert.Equal(t, tt.hidden, style.Hidden(prunehtml.ElementByID(doc, "ad")))
		})
	}
}

func TestStyle_Hidden_NonElements(t *testing.T) {
	t.Parallel()

	doc, err := prunehtml.ParseString(`<p style="display:none">text</p>`)
	require.NoError(t, err)
	style, err := douceur.NewResolver().Resolve(doc)
	require.NoError(t, err)

	p := prunehtml.ElementsByTag(doc, "p")[0]
	assert.True(t, style.Hidden(p))
	assert.False(t, style.Hidden(p.FirstChild))
	assert.False(t, style.Hidden(nil))
}

func TestResolver_Resolve_NilDocument(t *testing.T) {
	t.Parallel()

	_, err := douceur.NewResolver().Resolve(nil)

	require.Error(t, err)
	assert.Equal(t, clipprune.EINVALID, clipprune.ErrorCode(err))
}
