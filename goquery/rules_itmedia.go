package goquery

import (
	"regexp"

	"github.com/fwojciec/clipprune"
	prunehtml "github.com/fwojciec/clipprune/html"
	"golang.org/x/net/html"
)

// bizMakoto stitches multi-page articles. Each page carries .ctrl pager
// blocks; while unfolding, the page behind the pager is fetched and its body
// spliced in place of the pager until no pager is left.
var bizMakoto = &SiteRule{
	Site:    bizMakotoSite,
	Pattern: regexp.MustCompile(`^https?://bizmakoto\.jp/makoto/articles/.+$`),
	Prune: func(e *Editor) clipprune.Outcome {
		for _, ctrl := range e.Class("ctrl") {
			e.RemoveGarbage(ctrl.Parent)
			if ctrl.NextSibling == nil && id(ctrl) == "end" {
				e.Remove(ctrl)
			}
		}
		if ctrls := e.Class("ctrl"); e.Unfolding() && len(ctrls) > 0 {
			return unfoldMakoto(e, ctrls[0])
		}

		e.IsolateRecursively(parent(e.MustID("tmplMain")))
		e.Remove(e.Class("navi"), e.ID("masterSocialbuttonTop"), e.ID("masterSocialbuttonMid"))
		e.Isolate(e.MustID("tmplBody"))
		e.RemoveAfter(e.ID("masterSocialbuttonBtm"), prunehtml.Offset(-2))
		return clipprune.Completed
	},
}

func unfoldMakoto(e *Editor, ctrl *html.Node) clipprune.Outcome {
	e.RemoveGarbage(ctrl.Parent)
	e.RemoveGarbage(ctrl)

	// A pager followed by content sits at the top of the page and links back.
	backward := ctrl.NextSibling != nil
	side := ctrl.LastChild
	if backward {
		side = ctrl.FirstChild
	}
	link := e.First(e.TagIn(side, "a"), "pager link (A)")
	href, _ := prunehtml.Attr(link, "href")
	if e.Err() != nil {
		return clipprune.NotApplicable
	}
	target, err := resolve(e.URL(), href)
	if err != nil {
		e.fail(err)
		return clipprune.NotApplicable
	}

	e.Remove(e.ID("notice"))
	return e.Continue(&clipprune.Continuation{
		URL: target,
		Merge: func(fetched *html.Node) error {
			return mergeMakoto(fetched, ctrl, backward)
		},
	})
}

// mergeMakoto moves the article body of the fetched page in front of ctrl
// and drops ctrl.
func mergeMakoto(fetched, ctrl *html.Node, backward bool) error {
	m := NewEditor(&clipprune.Page{Doc: fetched})
	m.Remove(m.ID("notice"))

	body := m.MustID("tmplBody")
	m.RemoveGarbage(body)
	if m.Err() == nil {
		n := len(prunehtml.Children(body))
		m.Check(n == 1, "unexpected content: expected one block in #tmplBody, found %d", n)
	}
	content := firstChild(body)
	m.RemoveGarbage(content)

	pager := firstChild(content)
	if backward {
		pager = lastChild(content)
	}
	m.Check(pager != nil && prunehtml.HasClass(pager, "ctrl"), "unexpected structure (B)")
	m.Remove(pager)
	for _, c := range m.ClassIn(content, "ctrl") {
		if v := id(c); v == "start" || v == "end" {
			m.Remove(c)
		}
	}
	m.MoveBefore(ctrl, prunehtml.Children(content))
	m.Remove(ctrl)
	if err := m.Err(); err != nil {
		return annotate(bizMakotoSite, err)
	}
	return nil
}

const bizMakotoSite = "Business Media Makoto"

var itmediaBlogs = &SiteRule{
	Site:    "ITmedia blogs",
	Pattern: regexp.MustCompile(`^https?://blogs\.itmedia\.co\.jp/[-a-zA-Z0-9_]+/\d+/\d+/[-a-zA-Z0-9_]+\.html$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.MustClass("entryBox")
		e.IsolateRecursively(target)
		e.Remove(e.ClassIn(target, "entryBox-toolbar"))
		e.RemoveAfter(firstOf(e.ClassIn(target, "entryBox-body")))
		return clipprune.Completed
	},
}

var itmediaGadget = &SiteRule{
	Site:    "ITmedia Gadget",
	Pattern: regexp.MustCompile(`^https?://gadget\.itmedia\.co\.jp/gg/articles/.+$`),
	Prune: func(e *Editor) clipprune.Outcome {
		e.IsolateRecursively(e.MustID("tmplNewsIn"))
		e.RemoveBefore(e.ID("cmsType"))
		e.RemoveAfter(e.ID("cmsBody"))
		e.Remove(e.ID("masterSocialbuttonBtm"))
		e.RemoveAfter(e.ID("cmsCopyright"))
		e.RemoveBefore(e.ID("lnk"), prunehtml.Offset(-1))
		e.Remove(e.Class("adsense"))
		return clipprune.Completed
	},
}

var itmediaPromobile = &SiteRule{
	Site:    "ITmedia Promobile",
	Pattern: regexp.MustCompile(`^https?://www\.itmedia\.co\.jp/(promobile)/articles/\d{4}/\d\d/news\d{3}\.html$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.ID("article_body")
		if target == nil {
			return clipprune.NotApplicable
		}
		e.IsolateRecursively(e.Up(target, 2))
		e.Remove(e.ID("masterSocialbuttonTop"))
		e.RemoveAfter(target.Parent)
		e.RemoveAfter(e.ClassIn(target, "endkwd"), prunehtml.Offset(-1))
		e.RemoveAfter(e.ClassIn(target, "endlink"), prunehtml.Offset(-1))
		return clipprune.Completed
	},
}

var itmediaNews = &SiteRule{
	Site:    "ITmedia News",
	Pattern: regexp.MustCompile(`^https?://www\.itmedia\.co\.jp/(news|enterprise)/articles/\d{4}/\d\d/news\d{3}\.html$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.ID("tmplNewsIn")
		if target == nil {
			return clipprune.NotApplicable
		}
		e.IsolateRecursively(target)
		e.RemoveBefore(e.ID("cmsDate"))
		e.Remove(e.ID("cmsByline"), e.ID("masterSocialbuttonTop"))

		body := e.MustID("cmsBody")
		e.RemoveAfter(body)
		e.Isolate(e.ClassIn(body, "inner"))
		e.RemoveBefore(e.ID("cmsMark"), prunehtml.Offset(1))
		e.RemoveAfter(e.ID("amazon-item"), prunehtml.Offset(-1))
		e.RemoveAfter(e.ClassIn(body, "endkwd"), prunehtml.Offset(-1))
		e.RemoveAfter(e.ClassIn(body, "cmsBox"), prunehtml.Offset(-1))
		e.RemoveAfter(e.ID("AuthorProfile"), prunehtml.Offset(-1))
		e.RemoveAfter(e.ID("facebookLikebox"), prunehtml.Offset(-1))
		e.RemoveAfter(e.ClassIn(body, "endlink"), prunehtml.Offset(-1))
		return clipprune.Completed
	},
}

var nlab = &SiteRule{
	Site:    "ITmedia Netorabo",
	Pattern: regexp.MustCompile(`^https?://nlab\.itmedia\.co\.jp/nl/articles/\d{4}/\d\d/news\d{3}\.html$`),
	Prune: func(e *Editor) clipprune.Outcome {
		var items []*html.Node
		for _, small := range e.Tag("small") {
			li := small.Parent
			if isTag(li, "li") && isTag(li.Parent, "ul") {
				items = append(items, li)
			}
		}
		e.Remove(items)
		e.RemoveAfter(e.ID("green"), prunehtml.Offset(-1))
		return clipprune.Completed
	},
}

var plusD = &SiteRule{
	Site:    "ITmedia +D",
	Pattern: regexp.MustCompile(`^https?://(plusd|www)\.itmedia\.co\.jp/(pcuser|mobile|lifestyle)/articles/\d{4}/\d\d/news\d{3}(_\d)?.html$`),
	Prune:   pruneITmediaFooter,
}

var eeTimes = &SiteRule{
	Site:    "EE Times Japan",
	Pattern: regexp.MustCompile(`^https?://eetimes\.jp/ee/articles/.+$`),
	Prune:   pruneITmediaFooter,
}

// pruneITmediaFooter drops what follows the notice and the related links of
// the shared ITmedia article template.
func pruneITmediaFooter(e *Editor) clipprune.Outcome {
	e.RemoveAfter(e.ID("notice"), prunehtml.Offset(-1))
	e.RemoveAfter(e.Class("endlink"), prunehtml.Offset(-1))
	e.RemoveAfter(e.Class("endkwd"), prunehtml.Offset(-1))
	return clipprune.Completed
}
