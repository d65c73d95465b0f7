package goquery

import (
	"regexp"
	"slices"

	"github.com/fwojciec/clipprune"
	prunehtml "github.com/fwojciec/clipprune/html"
	"golang.org/x/net/html"
)

var cnetJapan = &SiteRule{
	Site:    "CNET Japan",
	Pattern: regexp.MustCompile(`^https?://japan\.cnet\.com/[^/]+/[^/]+/\d+/$`),
	Prune: func(e *Editor) clipprune.Outcome {
		var parts []*html.Node

		headings := e.Tag("h1")
		e.Check(len(headings) == 1, "expected one <h1>, found %d", len(headings))
		if h := firstOf(headings); h != nil {
			e.Isolate(h.Parent)
			e.RemoveBefore(e.Up(h, 2))
			parts = append(parts, e.Up(h, 3))
		}

		dates := e.Class("date")
		e.Check(len(dates) == 1, "expected one .date, found %d", len(dates))
		if d := firstOf(dates); d != nil {
			e.RemoveAfter(d.Parent)
			parts = append(parts, e.Up(d, 2))
		}

		news := e.First(e.Tag("newselement"), "<newselement>")
		e.Isolate(parent(news))
		parts = append(parts, e.Up(news, 2))

		if e.Err() != nil {
			return clipprune.Completed
		}
		ancestor := parts[0].Parent
		for _, p := range parts {
			e.Check(p.Parent == ancestor, "article parts do not share a parent")
		}
		var rest []*html.Node
		for _, c := range prunehtml.Children(ancestor) {
			if !slices.Contains(parts, c) {
				rest = append(rest, c)
			}
		}
		e.Remove(rest)
		e.IsolateRecursively(ancestor)
		return clipprune.Completed
	},
}

var hatenaDiary = &SiteRule{
	Site:    "Hatena Diary",
	Pattern: regexp.MustCompile(`^https?://d\.hatena\.ne\.jp/[-a-zA-Z0-9_]+/\d+(/[-a-zA-Z0-9_]+|#\d+)?$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.MustClass("section")
		e.Isolate(target)
		e.RemoveAfter(parent(target))
		e.IsolateRecursively(e.Up(target, 2))
		e.RemoveByClass(target,
			"hatena-star-comment-container",
			"hatena-star-star-container",
			"addBookmarkLink",
			"share-button",
			"sectionfooter",
			"bookmark-icon",
			"bookmark-count",
		)
		return clipprune.Completed
	},
}

var touchLab = &SiteRule{
	Site:    "Touch Lab",
	Pattern: regexp.MustCompile(`^https?://ipodtouchlab\.com/\d+/\d+/[-\w]+\.html$`),
	Prune: func(e *Editor) clipprune.Outcome {
		// The site renders <title> inside the body.
		if title := firstOf(e.Tag("title")); title != nil && !isTag(title.Parent, "head") {
			e.Append(e.First(e.Tag("head"), "<head>"), title)
		}
		target := e.MustID("main")
		e.IsolateRecursively(target)
		e.RemoveBefore(e.First(e.TagIn(target, "h2"), "<h2>"))
		e.RemoveAfter(e.ID("more"))
		return clipprune.Completed
	},
}

var lifehacker = &SiteRule{
	Site:    "Lifehacker Japan",
	Pattern: regexp.MustCompile(`^https?://www\.lifehacker\.jp/\d+/\d+/[^/]+\.html$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.MustID("entry_detail")
		e.IsolateRecursively(target)
		data := e.MustClassIn(target, "entry_data")
		e.RemoveGarbage(data)
		e.RemoveAfter(firstChild(data))
		e.RemoveByClass(target, "cat", "ad_entry_title_under", "EntryMoreBanner", "amazon_ranking")
		e.RemoveAfter(firstOf(e.ClassIn(target, "recententries")), prunehtml.Offset(-1))
		return clipprune.Completed
	},
}

var gizmodo = &SiteRule{
	Site:    "GIZMODO JAPAN",
	Pattern: regexp.MustCompile(`^https?://www\.gizmodo\.jp/\d+/\d+/[^/]+\.html$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.MustID("entry_detail")
		e.IsolateRecursively(target)
		data := e.MustClassIn(target, "entry_data")
		e.RemoveGarbage(data)
		e.RemoveAfter(firstChild(data))
		e.Remove(e.ClassIn(target, "ad_entry_title_under"))

		// Everything from the first <div> of the body on is promotion.
		body := e.MustClassIn(target, "entry_body")
		for n := firstChild(body); n != nil; n = n.NextSibling {
			if isTag(n, "div") {
				e.RemoveAfter(n, prunehtml.Offset(-1))
				break
			}
		}
		return clipprune.Completed
	},
}

var moongiftPremium = regexp.MustCompile(`^https?://(www\.)?moongift\.jp/moongift_premium/$`)

var moongift = &SiteRule{
	Site:    "MOONGIFT",
	Pattern: regexp.MustCompile(`^https?://moongift\.jp/(r/)?\d+/\d+/(\d+(-\d+)?|[-a-zA-Z0-9_]+)/$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.MustClass("main")
		e.IsolateRecursively(target)
		e.RemoveAfter(e.ClassIn(target, "title"))
		e.RemoveAfter(e.ClassIn(target, "post_body"))

		links, err := clipprune.Map(e.ClassIn(target, "post_body"), func(body *html.Node) []*html.Node {
			return prunehtml.ElementsByTag(body, "a")
		})
		e.fail(err)
		flat, err := clipprune.Flatten(links)
		e.fail(err)
		premium, err := clipprune.Filter(flat, func(v any) bool {
			href, _ := prunehtml.Attr(v.(*html.Node), "href")
			return moongiftPremium.MatchString(href)
		})
		e.fail(err)
		boxes, err := clipprune.Map(premium, func(v any) *html.Node {
			return parent(parent(v.(*html.Node)))
		})
		e.fail(err)
		e.Remove(boxes)

		e.RemoveAfter(e.ClassIn(target, "social"), prunehtml.Offset(-1))
		return clipprune.Completed
	},
}

var techCrunchTeaser = &SiteRule{
	Site:    "TechCrunch Japan",
	Pattern: regexp.MustCompile(`^https?://jp\.techcrunch\.com/20\d\d/\d\d/\d\d/20\d\d-\d\d-\d\d-[^/]+/$`),
	Prune: func(e *Editor) clipprune.Outcome {
		// Hidden here, removed by the hidden element pass.
		e.AddStyle(e.MustClass("active"), "visibility: hidden")
		return clipprune.Completed
	},
}

var techCrunch = &SiteRule{
	Site:    "TechCrunch Japan archives",
	Pattern: regexp.MustCompile(`^https?://jp\.techcrunch\.com/archives/[^/]+/$`),
	Prune: func(e *Editor) clipprune.Outcome {
		e.IsolateRecursively(parent(e.MustClass("entry")))
		e.Isolate(e.Class("post_subheader_left"))
		return clipprune.Completed
	},
}

var engadget = &SiteRule{
	Site:    "Engadget Japanese",
	Pattern: regexp.MustCompile(`^https?://japanese\.engadget\.com/\d+/\d+/\d+/[^/]+/$`),
	Prune: func(e *Editor) clipprune.Outcome {
		article := e.Closest(e.MustOne("article h1"), "article")
		e.IsolateRecursively(article)
		if e.Err() != nil {
			return clipprune.Completed
		}
		footer := article
		for footer != nil && !isTag(footer, "footer") {
			footer = footer.LastChild
		}
		e.RemoveAfter(e.Must(footer, "article <footer>"), prunehtml.Offset(-2))
		e.Remove(e.Select(".article-rr"))
		return clipprune.Completed
	},
}

var fourGamer = &SiteRule{
	Site:    "4Gamer.net",
	Pattern: regexp.MustCompile(`^https?://www\.4gamer\.net/games/\d+/\w+/\d+/$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.MustClass("maintxt")
		e.Isolate(target)
		frame := e.Up(target, 2)
		e.IsolateRecursively(frame)
		e.RemoveStructuralGarbage(frame)
		e.RemoveBefore(prev(parent(target)))
		e.RemoveAfter(parent(target))
		header := prev(parent(target))
		e.RemoveStructuralGarbage(header)
		e.RemoveBefore(prev(lastChild(header)))
		return clipprune.Completed
	},
}

var atmarkITNews = &SiteRule{
	Site:    "@IT news",
	Pattern: regexp.MustCompile(`^https?://www\.atmarkit\.co\.jp/news/\d+/\d+/.+\.html$`),
	Prune: func(e *Editor) clipprune.Outcome {
		breadcrumb := e.ID("navibar")
		target := e.MustID("centercol")
		e.IsolateRecursively(target)
		if breadcrumb != nil {
			e.MoveBefore(target, breadcrumb)
		}
		e.RemoveGarbage(target)
		e.Remove(e.ID("headmenu-area"))
		credit := e.MustID("credit")
		e.Remove(prev(credit))
		e.RemoveAfter(credit)
		return clipprune.Completed
	},
}

var atmarkITWindows = &SiteRule{
	Site:    "@IT Windows Server Insider",
	Pattern: regexp.MustCompile(`^https?://www\.atmarkit\.co\.jp/fwin2k/.+\.html$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.MustID("centercol")
		e.IsolateRecursively(target)
		e.RemoveGarbage(target)
		e.Remove(e.ID("headmenu-area"))
		for _, img := range e.Tag("img") {
			if alt, _ := prunehtml.Attr(img, "alt"); alt != "End of Article" {
				continue
			}
			n := img
			for n != nil && n.Parent != target {
				n = n.Parent
			}
			e.RemoveAfter(n)
		}
		return clipprune.Completed
	},
}

var publickey = &SiteRule{
	Site:    "Publickey",
	Pattern: regexp.MustCompile(`^https?://www\.publickey1\.jp/blog/.+$`),
	Prune: func(e *Editor) clipprune.Outcome {
		e.RemoveAfter(e.Select("#maincol>style"), prunehtml.Offset(-1))
		return clipprune.Completed
	},
}

var vector = &SiteRule{
	Site:    "Vector software news",
	Pattern: regexp.MustCompile(`^https?://www\.vector\.co\.jp/magazine/softnews/.+$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.MustID("v_wrapper")
		e.IsolateRecursively(target)
		e.RemoveGarbage(target)
		for range 5 {
			e.Remove(firstChild(target))
		}
		for e.Err() == nil && len(prunehtml.Children(target)) > 4 {
			e.Remove(target.LastChild)
		}

		cur := lastChild(target)
		for _, tag := range []string{"table", "tbody", "tr"} {
			if !isTag(cur, tag) {
				e.Fail("expected <%s> in the review layout", tag)
				return clipprune.Completed
			}
			e.RemoveGarbage(cur)
			if tag != "tr" {
				cur = cur.FirstChild
			}
		}
		e.Check(len(prunehtml.Children(cur)) == 2, "expected two review columns, found %d", len(prunehtml.Children(cur)))

		cell := firstChild(cur)
		e.Isolate(cell)
		e.RemoveGarbage(cell)
		for range 4 {
			e.Remove(lastChild(cell))
		}
		return clipprune.Completed
	},
}

var impressWatch = &SiteRule{
	Site:    "Impress Watch",
	Pattern: regexp.MustCompile(`^https?://(cloud|pc|dc|akiba-pc|av|game|k-tai|internet|forest|kaden|car)\.watch\.impress\.co\.jp/docs/(news|event|serial|review|column|series|topic|special|mreview|sp|ex/kodenishi)/.+$`),
	Prune: func(e *Editor) clipprune.Outcome {
		e.RemoveByClass(e.Root(), "social", "social_bookmark", "social-bookmark")
		e.Remove(e.ID("extra"))
		e.RemoveByClass(e.Root(), "author-detail",
			"box-01", "box-02", "box-03", "box-04", "box-05", "box-06", "box-07", "box-08", "box-09")
		return clipprune.Completed
	},
}

var akibaPrice = &SiteRule{
	Site:    "AKIBA PC Hotline! prices",
	Pattern: regexp.MustCompile(`^https?://(akiba-pc)\.watch\.impress\.co\.jp/docs/(price)/.+$`),
	Prune: func(e *Editor) clipprune.Outcome {
		e.IsolateRecursively(e.Class("main-contents"))
		e.RemoveByClass(e.Root(), "social_bookmark", "social-bookmark")
		e.Remove(e.ID("extra"))
		e.RemoveByClass(e.Root(), "btn", "author-detail", "amazon-aff", "aff_wf")
		return clipprune.Completed
	},
}
