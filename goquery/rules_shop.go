package goquery

import (
	"regexp"

	"github.com/fwojciec/clipprune"
	prunehtml "github.com/fwojciec/clipprune/html"
	"golang.org/x/net/html"
)

var honto = &SiteRule{
	Site:    "honto",
	Pattern: regexp.MustCompile(`^https?://honto\.jp/netstore/pd-book_\d+\.html$`),
	Prune: func(e *Editor) clipprune.Outcome {
		e.IsolateRecursively(e.MustID("mainArea"))
		e.Remove(e.Tag("form"), e.Tag("h2"))

		// The product panel id is misspelled on the site.
		marks := []*html.Node{
			e.First(e.Select("h1.stTitle"), "h1.stTitle"),
			e.MustID("productInfomation"),
		}
		nested, err := clipprune.Filter(e.Class("pbNested"), func(n *html.Node) bool {
			return !prunehtml.Contains(n, marks[0]) && !prunehtml.Contains(n, marks[1])
		})
		e.fail(err)
		e.Remove(nested)

		left := e.MustClass("stLeftArea")
		e.RemoveAfter(e.ClassIn(left, "stImg"))
		e.RemoveAfter(e.ClassIn(left, "stExtra"))
		e.RemoveBefore(e.ClassIn(left, "stItemData"))

		main := e.MustClass("stMainArea")
		e.RemoveBefore(e.First(e.TagIn(main, "h1"), "product <h1>"))
		e.RemoveByClass(main, "stIconProductNew", "stSaleInfoLink", "stText", "stMore", "stEb")
		e.RemoveBefore(e.ClassIn(main, "stPrice"))
		e.RemoveAfter(e.ClassIn(main, "stCurrent"))
		return clipprune.Completed
	},
}

var amazonTitlePrefix = regexp.MustCompile(`^Amazon\.co\.jp[:：][\s　]+`)

var amazonProduct = &SiteRule{
	Site:    "Amazon.co.jp",
	Pattern: regexp.MustCompile(`^https?://www\.amazon\.co\.jp/dp/\d+X?$`),
	Prune: func(e *Editor) clipprune.Outcome {
		image := e.ID("prodImage")
		title := parent(e.First(e.Tag("h1"), "product <h1>"))
		price := e.ID("priceBlock")
		desc := e.ID("productDescription")

		rank := e.MustID("SalesRank")
		list := parent(rank)
		e.RemoveAfter(rank, prunehtml.Offset(-2))

		e.IsolateRecursively(title)
		e.Append(parent(title), price, image, list, desc)
		e.SetTitle(amazonTitlePrefix.ReplaceAllString(e.Title(), ""))
		e.Remove(e.Tag("link"), e.Tag("script"), e.Tag("noscript"))
		return clipprune.Completed
	},
}
