package goquery

import (
	"regexp"
	"strings"

	"github.com/fwojciec/clipprune"
	prunehtml "github.com/fwojciec/clipprune/html"
	"golang.org/x/net/html"
)

var bloomberg = &SiteRule{
	Site:    "Bloomberg",
	Pattern: regexp.MustCompile(`^https?://www\.bloomberg\.co\.jp/news/articles/20\d\d-[01]\d-[0123]\d/[0-9A-Z]+$`),
	Prune: func(e *Editor) clipprune.Outcome {
		article := e.First(e.Tag("article"), "<article>")
		e.IsolateRecursively(article)
		isolateUpTo(e, article, "h1")
		isolateUpTo(e, article, ".body-copy")
		return clipprune.Completed
	},
}

// isolateUpTo isolates the only element matching selector and each of its
// ancestors below container.
func isolateUpTo(e *Editor, container *html.Node, selector string) {
	target := e.MustOne(selector)
	for target != nil && target.Parent != container {
		e.Isolate(target)
		target = target.Parent
		if target == nil || isTag(target, "body") {
			e.Fail("%s is outside the article", selector)
			return
		}
	}
}

var wired = &SiteRule{
	Site:    "WIRED.jp",
	Pattern: regexp.MustCompile(`^https?://wired\.jp/\d{4}/\d\d/\d\d/[-\w]+/$`),
	Prune: func(e *Editor) clipprune.Outcome {
		e.RemoveAfter(e.Class("loading"))
		return clipprune.Completed
	},
}

var huffPost = &SiteRule{
	Site:    "HuffPost Japan",
	Pattern: regexp.MustCompile(`^https?://www\.huffingtonpost\.jp/\d{4}/\d\d/\d\d/\w+\.html$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.MustID("mainentrycontent")
		e.RemoveAfter(target)
		for c := firstChild(target); c != nil; c = c.NextSibling {
			if isTag(c, "script") || (c.Type == html.ElementNode && prunehtml.Text(c) == "関連ニュース") {
				e.RemoveAfter(c.PrevSibling)
				break
			}
		}
		return clipprune.Completed
	},
}

var karapaia = &SiteRule{
	Site:    "karapaia",
	Pattern: regexp.MustCompile(`^https?://karapaia\.com/archives/\d+\.html$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.MustID("articlemore-social")
		e.IsolateRecursively(e.Up(target, 3))
		e.RemoveAfter(parent(target))
		e.RemoveAfter(prev(target))
		return clipprune.Completed
	},
}

var hpcwire = &SiteRule{
	Site:    "HPCwire",
	Pattern: regexp.MustCompile(`^https?://www\.hpcwire\.com/hpcwire/20\d\d-\d\d-\d\d/[-a-zA-Z0-9_:.]+\.html$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.ID("bodytext")
		if target == nil {
			return clipprune.NotApplicable
		}
		e.RemoveAfter(target)
		e.IsolateRecursively(target.Parent)
		return clipprune.Completed
	},
}

var yahooZasshi = &SiteRule{
	Site:    "Yahoo! News magazines",
	Pattern: regexp.MustCompile(`^https?://zasshi\.news\.yahoo\.co\.jp/article\?a=[-a-zA-Z0-9_]+$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.MustID("ynDetail")
		e.IsolateRecursively(target)
		e.RemoveGarbage(target)
		e.RemoveAfter(e.First(e.ClassIn(target, "ynLastEditDate"), ".ynLastEditDate"))

		containers := e.ClassIn(target, "ymuiContainerNopad")
		if e.Err() == nil && len(containers) < 2 {
			e.Fail("expected two .ymuiContainerNopad blocks, found %d", len(containers))
		}
		if e.Err() != nil {
			return clipprune.Completed
		}
		for n := containers[1].LastChild; n != nil; n = n.PrevSibling {
			if n.Type == html.TextNode && n.Data == "\n【関連記事】" {
				e.RemoveAfter(n, prunehtml.Offset(-1))
				break
			}
		}
		return clipprune.Completed
	},
}

var nikkei = &SiteRule{
	Site:    "Nikkei",
	Pattern: regexp.MustCompile(`^https?://www\.nikkei\.com/news/article/g=[0-9A-Z]+$`),
	Prune: func(e *Editor) clipprune.Outcome {
		marks := e.Class("cmnc-publish")
		if len(marks) != 1 || parent(parent(marks[0])) == nil {
			return clipprune.NotApplicable
		}
		target := marks[0].Parent.Parent
		e.RemoveGarbage(target.Parent)
		e.RemoveBefore(target.PrevSibling)
		e.RemoveAfter(target)
		e.IsolateRecursively(target.Parent)
		e.Remove(e.TagIn(target, "form"), e.ClassIn(target, "cmn-article_keyword"))
		return clipprune.Completed
	},
}

var tokyoNP = &SiteRule{
	Site:    "Tokyo Shimbun",
	Pattern: regexp.MustCompile(`^https?://www\.tokyo-np\.co\.jp/[a-z]/article/\d+\.html$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.MustClass("News-textarea")
		e.IsolateRecursively(parent(target))
		e.RemoveBefore(target, prunehtml.Offset(-1))
		e.Remove(e.ClassIn(target, "print"))
		return clipprune.Completed
	},
}

var wsjJapan = &SiteRule{
	Site:    "WSJ Japan",
	Pattern: regexp.MustCompile(`^https?://jp\.wsj\.com/[^/]+/.+$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.MustClass("home-wrap")
		e.IsolateRecursively(target)
		e.RemoveGarbage(target)

		headline := e.MustClass("articleHeadlineBox")
		e.Isolate(headline)
		e.Check(e.Up(headline, 2) == target, "headline is outside .home-wrap")

		body := e.MustID("article_story_body")
		e.RemoveBefore(body)
		e.RemoveAfter(body, prunehtml.Offset(1))
		e.Isolate(parent(body))
		e.Check(e.Up(body, 3) == target, "story body is outside .home-wrap")

		if e.Err() != nil {
			return clipprune.Completed
		}
		kids := prunehtml.Children(target)
		e.Check(len(kids) == 4, "expected 4 blocks in .home-wrap, found %d", len(kids))
		if e.Err() == nil {
			e.Remove(kids[3], kids[1])
		}
		return clipprune.Completed
	},
}

var jiji = &SiteRule{
	Site:    "jiji.com",
	Pattern: regexp.MustCompile(`^https?://www\.jiji\.com/jc/[^/]+$`),
	Prune: func(e *Editor) clipprune.Outcome {
		e.Remove(e.Class("ArticleTextTab"))
		return clipprune.Completed
	},
}

var yomiuri = &SiteRule{
	Site:    "Yomiuri Online",
	Pattern: regexp.MustCompile(`^https?://www\.yomiuri\.co\.jp/.+/\d+-\w+\.htm(\?.+)?$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.MustClass("article-def")
		e.IsolateRecursively(target)
		e.Remove(e.ClassIn(target, "sbtns"))
		e.RemoveAfter(e.ClassIn(target, "date-def"))
		return clipprune.Completed
	},
}

var gigazine = &SiteRule{
	Site:    "GIGAZINE",
	Pattern: regexp.MustCompile(`^https?://gigazine\.net/news/[^/]+/$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := parent(e.MustClass("article"))
		e.IsolateRecursively(target)
		e.RemoveBefore(e.ClassIn(target, "date"))
		e.RemoveAfter(e.ClassIn(target, "article"))
		for _, b := range e.TagIn(target, "b") {
			if b.Parent != nil && prunehtml.Text(b) == "・関連記事" {
				e.RemoveAfter(b, prunehtml.Offset(-1), prunehtml.PreserveGarbage())
			}
		}
		return clipprune.Completed
	},
}

var rocketNews = &SiteRule{
	Site:    "RocketNews24",
	Pattern: regexp.MustCompile(`^https?://rocketnews24\.com/(\?p=\d+|\d+/\d+/\d+/\d+/)$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.MustClass("post-content")
		e.IsolateRecursively(parent(target))
		e.RemoveAfter(target)
		e.RemoveByClass(e.Root(), "ad", "act", "social-btn")
		return clipprune.Completed
	},
}

var asahi = &SiteRule{
	Site:    "asahi.com",
	Pattern: regexp.MustCompile(`^https?://www\.asahi\.com/\w+/\w+/(\d+/)?\w+\.html$`),
	Prune: func(e *Editor) clipprune.Outcome {
		e.IsolateRecursively(e.MustID("HeadLine"))
		e.Remove(e.ID("utility_right"))
		return clipprune.Completed
	},
}

var getNews = &SiteRule{
	Site:    "Gadget Tsushin",
	Pattern: regexp.MustCompile(`^https?://getnews\.jp/archives/\d+$`),
	Prune: func(e *Editor) clipprune.Outcome {
		e.IsolateRecursively(e.MustClass("post"))
		e.Remove(e.ID("adingoBeagle1"))

		body := e.MustClass("post-bodycopy")
		e.RemoveGarbage(body)
		e.Remove(firstChild(body))
		e.Remove(firstChild(body))
		e.RemoveAfter(e.ID("bookmark_single"), prunehtml.Offset(-1))
		related, err := clipprune.Some(prunehtml.Children(lastChild(body)), func(n *html.Node) bool {
			return n.Type == html.TextNode && strings.TrimSpace(n.Data) == "関連記事リンク"
		})
		e.fail(err)
		if related {
			e.Remove(lastChild(body))
		}

		e.RemoveAfter(firstOf(e.Class("pagebar")), prunehtml.Offset(-2))
		return clipprune.Completed
	},
}

var news47 = &SiteRule{
	Site:    "47NEWS",
	Pattern: regexp.MustCompile(`^https?://www\.47news\.jp/CN/\d+/CN\d+\.html$`),
	Prune: func(e *Editor) clipprune.Outcome {
		elem := parent(e.MustID("bt_body"))
		e.Remove(e.Class("snsBox"))
		e.IsolateRecursively(parent(elem))
		return clipprune.Completed
	},
}

var reuters = &SiteRule{
	Site:    "Reuters",
	Pattern: regexp.MustCompile(`^https?://jp\.reuters\.com/article/`),
	Prune: func(e *Editor) clipprune.Outcome {
		e.Remove(e.ID("TopSection_Article"), e.ID("topSections"), e.ID("relatedNews"), e.Class("column2"))
		if footnote := e.ID("articleText"); footnote != nil {
			e.RemoveAfter(footnote.LastChild, prunehtml.Offset(-3))
			e.RemoveAfter(footnote)
		}
		return clipprune.Completed
	},
}

var reutersArticle = &SiteRule{
	Site:    "Reuters sections",
	Pattern: regexp.MustCompile(`^https?://(\w+)\.jp\.reuters\.com/article/`),
	Prune: func(e *Editor) clipprune.Outcome {
		e.RemoveAfter(e.ID("articleText"), prunehtml.Offset(3))
		e.Remove(e.Class("reuters-share"))
		return clipprune.Completed
	},
}

var wiredVision = &SiteRule{
	Site:    "WIRED VISION",
	Pattern: regexp.MustCompile(`^https?://wiredvision\.jp/news/.+$`),
	Prune: func(e *Editor) clipprune.Outcome {
		target := e.MustID("entry")
		e.IsolateRecursively(target)
		e.RemoveGarbage(target)
		e.Isolate(e.ClassIn(target, "pageInfoContent"))
		e.Remove(e.ID("textAdInEntry"), e.ID("entryUtility"))
		e.Isolate(e.MustID("entryBody"))
		e.Remove(next(e.MustID("entryContent")))
		return clipprune.Completed
	},
}

var mycom = &SiteRule{
	Site:    "Mycom Journal",
	Pattern: regexp.MustCompile(`^https?://journal\.mycom\.co\.jp/.+/(index\.html|\d+\.html)?$`),
	Prune: func(e *Editor) clipprune.Outcome {
		e.IsolateRecursively(e.MustID("articleMain"))
		e.Remove(e.ID("socialBookmarkList"), e.Class("textAdBlock"))
		e.RemoveAfter(e.Class("articleContent"))
		return clipprune.Completed
	},
}

var itpro = &SiteRule{
	Site:    "ITpro",
	Pattern: regexp.MustCompile(`^https?://itpro\.nikkeibp\.co\.jp/article/NEWS/\d+/\d+/$`),
	Prune: func(e *Editor) clipprune.Outcome {
		e.IsolateRecursively(e.MustID("kijiBox"))
		return clipprune.Completed
	},
}
