package goquery

import (
	"net/url"

	"github.com/fwojciec/clipprune"
	prunehtml "github.com/fwojciec/clipprune/html"
	"golang.org/x/net/html"
)

// DefaultRules returns the built-in rule table: the canonicalization entries
// first, then one entry per supported site layout. Order matters; the first
// rule that does not decline wins.
func DefaultRules() []clipprune.Rule {
	rules := CanonicalRules()
	for _, r := range []*SiteRule{
		bloomberg,
		honto,
		wired,
		huffPost,
		karapaia,
		cnetJapan,
		hpcwire,
		yahooZasshi,
		nikkei,
		hatenaDiary,
		touchLab,
		amazonProduct,
		tokyoNP,
		wsjJapan,
		jiji,
		lifehacker,
		gizmodo,
		moongift,
		yomiuri,
		gigazine,
		techCrunchTeaser,
		techCrunch,
		rocketNews,
		asahi,
		getNews,
		engadget,
		fourGamer,
		atmarkITNews,
		atmarkITWindows,
		news47,
		publickey,
		bizMakoto,
		itmediaBlogs,
		itmediaGadget,
		itmediaPromobile,
		itmediaNews,
		nlab,
		plusD,
		eeTimes,
		wiredVision,
		vector,
		impressWatch,
		akibaPrice,
		reuters,
		reutersArticle,
		mycom,
		itpro,
	} {
		rules = append(rules, r)
	}
	return rules
}

func firstOf(nodes []*html.Node) *html.Node {
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func parent(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	return n.Parent
}

func prev(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	return n.PrevSibling
}

func next(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	return n.NextSibling
}

func firstChild(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	return n.FirstChild
}

func lastChild(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	return n.LastChild
}

func id(n *html.Node) string {
	v, _ := prunehtml.Attr(n, "id")
	return v
}

// resolve resolves ref against the page URL base.
func resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", clipprune.WrapError(clipprune.EINVALID, err, "parse page URL")
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", clipprune.WrapError(clipprune.ESTRUCTURE, err, "parse link %q", ref)
	}
	return b.ResolveReference(r).String(), nil
}
