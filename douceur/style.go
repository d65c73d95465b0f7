// Package douceur approximates computed styles of a parsed document using
// the douceur CSS parser: inline style attributes, <style> sheets and the
// hidden attribute.
package douceur

import (
	"regexp"
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/fwojciec/clipprune"
	prunehtml "github.com/fwojciec/clipprune/html"
	"golang.org/x/net/html"
)

// Ensure Resolver implements clipprune.StyleResolver at compile time.
var _ clipprune.StyleResolver = (*Resolver)(nil)

// Ensure Style implements clipprune.ComputedStyle at compile time.
var _ clipprune.ComputedStyle = (*Style)(nil)

// Resolver reads the style sheets embedded in a document.
// Linked style sheets are not fetched.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve collects the visibility-related rules of every <style> element of
// doc that applies to screen media. Sheets that fail to parse are ignored,
// as a browser would.
func (r *Resolver) Resolve(doc *html.Node) (clipprune.ComputedStyle, error) {
	if doc == nil {
		return nil, clipprune.Errorf(clipprune.EINVALID, "resolve style: nil document")
	}
	s := &Style{}
	for _, el := range prunehtml.ElementsByTag(doc, "style") {
		if media, ok := prunehtml.Attr(el, "media"); ok && !screenMedia(media) {
			continue
		}
		sheet, err := parser.Parse(prunehtml.Text(el))
		if err != nil {
			continue
		}
		s.addRules(sheet.Rules)
	}
	return s, nil
}

// Style holds the rules that can hide an element, in sheet order.
type Style struct {
	rules []styleRule
}

type styleRule struct {
	sel         cascadia.Sel
	specificity cascadia.Specificity
	decls       []*css.Declaration
}

func (s *Style) addRules(rules []*css.Rule) {
	for _, rule := range rules {
		switch rule.Kind {
		case css.QualifiedRule:
			decls := visibilityDecls(rule.Declarations)
			if len(decls) == 0 {
				continue
			}
			for _, selector := range rule.Selectors {
				sel, err := cascadia.Parse(selector)
				if err != nil {
					continue
				}
				s.rules = append(s.rules, styleRule{sel: sel, specificity: sel.Specificity(), decls: decls})
			}
		case css.AtRule:
			if rule.Name == "@media" && screenMedia(rule.Prelude) {
				s.addRules(rule.Rules)
			}
		}
	}
}

// Hidden reports whether n computes to display:none or visibility:hidden.
// Matching rules apply by specificity, then sheet order. The style attribute
// comes last and only !important sheet declarations win over it.
func (s *Style) Hidden(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}

	var c cascade
	if _, ok := prunehtml.Attr(n, "hidden"); ok {
		c.display = "none"
	}
	var matched []styleRule
	for _, rule := range s.rules {
		if rule.sel.Match(n) {
			matched = append(matched, rule)
		}
	}
	slices.SortStableFunc(matched, func(a, b styleRule) int {
		switch {
		case a.specificity.Less(b.specificity):
			return -1
		case b.specificity.Less(a.specificity):
			return 1
		}
		return 0
	})
	for _, rule := range matched {
		c.apply(rule.decls)
	}
	if style, ok := prunehtml.Attr(n, "style"); ok {
		if decls, err := parser.ParseDeclarations(style); err == nil {
			c.apply(visibilityDecls(decls))
		}
	}
	return c.display == "none" || c.visibility == "hidden"
}

type cascade struct {
	display, visibility                   string
	displayImportant, visibilityImportant bool
}

func (c *cascade) apply(decls []*css.Declaration) {
	for _, d := range decls {
		value := strings.ToLower(strings.TrimSpace(d.Value))
		switch strings.ToLower(d.Property) {
		case "display":
			if c.displayImportant && !d.Important {
				continue
			}
			c.display = value
			c.displayImportant = d.Important
		case "visibility":
			if c.visibilityImportant && !d.Important {
				continue
			}
			c.visibility = value
			c.visibilityImportant = d.Important
		}
	}
}

func visibilityDecls(decls []*css.Declaration) []*css.Declaration {
	var out []*css.Declaration
	for _, d := range decls {
		switch strings.ToLower(d.Property) {
		case "display", "visibility":
			out = append(out, d)
		}
	}
	return out
}

var mediaFeature = regexp.MustCompile(`\([^)]*\)`)

// screenMedia reports whether a media query list applies to a screen. A query
// without a media type, such as "(min-width: 1px)", applies to all media.
func screenMedia(media string) bool {
	media = strings.ToLower(strings.TrimSpace(media))
	if media == "" {
		return true
	}
	for _, query := range strings.Split(media, ",") {
		words := strings.Fields(mediaFeature.ReplaceAllString(query, " "))
		words = slices.DeleteFunc(words, func(w string) bool { return w == "only" || w == "and" })
		negated := len(words) > 0 && words[0] == "not"
		if negated {
			words = words[1:]
		}
		if len(words) == 0 {
			if !negated {
				return true
			}
			continue
		}
		screen := words[0] == "screen" || words[0] == "all"
		if screen != negated {
			return true
		}
	}
	return false
}
