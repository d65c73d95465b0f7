package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/clipprune"
	prunehtml "github.com/fwojciec/clipprune/html"
	"golang.org/x/net/html"
)

// Editor performs the DOM surgery of one rule run. It keeps the first error
// it meets: lookups and primitives called after a failure do nothing, so a
// rule body reads as a plain list of steps and SiteRule.Apply reports the
// failure once the body returns.
type Editor struct {
	page *clipprune.Page
	doc  *goquery.Document
	err  error
	next *clipprune.Continuation
}

// NewEditor creates an Editor over the document of page.
func NewEditor(page *clipprune.Page) *Editor {
	return &Editor{
		page: page,
		doc:  goquery.NewDocumentFromNode(page.Doc),
	}
}

// Err returns the first failure, or nil.
func (e *Editor) Err() error {
	return e.err
}

// URL returns the URL of the page being pruned.
func (e *Editor) URL() string {
	return e.page.URL
}

// Unfolding reports whether multi-page articles should be stitched.
func (e *Editor) Unfolding() bool {
	return e.page.Unfolding
}

// Root returns the document node.
func (e *Editor) Root() *html.Node {
	return e.page.Doc
}

// Document returns the goquery document for lookups the Editor has no helper for.
func (e *Editor) Document() *goquery.Document {
	return e.doc
}

// Fail records a broken site assumption.
func (e *Editor) Fail(format string, args ...any) {
	e.fail(clipprune.Errorf(clipprune.ESTRUCTURE, format, args...))
}

func (e *Editor) fail(err error) {
	if e.err == nil && err != nil {
		e.err = err
	}
}

// Check records a broken site assumption unless cond holds.
func (e *Editor) Check(cond bool, format string, args ...any) {
	if !cond {
		e.Fail(format, args...)
	}
}

// Continue schedules cont and returns Pending for the rule to return.
func (e *Editor) Continue(cont *clipprune.Continuation) clipprune.Outcome {
	e.next = cont
	return clipprune.Pending
}

// ID returns the element with the id, or nil.
func (e *Editor) ID(id string) *html.Node {
	if e.err != nil {
		return nil
	}
	return prunehtml.ElementByID(e.page.Doc, id)
}

// MustID returns the element with the id and fails when there is none.
func (e *Editor) MustID(id string) *html.Node {
	return e.Must(e.ID(id), "#"+id)
}

// Class returns the elements of the document carrying the class.
func (e *Editor) Class(class string) []*html.Node {
	return e.ClassIn(e.page.Doc, class)
}

// ClassIn returns the elements below root carrying the class.
func (e *Editor) ClassIn(root *html.Node, class string) []*html.Node {
	if e.err != nil || root == nil {
		return nil
	}
	return prunehtml.ElementsByClass(root, class)
}

// MustClass returns the first element of the document carrying the class
// and fails when there is none.
func (e *Editor) MustClass(class string) *html.Node {
	return e.MustClassIn(e.page.Doc, class)
}

// MustClassIn returns the first element below root carrying the class and
// fails when there is none.
func (e *Editor) MustClassIn(root *html.Node, class string) *html.Node {
	return e.First(e.ClassIn(root, class), "."+class)
}

// Tag returns the elements of the document with the tag name.
func (e *Editor) Tag(tag string) []*html.Node {
	return e.TagIn(e.page.Doc, tag)
}

// TagIn returns the elements below root with the tag name.
func (e *Editor) TagIn(root *html.Node, tag string) []*html.Node {
	if e.err != nil || root == nil {
		return nil
	}
	return prunehtml.ElementsByTag(root, tag)
}

// Select returns the elements of the document matching the CSS selector.
func (e *Editor) Select(selector string) []*html.Node {
	if e.err != nil {
		return nil
	}
	return e.doc.Find(selector).Nodes
}

// SelectIn returns the elements below root matching the CSS selector.
func (e *Editor) SelectIn(root *html.Node, selector string) []*html.Node {
	if e.err != nil || root == nil {
		return nil
	}
	return goquery.NewDocumentFromNode(root).Find(selector).Nodes
}

// MustOne returns the only element matching the CSS selector and fails when
// there are none or several.
func (e *Editor) MustOne(selector string) *html.Node {
	return e.MustOneIn(e.page.Doc, selector)
}

// MustOneIn is MustOne restricted to the descendants of root.
func (e *Editor) MustOneIn(root *html.Node, selector string) *html.Node {
	nodes := e.SelectIn(root, selector)
	if e.err != nil {
		return nil
	}
	if len(nodes) != 1 {
		e.Fail("expected one element for %q, found %d", selector, len(nodes))
		return nil
	}
	return nodes[0]
}

// First returns the first of nodes and fails when there is none.
func (e *Editor) First(nodes []*html.Node, what string) *html.Node {
	if len(nodes) == 0 {
		return e.Must(nil, what)
	}
	return nodes[0]
}

// Must returns n and fails when it is nil.
func (e *Editor) Must(n *html.Node, what string) *html.Node {
	if e.err != nil {
		return nil
	}
	if n == nil {
		e.Fail("%s not found", what)
	}
	return n
}

// Up returns the ancestor levels above n and fails when the chain ends early.
func (e *Editor) Up(n *html.Node, levels int) *html.Node {
	for i := 0; i < levels && n != nil; i++ {
		n = n.Parent
	}
	return e.Must(n, fmt.Sprintf("ancestor %d", levels))
}

// Closest returns the nearest ancestor of n with the tag name, stopping
// before <body>, and fails when there is none.
func (e *Editor) Closest(n *html.Node, tag string) *html.Node {
	for cur := n; cur != nil && !isTag(cur, "body"); cur = cur.Parent {
		if isTag(cur, tag) {
			return cur
		}
	}
	return e.Must(nil, "<"+tag+"> ancestor")
}

// Remove detaches the targets.
func (e *Editor) Remove(targets ...any) {
	if e.err == nil {
		e.fail(prunehtml.RemoveAll(targets...))
	}
}

// RemoveInner empties the targets.
func (e *Editor) RemoveInner(targets ...any) {
	if e.err == nil {
		e.fail(prunehtml.RemoveInner(targets...))
	}
}

// RemoveBefore removes the siblings before each target.
func (e *Editor) RemoveBefore(target any, opts ...prunehtml.SiblingOption) {
	if e.err == nil {
		e.fail(prunehtml.RemoveBefore(target, opts...))
	}
}

// RemoveAfter removes the siblings after each target.
func (e *Editor) RemoveAfter(target any, opts ...prunehtml.SiblingOption) {
	if e.err == nil {
		e.fail(prunehtml.RemoveAfter(target, opts...))
	}
}

// RemoveGarbage removes comments and blank text directly below n.
func (e *Editor) RemoveGarbage(n *html.Node) {
	if e.err == nil {
		e.fail(prunehtml.RemoveGarbage(n, false))
	}
}

// RemoveStructuralGarbage removes comments and every text node directly below n.
func (e *Editor) RemoveStructuralGarbage(n *html.Node) {
	if e.err == nil {
		e.fail(prunehtml.RemoveGarbage(n, true))
	}
}

// Isolate removes the siblings of target.
func (e *Editor) Isolate(target any) {
	if e.err == nil {
		e.fail(prunehtml.Isolate(target))
	}
}

// IsolateRecursively keeps only the path from <body> down to target.
func (e *Editor) IsolateRecursively(target any) {
	if e.err == nil {
		e.fail(prunehtml.IsolateRecursively(target))
	}
}

// MoveBefore relocates the targets in front of anchor.
func (e *Editor) MoveBefore(anchor *html.Node, targets ...any) {
	if e.err == nil {
		e.fail(prunehtml.MoveBefore(anchor, targets...))
	}
}

// Append relocates the targets to the end of parent.
func (e *Editor) Append(parent *html.Node, targets ...any) {
	if e.err != nil {
		return
	}
	if parent == nil {
		e.fail(clipprune.Errorf(clipprune.EINVALID, "append: nil parent"))
		return
	}
	nodes, err := prunehtml.ToNodes(targets...)
	if err != nil {
		e.fail(err)
		return
	}
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		parent.AppendChild(n)
	}
}

// AddStyle appends an inline declaration such as "visibility: hidden" to
// the style attribute of n.
func (e *Editor) AddStyle(n *html.Node, declaration string) {
	if e.err != nil || e.Must(n, "styled element") == nil {
		return
	}
	style, _ := prunehtml.Attr(n, "style")
	style = strings.TrimRight(strings.TrimSpace(style), ";")
	if style != "" {
		style += "; "
	}
	prunehtml.SetAttr(n, "style", style+declaration)
}

// RemoveByClass removes every element below root carrying any of the classes.
func (e *Editor) RemoveByClass(root *html.Node, classes ...string) {
	for _, class := range classes {
		e.Remove(e.ClassIn(root, class))
	}
}

// SetTitle replaces the text of the document <title>.
func (e *Editor) SetTitle(title string) {
	if e.err != nil {
		return
	}
	t := e.First(e.Tag("title"), "<title>")
	if t == nil {
		return
	}
	for t.FirstChild != nil {
		t.RemoveChild(t.FirstChild)
	}
	t.AppendChild(&html.Node{Type: html.TextNode, Data: title})
}

// Title returns the text of the document <title>.
func (e *Editor) Title() string {
	return strings.TrimSpace(e.doc.Find("title").First().Text())
}

func isTag(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}
