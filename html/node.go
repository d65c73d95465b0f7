// Package html implements the DOM surgery primitives of clipprune on top of
// golang.org/x/net/html: removal, garbage cleanup, isolation, hidden element
// removal and event handler stripping.
//
// Primitives accept their targets as *html.Node, []*html.Node, Fragment,
// *goquery.Selection or nested []any values interchangeably. A target that is
// already detached is not an error; a value of any other type is EINVALID.
package html

import (
	"bytes"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/clipprune"
	"golang.org/x/net/html"
)

// Fragment is an ordered run of nodes that are not attached to a document,
// such as the result of parsing markup out of context.
type Fragment []*html.Node

// ParseFragment parses markup as the children of context. A nil context
// parses as the contents of <body>.
func ParseFragment(r io.Reader, context *html.Node) (Fragment, error) {
	if context == nil {
		context = &html.Node{Type: html.ElementNode, Data: "body"}
	}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, err
	}
	return Fragment(nodes), nil
}

// Parse parses a complete document.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// ParseString parses a complete document held in a string.
func ParseString(s string) (*html.Node, error) {
	return html.Parse(strings.NewReader(s))
}

// Render serializes n and its descendants.
func Render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderChildren serializes the children of n without n itself.
func RenderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// IsNode reports whether v is a usable node of any kind.
func IsNode(v any) bool {
	n, ok := v.(*html.Node)
	return ok && n != nil && n.Type != html.ErrorNode
}

// IsTypicalNode reports whether v is a node that can appear inside a body:
// an element, a text node, a comment or raw text.
func IsTypicalNode(v any) bool {
	n, ok := v.(*html.Node)
	if !ok || n == nil {
		return false
	}
	switch n.Type {
	case html.ElementNode, html.TextNode, html.CommentNode, html.RawNode:
		return true
	}
	return false
}

// IsDocumentFragment reports whether v is a Fragment.
func IsDocumentFragment(v any) bool {
	_, ok := v.(Fragment)
	return ok
}

// IsNodeCollection reports whether v is one of the collection types the
// primitives accept.
func IsNodeCollection(v any) bool {
	switch v.(type) {
	case []*html.Node, Fragment, *goquery.Selection, []any:
		return true
	}
	return false
}

// ToNodes flattens targets into one ordered slice of typical nodes. nil
// values and empty collections contribute nothing.
func ToNodes(targets ...any) ([]*html.Node, error) {
	flat, err := clipprune.Flatten(targets)
	if err != nil {
		return nil, err
	}
	var out []*html.Node
	for _, t := range flat {
		switch v := t.(type) {
		case nil:
		case *html.Node:
			if v == nil {
				continue
			}
			if !IsTypicalNode(v) {
				return nil, clipprune.Errorf(clipprune.EINVALID, "unexpected %s node", nodeTypeName(v.Type))
			}
			out = append(out, v)
		case *goquery.Selection:
			if v == nil {
				continue
			}
			nodes, err := ToNodes(v.Nodes)
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)
		default:
			return nil, clipprune.Errorf(clipprune.EINVALID, "unexpected argument of type %T", t)
		}
	}
	return out, nil
}

func nodeTypeName(t html.NodeType) string {
	switch t {
	case html.ErrorNode:
		return "error"
	case html.TextNode:
		return "text"
	case html.DocumentNode:
		return "document"
	case html.ElementNode:
		return "element"
	case html.CommentNode:
		return "comment"
	case html.DoctypeNode:
		return "doctype"
	case html.RawNode:
		return "raw"
	}
	return "unknown"
}

func isElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Children returns a snapshot of the children of n.
func Children(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Contains reports whether b is a or one of its descendants.
func Contains(a, b *html.Node) bool {
	if a == nil {
		return false
	}
	for cur := b; cur != nil; cur = cur.Parent {
		if cur == a {
			return true
		}
	}
	return false
}
