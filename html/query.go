package html

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/clipprune"
	"golang.org/x/net/html"
)

// Body returns the <body> element of doc, or nil.
func Body(doc *html.Node) *html.Node {
	return firstElement(doc, "body")
}

// Head returns the <head> element of doc, or nil.
func Head(doc *html.Node) *html.Node {
	return firstElement(doc, "head")
}

func firstElement(root *html.Node, tag string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if isElement(n, tag) {
			found = n
			return false
		}
		return true
	})
	return found
}

// walk visits root and its descendants in document order until visit returns false.
func walk(root *html.Node, visit func(*html.Node) bool) bool {
	if root == nil {
		return true
	}
	if !visit(root) {
		return false
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// ElementByID returns the first element below root whose id is id, or nil.
func ElementByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if v, ok := Attr(n, "id"); ok && v == id {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

// ElementsByClass returns the elements below root carrying every class in
// the space separated list classes, in document order.
func ElementsByClass(root *html.Node, classes string) []*html.Node {
	want := strings.Fields(classes)
	var out []*html.Node
	walk(root, func(n *html.Node) bool {
		if n != root && n.Type == html.ElementNode && hasAllClasses(n, want) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// ElementsByTag returns the elements below root with the tag name, in document order.
func ElementsByTag(root *html.Node, tag string) []*html.Node {
	tag = strings.ToLower(tag)
	var out []*html.Node
	walk(root, func(n *html.Node) bool {
		if n != root && isElement(n, tag) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// QueryAll returns the elements below root matching the CSS selector.
func QueryAll(root *html.Node, selector string) ([]*html.Node, error) {
	sel, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, clipprune.Errorf(clipprune.EINVALID, "invalid selector %q: %v", selector, err)
	}
	return cascadia.QueryAll(root, sel), nil
}

// QueryOne returns the only element below root matching the CSS selector.
// No match or several matches is an ESTRUCTURE error.
func QueryOne(root *html.Node, selector string) (*html.Node, error) {
	nodes, err := QueryAll(root, selector)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, clipprune.Errorf(clipprune.ESTRUCTURE, "expected one element for %q, found %d", selector, len(nodes))
	}
	return nodes[0], nil
}

// Attr returns the value of the attribute key of n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the attribute key of n, adding it when missing.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether n carries the class.
func HasClass(n *html.Node, class string) bool {
	return hasAllClasses(n, []string{class})
}

func hasAllClasses(n *html.Node, want []string) bool {
	if len(want) == 0 {
		return false
	}
	v, ok := Attr(n, "class")
	if !ok {
		return false
	}
	have := strings.Fields(v)
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Text returns the concatenated text below n.
func Text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// ElementChildren returns the element children of n.
func ElementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}
