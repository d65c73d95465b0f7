package clipprune

import "golang.org/x/net/html"

// ComputedStyle answers rendering questions about the elements of one document.
type ComputedStyle interface {
	// Hidden reports whether the element computes to display:none or
	// visibility:hidden.
	Hidden(n *html.Node) bool
}

// StyleResolver builds a ComputedStyle for a document.
type StyleResolver interface {
	Resolve(doc *html.Node) (ComputedStyle, error)
}
