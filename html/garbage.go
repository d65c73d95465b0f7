package html

import (
	"strings"
	"unicode"

	"github.com/fwojciec/clipprune"
	"golang.org/x/net/html"
)

// textForbidden lists the containers that never hold freestanding text.
var textForbidden = map[string]bool{
	"table":    true,
	"colgroup": true,
	"thead":    true,
	"tfoot":    true,
	"tbody":    true,
	"tr":       true,
	"ul":       true,
	"ol":       true,
	"dl":       true,
	"head":     true,
	"select":   true,
	"optgroup": true,
	"hgroup":   true,
}

// IsWhitespace reports whether s contains only white space.
func IsWhitespace(s string) bool {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	}) == ""
}

// IsGarbage reports whether n can be removed without losing content.
//
// Comments are always garbage. Text directly inside a container that never
// holds freestanding text is garbage when it is white space; any other text
// there is an ESTRUCTURE error. Remaining text nodes are garbage only when
// structural is set, that is when the caller treats text between element
// children as layout noise. Elements are never garbage.
func IsGarbage(n *html.Node, structural bool) (bool, error) {
	if n == nil {
		return false, nil
	}
	switch n.Type {
	case html.CommentNode:
		return true, nil
	case html.TextNode:
		if p := n.Parent; p != nil && p.Type == html.ElementNode && textForbidden[p.Data] {
			if !IsWhitespace(n.Data) {
				return false, clipprune.Errorf(clipprune.ESTRUCTURE, "invalid HTML: text %q inside <%s>", truncate(n.Data, 40), p.Data)
			}
			return true, nil
		}
		return structural, nil
	}
	return false, nil
}

// RemoveGarbage removes the direct children of element that are garbage.
func RemoveGarbage(element *html.Node, structural bool) error {
	if element == nil {
		return nil
	}
	if element.Type != html.ElementNode {
		return clipprune.Errorf(clipprune.EINVALID, "remove garbage: unexpected %s node", nodeTypeName(element.Type))
	}
	var garbage []*html.Node
	for _, c := range Children(element) {
		ok, err := IsGarbage(c, structural)
		if err != nil {
			return err
		}
		if ok {
			garbage = append(garbage, c)
		}
	}
	for _, c := range garbage {
		element.RemoveChild(c)
	}
	return nil
}

// RemoveGarbageRecursively applies RemoveGarbage depth-first to element and
// every element below it, without structural text removal.
func RemoveGarbageRecursively(element *html.Node) error {
	if element == nil || element.Type != html.ElementNode {
		return nil
	}
	if err := RemoveGarbage(element, false); err != nil {
		return err
	}
	for _, c := range Children(element) {
		if err := RemoveGarbageRecursively(c); err != nil {
			return err
		}
	}
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
