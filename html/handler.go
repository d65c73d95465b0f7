package html

import (
	"strings"

	"github.com/fwojciec/clipprune"
	"golang.org/x/net/html"
)

// eventNames lists the DOM events whose on<event> attributes are stripped.
// Attribute names are lower case after parsing, so the list is too.
var eventNames = map[string]bool{}

func init() {
	for _, name := range []string{
		"afterscriptexecute", "abort", "beforeunload", "beforescriptexecute",
		"blur", "change", "click", "compositionstart", "compositionupdate",
		"compositionend", "contextmenu", "copy", "dblclick", "DOMActivate",
		"DOMAttributeNameChanged", "DOMAttrModified", "DOMCharacterDataModified",
		"DOMElementNameChanged", "DOMFocusIn", "DOMFocusOut", "DOMNodeInserted",
		"DOMNodeInsertedIntoDocument", "DOMNodeRemoved", "DOMNodeRemovedFromDocument",
		"DOMSubtreeModified", "error", "focus", "focusin", "focusout", "keydown",
		"keypress", "keyup", "load", "mousedown", "mouseenter", "mouseleave",
		"mousemove", "mouseout", "mouseover", "mouseup", "paste", "resize",
		"reset", "scroll", "select", "submit", "textinput", "unload", "wheel",
	} {
		eventNames[strings.ToLower(name)] = true
	}
}

// IsEventHandlerAttr reports whether key is an on<event> attribute for a
// known DOM event.
func IsEventHandlerAttr(key string) bool {
	key = strings.ToLower(key)
	return strings.HasPrefix(key, "on") && eventNames[key[2:]]
}

// StripEventHandlers rebuilds element as a twin with the same tag and
// attributes minus event handler attributes, moves the children over with
// their handler attributes stripped too, and puts the twin in place of the
// original. It returns the twin, which is element itself when element has no
// parent to be replaced in.
func StripEventHandlers(element *html.Node) (*html.Node, error) {
	if element == nil || element.Type != html.ElementNode {
		return nil, clipprune.Errorf(clipprune.EINVALID, "strip handlers: expected an element")
	}
	for _, c := range Children(element) {
		stripDescendants(c)
	}
	if element.Parent == nil {
		element.Attr = withoutHandlers(element.Attr)
		return element, nil
	}

	twin := &html.Node{
		Type:      element.Type,
		DataAtom:  element.DataAtom,
		Data:      element.Data,
		Namespace: element.Namespace,
		Attr:      withoutHandlers(element.Attr),
	}
	for _, c := range Children(element) {
		element.RemoveChild(c)
		twin.AppendChild(c)
	}
	element.Parent.InsertBefore(twin, element)
	element.Parent.RemoveChild(element)
	return twin, nil
}

func stripDescendants(n *html.Node) {
	if n.Type != html.ElementNode {
		return
	}
	n.Attr = withoutHandlers(n.Attr)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		stripDescendants(c)
	}
}

func withoutHandlers(attrs []html.Attribute) []html.Attribute {
	out := make([]html.Attribute, 0, len(attrs))
	for _, a := range attrs {
		if a.Namespace == "" && IsEventHandlerAttr(a.Key) {
			continue
		}
		out = append(out, a)
	}
	return out
}
