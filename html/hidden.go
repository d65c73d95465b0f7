package html

import (
	"github.com/fwojciec/clipprune"
	"golang.org/x/net/html"
)

// RemoveHiddenRecursively walks the targets depth-first and detaches every
// element style reports as hidden. Children of a removed element are not
// visited; visible elements are kept and searched.
func RemoveHiddenRecursively(target any, style clipprune.ComputedStyle) error {
	if style == nil {
		return clipprune.Errorf(clipprune.EINVALID, "remove hidden: nil computed style")
	}
	nodes, err := ToNodes(target)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		removeHidden(n, style)
	}
	return nil
}

func removeHidden(n *html.Node, style clipprune.ComputedStyle) {
	if n.Type != html.ElementNode {
		return
	}
	if style.Hidden(n) {
		detach(n)
		return
	}
	for _, c := range Children(n) {
		removeHidden(c, style)
	}
}
