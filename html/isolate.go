package html

import (
	"github.com/fwojciec/clipprune"
	"golang.org/x/net/html"
)

// Isolate removes every sibling of target so it becomes the only child of
// its parent. target is a node or a collection holding exactly one node.
// Isolating <body> or a node without an element parent does nothing.
func Isolate(target any) error {
	n, err := single("isolate", target, false)
	if err != nil {
		return err
	}
	if isRoot(n) {
		return nil
	}
	if err := RemoveBefore(n); err != nil {
		return err
	}
	return RemoveAfter(n)
}

// IsolateRecursively isolates target, then its parent, and so on up to
// <body>, leaving a single path from <body> down to target. A collection is
// accepted when it holds exactly one node other than <body>. The target must
// be inside the body; otherwise nothing is removed and the error is
// ESTRUCTURE.
func IsolateRecursively(target any) error {
	n, err := single("isolate recursively", target, true)
	if err != nil {
		return err
	}
	if !insideBody(n) {
		return clipprune.Errorf(clipprune.ESTRUCTURE, "isolate recursively: <%s> is not inside the document body", n.Data)
	}
	for cur := n; !isElement(cur, "body"); cur = cur.Parent {
		if err := Isolate(cur); err != nil {
			return err
		}
	}
	return nil
}

func single(op string, target any, skipBody bool) (*html.Node, error) {
	if target == nil {
		return nil, clipprune.Errorf(clipprune.EINVALID, "%s: target is nil", op)
	}
	if n, ok := target.(*html.Node); ok {
		if n == nil {
			return nil, clipprune.Errorf(clipprune.EINVALID, "%s: target is nil", op)
		}
		if !IsTypicalNode(n) {
			return nil, clipprune.Errorf(clipprune.EINVALID, "%s: unexpected %s node", op, nodeTypeName(n.Type))
		}
		return n, nil
	}
	nodes, err := ToNodes(target)
	if err != nil {
		return nil, err
	}
	if skipBody {
		kept := nodes[:0:0]
		for _, n := range nodes {
			if !isElement(n, "body") {
				kept = append(kept, n)
			}
		}
		nodes = kept
	}
	if len(nodes) != 1 {
		return nil, clipprune.Errorf(clipprune.EINVALID, "%s: expected exactly one node, got %d", op, len(nodes))
	}
	return nodes[0], nil
}

// isRoot reports whether n is where isolation stops.
func isRoot(n *html.Node) bool {
	return isElement(n, "body") || n.Parent == nil || n.Parent.Type != html.ElementNode
}

func insideBody(n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if isElement(cur, "body") {
			return true
		}
	}
	return false
}
