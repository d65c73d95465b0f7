package html

import (
	"github.com/fwojciec/clipprune"
	"golang.org/x/net/html"
)

// RemoveAll detaches every target from its parent.
func RemoveAll(targets ...any) error {
	nodes, err := ToNodes(targets...)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		detach(n)
	}
	return nil
}

// RemoveInner empties every target: elements lose their children and their
// src attribute, text and comment nodes lose their content.
func RemoveInner(targets ...any) error {
	nodes, err := ToNodes(targets...)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		switch n.Type {
		case html.ElementNode:
			for _, c := range Children(n) {
				n.RemoveChild(c)
			}
			if _, ok := Attr(n, "src"); ok {
				SetAttr(n, "src", "")
			}
		default:
			n.Data = ""
		}
	}
	return nil
}

// SiblingOption configures RemoveBefore and RemoveAfter.
type SiblingOption func(*siblingConfig)

type siblingConfig struct {
	offset          int
	preserveGarbage bool
}

// Offset moves the cut point n siblings away from the target before
// removing: positive values move forward in document order, negative values
// move backward. The walk stops at the first or last sibling.
func Offset(n int) SiblingOption {
	return func(c *siblingConfig) {
		c.offset = n
	}
}

// PreserveGarbage skips the garbage cleanup of the parent that normally runs
// first, so comments and whitespace count as siblings.
func PreserveGarbage() SiblingOption {
	return func(c *siblingConfig) {
		c.preserveGarbage = true
	}
}

// RemoveBefore removes every sibling preceding the cut point of each target.
func RemoveBefore(target any, opts ...SiblingOption) error {
	return removeSiblings(target, false, opts)
}

// RemoveAfter removes every sibling following the cut point of each target.
func RemoveAfter(target any, opts ...SiblingOption) error {
	return removeSiblings(target, true, opts)
}

func removeSiblings(target any, after bool, opts []SiblingOption) error {
	var cfg siblingConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	nodes, err := ToNodes(target)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		if err := removeSiblingsOf(n, after, cfg); err != nil {
			return err
		}
	}
	return nil
}

func removeSiblingsOf(n *html.Node, after bool, cfg siblingConfig) error {
	if n.Parent == nil {
		return nil
	}
	if !cfg.preserveGarbage && n.Parent.Type == html.ElementNode {
		if err := RemoveGarbage(n.Parent, false); err != nil {
			return err
		}
		// The target itself may have been garbage.
		if n.Parent == nil {
			return nil
		}
	}

	parent := n.Parent
	siblings := clipprune.Snapshot(parent.ChildNodes())
	cut := clipprune.IndexOf(siblings, n, 0) + cfg.offset
	cut = max(0, min(cut, len(siblings)-1))

	doomed := siblings[:cut]
	if after {
		doomed = siblings[cut+1:]
	}
	return clipprune.Each(doomed, func(c *html.Node) {
		parent.RemoveChild(c)
	})
}

// MoveBefore detaches the targets and inserts them, in order, as previous
// siblings of anchor.
func MoveBefore(anchor *html.Node, targets ...any) error {
	if anchor == nil || anchor.Parent == nil {
		return clipprune.Errorf(clipprune.EINVALID, "move: anchor is not attached")
	}
	nodes, err := ToNodes(targets...)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		if n == anchor {
			return clipprune.Errorf(clipprune.EINVALID, "move: anchor cannot move before itself")
		}
		detach(n)
		anchor.Parent.InsertBefore(n, anchor)
	}
	return nil
}

// RemoveElements removes every descendant element of root whose tag is one of tags.
func RemoveElements(root *html.Node, tags ...string) error {
	if root == nil {
		return nil
	}
	if root.Type != html.ElementNode && root.Type != html.DocumentNode {
		return clipprune.Errorf(clipprune.EINVALID, "remove elements: unexpected %s node", nodeTypeName(root.Type))
	}
	var found []*html.Node
	for _, tag := range tags {
		found = append(found, ElementsByTag(root, tag)...)
	}
	return RemoveAll(found)
}
