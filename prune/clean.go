package prune

import (
	"github.com/fwojciec/clipprune"
	prunehtml "github.com/fwojciec/clipprune/html"
	"golang.org/x/net/html"
)

// Clean runs the post-pass over doc in its fixed order: garbage removal,
// hidden element removal against the styles resolved for doc, removal of
// the tags elements, then event handler stripping on the body.
func Clean(doc *html.Node, styles clipprune.StyleResolver, tags []string) error {
	body := prunehtml.Body(doc)
	if body == nil {
		return clipprune.Errorf(clipprune.ESTRUCTURE, "document has no body")
	}
	if err := prunehtml.RemoveGarbageRecursively(body); err != nil {
		return err
	}

	style, err := styles.Resolve(doc)
	if err != nil {
		return err
	}
	if err := prunehtml.RemoveHiddenRecursively(prunehtml.Children(body), style); err != nil {
		return err
	}

	if err := prunehtml.RemoveElements(doc, tags...); err != nil {
		return err
	}

	_, err = prunehtml.StripEventHandlers(body)
	return err
}
