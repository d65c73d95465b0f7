package clipprune

import "golang.org/x/net/html"

// Page is a document being pruned together with the URL it was loaded from.
// The pipeline mutates Doc in place; a redirect replaces both fields.
type Page struct {
	URL string

	// Doc is the root of the parsed document (an html.DocumentNode).
	Doc *html.Node

	// Unfolding is set by the pipeline from Options.UnfoldingMode so rules
	// can decide whether to stitch multi-page articles.
	Unfolding bool
}
