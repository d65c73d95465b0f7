package html

import (
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// clipperMarkers match what known clipping bookmarklets inject into a page
// once they are running.
var clipperMarkers = cascadia.MustCompile(
	`script[src*="printwhatyoulike.com"], #ppw_widgets, #ppw_bookmarklet, [id^="ppw_"]`,
)

// ClipperActive reports whether a third-party clipping tool already took
// over doc.
func ClipperActive(doc *html.Node) bool {
	return doc != nil && cascadia.Query(doc, clipperMarkers) != nil
}
