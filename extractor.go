package clipprune

import "time"

// Metadata describes the article a clip was taken from.
type Metadata struct {
	Title     string
	Author    string
	Site      string
	Excerpt   string
	Language  string
	Published time.Time
}

// MetadataExtractor reads article metadata from the HTML of a page as it was
// loaded, before pruning.
type MetadataExtractor interface {
	// Extract returns what it could find in html. pageURL, when not empty,
	// resolves relative references. Missing fields are left empty.
	Extract(html string, pageURL string) (*Metadata, error)
}
