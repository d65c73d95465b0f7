package mock

import "github.com/fwojciec/clipprune"

var _ clipprune.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of clipprune.MetadataExtractor.
type MetadataExtractor struct {
	ExtractFn func(html, pageURL string) (*clipprune.Metadata, error)
}

func (e *MetadataExtractor) Extract(html, pageURL string) (*clipprune.Metadata, error) {
	return e.ExtractFn(html, pageURL)
}
