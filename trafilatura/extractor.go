// Package trafilatura reads clip metadata with go-trafilatura.
package trafilatura

import (
	"net/url"
	"strings"

	"github.com/fwojciec/clipprune"
	"github.com/markusmobius/go-trafilatura"
)

var _ clipprune.MetadataExtractor = (*Extractor)(nil)

// Extractor reads article metadata with trafilatura, falling back to
// readability and dom-distiller when trafilatura's own heuristics find no
// article.
type Extractor struct {
	// TargetLanguage, when set, rejects pages in another language.
	TargetLanguage string
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(rawHTML string, pageURL string) (*clipprune.Metadata, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, clipprune.Errorf(clipprune.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		TargetLanguage:  e.TargetLanguage,
	}
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, clipprune.WrapError(clipprune.EINVALID, err, "parse page URL")
		}
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, clipprune.WrapError(clipprune.ENOTFOUND, err, "no article metadata")
	}

	m := result.Metadata
	return &clipprune.Metadata{
		Title:     strings.TrimSpace(m.Title),
		Author:    strings.TrimSpace(m.Author),
		Site:      strings.TrimSpace(m.Sitename),
		Excerpt:   strings.TrimSpace(m.Description),
		Language:  m.Language,
		Published: m.Date,
	}, nil
}
