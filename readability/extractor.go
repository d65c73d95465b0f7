// Package readability reads clip metadata with go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/clipprune"
	"github.com/go-shiori/go-readability"
)

var _ clipprune.MetadataExtractor = (*Extractor)(nil)

// Extractor reads the article byline, excerpt and site name with
// readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(rawHTML string, pageURL string) (*clipprune.Metadata, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, clipprune.Errorf(clipprune.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, clipprune.WrapError(clipprune.EINVALID, err, "parse page URL")
		}
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, clipprune.WrapError(clipprune.ENOTFOUND, err, "no article metadata")
	}

	meta := &clipprune.Metadata{
		Title:    strings.TrimSpace(article.Title),
		Author:   strings.TrimSpace(article.Byline),
		Site:     strings.TrimSpace(article.SiteName),
		Excerpt:  strings.TrimSpace(article.Excerpt),
		Language: article.Language,
	}
	if article.PublishedTime != nil {
		meta.Published = *article.PublishedTime
	}
	return meta, nil
}
