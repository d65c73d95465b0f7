// Package htmltomarkdown renders pruned articles as Markdown clips.
package htmltomarkdown

import (
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/clipprune"
)

var _ clipprune.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. Safe for concurrent use.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter with the commonmark and table plugins.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms a pruned body into Markdown. Links and images are made
// absolute against the scheme and host of pageURL.
func (c *Converter) Convert(html, pageURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", clipprune.Errorf(clipprune.EINVALID, "empty HTML input")
	}

	var md string
	var err error
	if pageURL == "" {
		md, err = c.conv.ConvertString(html)
	} else {
		u, perr := url.Parse(pageURL)
		if perr != nil || u.Host == "" {
			return "", clipprune.Errorf(clipprune.EINVALID, "invalid page URL %q", pageURL)
		}
		md, err = c.conv.ConvertString(html, converter.WithDomain(u.Scheme+"://"+u.Host))
	}
	if err != nil {
		return "", clipprune.WrapError(clipprune.EINTERNAL, err, "convert to markdown")
	}
	return strings.TrimSpace(md) + "\n", nil
}
