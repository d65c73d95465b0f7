// Package bloom remembers which page URLs were already merged into a
// document, so a pager that links back to an earlier page ends the run
// instead of looping.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter is a set of page URLs. URLs differing only in fragment or in the
// case of scheme and host are the same page.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n pages with the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a page URL.
func (f *Filter) Add(pageURL string) {
	f.f.AddString(normalize(pageURL))
}

// Test reports whether the page URL might have been recorded.
// False positives are possible; false negatives are not.
func (f *Filter) Test(pageURL string) bool {
	return f.f.TestString(normalize(pageURL))
}

// TestAndAdd records the page URL and reports whether it might have been
// recorded before.
func (f *Filter) TestAndAdd(pageURL string) bool {
	return f.f.TestAndAddString(normalize(pageURL))
}

// EstimatedCount returns the approximate number of recorded pages.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

func normalize(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String()
}
