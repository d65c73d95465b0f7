package goquery

import (
	"regexp"

	"github.com/fwojciec/clipprune"
)

// CanonicalRules returns the URL canonicalization entries. They run before
// the site rules so every site rule only has to recognize canonical URLs.
func CanonicalRules() []clipprune.Rule {
	return []clipprune.Rule{
		&CanonicalRule{
			Site:    "WIRED.jp",
			Pattern: regexp.MustCompile(`^(https?://wired\.jp/\d{4}/\d\d/\d\d/[-\w]+/)(.+)$`),
			Rewrite: func(m []string) (string, error) {
				if m[2][0] != '?' {
					return "", clipprune.Errorf(clipprune.ESTRUCTURE, "unexpected URL suffix %q", m[2])
				}
				return m[1], nil
			},
		},
		&CanonicalRule{
			Site:    "honto product id",
			Pattern: regexp.MustCompile(`^(https://honto\.jp/netstore/pd-book)\.html\?prdid=(\d+)$`),
			Rewrite: func(m []string) (string, error) {
				return m[1] + "_" + m[2] + ".html", nil
			},
		},
		&CanonicalRule{
			Site:    "honto",
			Pattern: regexp.MustCompile(`^(https?://honto\.jp/\w+/[-\w]+\.html)\?.*$`),
			Rewrite: prefix,
		},
		&CanonicalRule{
			Site:    "HuffPost Japan",
			Pattern: regexp.MustCompile(`^(https?://www\.huffingtonpost\.jp/\d{4}/\d\d/\d\d/\w+\.html)\?.*$`),
			Rewrite: prefix,
		},
		&CanonicalRule{
			Site:    "CNET Japan",
			Pattern: regexp.MustCompile(`^(https?://japan\.cnet\.com/[^/]+/[^/]+/\d+/)\?`),
			Rewrite: prefix,
		},
		&CanonicalRule{
			Site:    "HPCwire",
			Pattern: regexp.MustCompile(`^(https?://www\.hpcwire\.com/hpcwire/20\d\d-\d\d-\d\d/[-a-zA-Z0-9_:.]+\.html)\?`),
			Rewrite: prefix,
		},
		&CanonicalRule{
			Site:    "ITmedia blogs",
			Pattern: regexp.MustCompile(`^(https?://blogs\.itmedia\.co\.jp/[-a-zA-Z0-9_]+/\d+/\d+/[-a-zA-Z0-9_]+\.html)\?`),
			Rewrite: prefix,
		},
		&CanonicalRule{
			Site:    "MOONGIFT",
			Pattern: regexp.MustCompile(`^(https?://)(www\.)(moongift\.jp)(/[^?]+)(\?.+)?$`),
			Rewrite: func(m []string) (string, error) {
				return m[1] + m[3] + m[4], nil
			},
		},
		&CanonicalRule{
			Site:    "Nikkei",
			Pattern: regexp.MustCompile(`^(https?://www\.nikkei\.com/news)(/(headline|latest))?/(related-)?(article/g=[0-9A-Z]+)(;)?`),
			Rewrite: func(m []string) (string, error) {
				if m[2] == "" && m[4] == "" && m[6] == "" {
					return "", nil
				}
				return m[1] + "/" + m[5], nil
			},
		},
		&CanonicalRule{
			Site:    "Amazon.co.jp",
			Pattern: regexp.MustCompile(`^(https?://www\.amazon\.co\.jp)(/[^?]*)?(/([0-9A-Z]{8,}))(/[^?]*)?(\?.*)?$`),
			Rewrite: func(m []string) (string, error) {
				if m[2] == "/dp" && m[5] == "" && m[6] == "" {
					return "", nil
				}
				return m[1] + "/dp" + m[3], nil
			},
		},
		&CanonicalRule{
			Site:    "Amazon.co.jp product",
			Pattern: regexp.MustCompile(`^(https?://www\.amazon\.co\.jp)(/[^?]*)?(/gp/product/([0-9A-Z]+))(/[^?]*)?(\?.*)?$`),
			Rewrite: func(m []string) (string, error) {
				return m[1] + "/dp/" + m[4], nil
			},
		},
		&CanonicalRule{
			Site:    "Amazon.co.jp obidos",
			Pattern: regexp.MustCompile(`^(https?://www\.amazon\.co\.jp)(/[^?]*)?(/exec/obidos)(/[^?]*)?(/ASIN/(\d+X?))(/[^?]*)?(\?.*)?$`),
			Rewrite: func(m []string) (string, error) {
				return m[1] + "/dp/" + m[6], nil
			},
		},
		&CanonicalRule{
			Site:    "Amazon.co.jp description",
			Pattern: regexp.MustCompile(`^(https?://www\.amazon\.co\.jp)(/[^?]*)?(/dp(/product-description)?/[0-9A-Z]+)(/[^?]*)?(\?.*)?$`),
			Rewrite: func(m []string) (string, error) {
				if m[2] == "" && m[5] == "" && m[6] == "" {
					return "", nil
				}
				return m[1] + m[3], nil
			},
		},
		&CanonicalRule{
			Site:    "Impress Watch",
			Pattern: regexp.MustCompile(`^(https?://(cloud|pc|dc|akiba-pc|av|game|k-tai|internet|forest|kaden|car)\.watch\.impress\.co\.jp/[^?]+)[?].*$`),
			Rewrite: prefix,
		},
	}
}

// prefix keeps the first submatch, which is the URL without its query.
func prefix(m []string) (string, error) {
	return m[1], nil
}
