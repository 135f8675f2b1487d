package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/geoready/internal/model"
)

// menuTiers are the navigation selectors consulted in descending
// specificity order. The first tier that matches at least one anchor
// wins; lower tiers are not consulted once a tier produces matches.
// This keeps a clear primary menu from being diluted by unrelated
// navigation widgets (social icon bars, footer sitemaps) on pages
// that have both.
var menuTiers = []string{
	`nav#main-nav a[href], nav#primary-navigation a[href], #main-navigation a[href], .main-navigation a[href], nav.main-nav a[href], nav.primary-nav a[href]`,
	`header nav a[href], header a[href]`,
	`[role="navigation"] a[href]`,
	`nav a[href]`,
}

// ExtractMenuLinks returns the deduplicated same-origin URLs found in
// the page's primary navigation, in first-discovery order. URLs whose
// normalized form appears in seen are excluded; seen is not modified.
//
// Fragment identifiers are stripped before comparison: two URLs that
// differ only by fragment are the same page. Malformed hrefs are
// skipped silently.
func ExtractMenuLinks(page *model.Page, seen map[string]bool) []string {
	var anchors *goquery.Selection
	for _, tier := range menuTiers {
		sel := page.Doc.Find(tier)
		if sel.Length() > 0 {
			anchors = sel
			break
		}
	}
	if anchors == nil {
		return nil
	}

	var links []string
	local := make(map[string]bool)
	anchors.Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		u, ok := page.ResolveHref(href)
		if !ok {
			return
		}
		if !page.SameOrigin(u) {
			return
		}

		key := NormalizeURL(u.String())
		if seen[key] || local[key] {
			return
		}
		local[key] = true
		links = append(links, u.String())
	})

	return links
}

// NormalizeURL normalizes a URL for deduplication: fragments dropped,
// scheme and host lower-cased, and the empty path treated as "/" so
// "http://a.com" and "http://a.com/" collapse to the same page.
// Unparseable input is returned unchanged; it still deduplicates
// against itself.
func NormalizeURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}

	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}
