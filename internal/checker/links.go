package checker

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/geoready/internal/model"
)

// Link-graph checks. All hostname comparisons go through
// model.Page.ResolveHref, so malformed hrefs are silently excluded
// from every count rather than raising errors.

// minInternalLinks is the exclusive lower bound on same-host links.
const minInternalLinks = 2

// countLinkHosts tallies anchors by destination: same hostname as the
// page versus a different, non-empty hostname. Hrefs are resolved
// against the page's own URL, not the crawl start URL.
func countLinkHosts(s *pageScan) (internal, external int) {
	host := s.page.Hostname()
	s.page.Doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		u, ok := s.page.ResolveHref(href)
		if !ok {
			return
		}
		switch {
		case strings.EqualFold(u.Hostname(), host):
			internal++
		case u.Hostname() != "":
			external++
		}
	})
	return internal, external
}

// checkInternalLinking passes when more than minInternalLinks anchors
// point at the page's own hostname.
func checkInternalLinking(s *pageScan) model.CheckResult {
	internal, _ := countLinkHosts(s)
	if internal > minInternalLinks {
		return pass()
	}
	return fail(fmt.Sprintf("Found only %d internal links (recommend > %d).",
		internal, minInternalLinks))
}

// checkOutboundLinks passes when at least one anchor resolves to a
// different hostname.
func checkOutboundLinks(s *pageScan) model.CheckResult {
	_, external := countLinkHosts(s)
	if external > 0 {
		return pass()
	}
	return fail("No links to external websites found.")
}

// checkAuthorByline passes when a link to an author bio page exists,
// identified by an "author/" path fragment or rel="author".
func checkAuthorByline(s *pageScan) model.CheckResult {
	if s.page.Doc.Find(`a[href*="author/"], a[rel="author"]`).Length() > 0 {
		return pass()
	}
	return fail("No link to an author bio page found.")
}

// checkContactInformation passes when a link to a contact or about
// page exists.
func checkContactInformation(s *pageScan) model.CheckResult {
	if s.page.Doc.Find(`a[href*="contact"], a[href*="about"]`).Length() > 0 {
		return pass()
	}
	return fail("No link to a Contact or About page found.")
}

// checkCitedSources passes when the body carries explicit citation
// phrasing, or when a paragraph contains a link to another site --
// the shape of an inline source reference.
func checkCitedSources(s *pageScan) model.CheckResult {
	if containsAny(s.lowerText, citationPhrases) {
		return pass()
	}

	host := s.page.Hostname()
	cited := false
	s.page.Doc.Find("p a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		u, ok := s.page.ResolveHref(href)
		if !ok {
			return true
		}
		if u.Hostname() != "" && !strings.EqualFold(u.Hostname(), host) {
			cited = true
			return false
		}
		return true
	})
	if cited {
		return pass()
	}

	return fail("No cited sources or contextual outbound links found in paragraphs.")
}
