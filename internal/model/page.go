package model

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is a parsed HTML document bound to its canonical URL.
// It is the unit of work for the check battery: one Page per crawled
// URL, discarded once its checks have run.
//
// Design decision: We wrap goquery.Document rather than exposing raw
// golang.org/x/net/html nodes because:
//  1. The check battery and link extraction are selector-driven
//  2. goquery handles malformed real-world HTML gracefully
//  3. A single parse pass serves every consumer of the page
type Page struct {
	// URL is the parsed canonical URL of the page.
	URL *url.URL

	// Doc is the parsed document root.
	Doc *goquery.Document
}

// ParsePage parses raw HTML into a Page bound to baseURL.
// The base URL must be absolute; relative hrefs found in the document
// are resolved against it by consumers.
func ParsePage(rawHTML, baseURL string) (*Page, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	return &Page{URL: u, Doc: doc}, nil
}

// Hostname returns the page's hostname without port.
func (p *Page) Hostname() string {
	return p.URL.Hostname()
}

// BodyText returns the concatenated text content of the document body.
// Falls back to the whole document when no body element is present,
// which can happen with fragment fixtures in tests.
func (p *Page) BodyText() string {
	body := p.Doc.Find("body")
	if body.Length() == 0 {
		return p.Doc.Text()
	}
	return body.Text()
}

// ResolveHref resolves an href attribute against the page URL and
// strips any fragment identifier. It returns false for empty hrefs,
// same-page fragments, and unparseable values.
//
// Design decision: This centralizes the "malformed href is a non-match,
// never an error" policy so callers don't repeat error handling at
// every attribute read.
func (p *Page) ResolveHref(href string) (*url.URL, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return nil, false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return nil, false
	}

	resolved := p.URL.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved, true
}

// SameOrigin reports whether u shares the page's scheme, host, and port.
func (p *Page) SameOrigin(u *url.URL) bool {
	return strings.EqualFold(u.Scheme, p.URL.Scheme) &&
		strings.EqualFold(u.Host, p.URL.Host)
}
