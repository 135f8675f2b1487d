package checker

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/geoready/internal/model"
)

// Markup hygiene checks: the basic elements generative engines rely on
// to identify and summarize a page.

// checkTitleTag passes when a title element with non-empty text exists.
func checkTitleTag(s *pageScan) model.CheckResult {
	if strings.TrimSpace(s.page.Doc.Find("title").First().Text()) == "" {
		return fail("No title tag found.")
	}
	return pass()
}

// checkMetaDescription passes when a description meta tag with a
// non-empty content attribute exists.
func checkMetaDescription(s *pageScan) model.CheckResult {
	found := false
	s.page.Doc.Find(`meta[name="description"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if content, ok := sel.Attr("content"); ok && strings.TrimSpace(content) != "" {
			found = true
			return false
		}
		return true
	})

	if !found {
		return fail("No meta description tag found.")
	}
	return pass()
}

// checkH1Heading passes only when exactly one h1 element exists.
// Zero h1s leaves the main topic undeclared; several h1s dilute it.
func checkH1Heading(s *pageScan) model.CheckResult {
	n := s.page.Doc.Find("h1").Length()
	if n != 1 {
		return fail(fmt.Sprintf("Found %d h1 tags (expected 1).", n))
	}
	return pass()
}

// checkViewport passes when a viewport meta tag exists.
func checkViewport(s *pageScan) model.CheckResult {
	if s.page.Doc.Find(`meta[name="viewport"]`).Length() == 0 {
		return fail("Missing viewport meta tag.")
	}
	return pass()
}

// checkImageAltText passes when every image has non-blank alt text.
// A page with no images passes: there is nothing missing a description.
func checkImageAltText(s *pageScan) model.CheckResult {
	var offenders []string
	s.page.Doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		if alt, ok := sel.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			return
		}
		src, ok := sel.Attr("src")
		if !ok || src == "" {
			src = "(no src)"
		}
		offenders = append(offenders, src)
	})

	if len(offenders) == 0 {
		return pass()
	}

	samples := offenders
	if len(samples) > 2 {
		samples = samples[:2]
	}
	return fail(fmt.Sprintf("Found %d images without alt text (e.g., %s).",
		len(offenders), strings.Join(samples, ", ")))
}

// checkClearStructure passes when at least one list element exists.
// Lists are the cheapest structural signal answer engines can lift.
func checkClearStructure(s *pageScan) model.CheckResult {
	if s.page.Doc.Find("ul, ol").Length() == 0 {
		return fail("No bulleted or numbered lists found.")
	}
	return pass()
}
