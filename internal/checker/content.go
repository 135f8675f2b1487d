package checker

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/geoready/internal/model"
)

// Content-quality heuristics: tone, structure, readability, and the
// freshness/originality signals that generative engines weight.

// conversationalThreshold is the number of whole-word "you"/"your"
// occurrences the body must exceed to pass on pronoun count alone.
const conversationalThreshold = 5

// checkConversationalTone passes when subheadings open with question
// words, or failing that, when the body addresses the reader directly
// more than conversationalThreshold times.
func checkConversationalTone(s *pageScan) model.CheckResult {
	questionHeading := false
	s.page.Doc.Find("h2, h3").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		heading := strings.ToLower(strings.TrimSpace(sel.Text()))
		if startsWithAny(heading, questionWords) {
			questionHeading = true
			return false
		}
		return true
	})
	if questionHeading {
		return pass()
	}

	pronouns := secondPersonCount(s.bodyText)
	if pronouns > conversationalThreshold {
		return pass()
	}

	return fail(fmt.Sprintf(
		"No question-style headings and only %d uses of \"you\"/\"your\" (need more than %d).",
		pronouns, conversationalThreshold))
}

// maxWordsPerSentence is the exclusive upper bound on average sentence
// length. Above it, answer engines struggle to lift clean excerpts.
const maxWordsPerSentence = 25.0

// checkReadability passes when the average words-per-sentence ratio is
// strictly between 0 and maxWordsPerSentence. A page with no detected
// sentences or words yields a ratio of 0 and fails; there is no prose
// to read.
func checkReadability(s *pageScan) model.CheckResult {
	words := wordCount(s.bodyText)
	sentences := sentenceCount(s.bodyText)

	avg := 0.0
	if sentences > 0 {
		avg = float64(words) / float64(sentences)
	}

	if avg > 0 && avg < maxWordsPerSentence {
		return pass()
	}
	return fail(fmt.Sprintf("Average sentence length is %.1f words (target below %.0f).",
		avg, maxWordsPerSentence))
}

// checkUniqueData passes when the page shows any original-data signal:
// research phrasing, a data table, or an embedded visualization from a
// known charting host.
func checkUniqueData(s *pageScan) model.CheckResult {
	if containsAny(s.lowerText, researchPhrases) {
		return pass()
	}
	if s.page.Doc.Find("table").Length() > 0 {
		return pass()
	}

	embedded := false
	s.page.Doc.Find("iframe[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, _ := sel.Attr("src")
		if containsAny(strings.ToLower(src), visualizationHosts) {
			embedded = true
			return false
		}
		return true
	})
	if embedded {
		return pass()
	}

	return fail("No original research phrases, data tables, or embedded visualizations found.")
}

// checkFirstHandExperience passes when the body contains phrasing that
// signals direct experience with the subject.
func checkFirstHandExperience(s *pageScan) model.CheckResult {
	if containsAny(s.lowerText, experiencePhrases) {
		return pass()
	}
	return fail("No phrases indicating first-hand experience found.")
}

// checkContentFreshness passes when the body mentions a publish or
// update date, or a meta tag declares a time-related property
// (article:published_time and friends).
func checkContentFreshness(s *pageScan) model.CheckResult {
	if strings.Contains(s.lowerText, "updated") || strings.Contains(s.lowerText, "published") {
		return pass()
	}
	if s.page.Doc.Find(`meta[property*="time"]`).Length() > 0 {
		return pass()
	}
	return fail("No published or last-updated date found.")
}
