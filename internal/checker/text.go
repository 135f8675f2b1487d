package checker

import (
	"regexp"
	"strings"
)

// Text-analysis primitives shared by the content checks.
// All matching is ASCII-oriented on purpose: the heuristics target
// English-language phrasing and a best-effort token count is all the
// readability ratio needs.
var (
	// wordRe tokenizes body text into word-like runs.
	wordRe = regexp.MustCompile(`[A-Za-z0-9']+`)

	// sentenceRe matches sentence-terminator groups. A run like "?!"
	// counts as one sentence boundary, not two.
	sentenceRe = regexp.MustCompile(`[.!?]+`)

	// secondPersonRe matches whole-word "you"/"your", case-insensitive.
	secondPersonRe = regexp.MustCompile(`(?i)\b(you|your)\b`)
)

// questionWords are the heading openers that signal question-style
// content. Headings are matched after trimming and lower-casing.
var questionWords = []string{
	"what", "how", "why", "when", "where", "is", "can",
	"do", "are", "which", "who", "does", "should",
}

// researchPhrases signal original research or first-party data.
var researchPhrases = []string{
	"our data", "our research", "we surveyed", "according to our study",
	"we analyzed", "our findings show", "in our analysis",
}

// experiencePhrases signal first-hand experience with the subject.
var experiencePhrases = []string{
	"in our test", "hands-on", "my experience", "we visited",
	"i found that", "our team reviewed", "we tested", "firsthand",
	"i personally", "from my experience",
}

// citationPhrases signal explicitly attributed sources.
var citationPhrases = []string{"source:", "according to:", "citation:"}

// visualizationHosts are iframe source fragments that identify embedded
// data visualizations.
var visualizationHosts = []string{
	"tableau", "datawrapper", "sheets.google.com", "fusiontables.google.com",
}

// containsAny reports whether the lower-cased haystack contains any of
// the given lower-cased phrases.
func containsAny(lowerText string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lowerText, p) {
			return true
		}
	}
	return false
}

// startsWithAny reports whether the string starts with any of the
// given prefixes.
func startsWithAny(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// wordCount counts word tokens in the text.
func wordCount(text string) int {
	return len(wordRe.FindAllString(text, -1))
}

// sentenceCount counts sentence-terminator groups in the text.
func sentenceCount(text string) int {
	return len(sentenceRe.FindAllString(text, -1))
}

// secondPersonCount counts whole-word uses of "you" and "your".
func secondPersonCount(text string) int {
	return len(secondPersonRe.FindAllString(text, -1))
}
