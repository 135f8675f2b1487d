package checker

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/nao1215/geoready/internal/model"
)

// mustPage parses fixture HTML bound to the given base URL.
func mustPage(t *testing.T, rawHTML, baseURL string) *model.Page {
	t.Helper()
	page, err := model.ParsePage(rawHTML, baseURL)
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return page
}

// resultFor returns the result with the given name, failing the test
// when it is absent.
func resultFor(t *testing.T, results []model.CheckResult, name model.CheckName) model.CheckResult {
	t.Helper()
	for _, r := range results {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("no result for check %q", name)
	return model.CheckResult{}
}

// TestRunCompleteness tests the fixed-shape battery contract.
func TestRunCompleteness(t *testing.T) {
	t.Parallel()

	t.Run("registry matches the canonical order", func(t *testing.T) {
		t.Parallel()

		if len(battery) != model.CheckCount {
			t.Fatalf("battery has %d checks, want %d", len(battery), model.CheckCount)
		}
		for i, name := range model.AllCheckNames() {
			if battery[i].name != name {
				t.Errorf("battery[%d] = %q, want %q", i, battery[i].name, name)
			}
		}
	})

	t.Run("empty document still yields all results", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, "", "https://example.com/")
		results := Run(page)

		if len(results) != model.CheckCount {
			t.Fatalf("expected %d results, got %d", model.CheckCount, len(results))
		}
		for i, name := range model.AllCheckNames() {
			if results[i].Name != name {
				t.Errorf("results[%d] = %q, want %q", i, results[i].Name, name)
			}
			if results[i].Details == "" {
				t.Errorf("check %q produced empty details", name)
			}
		}
	})

	t.Run("repeated runs are deterministic", func(t *testing.T) {
		t.Parallel()

		fixture := `<html><head><title>T</title></head><body>
			<h1>One</h1><p>You should test your site. Source: <a href="https://ext.example/ref">ref</a></p>
			<ul><li>a</li></ul></body></html>`

		first := Run(mustPage(t, fixture, "https://example.com/"))
		second := Run(mustPage(t, fixture, "https://example.com/"))
		if !reflect.DeepEqual(first, second) {
			t.Error("identical input produced different results")
		}
	})
}

// TestMarkupChecks tests the page-hygiene checks.
func TestMarkupChecks(t *testing.T) {
	t.Parallel()

	t.Run("empty title and missing description both fail", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><head><title></title></head><body></body></html>`, "https://example.com/")
		results := Run(page)

		title := resultFor(t, results, model.CheckTitleTag)
		if title.Passed {
			t.Error("empty title should fail")
		}
		if title.Details != "No title tag found." {
			t.Errorf("unexpected details: %q", title.Details)
		}

		meta := resultFor(t, results, model.CheckMetaDescription)
		if meta.Passed || meta.Details != "No meta description tag found." {
			t.Errorf("unexpected meta description result: %+v", meta)
		}
	})

	t.Run("populated title and description pass", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><head><title>Guide</title>
			<meta name="description" content="A useful guide."></head></html>`, "https://example.com/")
		results := Run(page)

		if r := resultFor(t, results, model.CheckTitleTag); !r.Passed {
			t.Errorf("title should pass: %+v", r)
		}
		if r := resultFor(t, results, model.CheckMetaDescription); !r.Passed {
			t.Errorf("meta description should pass: %+v", r)
		}
	})

	t.Run("exactly one h1 passes", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body><h1>Foo</h1></body></html>`, "https://example.com/")
		if r := resultFor(t, Run(page), model.CheckH1Heading); !r.Passed {
			t.Errorf("single h1 should pass: %+v", r)
		}
	})

	t.Run("two h1s fail with the exact count", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body><h1>A</h1><h1>B</h1></body></html>`, "https://example.com/")
		r := resultFor(t, Run(page), model.CheckH1Heading)
		if r.Passed {
			t.Error("two h1s should fail")
		}
		if r.Details != "Found 2 h1 tags (expected 1)." {
			t.Errorf("unexpected details: %q", r.Details)
		}
	})

	t.Run("zero h1s fail", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body></body></html>`, "https://example.com/")
		r := resultFor(t, Run(page), model.CheckH1Heading)
		if r.Passed || r.Details != "Found 0 h1 tags (expected 1)." {
			t.Errorf("unexpected result: %+v", r)
		}
	})

	t.Run("viewport meta tag", func(t *testing.T) {
		t.Parallel()

		with := mustPage(t, `<html><head><meta name="viewport" content="width=device-width"></head></html>`, "https://example.com/")
		if r := resultFor(t, Run(with), model.CheckViewport); !r.Passed {
			t.Errorf("viewport should pass: %+v", r)
		}

		without := mustPage(t, `<html><head></head></html>`, "https://example.com/")
		r := resultFor(t, Run(without), model.CheckViewport)
		if r.Passed || r.Details != "Missing viewport meta tag." {
			t.Errorf("unexpected result: %+v", r)
		}
	})

	t.Run("zero images pass alt text", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body><p>no images here</p></body></html>`, "https://example.com/")
		if r := resultFor(t, Run(page), model.CheckImageAltText); !r.Passed {
			t.Errorf("image-free page should pass: %+v", r)
		}
	})

	t.Run("missing and whitespace alt fail, listing up to two sources", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body>
			<img src="/a.png">
			<img src="/b.png" alt="   ">
			<img src="/c.png">
			<img src="/ok.png" alt="described">
		</body></html>`, "https://example.com/")

		r := resultFor(t, Run(page), model.CheckImageAltText)
		if r.Passed {
			t.Error("expected alt text failure")
		}
		if !strings.Contains(r.Details, "3 images") {
			t.Errorf("expected offender count in details: %q", r.Details)
		}
		if !strings.Contains(r.Details, "/a.png") || !strings.Contains(r.Details, "/b.png") {
			t.Errorf("expected first two offenders listed: %q", r.Details)
		}
		if strings.Contains(r.Details, "/c.png") {
			t.Errorf("details should list at most two sources: %q", r.Details)
		}
	})

	t.Run("list elements satisfy clear structure", func(t *testing.T) {
		t.Parallel()

		with := mustPage(t, `<html><body><ol><li>step</li></ol></body></html>`, "https://example.com/")
		if r := resultFor(t, Run(with), model.CheckClearStructure); !r.Passed {
			t.Errorf("ordered list should pass: %+v", r)
		}

		without := mustPage(t, `<html><body><p>prose only</p></body></html>`, "https://example.com/")
		r := resultFor(t, Run(without), model.CheckClearStructure)
		if r.Passed || r.Details != "No bulleted or numbered lists found." {
			t.Errorf("unexpected result: %+v", r)
		}
	})
}

// TestContentChecks tests the tone, readability, and signal checks.
func TestContentChecks(t *testing.T) {
	t.Parallel()

	t.Run("question heading passes conversational tone", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body><h2>How does this work?</h2></body></html>`, "https://example.com/")
		if r := resultFor(t, Run(page), model.CheckConversationalTone); !r.Passed {
			t.Errorf("question heading should pass: %+v", r)
		}
	})

	t.Run("six second-person pronouns pass, five fail", func(t *testing.T) {
		t.Parallel()

		sixBody := `<html><body><p>You and your team know you can trust your own tests on your site, you bet.</p></body></html>`
		page := mustPage(t, sixBody, "https://example.com/")
		if r := resultFor(t, Run(page), model.CheckConversationalTone); !r.Passed {
			t.Errorf("six pronouns should pass: %+v", r)
		}

		fiveBody := `<html><body><p>You and your team know you can trust your own tests on your site.</p></body></html>`
		page = mustPage(t, fiveBody, "https://example.com/")
		r := resultFor(t, Run(page), model.CheckConversationalTone)
		if r.Passed {
			t.Errorf("five pronouns must not pass (threshold is strictly greater than 5): %+v", r)
		}
		if !strings.Contains(r.Details, "5") {
			t.Errorf("details should report the pronoun count: %q", r.Details)
		}
	})

	t.Run("yourself does not count as a whole-word match", func(t *testing.T) {
		t.Parallel()

		body := `<html><body><p>` + strings.Repeat("Do it yourself. ", 10) + `</p></body></html>`
		page := mustPage(t, body, "https://example.com/")
		if r := resultFor(t, Run(page), model.CheckConversationalTone); r.Passed {
			t.Errorf("'yourself' should not count toward the pronoun threshold: %+v", r)
		}
	})

	t.Run("short sentences pass readability", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body><p>This is short. So is this. Readers like it.</p></body></html>`, "https://example.com/")
		if r := resultFor(t, Run(page), model.CheckReadability); !r.Passed {
			t.Errorf("short sentences should pass: %+v", r)
		}
	})

	t.Run("one long run-on fails readability", func(t *testing.T) {
		t.Parallel()

		words := strings.Repeat("word ", 40)
		page := mustPage(t, `<html><body><p>`+words+`.</p></body></html>`, "https://example.com/")
		r := resultFor(t, Run(page), model.CheckReadability)
		if r.Passed {
			t.Error("40-word sentence should fail")
		}
		if !strings.Contains(r.Details, "40.0") {
			t.Errorf("details should report the average to one decimal: %q", r.Details)
		}
	})

	t.Run("empty body fails readability", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body></body></html>`, "https://example.com/")
		if r := resultFor(t, Run(page), model.CheckReadability); r.Passed {
			t.Errorf("zero-content page should fail readability: %+v", r)
		}
	})

	t.Run("unique data signals", func(t *testing.T) {
		t.Parallel()

		cases := map[string]string{
			"research phrase": `<html><body><p>According to our study, results improved.</p></body></html>`,
			"data table":      `<html><body><table><tr><td>1</td></tr></table></body></html>`,
			"embedded chart":  `<html><body><iframe src="https://public.tableau.com/views/x"></iframe></body></html>`,
		}
		for name, fixture := range cases {
			page := mustPage(t, fixture, "https://example.com/")
			if r := resultFor(t, Run(page), model.CheckUniqueData); !r.Passed {
				t.Errorf("%s should pass unique data: %+v", name, r)
			}
		}

		plain := mustPage(t, `<html><body><p>nothing special</p></body></html>`, "https://example.com/")
		if r := resultFor(t, Run(plain), model.CheckUniqueData); r.Passed {
			t.Errorf("plain page should fail unique data: %+v", r)
		}
	})

	t.Run("first-hand experience phrases", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body><p>We tested the device for a week.</p></body></html>`, "https://example.com/")
		if r := resultFor(t, Run(page), model.CheckFirstHandExperience); !r.Passed {
			t.Errorf("experience phrase should pass: %+v", r)
		}

		plain := mustPage(t, `<html><body><p>The device has specs.</p></body></html>`, "https://example.com/")
		r := resultFor(t, Run(plain), model.CheckFirstHandExperience)
		if r.Passed || r.Details != "No phrases indicating first-hand experience found." {
			t.Errorf("unexpected result: %+v", r)
		}
	})

	t.Run("freshness via body text or time meta", func(t *testing.T) {
		t.Parallel()

		byText := mustPage(t, `<html><body><p>Updated March 2025.</p></body></html>`, "https://example.com/")
		if r := resultFor(t, Run(byText), model.CheckContentFreshness); !r.Passed {
			t.Errorf("'updated' in body should pass: %+v", r)
		}

		byMeta := mustPage(t, `<html><head><meta property="article:published_time" content="2025-01-01"></head></html>`, "https://example.com/")
		if r := resultFor(t, Run(byMeta), model.CheckContentFreshness); !r.Passed {
			t.Errorf("time meta property should pass: %+v", r)
		}

		stale := mustPage(t, `<html><body><p>timeless prose</p></body></html>`, "https://example.com/")
		r := resultFor(t, Run(stale), model.CheckContentFreshness)
		if r.Passed || r.Details != "No published or last-updated date found." {
			t.Errorf("unexpected result: %+v", r)
		}
	})
}

// TestLinkChecks tests the link-graph checks.
func TestLinkChecks(t *testing.T) {
	t.Parallel()

	linkPage := func(t *testing.T, n int) *model.Page {
		t.Helper()
		var sb strings.Builder
		sb.WriteString(`<html><body>`)
		for i := 0; i < n; i++ {
			fmt.Fprintf(&sb, `<a href="/page-%d">p</a>`, i)
		}
		sb.WriteString(`</body></html>`)
		return mustPage(t, sb.String(), "https://example.com/")
	}

	t.Run("exactly two internal links fail, three pass", func(t *testing.T) {
		t.Parallel()

		r := resultFor(t, Run(linkPage(t, 2)), model.CheckInternalLinking)
		if r.Passed {
			t.Error("two internal links must fail (threshold is strictly greater than 2)")
		}
		if r.Details != "Found only 2 internal links (recommend > 2)." {
			t.Errorf("unexpected details: %q", r.Details)
		}

		if r := resultFor(t, Run(linkPage(t, 3)), model.CheckInternalLinking); !r.Passed {
			t.Errorf("three internal links should pass: %+v", r)
		}
	})

	t.Run("malformed hrefs are excluded from counts", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body>
			<a href="http://%zz">bad</a>
			<a href="/one">1</a><a href="/two">2</a><a href="/three">3</a>
		</body></html>`, "https://example.com/")

		if r := resultFor(t, Run(page), model.CheckInternalLinking); !r.Passed {
			t.Errorf("malformed href should not break counting: %+v", r)
		}
	})

	t.Run("outbound links", func(t *testing.T) {
		t.Parallel()

		with := mustPage(t, `<html><body><a href="https://other.example/">ext</a></body></html>`, "https://example.com/")
		if r := resultFor(t, Run(with), model.CheckOutboundLinks); !r.Passed {
			t.Errorf("external link should pass: %+v", r)
		}

		without := mustPage(t, `<html><body><a href="/local">int</a></body></html>`, "https://example.com/")
		r := resultFor(t, Run(without), model.CheckOutboundLinks)
		if r.Passed || r.Details != "No links to external websites found." {
			t.Errorf("unexpected result: %+v", r)
		}
	})

	t.Run("author byline via path or rel", func(t *testing.T) {
		t.Parallel()

		byPath := mustPage(t, `<html><body><a href="/author/jane">Jane</a></body></html>`, "https://example.com/")
		if r := resultFor(t, Run(byPath), model.CheckAuthorByline); !r.Passed {
			t.Errorf("author/ path should pass: %+v", r)
		}

		byRel := mustPage(t, `<html><body><a rel="author" href="/about-jane">Jane</a></body></html>`, "https://example.com/")
		if r := resultFor(t, Run(byRel), model.CheckAuthorByline); !r.Passed {
			t.Errorf("rel=author should pass: %+v", r)
		}

		none := mustPage(t, `<html><body><a href="/posts">posts</a></body></html>`, "https://example.com/")
		r := resultFor(t, Run(none), model.CheckAuthorByline)
		if r.Passed || r.Details != "No link to an author bio page found." {
			t.Errorf("unexpected result: %+v", r)
		}
	})

	t.Run("contact information via contact or about href", func(t *testing.T) {
		t.Parallel()

		page := mustPage(t, `<html><body><a href="/about-us">About</a></body></html>`, "https://example.com/")
		if r := resultFor(t, Run(page), model.CheckContactInformation); !r.Passed {
			t.Errorf("about link should pass: %+v", r)
		}

		none := mustPage(t, `<html><body><a href="/pricing">Pricing</a></body></html>`, "https://example.com/")
		r := resultFor(t, Run(none), model.CheckContactInformation)
		if r.Passed || r.Details != "No link to a Contact or About page found." {
			t.Errorf("unexpected result: %+v", r)
		}
	})

	t.Run("cited sources via phrase or in-paragraph external link", func(t *testing.T) {
		t.Parallel()

		byPhrase := mustPage(t, `<html><body><p>Source: the 2024 census.</p></body></html>`, "https://example.com/")
		if r := resultFor(t, Run(byPhrase), model.CheckCitedSources); !r.Passed {
			t.Errorf("citation phrase should pass: %+v", r)
		}

		byLink := mustPage(t, `<html><body><p>See <a href="https://journal.example/paper">the paper</a>.</p></body></html>`, "https://example.com/")
		if r := resultFor(t, Run(byLink), model.CheckCitedSources); !r.Passed {
			t.Errorf("in-paragraph external link should pass: %+v", r)
		}

		// External link outside any paragraph does not count.
		outside := mustPage(t, `<html><body><nav><a href="https://other.example/">ext</a></nav></body></html>`, "https://example.com/")
		r := resultFor(t, Run(outside), model.CheckCitedSources)
		if r.Passed {
			t.Errorf("nav-only external link should not satisfy cited sources: %+v", r)
		}
		if r.Details != "No cited sources or contextual outbound links found in paragraphs." {
			t.Errorf("unexpected details: %q", r.Details)
		}
	})
}
