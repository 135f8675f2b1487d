package checker

import (
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/geoready/internal/model"
)

// ExtractSchemaTypes parses every JSON-LD block on the page and returns
// the flat list of declared @type names, in document order. Duplicates
// are kept; the schema checks only test membership, so they are
// harmless, and preserving them keeps extraction a pure flatten.
//
// A block that fails to parse is logged at debug level and skipped;
// one broken script tag must not hide the valid blocks around it.
func ExtractSchemaTypes(page *model.Page) []string {
	var types []string

	page.Doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			slog.Debug("skipping unparseable JSON-LD block",
				"url", page.URL.String(),
				"error", err,
			)
			return
		}
		types = append(types, typesFromPayload(payload)...)
	})

	return types
}

// typesFromPayload extracts @type names from one decoded JSON-LD
// payload. The payload is a single object, a top-level array, or an
// object wrapping a @graph array; all are normalized to a list of
// objects before extraction.
func typesFromPayload(payload any) []string {
	var objects []any
	switch v := payload.(type) {
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			objects = graph
		} else {
			objects = []any{v}
		}
	case []any:
		objects = v
	default:
		return nil
	}

	var types []string
	for _, obj := range objects {
		m, ok := obj.(map[string]any)
		if !ok {
			continue
		}
		// @type is a single string or a list of strings; flatten one level.
		switch t := m["@type"].(type) {
		case string:
			types = append(types, t)
		case []any:
			for _, item := range t {
				if s, ok := item.(string); ok {
					types = append(types, s)
				}
			}
		}
	}
	return types
}

// checkSchemaFound passes when any structured data is declared.
func checkSchemaFound(s *pageScan) model.CheckResult {
	if len(s.schemaTypes) > 0 {
		return pass()
	}
	return fail("No structured data found.")
}

// checkArticleOrOrgSchema passes when Article or Organization schema
// is declared, the baseline entity types engines expect.
func checkArticleOrOrgSchema(s *pageScan) model.CheckResult {
	if slices.Contains(s.schemaTypes, "Article") || slices.Contains(s.schemaTypes, "Organization") {
		return pass()
	}
	return fail("Missing essential Article or Organization schema.")
}

// checkFAQOrHowToSchema passes when FAQPage or HowTo schema is
// declared. These map directly onto answer-engine result formats.
func checkFAQOrHowToSchema(s *pageScan) model.CheckResult {
	if slices.Contains(s.schemaTypes, "FAQPage") || slices.Contains(s.schemaTypes, "HowTo") {
		return pass()
	}
	return fail("Missing high-value FAQ or How-To schema.")
}
