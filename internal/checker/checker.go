package checker

import (
	"strings"

	"github.com/nao1215/geoready/internal/model"
)

// pageScan carries per-page state shared by the checks: the page itself
// plus derived values that several checks need, computed exactly once.
type pageScan struct {
	// page is the parsed page under test.
	page *model.Page

	// bodyText is the page's concatenated body text.
	bodyText string

	// lowerText is bodyText lower-cased, for case-insensitive matching.
	lowerText string

	// schemaTypes is the flat list of declared structured-data types.
	schemaTypes []string
}

// checkFunc evaluates one check against a scanned page.
type checkFunc func(*pageScan) model.CheckResult

// battery is the canonical check battery in evaluation order.
// The order and length must match model.AllCheckNames; a test enforces
// this so the invariant cannot drift.
var battery = []struct {
	name model.CheckName
	run  checkFunc
}{
	{model.CheckTitleTag, checkTitleTag},
	{model.CheckMetaDescription, checkMetaDescription},
	{model.CheckH1Heading, checkH1Heading},
	{model.CheckViewport, checkViewport},
	{model.CheckInternalLinking, checkInternalLinking},
	{model.CheckImageAltText, checkImageAltText},
	{model.CheckConversationalTone, checkConversationalTone},
	{model.CheckClearStructure, checkClearStructure},
	{model.CheckReadability, checkReadability},
	{model.CheckUniqueData, checkUniqueData},
	{model.CheckAuthorByline, checkAuthorByline},
	{model.CheckFirstHandExperience, checkFirstHandExperience},
	{model.CheckContentFreshness, checkContentFreshness},
	{model.CheckContactInformation, checkContactInformation},
	{model.CheckOutboundLinks, checkOutboundLinks},
	{model.CheckCitedSources, checkCitedSources},
	{model.CheckSchemaFound, checkSchemaFound},
	{model.CheckArticleOrOrgSchema, checkArticleOrOrgSchema},
	{model.CheckFAQOrHowToSchema, checkFAQOrHowToSchema},
}

// Run evaluates the full check battery against the page.
// It always returns exactly model.CheckCount results in canonical
// order, for any parseable document including an empty one.
func Run(page *model.Page) []model.CheckResult {
	text := page.BodyText()
	scan := &pageScan{
		page:        page,
		bodyText:    text,
		lowerText:   strings.ToLower(text),
		schemaTypes: ExtractSchemaTypes(page),
	}

	results := make([]model.CheckResult, 0, len(battery))
	for _, c := range battery {
		r := c.run(scan)
		r.Name = c.name
		results = append(results, r)
	}
	return results
}

// pass builds an unnamed passing result; Run fills in the name.
func pass() model.CheckResult {
	return model.CheckResult{Passed: true, Details: model.PassDetails}
}

// fail builds an unnamed failing result; Run fills in the name.
func fail(details string) model.CheckResult {
	return model.CheckResult{Passed: false, Details: details}
}
