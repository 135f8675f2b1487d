package model

// CheckName identifies one of the fixed heuristic checks run against
// every crawled page.
//
// Design decision: We use a typed string constant set rather than iota
// integers because:
//  1. Check names appear verbatim in reports and JSON output
//  2. String keys keep the aggregate maps readable when serialized
//  3. There is no ordering arithmetic that would benefit from ints
type CheckName string

// The canonical check battery. Every page produces exactly one result
// per name, always in the order returned by AllCheckNames.
const (
	// CheckTitleTag verifies a non-empty <title> element exists.
	CheckTitleTag CheckName = "Title Tag"

	// CheckMetaDescription verifies a description meta tag with content.
	CheckMetaDescription CheckName = "Meta Description"

	// CheckH1Heading verifies exactly one <h1> element exists.
	CheckH1Heading CheckName = "H1 Heading"

	// CheckViewport verifies a viewport meta tag exists.
	CheckViewport CheckName = "Mobile-Friendly Viewport"

	// CheckInternalLinking verifies more than two same-host links exist.
	CheckInternalLinking CheckName = "Internal Linking"

	// CheckImageAltText verifies every image carries alt text.
	CheckImageAltText CheckName = "Image Alt Text"

	// CheckConversationalTone looks for question headings or direct address.
	CheckConversationalTone CheckName = "Conversational Tone"

	// CheckClearStructure verifies at least one list element exists.
	CheckClearStructure CheckName = "Clear Structure (Lists)"

	// CheckReadability verifies average sentence length is reasonable.
	CheckReadability CheckName = "Readability"

	// CheckUniqueData looks for original research, tables, or embedded charts.
	CheckUniqueData CheckName = "Unique Data/Insights"

	// CheckAuthorByline verifies a link to an author bio page exists.
	CheckAuthorByline CheckName = "Author Byline/Bio"

	// CheckFirstHandExperience looks for first-person experience phrases.
	CheckFirstHandExperience CheckName = "First-Hand Experience"

	// CheckContentFreshness looks for publish or update date signals.
	CheckContentFreshness CheckName = "Content Freshness"

	// CheckContactInformation verifies a contact or about page link exists.
	CheckContactInformation CheckName = "Contact Information"

	// CheckOutboundLinks verifies at least one external link exists.
	CheckOutboundLinks CheckName = "Outbound Links"

	// CheckCitedSources looks for citation phrases or in-paragraph links.
	CheckCitedSources CheckName = "Cited Sources"

	// CheckSchemaFound verifies any structured data is declared.
	CheckSchemaFound CheckName = "Schema Found"

	// CheckArticleOrOrgSchema verifies Article or Organization schema.
	CheckArticleOrOrgSchema CheckName = "Article or Org Schema"

	// CheckFAQOrHowToSchema verifies FAQPage or HowTo schema.
	CheckFAQOrHowToSchema CheckName = "FAQ or How-To Schema"
)

// CheckCount is the fixed number of checks in the battery.
const CheckCount = 19

// checkOrder is the canonical evaluation and reporting order.
var checkOrder = [CheckCount]CheckName{
	CheckTitleTag,
	CheckMetaDescription,
	CheckH1Heading,
	CheckViewport,
	CheckInternalLinking,
	CheckImageAltText,
	CheckConversationalTone,
	CheckClearStructure,
	CheckReadability,
	CheckUniqueData,
	CheckAuthorByline,
	CheckFirstHandExperience,
	CheckContentFreshness,
	CheckContactInformation,
	CheckOutboundLinks,
	CheckCitedSources,
	CheckSchemaFound,
	CheckArticleOrOrgSchema,
	CheckFAQOrHowToSchema,
}

// AllCheckNames returns the canonical check names in evaluation order.
// The returned slice is a copy; callers may modify it freely.
func AllCheckNames() []CheckName {
	names := make([]CheckName, CheckCount)
	copy(names, checkOrder[:])
	return names
}

// Check categories group related checks for report presentation.
// Categories are stored lowercase; writers title-case them for display.
const (
	// CategoryMetadata covers page-level markup hygiene checks.
	CategoryMetadata = "metadata"

	// CategoryContent covers body text quality heuristics.
	CategoryContent = "content"

	// CategoryAuthority covers trust and E-E-A-T signals.
	CategoryAuthority = "authority"

	// CategorySchema covers structured data checks.
	CategorySchema = "structured data"
)

// checkCategories maps every check to its presentation category.
var checkCategories = map[CheckName]string{
	CheckTitleTag:            CategoryMetadata,
	CheckMetaDescription:     CategoryMetadata,
	CheckH1Heading:           CategoryMetadata,
	CheckViewport:            CategoryMetadata,
	CheckInternalLinking:     CategoryMetadata,
	CheckImageAltText:        CategoryMetadata,
	CheckConversationalTone:  CategoryContent,
	CheckClearStructure:      CategoryContent,
	CheckReadability:         CategoryContent,
	CheckUniqueData:          CategoryContent,
	CheckAuthorByline:        CategoryAuthority,
	CheckFirstHandExperience: CategoryAuthority,
	CheckContentFreshness:    CategoryAuthority,
	CheckContactInformation:  CategoryAuthority,
	CheckOutboundLinks:       CategoryAuthority,
	CheckCitedSources:        CategoryAuthority,
	CheckSchemaFound:         CategorySchema,
	CheckArticleOrOrgSchema:  CategorySchema,
	CheckFAQOrHowToSchema:    CategorySchema,
}

// Category returns the presentation category for the check name.
// Unknown names return an empty string.
func (n CheckName) Category() string {
	return checkCategories[n]
}

// String returns the check name as a plain string.
func (n CheckName) String() string {
	return string(n)
}

// PassDetails is the Details value for every passing check result.
const PassDetails = "OK"

// CheckResult is the outcome of a single check on a single page.
// Details is never empty: passing checks carry PassDetails, failing
// checks carry a human-readable reason.
type CheckResult struct {
	// Name is one of the canonical check names.
	Name CheckName `json:"name"`

	// Passed reports whether the page satisfied the check.
	Passed bool `json:"passed"`

	// Details is a human-readable reason, "OK" on pass.
	Details string `json:"details"`
}

// Pass builds a passing CheckResult for the given check.
func Pass(name CheckName) CheckResult {
	return CheckResult{Name: name, Passed: true, Details: PassDetails}
}

// Fail builds a failing CheckResult with the given reason.
func Fail(name CheckName, details string) CheckResult {
	return CheckResult{Name: name, Passed: false, Details: details}
}

// PageResult is the full check battery output for one crawled page.
// Checks always holds exactly CheckCount results in canonical order;
// checks are never conditionally skipped.
type PageResult struct {
	// URL is the page's canonical URL.
	URL string `json:"url"`

	// Checks holds one result per check in canonical order.
	Checks []CheckResult `json:"checks"`
}
