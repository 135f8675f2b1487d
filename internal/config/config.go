package config

import "time"

// Default configuration values.
// The crawl bounds mirror the product defaults: a hard budget of ten
// pages per analysis keeps worst-case latency, scraping-API spend, and
// memory bounded.
const (
	// DefaultMaxPages is the hard page budget per analysis: the start
	// page plus up to nine menu pages. Raising this increases scraping
	// costs linearly, so it is capped rather than unlimited.
	DefaultMaxPages = 10

	// DefaultConcurrency is the number of secondary pages fetched in
	// parallel. Equal to the maximum number of secondary pages, so a
	// default crawl issues all of them at once; each fetch is a slow
	// network round trip and serializing them would dominate latency.
	DefaultConcurrency = 9

	// DefaultTimeout applies to each individual page fetch. Scraping
	// providers that render JavaScript can take tens of seconds, so
	// this is generous.
	DefaultTimeout = 30 * time.Second

	// DefaultCacheTTL is how long a completed detailed report stays
	// retrievable for email delivery before being evicted.
	DefaultCacheTTL = time.Hour

	// DefaultBatchSize is the number of sites analyzed concurrently
	// when several start URLs are given.
	DefaultBatchSize = 3

	// DefaultMaxBodySize limits the response body size read per page.
	// 5MB is ample for HTML while preventing memory exhaustion from
	// unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultUserAgent identifies geoready in direct HTTP requests.
	DefaultUserAgent = "geoready/1.0 (+https://github.com/nao1215/geoready)"

	// DefaultSMTPPort is the submission port used when none is configured.
	DefaultSMTPPort = 587

	// AppName is the application name used for XDG directory paths.
	AppName = "geoready"
)

// Fetch provider names accepted by Config.Provider.
const (
	// ProviderDirect fetches pages with a plain HTTP client.
	ProviderDirect = "direct"

	// ProviderScrapingAPI fetches pages through a third-party scraping
	// API that can render JavaScript.
	ProviderScrapingAPI = "scrapingapi"
)

// Config holds all configuration options for geoready.
// It is populated from CLI flags and the optional config file, then
// passed through the application via dependency injection rather than
// global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, MailConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant
// benefit.
type Config struct {
	// Provider selects the fetch provider: ProviderDirect or
	// ProviderScrapingAPI.
	Provider string

	// APIKey authenticates against the scraping API. Required when
	// Provider is ProviderScrapingAPI; never logged.
	APIKey string

	// ScrapingEndpoint is the scraping API base URL. Empty selects the
	// provider implementation's default endpoint.
	ScrapingEndpoint string

	// RenderJS asks the scraping provider to render JavaScript before
	// returning markup. Ignored by the direct provider.
	RenderJS bool

	// Timeout is the per-fetch timeout. Each page fetch is independent;
	// a page hitting this timeout is dropped without affecting others.
	Timeout time.Duration

	// MaxPages is the total page budget per analysis, including the
	// start page.
	MaxPages int

	// Concurrency is the number of secondary pages fetched in parallel.
	Concurrency int

	// CacheTTL is the retention window for cached detailed reports.
	CacheTTL time.Duration

	// BatchSize is the number of start URLs analyzed concurrently.
	BatchSize int

	// Verbose enables slog.LevelDebug output.
	Verbose bool

	// JSONReport prints the full report as JSON instead of the
	// human-readable summary. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport prints the full report as Markdown instead of the
	// human-readable summary. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// OutputPath writes the report to a file instead of stdout.
	OutputPath string

	// ConfigFilePath is an explicit config file location. Empty means
	// search the working directory, home directory, and XDG config dir.
	ConfigFilePath string

	// SMTPHost is the mail relay host for report delivery.
	SMTPHost string

	// SMTPPort is the mail relay port. Zero means DefaultSMTPPort.
	SMTPPort int

	// SMTPUsername authenticates against the relay. Empty disables auth.
	SMTPUsername string

	// SMTPPassword authenticates against the relay; never logged.
	SMTPPassword string

	// MailFrom is the sender address on report emails.
	MailFrom string
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Provider:    ProviderDirect,
		Timeout:     DefaultTimeout,
		MaxPages:    DefaultMaxPages,
		Concurrency: DefaultConcurrency,
		CacheTTL:    DefaultCacheTTL,
		BatchSize:   DefaultBatchSize,
		SMTPPort:    DefaultSMTPPort,
	}
}

// Validate checks the configuration for contradictions and returns the
// first problem found as a sentinel error.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxPages < 1 {
		return ErrInvalidMaxPages
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.CacheTTL <= 0 {
		return ErrInvalidCacheTTL
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	switch c.Provider {
	case ProviderDirect:
	case ProviderScrapingAPI:
		if c.APIKey == "" {
			return ErrMissingAPIKey
		}
	default:
		return ErrUnknownProvider
	}

	return nil
}

// ValidateSMTP checks the fields required for report delivery.
// Kept separate from Validate because analysis runs do not need a mail
// relay configured.
func (c *Config) ValidateSMTP() error {
	if c.SMTPHost == "" || c.MailFrom == "" {
		return ErrMissingSMTPConfig
	}
	return nil
}
