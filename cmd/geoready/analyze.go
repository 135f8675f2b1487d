package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/geoready/internal/cache"
	"github.com/nao1215/geoready/internal/config"
	"github.com/nao1215/geoready/internal/crawler"
	"github.com/nao1215/geoready/internal/fetcher"
	"github.com/nao1215/geoready/internal/log"
	"github.com/nao1215/geoready/internal/pipeline"
	"github.com/nao1215/geoready/internal/report"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [url...]",
		Short: "Analyze a website's generative engine readiness",
		Long: `Analyze crawls a website and scores its readiness for generative AI
search engines.

The home page is fetched first; links from its main navigation menu are
then crawled concurrently, up to ten pages in total. Every page runs
the same nineteen checks covering metadata hygiene, content quality,
authority signals, and structured data. The score is the percentage of
checks passed across all pages.

Examples:
  # Analyze a single site
  geoready analyze https://example.com

  # Analyze several sites concurrently
  geoready analyze https://a.example https://b.example

  # Fetch through a scraping API with JavaScript rendering
  geoready analyze --provider scrapingapi --api-key KEY --render-js https://example.com

  # Full report as JSON or Markdown
  geoready analyze --json https://example.com
  geoready analyze --markdown -o report.md https://example.com

Configuration file (.geoready) example:
  provider: scrapingapi
  api_key: "YOUR_KEY"
  render_js: true
  smtp:
    host: smtp.example.com
    username: reports
    password: "secret"
    from: reports@example.com`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Fetch provider flags
	cmd.Flags().StringP("provider", "P", config.ProviderDirect,
		"Fetch provider: direct or scrapingapi")
	cmd.Flags().StringP("api-key", "k", "",
		"API key for the scraping provider")
	cmd.Flags().BoolP("render-js", "r", false,
		"Ask the scraping provider to render JavaScript before returning markup")

	// Crawl behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each page fetch")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to analyze per site, including the home page")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of secondary pages fetched in parallel")

	// Batch analysis flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of sites analyzed concurrently")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .geoready in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output full JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output full Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildAnalyzeConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	if len(args) == 0 {
		return config.ErrNoTarget
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runAnalyze(ctx, cfg, args, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildAnalyzeConfig creates a Config from cobra command flags and the
// optional configuration file. Flags always win over the file.
func buildAnalyzeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Provider, err = cmd.Flags().GetString("provider")
	if err != nil {
		return nil, err
	}

	cfg.APIKey, err = cmd.Flags().GetString("api-key")
	if err != nil {
		return nil, err
	}

	cfg.RenderJS, err = cmd.Flags().GetBool("render-js")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.OutputPath, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyConfigFile locates and merges the optional configuration file.
// An explicitly specified file must exist; the default search locations
// are all optional.
func applyConfigFile(cfg *config.Config) error {
	explicit := cfg.ConfigFilePath != ""
	path := config.FindConfigFile(cfg.ConfigFilePath)
	if path == "" {
		if explicit {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return nil
	}

	cf, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	cf.Apply(cfg)

	return nil
}

// newFetcher builds the fetch provider selected by the configuration.
func newFetcher(cfg *config.Config) (fetcher.Fetcher, error) {
	switch cfg.Provider {
	case config.ProviderScrapingAPI:
		opts := []fetcher.ScrapingOption{
			fetcher.WithScrapingTimeout(cfg.Timeout),
			fetcher.WithRenderJS(cfg.RenderJS),
		}
		if cfg.ScrapingEndpoint != "" {
			opts = append(opts, fetcher.WithScrapingEndpoint(cfg.ScrapingEndpoint))
		}
		return fetcher.NewScrapingAPIFetcher(cfg.APIKey, opts...)
	default:
		return fetcher.NewHTTPFetcher(
			fetcher.WithTimeout(cfg.Timeout),
			fetcher.WithUserAgent(config.DefaultUserAgent),
		), nil
	}
}

// reportSpillDir returns the directory where cached reports are spilled
// so the send command can find them from a fresh process.
func reportSpillDir() string {
	return filepath.Join(xdg.CacheHome, config.AppName, "reports")
}

// runAnalyze executes the analysis for every target.
func runAnalyze(ctx context.Context, cfg *config.Config, targets []string, logger *slog.Logger) error {
	f, err := newFetcher(cfg)
	if err != nil {
		return fmt.Errorf("failed to create fetcher: %w", err)
	}

	store := cache.NewStore(
		cache.WithTTL(cfg.CacheTTL),
		cache.WithDirectory(reportSpillDir()),
		cache.WithLogger(logger),
	)
	defer store.Close()

	c := crawler.New(f,
		crawler.WithMaxPages(cfg.MaxPages),
		crawler.WithConcurrency(cfg.Concurrency),
		crawler.WithLogger(logger),
	)

	factory := func() *pipeline.Pipeline {
		p := pipeline.New(pipeline.WithLogger(logger))
		p.AddSteps(
			pipeline.NewAnalyzeStep(c),
			pipeline.NewCacheStep(store),
		)
		return p
	}

	if len(targets) > 1 && cfg.BatchSize > 1 {
		return runBatchAnalyze(ctx, cfg, targets, factory, logger)
	}

	return runSequentialAnalyze(ctx, cfg, targets, factory, logger)
}

// runSequentialAnalyze analyzes targets one at a time.
func runSequentialAnalyze(ctx context.Context, cfg *config.Config, targets []string, factory func() *pipeline.Pipeline, logger *slog.Logger) error {
	var failed int
	for _, target := range targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Printf("Analyzing %s...\n", target)
		startTime := time.Now()

		run := &pipeline.Run{StartURL: target}
		if err := factory().Execute(ctx, run); err != nil {
			logger.Error("analysis failed", "url", target, "error", err)
			fmt.Fprintf(os.Stderr, "Analysis error for %s: %v\n", target, err)
			failed++
			continue
		}

		fmt.Printf("Analysis completed in %s\n\n", time.Since(startTime).Round(time.Millisecond))

		if err := outputRun(cfg, run); err != nil {
			logger.Error("report output failed", "url", target, "error", err)
		}
	}

	if failed == len(targets) {
		return errors.New("all analyses failed")
	}
	return nil
}

// runBatchAnalyze analyzes multiple targets concurrently.
func runBatchAnalyze(ctx context.Context, cfg *config.Config, targets []string, factory func() *pipeline.Pipeline, logger *slog.Logger) error {
	fmt.Printf("Starting batch analysis of %d sites (concurrency: %d)...\n\n",
		len(targets), cfg.BatchSize)

	startTime := time.Now()

	bp := pipeline.NewBatchProcessor(factory,
		pipeline.WithBatchConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	runs, err := bp.ProcessBatch(ctx, targets)
	if err != nil {
		return err
	}

	var failed int
	for _, run := range runs {
		if run == nil || run.Report == nil {
			failed++
			continue
		}
		if err := outputRun(cfg, run); err != nil {
			logger.Error("report output failed", "url", run.StartURL, "error", err)
		}
	}

	fmt.Printf("\nBatch analysis completed in %s (%d/%d sites succeeded)\n",
		time.Since(startTime).Round(time.Millisecond), len(runs)-failed, len(runs))

	if failed == len(runs) {
		return errors.New("all analyses failed")
	}
	return nil
}

// outputRun writes one run's report in the requested format and prints
// the report token for the send command.
func outputRun(cfg *config.Config, run *pipeline.Run) error {
	output, closeFn, err := openReportOutput(cfg.OutputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewTextWriter(output)
	}

	if _, err := w.Write(run.Report); err != nil {
		return err
	}

	if run.Handle != nil {
		fmt.Printf("Report ID: %s\n", run.Handle.ID)
		fmt.Printf("Email the full report with: geoready send %s --to you@example.com\n\n", run.Handle.ID)
	}

	return nil
}

// openReportOutput opens the report destination: a file when a path is
// configured, stdout otherwise.
func openReportOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports can reveal site structure, so keep them owner-readable.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil //nolint:errcheck // Best effort close
}
