package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/geoready/internal/cache"
	"github.com/nao1215/geoready/internal/config"
	"github.com/nao1215/geoready/internal/log"
	"github.com/nao1215/geoready/internal/mailer"
	"github.com/spf13/cobra"
)

// NewSendCmd creates the send command.
func NewSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <report-id>",
		Short: "Email a previously generated report",
		Long: `Send emails the detailed report cached under a report ID.

The analyze command prints a report ID after each analysis; reports stay
retrievable for an hour. Once the email is delivered the cached report
is removed, so each report ID can be sent once.

SMTP settings come from the configuration file:
  smtp:
    host: smtp.example.com
    port: 587
    username: reports
    password: "secret"
    from: reports@example.com

Examples:
  geoready send 6b3f2a9c-... --to you@example.com`,
		Args: cobra.ExactArgs(1),
		RunE: runSendCmd,
	}

	cmd.Flags().StringP("to", "T", "",
		"Recipient email address (required)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .geoready in current or home directory)")
	_ = cmd.MarkFlagRequired("to") //nolint:errcheck // Flag is defined above

	return cmd
}

// runSendCmd executes the send command.
func runSendCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildSendConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.ValidateSMTP(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	to, err := cmd.Flags().GetString("to")
	if err != nil {
		return err
	}

	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	return runSend(cmd, cfg, args[0], to, logger)
}

// buildSendConfig creates a Config for the send command. SMTP settings
// live in the configuration file; only its location is flag-driven.
func buildSendConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runSend loads the cached report, emails it, and removes it from the
// cache on success.
func runSend(cmd *cobra.Command, cfg *config.Config, reportID, to string, logger *slog.Logger) error {
	store := cache.NewStore(
		cache.WithTTL(cfg.CacheTTL),
		cache.WithDirectory(reportSpillDir()),
		cache.WithLogger(logger),
	)
	defer store.Close()

	handle, err := store.Get(reportID)
	if err != nil {
		return fmt.Errorf("report %s: %w (reports expire after %s; re-run analyze)",
			reportID, err, cfg.CacheTTL)
	}

	subject, body, err := mailer.ComposeReport(handle.URL, handle.Report)
	if err != nil {
		return err
	}

	m, err := mailer.NewSMTPMailer(cfg, mailer.WithLogger(logger))
	if err != nil {
		return err
	}

	fmt.Printf("Sending report for %s to %s...\n", handle.URL, to)

	if err := m.Send(cmd.Context(), to, subject, body); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}

	// A delivered report is single-use; drop it from the cache.
	store.Delete(reportID)

	fmt.Println("Report sent.")

	return nil
}
