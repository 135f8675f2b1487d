package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/geoready/internal/cache"
	"github.com/nao1215/geoready/internal/config"
)

// TestNewSendCmd tests the send command creation.
func TestNewSendCmd(t *testing.T) {
	t.Parallel()

	cmd := NewSendCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "send <report-id>" {
			t.Errorf("expected use 'send <report-id>', got %q", cmd.Use)
		}
	})

	t.Run("has short and long descriptions", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" || cmd.Long == "" {
			t.Error("expected non-empty descriptions")
		}
	})

	t.Run("has to flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("to") == nil {
			t.Fatal("expected to flag")
		}
	})

	t.Run("has config flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("config") == nil {
			t.Fatal("expected config flag")
		}
	})
}

// smtpConfigFile writes a config file with a complete smtp section and
// returns its path.
func smtpConfigFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `smtp:
  host: smtp.example.com
  port: 587
  username: reports
  password: secret
  from: reports@example.com
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestRunSendCmdValidation tests the validation path without a relay.
func TestRunSendCmdValidation(t *testing.T) {
	t.Parallel()

	t.Run("missing recipient is rejected", func(t *testing.T) {
		t.Parallel()

		root := NewRootCmd()
		root.SetArgs([]string{"send", "some-id", "--config", smtpConfigFile(t)})

		if err := root.Execute(); err == nil {
			t.Error("expected an error without --to")
		}
	})

	t.Run("missing smtp configuration is rejected", func(t *testing.T) {
		t.Parallel()

		// Point --config at an existing file with no smtp section so the
		// default search locations cannot interfere.
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("provider: direct\n"), 0600); err != nil {
			t.Fatalf("write config: %v", err)
		}

		root := NewRootCmd()
		root.SetArgs([]string{"send", "some-id", "--to", "you@example.com", "--config", path})

		if err := root.Execute(); !errors.Is(err, config.ErrMissingSMTPConfig) {
			t.Errorf("expected ErrMissingSMTPConfig, got %v", err)
		}
	})

	t.Run("unknown report id is reported as not found", func(t *testing.T) {
		t.Parallel()

		root := NewRootCmd()
		root.SetArgs([]string{
			"send", "00000000-0000-0000-0000-000000000000",
			"--to", "you@example.com",
			"--config", smtpConfigFile(t),
		})

		if err := root.Execute(); !errors.Is(err, cache.ErrNotFound) {
			t.Errorf("expected cache.ErrNotFound, got %v", err)
		}
	})
}
