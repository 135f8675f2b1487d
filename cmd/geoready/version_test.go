package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewVersionCmd tests the version command.
func TestNewVersionCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints version, commit, and build date", func(t *testing.T) {
		t.Parallel()

		cmd := NewVersionCmd()
		var buf bytes.Buffer
		cmd.SetOut(&buf)

		cmd.Run(cmd, nil)

		out := buf.String()
		if !strings.Contains(out, "geoready version") {
			t.Errorf("expected version line, got %q", out)
		}
		if !strings.Contains(out, "commit:") {
			t.Errorf("expected commit line, got %q", out)
		}
		if !strings.Contains(out, "built:") {
			t.Errorf("expected build date line, got %q", out)
		}
	})
}

// TestGetVersion tests version string resolution.
func TestGetVersion(t *testing.T) {
	// Not parallel: mutates package-level ldflags variables.

	t.Run("ldflags version wins", func(t *testing.T) {
		orig := version
		defer func() { version = orig }()

		version = "v1.2.3"
		if got := getVersion(); got != "v1.2.3" {
			t.Errorf("expected 'v1.2.3', got %q", got)
		}
	})

	t.Run("falls back without ldflags", func(t *testing.T) {
		orig := version
		defer func() { version = orig }()

		version = ""
		if got := getVersion(); got == "" {
			t.Error("expected a non-empty fallback version")
		}
	})
}
