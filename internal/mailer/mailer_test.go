package mailer

import (
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/geoready/internal/config"
	"github.com/nao1215/geoready/internal/model"
)

// fixtureReport builds a small report for composition tests.
func fixtureReport(score int) *model.AggregateReport {
	stats := make(map[model.CheckName]model.CheckStat, model.CheckCount)
	detailed := make(map[model.CheckName]model.DetailedCheck, model.CheckCount)
	for _, name := range model.AllCheckNames() {
		stats[name] = model.CheckStat{Passed: 1, Total: 1}
		detailed[name] = model.DetailedCheck{Passed: 1, Total: 1, Failures: []model.Failure{}}
	}
	detailed[model.CheckViewport] = model.DetailedCheck{
		Passed: 0,
		Total:  1,
		Failures: []model.Failure{
			{URL: "https://example.com/", Details: "Missing viewport meta tag."},
		},
	}

	return &model.AggregateReport{
		Summary:      model.Summary{AverageScore: score, CheckStats: stats},
		Detailed:     detailed,
		PagesCrawled: 1,
	}
}

// TestComposeReport tests subject and body composition.
func TestComposeReport(t *testing.T) {
	t.Parallel()

	t.Run("subject names the site and score", func(t *testing.T) {
		t.Parallel()

		subject, _, err := ComposeReport("https://example.com/", fixtureReport(72))
		if err != nil {
			t.Fatalf("compose failed: %v", err)
		}

		want := "GEO Readiness Report for https://example.com/ (Score: 72/100)"
		if subject != want {
			t.Errorf("subject = %q, want %q", subject, want)
		}
	})

	t.Run("body is the markdown report", func(t *testing.T) {
		t.Parallel()

		_, body, err := ComposeReport("https://example.com/", fixtureReport(72))
		if err != nil {
			t.Fatalf("compose failed: %v", err)
		}

		if !strings.Contains(body, "# GEO Readiness Report") {
			t.Error("body missing report title")
		}
		if !strings.Contains(body, "Missing viewport meta tag.") {
			t.Error("body missing failure detail")
		}
	})

	t.Run("composition is deterministic", func(t *testing.T) {
		t.Parallel()

		report := fixtureReport(55)
		s1, b1, err := ComposeReport("https://example.com/", report)
		if err != nil {
			t.Fatalf("compose failed: %v", err)
		}
		s2, b2, err := ComposeReport("https://example.com/", report)
		if err != nil {
			t.Fatalf("compose failed: %v", err)
		}
		if s1 != s2 || b1 != b2 {
			t.Error("identical report composed differently")
		}
	})
}

// TestNewSMTPMailer tests mailer construction. Delivery itself needs a
// relay and is not exercised here.
func TestNewSMTPMailer(t *testing.T) {
	t.Parallel()

	t.Run("rejects incomplete smtp configuration", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		if _, err := NewSMTPMailer(cfg); !errors.Is(err, config.ErrMissingSMTPConfig) {
			t.Errorf("expected ErrMissingSMTPConfig, got %v", err)
		}
	})

	t.Run("builds a mailer from a complete configuration", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.SMTPHost = "smtp.example.com"
		cfg.SMTPUsername = "reports"
		cfg.SMTPPassword = "secret"
		cfg.MailFrom = "reports@example.com"

		m, err := NewSMTPMailer(cfg)
		if err != nil {
			t.Fatalf("construction failed: %v", err)
		}
		if m.from != "reports@example.com" {
			t.Errorf("sender = %q, want configured from address", m.from)
		}
	})
}
