package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/geoready/internal/model"
	"github.com/nao1215/geoready/internal/report"
)

// ErrInvalidRecipient is returned when the recipient address is
// rejected by the message builder.
var ErrInvalidRecipient = errors.New("invalid recipient address")

// Mailer defines the interface for report delivery.
//
// Design decision: We define the interface here rather than exposing the
// SMTP implementation directly because:
//  1. The send command only needs Send; relay details stay internal
//  2. Tests fake the mailer to exercise the delivery flow offline
//  3. A different transport (API-based sender) can drop in later
type Mailer interface {
	// Send delivers a message to the recipient.
	Send(ctx context.Context, to, subject, body string) error
}

// ComposeReport builds the subject line and markdown body for a report
// email. The body is the same markdown document the --markdown flag
// prints, so the emailed report matches the local one exactly.
func ComposeReport(targetURL string, r *model.AggregateReport) (subject, body string, err error) {
	subject = fmt.Sprintf("GEO Readiness Report for %s (Score: %d/100)",
		targetURL, r.Summary.AverageScore)

	var sb strings.Builder
	if _, err := report.NewMarkdownWriter(&sb).Write(r); err != nil {
		return "", "", fmt.Errorf("render report body: %w", err)
	}

	return subject, sb.String(), nil
}
