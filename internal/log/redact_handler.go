package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// sensitiveKeys contains attribute keys whose values are always masked.
var sensitiveKeys = map[string]bool{
	// Scraping providers
	"api_key": true,
	"apikey":  true,
	"api-key": true,

	// SMTP
	"password":      true,
	"passwd":        true,
	"smtp_password": true,

	// Generic
	"secret":        true,
	"token":         true,
	"authorization": true,
	"credential":    true,
	"credentials":   true,
}

// sensitivePatterns match values that are masked regardless of key name.
var sensitivePatterns = []*regexp.Regexp{
	// api_key=... embedded in request URLs
	regexp.MustCompile(`(?i)[?&](api_key|apikey|key|token)=[^&\s]+`),

	// Bearer / Basic authorization values
	regexp.MustCompile(`(?i)^(bearer|basic)\s+.+`),
}

// MaskValue replaces sensitive values in log output.
const MaskValue = "***REDACTED***"

// RedactHandler wraps an slog.Handler to mask credentials before they
// are written.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites keep logging naturally without sanitizing by hand
type RedactHandler struct {
	// handler is the underlying handler receiving masked records.
	handler slog.Handler
}

// NewRedactHandler creates a RedactHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewRedactHandler(handler slog.Handler) *RedactHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RedactHandler{handler: handler}
}

// Enabled delegates to the underlying handler.
func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it on.
func (h *RedactHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.redactAttr(a))
		return true
	})

	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added,
// masked first.
func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.redactAttr(a)
	}
	return &RedactHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{handler: h.handler.WithGroup(name)}
}

// redactAttr masks a single attribute, recursively handling groups.
func (h *RedactHandler) redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.redactAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	if sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString {
		if masked, hit := maskSensitiveValue(a.Value.String()); hit {
			return slog.String(a.Key, masked)
		}
	}

	return a
}

// maskSensitiveValue masks credential fragments inside a value.
// URL query credentials are masked in place so the rest of the URL
// stays readable; whole-value matches are fully replaced.
func maskSensitiveValue(value string) (string, bool) {
	hit := false
	for i, pattern := range sensitivePatterns {
		if !pattern.MatchString(value) {
			continue
		}
		hit = true
		if i == 0 {
			value = pattern.ReplaceAllStringFunc(value, func(m string) string {
				sep, rest := m[:1], m[1:]
				name, _, _ := strings.Cut(rest, "=")
				return sep + name + "=" + MaskValue
			})
		} else {
			value = MaskValue
		}
	}
	return value, hit
}

// NewLogger creates an slog.Logger whose output has credentials masked.
// Verbose enables Debug level; otherwise only warnings and errors are
// logged, matching the CLI's default quietness.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewRedactHandler(textHandler))
}
