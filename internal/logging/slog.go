package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// redacted replaces the value of any attribute whose key names a secret.
const redacted = "[REDACTED]"

var secretKeys = map[string]struct{}{
	"password":        {},
	"password_digest": {},
	"digest":          {},
	"senha":           {},
}

// SlogLogger adapts *slog.Logger to Logger. Values under secret keys
// (password, digest and friends) are masked before they reach the handler,
// so an accidental log call cannot leak a credential into the log file.
type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// Nop returns a logger that discards everything.
func Nop() *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, scrub(args)...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, scrub(args)...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, scrub(args)...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, scrub(args)...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(scrub(args)...)}
}

// scrub returns args with secret values masked. Only the key/value form is
// inspected; slog.Attr values are masked by key as well.
func scrub(args []any) []any {
	var out []any
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case slog.Attr:
			if isSecret(v.Key) {
				out = ensureCopy(out, args)
				out[i] = slog.String(v.Key, redacted)
			}
		case string:
			if i+1 < len(args) {
				if isSecret(v) {
					out = ensureCopy(out, args)
					out[i+1] = redacted
				}
				i++
			}
		}
	}
	if out == nil {
		return args
	}
	return out
}

func ensureCopy(out, args []any) []any {
	if out != nil {
		return out
	}
	out = make([]any, len(args))
	copy(out, args)
	return out
}

func isSecret(key string) bool {
	_, ok := secretKeys[strings.ToLower(key)]
	return ok
}
