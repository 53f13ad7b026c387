package logx

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

type slogLogger struct {
	l *slog.Logger
}

// NewSlogAdapter returns a Logger backed by l.
func NewSlogAdapter(l *slog.Logger) Logger {
	return &slogLogger{l: l}
}

// NewJSON returns a Logger writing JSON lines to w at the given level.
func NewJSON(w io.Writer, level string) Logger {
	return NewSlogAdapter(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})))
}

// Nop returns a Logger that drops every entry.
func Nop() Logger {
	return NewSlogAdapter(slog.New(slog.DiscardHandler))
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels. Anything else is info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (s *slogLogger) Debug(msg string, fields ...Field) { s.l.Debug(msg, attrs(fields)...) }
func (s *slogLogger) Info(msg string, fields ...Field)  { s.l.Info(msg, attrs(fields)...) }
func (s *slogLogger) Warn(msg string, fields ...Field)  { s.l.Warn(msg, attrs(fields)...) }
func (s *slogLogger) Error(msg string, fields ...Field) { s.l.Error(msg, attrs(fields)...) }

func (s *slogLogger) With(fields ...Field) Logger {
	return &slogLogger{l: s.l.With(attrs(fields)...)}
}

// Sync is a no-op: slog handlers write synchronously.
func (s *slogLogger) Sync() error { return nil }

// attrs keeps durations and times typed so handlers render them natively.
func attrs(fields []Field) []any {
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			out = append(out, slog.String(f.Key, v))
		case int:
			out = append(out, slog.Int(f.Key, v))
		case int64:
			out = append(out, slog.Int64(f.Key, v))
		case bool:
			out = append(out, slog.Bool(f.Key, v))
		case time.Duration:
			out = append(out, slog.Duration(f.Key, v))
		case time.Time:
			out = append(out, slog.Time(f.Key, v))
		default:
			out = append(out, slog.Any(f.Key, v))
		}
	}
	return out
}

var _ Logger = (*slogLogger)(nil)
