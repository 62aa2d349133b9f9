package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrijs2005/credvault/internal/config"
	"github.com/dmitrijs2005/credvault/internal/filex"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger from the log section of cfg. The returned closer
// releases the log file and must be called on shutdown.
//
// With output "file" records go to a size-rotated file under the data dir
// so they do not interleave with interactive prompts; any other value
// logs to stderr.
func New(cfg *config.Config, version string) (*SlogLogger, io.Closer, error) {
	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)

	if strings.EqualFold(cfg.Log.Output, "file") {
		path := cfg.LogPath()
		if err := filex.EnsureParentDir(path); err != nil {
			return nil, nil, err
		}
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			LocalTime:  true,
		}
		out, closer = lj, lj
	}

	l := slog.New(newHandler(out, cfg.Log)).With("app", config.AppName, "version", version)
	return NewSlogLogger(l), closer, nil
}

func newHandler(w io.Writer, lc config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(lc.Level)}
	if strings.EqualFold(lc.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// parseLevel converts a level name to slog.Level, defaulting to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
