package cli

import (
	"io"
	"log/slog"
	"strings"

	"noweb/config"
)

// setupLogging installs the default slog logger. Logs always go to stderr
// so that tangled output on stdout stays clean.
func setupLogging(w io.Writer, lc config.LoggingConfig) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(lc.Level),
	}
	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(lc.Format), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("logging configured", "level", lc.Level, "format", lc.Format)
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn
	}
	return l
}
