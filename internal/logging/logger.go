package logging

import (
	"io"
	"log/slog"
	"os"
)

var stdout io.Writer = os.Stdout

// Setup installs a JSON slog logger on stdout as the process default.
func Setup() {
	slog.SetDefault(New(stdout, slog.LevelInfo))
}

func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
