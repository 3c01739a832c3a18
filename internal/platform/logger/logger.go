package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide slog logger. Text output keeps local runs and
// container logs readable; structured attrs still come through as key=value.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
