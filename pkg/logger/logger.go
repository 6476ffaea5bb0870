package logger

import (
	"log/slog"
	"os"
)

// Log is the process-wide structured logger. It defaults to info-level JSON
// on stdout so packages can log before Init runs (and under `go test`).
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Init reconfigures the global JSON logger. Level comes from configuration so
// the contact pipeline can log full provider errors in development without
// leaking them into production logs at debug level.
func Init(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}
