package imgedit

import (
	"log/slog"

	"github.com/gogpu/imgedit/internal/logging"
)

// SetLogger configures the logger for imgedit and all its sub-packages
// (effect, filter, thumbnail). By default imgedit produces no log output.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to restore the default silent behavior.
//
// Log levels used by imgedit:
//   - [slog.LevelDebug]: cache hits and misses, stage timings
//   - [slog.LevelInfo]: rasterization context lifecycle
//   - [slog.LevelWarn]: degraded stages (unavailable filters, missing LUTs,
//     recovered worker panics)
//
// Example:
//
//	imgedit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by imgedit.
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
