package sketchpad

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while another goroutine is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for sketchpad and all its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by sketchpad:
//   - [slog.LevelDebug]: pointer positions, layer list rebuilds
//   - [slog.LevelInfo]: shader program compilation, window lifecycle
//   - [slog.LevelWarn]: GPU resource release problems
//
// Example:
//
//	sketchpad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by sketchpad.
// Sub-packages (render, scene, app) call this to share one configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by backends that keep their own logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// PropagateLogger hands the current logger to v if v accepts one.
// The app calls it with the display backend so GPU diagnostics follow the
// same configuration.
func PropagateLogger(v any) {
	if ls, ok := v.(loggerSetter); ok {
		ls.SetLogger(Logger())
	}
}
