package errors

import (
	"os"

	"github.com/charmbracelet/log"
)

// LogHandler is an ErrorHandler that writes through a charm logger.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Logger receives the records. Nil means a stderr logger with prefix "hyprbind".
	Logger *log.Logger
}

var defaultLogger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "hyprbind"})

func (h *LogHandler) logger() *log.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return defaultLogger
}

// HandleError logs a BindError.
func (h *LogHandler) HandleError(err *BindError) {
	if err == nil {
		return
	}
	kv := []any{"op", err.Op, "kind", err.Kind.String(), "err", err.Err}
	if err.Handle != 0 {
		kv = append(kv, "handle", err.Handle)
	}
	if h.Verbose && err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	h.logger().Error("binding error", kv...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	kv := []any{"value", err.Value}
	if err.Op != "" {
		kv = append(kv, "op", err.Op)
	}
	if err.Event != "" {
		kv = append(kv, "event", err.Event)
	}
	if err.Handle != 0 {
		kv = append(kv, "handle", err.Handle)
	}
	if h.Verbose && err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	h.logger().Error("recovered panic", kv...)
}
