package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler receives every report. It starts as a LogHandler on
	// stderr; the CLI replaces it with one on its configured logger.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler installs h as the global handler. Nil restores a LogHandler.
func SetHandler(h ErrorHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		h = &LogHandler{}
	}
	DefaultHandler = h
}

func handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report sends err to the global handler, stamping the time and the
// reporting call stack when they are missing.
func Report(err *BindError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if err.StackTrace == "" {
		err.StackTrace = captureStack(3)
	}
	if h := handler(); h != nil {
		h.HandleError(err)
	}
}

// ReportPanic sends err to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := handler(); h != nil {
		h.HandlePanic(err)
	}
}

// Boundary names a place where native code calls into Go. Event deliveries
// also carry the handle that raised the event and the event kind.
type Boundary struct {
	Op     string
	Handle uint64
	Event  string
}

// Recover stops a panic at the boundary and reports it as one PanicError.
// Native frames sit below every boundary, so a panic must never unwind past
// one. Defer it directly:
//
//	defer errors.Boundary{Op: "ffi.trampoline", Event: "click"}.Recover()
func (b Boundary) Recover() {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{
			Op:         b.Op,
			Handle:     b.Handle,
			Event:      b.Event,
			Value:      r,
			StackTrace: captureStack(3),
			Timestamp:  time.Now(),
		})
	}
}

// captureStack formats the calling goroutine's stack, skipping skip frames.
// While panicking, everything up to the runtime's panic frame is dropped too,
// so a recovered stack starts at the call that panicked.
func captureStack(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}
	var frames []runtime.Frame
	it := runtime.CallersFrames(pcs[:n])
	for {
		f, more := it.Next()
		if f.Function == "runtime.gopanic" {
			frames = frames[:0]
		} else {
			frames = append(frames, f)
		}
		if !more {
			break
		}
	}
	var sb strings.Builder
	for _, f := range frames {
		if strings.HasPrefix(f.Function, "runtime.") {
			continue
		}
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
	}
	return sb.String()
}
