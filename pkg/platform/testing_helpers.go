package platform

import (
	"sync"

	"github.com/hyprbind/hyprbind/pkg/errors"
)

// ReportRecorder is an errors.ErrorHandler that keeps every report in memory.
type ReportRecorder struct {
	mu     sync.Mutex
	errs   []*errors.BindError
	panics []*errors.PanicError
}

// HandleError records err.
func (r *ReportRecorder) HandleError(err *errors.BindError) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

// HandlePanic records err.
func (r *ReportRecorder) HandlePanic(err *errors.PanicError) {
	r.mu.Lock()
	r.panics = append(r.panics, err)
	r.mu.Unlock()
}

// Errors returns the recorded errors.
func (r *ReportRecorder) Errors() []*errors.BindError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.BindError(nil), r.errs...)
}

// Panics returns the recorded panics.
func (r *ReportRecorder) Panics() []*errors.PanicError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.PanicError(nil), r.panics...)
}

// RecordReports installs a ReportRecorder as the global error handler. The
// cleanup function should be testing.T.Cleanup or equivalent; it registers a
// teardown that restores the previous handler.
//
//	rec := platform.RecordReports(t.Cleanup)
func RecordReports(cleanup func(func())) *ReportRecorder {
	prev := errors.DefaultHandler
	rec := &ReportRecorder{}
	errors.SetHandler(rec)
	cleanup(func() { errors.SetHandler(prev) })
	return rec
}
