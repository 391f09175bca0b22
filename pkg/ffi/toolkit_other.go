//go:build !linux

package ffi

import (
	stderrors "errors"
	"runtime"

	"github.com/hyprbind/hyprbind/pkg/errors"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

// ErrUnsupported is returned by Open on platforms without a native toolkit.
var ErrUnsupported = stderrors.New("native toolkit not supported on " + runtime.GOOS)

// Toolkit is never constructed on this platform.
type Toolkit struct {
	platform.Toolkit
}

// Open always fails on this platform.
func Open(opts ...Option) (*Toolkit, error) {
	o := newOptions(opts)
	o.logger.Debug("native toolkit unavailable", "goos", runtime.GOOS)
	return nil, errors.New("ffi.Open", errors.KindLibrary, 0, ErrUnsupported)
}

// Path returns the empty string.
func (t *Toolkit) Path() string { return "" }

// Close is a no-op.
func (t *Toolkit) Close() error { return nil }
