// Package ffi implements platform.Toolkit on top of the libhyprbind shared
// library, loaded at run time with purego. No cgo is involved: the C ABI in
// include/hyprbind.h is mirrored by Go structs and bound symbol by symbol.
//
// The library calls back into Go through a single trampoline that carries
// the listener token and a pointer to an hb_event. The trampoline forwards
// the converted event to the dispatcher of the toolkit that installed it
// last, so only one Toolkit should be live in a process at a time.
//
// On platforms other than linux Open always fails with ErrUnsupported.
package ffi

import (
	"os"

	"github.com/charmbracelet/log"
)

// DefaultLibrary is the library name handed to the dynamic loader when no
// path is configured.
const DefaultLibrary = "libhyprbind.so"

// LibraryEnv names the environment variable consulted for the library path.
const LibraryEnv = "HYPRBIND_LIBRARY"

type options struct {
	path   string
	logger *log.Logger
}

// Option configures Open.
type Option func(*options)

// WithLibrary sets the path of the shared library. An empty path keeps the
// default.
func WithLibrary(path string) Option {
	return func(o *options) {
		if path != "" {
			o.path = path
		}
	}
}

// WithLogger sets the logger for library loading and dropped events.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		path:   DefaultLibrary,
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "ffi", Level: log.WarnLevel}),
	}
	if p := os.Getenv(LibraryEnv); p != "" {
		o.path = p
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
