// Package engine manages the native backend: the one event loop a process
// may run, its timers and idle callbacks, and the teardown of everything
// created through it.
package engine

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/hyprbind/hyprbind/pkg/errors"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

// Runtime is the exclusive creation slot for a Backend over one Toolkit.
// The native side supports a single event loop, so a Runtime hands out at
// most one live Backend at a time. Create one Runtime per loaded toolkit and
// pass it (or the Backend it returns) to whatever needs it.
type Runtime struct {
	toolkit platform.Toolkit
	logger  *log.Logger

	mu      sync.Mutex
	current *Backend
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRuntime returns a Runtime creating backends on tk.
func NewRuntime(tk platform.Toolkit, opts ...Option) *Runtime {
	r := &Runtime{
		toolkit: tk,
		logger:  log.NewWithOptions(os.Stderr, log.Options{Prefix: "engine", Level: log.InfoLevel}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DiscardLogger returns a logger that drops everything, for tests and tools
// that want a quiet runtime.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard)
}

// Create returns the live Backend, creating it if there is none. Two calls
// without an intervening Destroy return the same instance.
func (r *Runtime) Create() (*Backend, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil && r.current.State() != StateDestroyed {
		return r.current, nil
	}

	bridge := platform.NewBridge()
	r.toolkit.SetDispatcher(bridge)
	h := r.toolkit.CreateBackend()
	if !h.Valid() {
		return nil, errors.New("engine.Runtime.Create", errors.KindBackend, 0, errors.ErrBackendCreationFailed)
	}

	b := newBackend(r, h, bridge)
	r.current = b
	r.logger.Debug("backend created", "handle", h)
	return b, nil
}

// Current returns the live Backend or nil.
func (r *Runtime) Current() *Backend {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil || r.current.State() == StateDestroyed {
		return nil
	}
	return r.current
}

// Toolkit returns the toolkit backends are created on.
func (r *Runtime) Toolkit() platform.Toolkit {
	return r.toolkit
}

func (r *Runtime) destroy(b *Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// The state flips first so a Destroy reentering from native teardown
	// returns before it reaches the lock.
	if State(b.state.Swap(int32(StateDestroyed))) == StateDestroyed {
		return
	}
	if !b.destroyed.Swap(true) {
		r.toolkit.DestroyBackend(b.handle)
	}
	// Native has forgotten every token now; the table can let go.
	handles := b.registry.Reset()
	callbacks := b.bridge.Reset()
	if r.current == b {
		r.current = nil
	}
	r.logger.Debug("backend destroyed", "handle", b.handle, "handles", len(handles), "callbacks", callbacks)
}
