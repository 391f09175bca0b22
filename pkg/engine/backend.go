package engine

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hyprbind/hyprbind/pkg/errors"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

// State is the lifecycle state of a Backend.
type State int32

const (
	// StateUninitialized is the state before the native backend exists.
	StateUninitialized State = iota
	// StateCreated indicates a live backend whose loop is not running.
	StateCreated
	// StateRunning indicates the event loop is running.
	StateRunning
	// StateDestroyed indicates the native backend was released (terminal for
	// this instance; the Runtime may create a new one).
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// Backend owns the native event loop together with the handle registry and
// callback bridge of every object created through it. Widgets take the
// Backend explicitly; nothing reaches it through package state.
type Backend struct {
	rt       *Runtime
	handle   platform.Handle
	toolkit  platform.Toolkit
	registry *platform.Registry
	bridge   *platform.Bridge
	logger   *log.Logger

	state     atomic.Int32
	destroyed *atomic.Bool

	timersScheduled atomic.Uint64
	timersFired     atomic.Uint64
	idleScheduled   atomic.Uint64
	idleFired       atomic.Uint64
}

// leakGuard is what the cleanup backstop needs; it must not reference the
// Backend itself or the cleanup would never run.
type leakGuard struct {
	toolkit   platform.Toolkit
	handle    platform.Handle
	destroyed *atomic.Bool
	logger    *log.Logger
}

func newBackend(rt *Runtime, h platform.Handle, bridge *platform.Bridge) *Backend {
	b := &Backend{
		rt:        rt,
		handle:    h,
		toolkit:   rt.toolkit,
		registry:  platform.NewRegistry(),
		bridge:    bridge,
		logger:    rt.logger,
		destroyed: new(atomic.Bool),
	}
	b.state.Store(int32(StateCreated))

	runtime.AddCleanup(b, func(g leakGuard) {
		if g.destroyed.Swap(true) {
			return
		}
		g.logger.Warn("backend leaked without Destroy; releasing from cleanup", "handle", g.handle)
		g.toolkit.DestroyBackend(g.handle)
	}, leakGuard{toolkit: b.toolkit, handle: h, destroyed: b.destroyed, logger: b.logger})
	return b
}

// Handle returns the native backend handle.
func (b *Backend) Handle() platform.Handle { return b.handle }

// Toolkit returns the native toolkit.
func (b *Backend) Toolkit() platform.Toolkit { return b.toolkit }

// Registry returns the handle registry of objects created through b.
func (b *Backend) Registry() *platform.Registry { return b.registry }

// Bridge returns the callback table native events are delivered through.
func (b *Backend) Bridge() *platform.Bridge { return b.bridge }

// Logger returns the lifecycle logger.
func (b *Backend) Logger() *log.Logger { return b.logger }

// State returns the current lifecycle state. A nil Backend is uninitialized.
func (b *Backend) State() State {
	if b == nil {
		return StateUninitialized
	}
	return State(b.state.Load())
}

// Live returns nil if b can be used to construct and drive objects, and an
// error wrapping ErrNotInitialized otherwise.
func (b *Backend) Live() error {
	switch b.State() {
	case StateCreated, StateRunning:
		return nil
	default:
		return errors.New("engine.Backend", errors.KindNotInitialized, 0,
			fmt.Errorf("%w (state %s)", errors.ErrNotInitialized, b.State()))
	}
}

// EnterLoop runs the native event loop on the calling goroutine's OS thread
// and blocks until the toolkit exits it. Every event handler runs from
// inside this call.
func (b *Backend) EnterLoop() error {
	if err := b.Live(); err != nil {
		return err
	}
	if !b.state.CompareAndSwap(int32(StateCreated), int32(StateRunning)) {
		return errors.New("engine.Backend.EnterLoop", errors.KindBackend, uint64(b.handle), errors.ErrLoopRunning)
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	b.logger.Debug("entering event loop", "handle", b.handle)
	b.toolkit.EnterLoop(b.handle)
	b.logger.Debug("event loop exited", "handle", b.handle)

	// A handler may have destroyed the backend from inside the loop.
	b.state.CompareAndSwap(int32(StateRunning), int32(StateCreated))
	return nil
}

// AddTimer schedules fn on the event-loop thread no earlier than timeout from
// now. The backend holds fn until it fires or the backend is destroyed.
func (b *Backend) AddTimer(timeout time.Duration, fn func()) error {
	if err := b.Live(); err != nil {
		return err
	}
	if fn == nil {
		return nil
	}
	if timeout < 0 {
		timeout = 0
	}
	tok := b.bridge.RegisterOnce(b.handle, platform.EventTimer, func(platform.Event) {
		b.timersFired.Add(1)
		fn()
	})
	b.timersScheduled.Add(1)
	b.toolkit.AddTimer(b.handle, timeout, tok)
	return nil
}

// AddIdle schedules fn on the event-loop thread after the pending events
// drain. The backend holds fn until it fires or the backend is destroyed.
func (b *Backend) AddIdle(fn func()) error {
	if err := b.Live(); err != nil {
		return err
	}
	if fn == nil {
		return nil
	}
	tok := b.bridge.RegisterOnce(b.handle, platform.EventIdle, func(platform.Event) {
		b.idleFired.Add(1)
		fn()
	})
	b.idleScheduled.Add(1)
	b.toolkit.AddIdle(b.handle, tok)
	return nil
}

// Destroy releases the native backend, forgets every object created through
// it and frees the Runtime slot. Calling it again is a no-op. Destroy holds
// the Runtime's creation lock, so a concurrent Create waits for the native
// teardown to finish.
func (b *Backend) Destroy() error {
	if b == nil || b.State() == StateDestroyed {
		return nil
	}
	b.rt.destroy(b)
	return nil
}

// Stats is a snapshot of backend bookkeeping.
type Stats struct {
	Handles         int
	Callbacks       int
	TimersScheduled uint64
	TimersFired     uint64
	IdleScheduled   uint64
	IdleFired       uint64
}

// Stats returns current bookkeeping counters.
func (b *Backend) Stats() Stats {
	return Stats{
		Handles:         b.registry.Len(),
		Callbacks:       b.bridge.Len(),
		TimersScheduled: b.timersScheduled.Load(),
		TimersFired:     b.timersFired.Load(),
		IdleScheduled:   b.idleScheduled.Load(),
		IdleFired:       b.idleFired.Load(),
	}
}
