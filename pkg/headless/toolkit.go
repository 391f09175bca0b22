// Package headless implements platform.Toolkit in memory.
//
// The headless toolkit keeps a node per native object, records every call
// made into it and lets callers inject the events a real windowing system
// would raise. It backs the tests of every other package and the
// "hyprbind check" command.
package headless

import (
	"cmp"
	"fmt"
	"image/color"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/hyprbind/hyprbind/pkg/platform"
)

// Call records one call made into the toolkit.
type Call struct {
	Op     string
	Handle platform.Handle
	// Other is the second handle of tree calls (the child), or zero.
	Other platform.Handle
}

func (c Call) String() string {
	if c.Other != platform.NullHandle {
		return fmt.Sprintf("%s(%s, %s)", c.Op, c.Handle, c.Other)
	}
	return fmt.Sprintf("%s(%s)", c.Op, c.Handle)
}

// Node is the simulated native state of one object. Values returned by
// Toolkit.Node are copies.
type Node struct {
	Handle   platform.Handle
	Kind     platform.Kind
	Parent   platform.Handle
	Children []platform.Handle

	// Window state.
	Root      platform.Handle
	Title     string
	Class     string
	Open      bool
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int

	// Geometry. Width and Height are the requested size; <= 0 means auto.
	Width    int
	Height   int
	Margin   [4]int // top, right, bottom, left
	GrowH    bool
	GrowV    bool
	Align    platform.Align
	Position platform.PositionMode
	X, Y     int

	Label           string
	Content         string
	Text            string
	Placeholder     string
	FontSize        int
	FontFamily      string
	Color           color.RGBA
	BorderColor     color.RGBA
	Alpha           float64
	BorderThickness int
	Rounding        int
	Thickness       int
	Points          []float64
	NoBorder        bool
	NoBackground    bool
	Checked         bool
	ScrollX         bool
	ScrollY         bool
	BlockUserScroll bool
	OffsetX         int
	OffsetY         int
	Gap             int

	Listeners map[platform.EventKind]platform.Token
}

func (n *Node) clone() Node {
	c := *n
	c.Children = slices.Clone(n.Children)
	c.Points = slices.Clone(n.Points)
	c.Listeners = make(map[platform.EventKind]platform.Token, len(n.Listeners))
	for k, v := range n.Listeners {
		c.Listeners[k] = v
	}
	return c
}

type timer struct {
	due     time.Time
	seq     uint64
	backend platform.Handle
	token   platform.Token
}

type idleTask struct {
	backend platform.Handle
	token   platform.Token
}

// Option configures a Toolkit.
type Option func(*Toolkit)

// WithClock sets the clock timers are measured against.
func WithClock(c Clock) Option {
	return func(t *Toolkit) {
		if c != nil {
			t.clock = c
		}
	}
}

// WithLogger sets the logger for dropped events and loop transitions.
func WithLogger(l *log.Logger) Option {
	return func(t *Toolkit) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithFace sets the font face used to measure auto-sized text.
func WithFace(f font.Face) Option {
	return func(t *Toolkit) {
		if f != nil {
			t.face = f
		}
	}
}

// Toolkit is an in-memory platform.Toolkit. It is safe for concurrent use,
// and it never holds its lock while delivering an event, so handlers may
// call back into it.
type Toolkit struct {
	mu         sync.Mutex
	dispatcher platform.Dispatcher
	clock      Clock
	face       font.Face
	logger     *log.Logger

	next     platform.Handle
	backends map[platform.Handle]bool
	nodes    map[platform.Handle]*Node
	timers   []timer
	seq      uint64
	idle     []idleTask
	calls    []Call
	fail     map[platform.Kind]int

	running    bool
	quit       bool
	openCount  int
	everOpened bool
}

var _ platform.Toolkit = (*Toolkit)(nil)

// New returns an empty headless toolkit.
func New(opts ...Option) *Toolkit {
	t := &Toolkit{
		clock:    systemClock{},
		face:     basicfont.Face7x13,
		logger:   log.NewWithOptions(os.Stderr, log.Options{Prefix: "headless", Level: log.WarnLevel}),
		next:     0x1000,
		backends: make(map[platform.Handle]bool),
		nodes:    make(map[platform.Handle]*Node),
		fail:     make(map[platform.Kind]int),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// FailNext makes the next creation call for kind return the null handle.
// Calls accumulate: FailNext twice fails the next two creations.
func (t *Toolkit) FailNext(kind platform.Kind) {
	t.mu.Lock()
	t.fail[kind]++
	t.mu.Unlock()
}

// Calls returns every call made into the toolkit so far.
func (t *Toolkit) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.calls)
}

// CallCount returns how many calls named op were made.
func (t *Toolkit) CallCount(op string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, c := range t.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Node returns a snapshot of the object behind h.
func (t *Toolkit) Node(h platform.Handle) (Node, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.nodes[h]
	if !ok {
		return Node{}, false
	}
	return n.clone(), true
}

// Exists reports whether h names a live object.
func (t *Toolkit) Exists(h platform.Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.nodes[h]
	return ok
}

// Len returns the number of live objects, backends excluded.
func (t *Toolkit) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.nodes)
}

func (t *Toolkit) record(op string, h, other platform.Handle) {
	t.calls = append(t.calls, Call{Op: op, Handle: h, Other: other})
}

func (t *Toolkit) newHandle() platform.Handle {
	t.next += 0x10
	return t.next
}

// alloc creates a node of kind unless a failure was injected for it.
func (t *Toolkit) alloc(kind platform.Kind) *Node {
	if t.fail[kind] > 0 {
		t.fail[kind]--
		return nil
	}
	n := &Node{
		Handle:    t.newHandle(),
		Kind:      kind,
		Listeners: make(map[platform.EventKind]platform.Token),
	}
	t.nodes[n.Handle] = n
	return n
}

func (t *Toolkit) deliver(token platform.Token, ev platform.Event) {
	t.mu.Lock()
	d := t.dispatcher
	t.mu.Unlock()
	if d == nil {
		t.logger.Warn("event dropped: no dispatcher", "token", token, "kind", ev.Kind)
		return
	}
	d.Deliver(token, ev)
}

// SetDispatcher implements platform.BackendAPI.
func (t *Toolkit) SetDispatcher(d platform.Dispatcher) {
	t.mu.Lock()
	t.dispatcher = d
	t.mu.Unlock()
}

// CreateBackend implements platform.BackendAPI.
func (t *Toolkit) CreateBackend() platform.Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fail[platform.KindBackend] > 0 {
		t.fail[platform.KindBackend]--
		t.record("CreateBackend", platform.NullHandle, 0)
		return platform.NullHandle
	}
	h := t.newHandle()
	t.backends[h] = true
	t.record("CreateBackend", h, 0)
	return h
}

// DestroyBackend implements platform.BackendAPI. Every object, timer and
// idle task goes with the backend.
func (t *Toolkit) DestroyBackend(backend platform.Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("DestroyBackend", backend, 0)
	if !t.backends[backend] {
		return
	}
	delete(t.backends, backend)
	t.timers = slices.DeleteFunc(t.timers, func(tm timer) bool { return tm.backend == backend })
	t.idle = slices.DeleteFunc(t.idle, func(it idleTask) bool { return it.backend == backend })
	t.nodes = make(map[platform.Handle]*Node)
	t.openCount = 0
}

// AddTimer implements platform.BackendAPI.
func (t *Toolkit) AddTimer(backend platform.Handle, timeout time.Duration, token platform.Token) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("AddTimer", backend, 0)
	t.seq++
	t.timers = append(t.timers, timer{
		due:     t.clock.Now().Add(timeout),
		seq:     t.seq,
		backend: backend,
		token:   token,
	})
}

// AddIdle implements platform.BackendAPI.
func (t *Toolkit) AddIdle(backend platform.Handle, token platform.Token) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("AddIdle", backend, 0)
	t.idle = append(t.idle, idleTask{backend: backend, token: token})
}

// Pending returns the number of scheduled timers and idle tasks.
func (t *Toolkit) Pending() (timers, idle int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers), len(t.idle)
}

// FireDue delivers every timer whose deadline has passed, earliest first,
// and returns how many fired.
func (t *Toolkit) FireDue() int {
	t.mu.Lock()
	now := t.clock.Now()
	var due, rest []timer
	for _, tm := range t.timers {
		if tm.due.After(now) {
			rest = append(rest, tm)
		} else {
			due = append(due, tm)
		}
	}
	t.timers = rest
	t.mu.Unlock()

	slices.SortFunc(due, func(a, b timer) int {
		if c := a.due.Compare(b.due); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})
	fired := 0
	for _, tm := range due {
		if !t.backendAlive(tm.backend) {
			continue
		}
		t.deliver(tm.token, platform.Event{Kind: platform.EventTimer})
		fired++
	}
	return fired
}

// DrainIdle delivers the idle tasks queued so far and returns how many ran.
// Tasks queued by those handlers run on the next drain.
func (t *Toolkit) DrainIdle() int {
	t.mu.Lock()
	batch := t.idle
	t.idle = nil
	t.mu.Unlock()

	ran := 0
	for _, it := range batch {
		if !t.backendAlive(it.backend) {
			continue
		}
		t.deliver(it.token, platform.Event{Kind: platform.EventIdle})
		ran++
	}
	return ran
}

func (t *Toolkit) backendAlive(h platform.Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.backends[h]
}

// Quit makes a running loop return after the current iteration.
func (t *Toolkit) Quit() {
	t.mu.Lock()
	t.quit = true
	t.mu.Unlock()
}

// Running reports whether EnterLoop is executing.
func (t *Toolkit) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// EnterLoop implements platform.BackendAPI. The loop drains idle tasks and
// fires due timers, sleeping on the clock until the next deadline. It
// returns when Quit is called, the backend is destroyed, every opened
// window has been closed, or no scheduled work remains. The headless
// toolkit has no input source of its own, so an idle loop with nothing
// scheduled can never wake up again.
func (t *Toolkit) EnterLoop(backend platform.Handle) {
	t.mu.Lock()
	t.record("EnterLoop", backend, 0)
	if t.running || !t.backends[backend] {
		t.mu.Unlock()
		return
	}
	t.running = true
	t.quit = false
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
	}()

	for {
		worked := t.DrainIdle() + t.FireDue()
		wait, pending, exit := t.loopState(backend)
		if exit {
			t.logger.Debug("loop exit requested", "backend", backend)
			return
		}
		if worked > 0 {
			continue
		}
		if !pending {
			t.logger.Debug("loop has no scheduled work", "backend", backend)
			return
		}
		if wait > 0 {
			t.clock.Sleep(wait)
		}
	}
}

func (t *Toolkit) loopState(backend platform.Handle) (wait time.Duration, pending, exit bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	exit = t.quit || !t.backends[backend] || (t.everOpened && t.openCount == 0)
	pending = len(t.timers) > 0 || len(t.idle) > 0
	if len(t.idle) > 0 || len(t.timers) == 0 {
		return 0, pending, exit
	}
	next := t.timers[0].due
	for _, tm := range t.timers[1:] {
		if tm.due.Before(next) {
			next = tm.due
		}
	}
	return next.Sub(t.clock.Now()), pending, exit
}
