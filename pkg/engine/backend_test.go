package engine_test

import (
	"sync"
	"testing"
	"time"

	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/errors"
	"github.com/hyprbind/hyprbind/pkg/headless"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

func newRuntime(t *testing.T) (*engine.Runtime, *headless.Toolkit, *headless.FakeClock) {
	t.Helper()
	clock := headless.NewFakeClock()
	tk := headless.New(headless.WithClock(clock))
	return engine.NewRuntime(tk, engine.WithLogger(engine.DiscardLogger())), tk, clock
}

func mustCreate(t *testing.T, rt *engine.Runtime) *engine.Backend {
	t.Helper()
	b, err := rt.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = b.Destroy() })
	return b
}

func TestCreateReturnsLiveInstance(t *testing.T) {
	rt, tk, _ := newRuntime(t)

	first := mustCreate(t, rt)
	second := mustCreate(t, rt)
	if first != second {
		t.Fatal("Create without Destroy must return the live backend")
	}
	if tk.CallCount("CreateBackend") != 1 {
		t.Errorf("native backends created = %d, want 1", tk.CallCount("CreateBackend"))
	}
	if rt.Current() != first {
		t.Error("Current must return the live backend")
	}

	if err := first.Destroy(); err != nil {
		t.Fatal(err)
	}
	if rt.Current() != nil {
		t.Error("Destroy must clear the slot")
	}

	third := mustCreate(t, rt)
	if third == first {
		t.Error("Create after Destroy must return a new backend")
	}
	if third.State() != engine.StateCreated {
		t.Errorf("State = %s, want created", third.State())
	}
}

func TestCreateFailure(t *testing.T) {
	rt, tk, _ := newRuntime(t)
	tk.FailNext(platform.KindBackend)

	b, err := rt.Create()
	if b != nil || !errors.Is(err, errors.ErrBackendCreationFailed) {
		t.Fatalf("Create = %v, %v; want ErrBackendCreationFailed", b, err)
	}
	if rt.Current() != nil {
		t.Error("failed creation must leave the slot empty")
	}
	// The failure is not sticky.
	mustCreate(t, rt)
}

// stallingToolkit parks the first DestroyBackend until release is closed.
type stallingToolkit struct {
	*headless.Toolkit
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (s *stallingToolkit) DestroyBackend(h platform.Handle) {
	s.once.Do(func() {
		close(s.entered)
		<-s.release
	})
	s.Toolkit.DestroyBackend(h)
}

func TestCreateWaitsForDestroy(t *testing.T) {
	tk := &stallingToolkit{
		Toolkit: headless.New(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	rt := engine.NewRuntime(tk, engine.WithLogger(engine.DiscardLogger()))
	first := mustCreate(t, rt)

	destroyed := make(chan error, 1)
	go func() { destroyed <- first.Destroy() }()
	<-tk.entered

	created := make(chan *engine.Backend, 1)
	go func() {
		b, err := rt.Create()
		if err != nil {
			t.Errorf("Create: %v", err)
		}
		created <- b
	}()

	select {
	case <-created:
		t.Fatal("Create returned while the previous native backend was still being destroyed")
	case <-time.After(50 * time.Millisecond):
	}

	close(tk.release)
	mustOK(t, <-destroyed)
	second := <-created
	if second == nil || second == first {
		t.Fatalf("Create after Destroy = %p, want a new backend", second)
	}
	t.Cleanup(func() { _ = second.Destroy() })

	if live := tk.CallCount("CreateBackend") - tk.CallCount("DestroyBackend"); live != 1 {
		t.Errorf("native backends live = %d, want 1", live)
	}
	if rt.Current() != second {
		t.Error("Current must return the new backend")
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	rt, tk, _ := newRuntime(t)
	b := mustCreate(t, rt)

	for range 3 {
		if err := b.Destroy(); err != nil {
			t.Fatalf("Destroy: %v", err)
		}
	}
	if n := tk.CallCount("DestroyBackend"); n != 1 {
		t.Errorf("native destroy calls = %d, want 1", n)
	}
	if b.State() != engine.StateDestroyed {
		t.Errorf("State = %s, want destroyed", b.State())
	}
	var nilBackend *engine.Backend
	if err := nilBackend.Destroy(); err != nil {
		t.Errorf("nil Destroy = %v", err)
	}
}

func TestDestroyedBackendRejectsWork(t *testing.T) {
	rt, tk, _ := newRuntime(t)
	b := mustCreate(t, rt)
	if err := b.Destroy(); err != nil {
		t.Fatal(err)
	}
	before := len(tk.Calls())

	checks := map[string]error{
		"Live":      b.Live(),
		"EnterLoop": b.EnterLoop(),
		"AddTimer":  b.AddTimer(time.Second, func() {}),
		"AddIdle":   b.AddIdle(func() {}),
	}
	for name, err := range checks {
		if !errors.Is(err, errors.ErrNotInitialized) {
			t.Errorf("%s = %v, want ErrNotInitialized", name, err)
		}
	}
	if after := len(tk.Calls()); after != before {
		t.Errorf("destroyed backend made %d native calls", after-before)
	}

	var nilBackend *engine.Backend
	if err := nilBackend.Live(); !errors.Is(err, errors.ErrNotInitialized) {
		t.Errorf("nil Live = %v", err)
	}
}

func TestTimersAndIdleRunInsideLoop(t *testing.T) {
	rt, _, clock := newRuntime(t)
	b := mustCreate(t, rt)
	start := clock.Now()

	var order []string
	var states []engine.State
	mustOK(t, b.AddTimer(200*time.Millisecond, func() {
		order = append(order, "timer-200")
		states = append(states, b.State())
	}))
	mustOK(t, b.AddTimer(50*time.Millisecond, func() {
		order = append(order, "timer-50")
		mustOK(t, b.AddIdle(func() { order = append(order, "idle-from-timer") }))
	}))
	mustOK(t, b.AddIdle(func() { order = append(order, "idle") }))

	if err := b.EnterLoop(); err != nil {
		t.Fatal(err)
	}

	want := []string{"idle", "timer-50", "idle-from-timer", "timer-200"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if len(states) != 1 || states[0] != engine.StateRunning {
		t.Errorf("state inside handler = %v, want running", states)
	}
	if b.State() != engine.StateCreated {
		t.Errorf("State after loop = %s, want created", b.State())
	}
	if elapsed := clock.Now().Sub(start); elapsed < 200*time.Millisecond {
		t.Errorf("timer fired after %v, before its deadline", elapsed)
	}

	stats := b.Stats()
	if stats.TimersScheduled != 2 || stats.TimersFired != 2 || stats.IdleScheduled != 2 || stats.IdleFired != 2 {
		t.Errorf("Stats = %+v", stats)
	}
	if stats.Callbacks != 0 {
		t.Errorf("fired one-shots still held: %d", stats.Callbacks)
	}
}

func TestEnterLoopTwice(t *testing.T) {
	rt, _, _ := newRuntime(t)
	b := mustCreate(t, rt)
	var inner error
	mustOK(t, b.AddIdle(func() { inner = b.EnterLoop() }))

	mustOK(t, b.EnterLoop())

	if !errors.Is(inner, errors.ErrLoopRunning) {
		t.Errorf("nested EnterLoop = %v, want ErrLoopRunning", inner)
	}
}

func TestDestroyFromHandler(t *testing.T) {
	rt, tk, _ := newRuntime(t)
	b := mustCreate(t, rt)
	fired := false
	mustOK(t, b.AddIdle(func() { mustOK(t, b.Destroy()) }))
	mustOK(t, b.AddTimer(time.Second, func() { fired = true }))

	mustOK(t, b.EnterLoop())

	if b.State() != engine.StateDestroyed {
		t.Errorf("State = %s, want destroyed", b.State())
	}
	if fired {
		t.Error("timer fired after its backend was destroyed")
	}
	if timers, idle := tk.Pending(); timers != 0 || idle != 0 {
		t.Errorf("native still holds %d timers and %d idle tasks", timers, idle)
	}
}

func TestDestroyReleasesPendingCallbacks(t *testing.T) {
	rt, _, _ := newRuntime(t)
	b := mustCreate(t, rt)
	bridge := b.Bridge()
	mustOK(t, b.AddTimer(time.Hour, func() {}))
	mustOK(t, b.AddIdle(func() {}))
	if bridge.Len() != 2 {
		t.Fatalf("bridge Len = %d, want 2", bridge.Len())
	}

	mustOK(t, b.Destroy())

	if bridge.Len() != 0 {
		t.Errorf("bridge Len after Destroy = %d, want 0", bridge.Len())
	}
}

func TestNilCallbacksAreIgnored(t *testing.T) {
	rt, tk, _ := newRuntime(t)
	b := mustCreate(t, rt)
	mustOK(t, b.AddTimer(time.Second, nil))
	mustOK(t, b.AddIdle(nil))
	if tk.CallCount("AddTimer")+tk.CallCount("AddIdle") != 0 {
		t.Error("nil callbacks must not be scheduled")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    engine.State
		want string
	}{
		{engine.StateUninitialized, "uninitialized"},
		{engine.StateCreated, "created"},
		{engine.StateRunning, "running"},
		{engine.StateDestroyed, "destroyed"},
		{engine.State(42), "unknown(42)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d) = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
