package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestBindErrorString(t *testing.T) {
	err := &BindError{
		Op:   "widgets.Button.SetLabel",
		Kind: KindInvalidHandle,
		Err:  ErrInvalidHandle,
	}
	want := "widgets.Button.SetLabel [invalid-handle]: invalid handle"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestBindErrorWithHandle(t *testing.T) {
	err := New("widgets.Element.SetSize", KindInvalidHandle, 0x2a, ErrInvalidHandle)
	if got := err.Error(); !strings.Contains(got, "handle=0x2a") {
		t.Errorf("error string %q should contain handle", got)
	}
}

func TestBindErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("outer: %w", New("op", KindCreation, 0, &CreationError{Widget: "button"}))
	if !Is(err, ErrCreationFailed) {
		t.Error("expected chain to match ErrCreationFailed")
	}
	var ce *CreationError
	if !As(err, &ce) {
		t.Fatal("expected chain to contain *CreationError")
	}
	if ce.Widget != "button" {
		t.Errorf("Widget = %q, want button", ce.Widget)
	}
	if Is(err, ErrInvalidHandle) {
		t.Error("creation error must not match ErrInvalidHandle")
	}
}

func TestCreationErrorString(t *testing.T) {
	err := &CreationError{Widget: "scroll area"}
	if got, want := err.Error(), "failed to create scroll area"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindCreation, "creation"},
		{KindDuplicateHandle, "duplicate-handle"},
		{KindInvalidHandle, "invalid-handle"},
		{KindBackend, "backend"},
		{KindNotInitialized, "not-initialized"},
		{KindTree, "tree"},
		{KindCallback, "callback"},
		{KindPanic, "panic"},
		{KindLibrary, "library"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	tests := []struct {
		err  *PanicError
		want string
	}{
		{&PanicError{Value: "boom"}, "panic: boom"},
		{&PanicError{Op: "ffi.trampoline", Value: "boom"}, "panic in ffi.trampoline: boom"},
		{
			&PanicError{Op: "platform.Bridge.Deliver", Handle: 0x2a, Event: "click", Value: "boom"},
			"panic in platform.Bridge.Deliver (click handler) handle=0x2a: boom",
		},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestReport(t *testing.T) {
	var captured *BindError
	handler := &testHandler{onError: func(err *BindError) { captured = err }}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(&BindError{Op: "test.op", Kind: KindCallback, Err: ErrStaleToken})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
	if !strings.Contains(captured.StackTrace, "TestReport") {
		t.Errorf("StackTrace should name the reporter:\n%s", captured.StackTrace)
	}
}

func TestReportNil(t *testing.T) {
	called := false
	oldHandler := DefaultHandler
	SetHandler(&testHandler{
		onError: func(*BindError) { called = true },
		onPanic: func(*PanicError) { called = true },
	})
	defer SetHandler(oldHandler)

	Report(nil)
	ReportPanic(nil)
	if called {
		t.Error("nil reports must not reach the handler")
	}
}

func TestBoundaryRecover(t *testing.T) {
	var captured []*PanicError
	oldHandler := DefaultHandler
	SetHandler(&testHandler{
		onPanic: func(err *PanicError) { captured = append(captured, err) },
		onError: func(err *BindError) { t.Errorf("unexpected error report %v", err) },
	})
	defer SetHandler(oldHandler)

	func() {
		defer Boundary{Op: "platform.Bridge.Deliver", Handle: 7, Event: "click"}.Recover()
		explode()
	}()

	if len(captured) != 1 {
		t.Fatalf("panics reported = %d, want 1", len(captured))
	}
	p := captured[0]
	if p.Op != "platform.Bridge.Deliver" || p.Handle != 7 || p.Event != "click" || p.Value != "kaboom" {
		t.Errorf("report = %+v", p)
	}
	if p.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
	first, _, _ := strings.Cut(p.StackTrace, "\n")
	if !strings.HasSuffix(first, ".explode") {
		t.Errorf("stack should start at the panicking call, got %q", first)
	}
}

func explode() { panic("kaboom") }

func TestBoundaryRecoverNoPanic(t *testing.T) {
	called := false
	oldHandler := DefaultHandler
	SetHandler(&testHandler{onPanic: func(*PanicError) { called = true }})
	defer SetHandler(oldHandler)

	func() {
		defer Boundary{Op: "test.nopanic"}.Recover()
	}()
	if called {
		t.Error("handler should not be called without a panic")
	}
}

func TestSetHandlerNil(t *testing.T) {
	oldHandler := DefaultHandler
	defer SetHandler(oldHandler)

	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Verbose: true, Logger: log.New(&buf)}

	h.HandleError(&BindError{Op: "widgets.Text.SetContent", Kind: KindInvalidHandle, Handle: 7, Err: ErrInvalidHandle, StackTrace: "frame"})
	h.HandlePanic(&PanicError{Op: "platform.Bridge.Deliver", Handle: 9, Event: "scroll", Value: "boom"})
	h.HandleError(nil)
	h.HandlePanic(nil)

	out := buf.String()
	for _, want := range []string{"binding error", "widgets.Text.SetContent", "invalid-handle", "frame", "recovered panic", "boom", "scroll"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testHandler struct {
	onError func(*BindError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *BindError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
