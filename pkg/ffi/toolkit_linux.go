//go:build linux

package ffi

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/purego"
	"golang.org/x/sys/unix"

	"github.com/hyprbind/hyprbind/pkg/errors"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

var (
	// purego can only create a bounded number of callbacks per process, so
	// every Toolkit shares one.
	trampolineOnce sync.Once
	trampolinePtr  uintptr

	// active receives events from the trampoline.
	active atomic.Pointer[Toolkit]
)

func trampoline(token uint64, ev *cEvent) uintptr {
	t := active.Load()
	if t == nil || ev == nil {
		return 0
	}
	defer errors.Boundary{Op: "ffi.trampoline", Event: platform.EventKind(ev.Kind).String()}.Recover()
	d := t.dispatcher.Load()
	if d == nil {
		t.logger.Warn("event dropped, no dispatcher", "token", token, "kind", platform.EventKind(ev.Kind))
		return 0
	}
	(*d).Deliver(platform.Token(token), ev.event())
	return 0
}

// Toolkit is a platform.Toolkit backed by libhyprbind.
type Toolkit struct {
	lib        *library
	path       string
	logger     *log.Logger
	dispatcher atomic.Pointer[platform.Dispatcher]
	closed     atomic.Bool
}

var _ platform.Toolkit = (*Toolkit)(nil)

// Open loads the library and binds its entry points. The library path comes
// from WithLibrary, then HYPRBIND_LIBRARY, then DefaultLibrary.
func Open(opts ...Option) (*Toolkit, error) {
	o := newOptions(opts)
	lib, err := loadLibrary(o.path)
	if err != nil {
		return nil, errors.New("ffi.Open", errors.KindLibrary, 0, err)
	}
	o.logger.Debug("library loaded", "path", o.path)
	return &Toolkit{lib: lib, path: o.path, logger: o.logger}, nil
}

// Path returns the path the library was loaded from.
func (t *Toolkit) Path() string { return t.path }

// Close unloads the library. The toolkit must not be used afterwards.
func (t *Toolkit) Close() error {
	if t.closed.Swap(true) {
		return nil
	}
	active.CompareAndSwap(t, nil)
	if err := t.lib.close(); err != nil {
		return errors.New("ffi.Toolkit.Close", errors.KindLibrary, 0, err)
	}
	return nil
}

// SetDispatcher installs d and routes the library's events to it.
func (t *Toolkit) SetDispatcher(d platform.Dispatcher) {
	t.dispatcher.Store(&d)
	trampolineOnce.Do(func() {
		trampolinePtr = purego.NewCallback(trampoline)
	})
	active.Store(t)
	t.lib.setDispatcher(trampolinePtr)
}

// CreateBackend implements platform.BackendAPI.
func (t *Toolkit) CreateBackend() platform.Handle {
	return platform.Handle(t.lib.backendCreate())
}

// EnterLoop implements platform.BackendAPI.
func (t *Toolkit) EnterLoop(backend platform.Handle) {
	t.lib.backendEnterLoop(uint64(backend))
}

// AddTimer implements platform.BackendAPI. The timeout is sent in
// milliseconds, clamped to the uint32 range.
func (t *Toolkit) AddTimer(backend platform.Handle, timeout time.Duration, token platform.Token) {
	ms := timeout.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	if ms > int64(^uint32(0)) {
		ms = int64(^uint32(0))
	}
	t.lib.backendAddTimer(uint64(backend), uint32(ms), uint64(token))
}

// AddIdle implements platform.BackendAPI.
func (t *Toolkit) AddIdle(backend platform.Handle, token platform.Token) {
	t.lib.backendAddIdle(uint64(backend), uint64(token))
}

// DestroyBackend implements platform.BackendAPI.
func (t *Toolkit) DestroyBackend(backend platform.Handle) {
	t.lib.backendDestroy(uint64(backend))
}

// CreateWindow implements platform.WindowAPI.
func (t *Toolkit) CreateWindow(p platform.WindowParams) platform.Handle {
	var pn pins
	defer pn.release()
	c := cWindowParams{
		Title:     pn.str(p.Title),
		Class:     pn.str(p.Class),
		Width:     int32(p.Width),
		Height:    int32(p.Height),
		MinWidth:  int32(p.MinWidth),
		MinHeight: int32(p.MinHeight),
		MaxWidth:  int32(p.MaxWidth),
		MaxHeight: int32(p.MaxHeight),
	}
	return platform.Handle(t.lib.windowCreate(&c))
}

// WindowRoot implements platform.WindowAPI.
func (t *Toolkit) WindowRoot(window platform.Handle) platform.Handle {
	return platform.Handle(t.lib.windowRoot(uint64(window)))
}

// OpenWindow implements platform.WindowAPI.
func (t *Toolkit) OpenWindow(window platform.Handle) {
	t.lib.windowOpen(uint64(window))
}

// CloseWindow implements platform.WindowAPI.
func (t *Toolkit) CloseWindow(window platform.Handle) {
	t.lib.windowClose(uint64(window))
}

// WindowSize implements platform.WindowAPI.
func (t *Toolkit) WindowSize(window platform.Handle) (width, height int) {
	var w, h int32
	t.lib.windowSize(uint64(window), &w, &h)
	return int(w), int(h)
}

// DestroyWindow implements platform.WindowAPI.
func (t *Toolkit) DestroyWindow(window platform.Handle) {
	t.lib.windowDestroy(uint64(window))
}

// DestroyElement implements platform.ElementAPI.
func (t *Toolkit) DestroyElement(h platform.Handle) {
	t.lib.elementDestroy(uint64(h))
}

// AddChild implements platform.ElementAPI.
func (t *Toolkit) AddChild(parent, child platform.Handle) {
	t.lib.elementAddChild(uint64(parent), uint64(child))
}

// RemoveChild implements platform.ElementAPI.
func (t *Toolkit) RemoveChild(parent, child platform.Handle) {
	t.lib.elementRemoveChild(uint64(parent), uint64(child))
}

// ClearChildren implements platform.ElementAPI.
func (t *Toolkit) ClearChildren(parent platform.Handle) {
	t.lib.elementClearChildren(uint64(parent))
}

// SetSize implements platform.ElementAPI.
func (t *Toolkit) SetSize(h platform.Handle, width, height int) {
	t.lib.elementSetSize(uint64(h), int32(width), int32(height))
}

// SetMargin implements platform.ElementAPI.
func (t *Toolkit) SetMargin(h platform.Handle, top, right, bottom, left int) {
	t.lib.elementSetMargin(uint64(h), int32(top), int32(right), int32(bottom), int32(left))
}

// SetGrow implements platform.ElementAPI.
func (t *Toolkit) SetGrow(h platform.Handle, horizontal, vertical bool) {
	t.lib.elementSetGrow(uint64(h), cbool(horizontal), cbool(vertical))
}

// SetAlign implements platform.ElementAPI.
func (t *Toolkit) SetAlign(h platform.Handle, a platform.Align) {
	t.lib.elementSetAlign(uint64(h), int32(a))
}

// SetPositionMode implements platform.ElementAPI.
func (t *Toolkit) SetPositionMode(h platform.Handle, m platform.PositionMode) {
	t.lib.elementSetPositionMode(uint64(h), int32(m))
}

// SetAbsolutePosition implements platform.ElementAPI.
func (t *Toolkit) SetAbsolutePosition(h platform.Handle, x, y int) {
	t.lib.elementSetAbsolutePos(uint64(h), int32(x), int32(y))
}

// Listen implements platform.ElementAPI.
func (t *Toolkit) Listen(h platform.Handle, kind platform.EventKind, token platform.Token) {
	t.lib.listen(uint64(h), int32(kind), uint64(token))
}

// Unlisten implements platform.ElementAPI.
func (t *Toolkit) Unlisten(h platform.Handle, kind platform.EventKind) {
	t.lib.unlisten(uint64(h), int32(kind))
}

// CreateButton implements platform.WidgetAPI.
func (t *Toolkit) CreateButton(p platform.ButtonParams) platform.Handle {
	var pn pins
	defer pn.release()
	c := cButtonParams{
		Label:        pn.str(p.Label),
		Width:        int32(p.Width),
		Height:       int32(p.Height),
		FontSize:     int32(p.FontSize),
		NoBorder:     cbool(p.NoBorder),
		NoBackground: cbool(p.NoBackground),
	}
	return platform.Handle(t.lib.buttonCreate(&c))
}

// CreateText implements platform.WidgetAPI.
func (t *Toolkit) CreateText(p platform.TextParams) platform.Handle {
	var pn pins
	defer pn.release()
	c := cTextParams{
		Content:    pn.str(p.Content),
		FontFamily: pn.str(p.FontFamily),
		FontSize:   int32(p.FontSize),
		Color:      toColor(p.Color),
		Align:      int32(p.Align),
		Alpha:      float32(p.Alpha),
	}
	return platform.Handle(t.lib.textCreate(&c))
}

// CreateRectangle implements platform.WidgetAPI.
func (t *Toolkit) CreateRectangle(p platform.RectangleParams) platform.Handle {
	c := cRectangleParams{
		Color:           toColor(p.Color),
		BorderColor:     toColor(p.BorderColor),
		BorderThickness: int32(p.BorderThickness),
		Rounding:        int32(p.Rounding),
		Width:           int32(p.Width),
		Height:          int32(p.Height),
	}
	return platform.Handle(t.lib.rectangleCreate(&c))
}

// CreateLine implements platform.WidgetAPI. Points are passed as x,y
// pairs.
func (t *Toolkit) CreateLine(p platform.LineParams) platform.Handle {
	var pn pins
	defer pn.release()
	// An odd trailing coordinate has no partner and is not sent.
	points := p.Points[:len(p.Points)&^1]
	c := cLineParams{
		Color:     toColor(p.Color),
		Thickness: int32(p.Thickness),
		Points:    pn.floats(points),
		NumPoints: int32(len(points)),
		Width:     int32(p.Width),
		Height:    int32(p.Height),
	}
	return platform.Handle(t.lib.lineCreate(&c))
}

// CreateCheckbox implements platform.WidgetAPI.
func (t *Toolkit) CreateCheckbox(p platform.CheckboxParams) platform.Handle {
	var pn pins
	defer pn.release()
	c := cCheckboxParams{Label: pn.str(p.Label), Checked: cbool(p.Checked)}
	return platform.Handle(t.lib.checkboxCreate(&c))
}

// CreateTextbox implements platform.WidgetAPI.
func (t *Toolkit) CreateTextbox(p platform.TextboxParams) platform.Handle {
	var pn pins
	defer pn.release()
	c := cTextboxParams{
		Placeholder: pn.str(p.Placeholder),
		Text:        pn.str(p.Text),
		Width:       int32(p.Width),
		Height:      int32(p.Height),
	}
	return platform.Handle(t.lib.textboxCreate(&c))
}

// CreateScrollArea implements platform.WidgetAPI.
func (t *Toolkit) CreateScrollArea(p platform.ScrollAreaParams) platform.Handle {
	c := cScrollAreaParams{
		ScrollX:         cbool(p.ScrollX),
		ScrollY:         cbool(p.ScrollY),
		BlockUserScroll: cbool(p.BlockUserScroll),
		Width:           int32(p.Width),
		Height:          int32(p.Height),
	}
	return platform.Handle(t.lib.scrollAreaCreate(&c))
}

// CreateColumnLayout implements platform.WidgetAPI.
func (t *Toolkit) CreateColumnLayout(p platform.LayoutParams) platform.Handle {
	c := cLayoutParams{Gap: int32(p.Gap), Width: int32(p.Width), Height: int32(p.Height)}
	return platform.Handle(t.lib.columnLayoutCreate(&c))
}

// CreateRowLayout implements platform.WidgetAPI.
func (t *Toolkit) CreateRowLayout(p platform.LayoutParams) platform.Handle {
	c := cLayoutParams{Gap: int32(p.Gap), Width: int32(p.Width), Height: int32(p.Height)}
	return platform.Handle(t.lib.rowLayoutCreate(&c))
}

// SetButtonLabel implements platform.WidgetAPI.
func (t *Toolkit) SetButtonLabel(h platform.Handle, label string) {
	t.lib.buttonSetLabel(uint64(h), label)
}

// SetTextContent implements platform.WidgetAPI.
func (t *Toolkit) SetTextContent(h platform.Handle, content string) {
	t.lib.textSetContent(uint64(h), content)
}

// SetTextFontSize implements platform.WidgetAPI.
func (t *Toolkit) SetTextFontSize(h platform.Handle, size int) {
	t.lib.textSetFontSize(uint64(h), int32(size))
}

// TextboxText implements platform.WidgetAPI. The returned string is a
// copy; the library keeps ownership of its buffer.
func (t *Toolkit) TextboxText(h platform.Handle) string {
	p := t.lib.textboxGetText(uint64(h))
	if p == nil {
		return ""
	}
	return unix.BytePtrToString(p)
}

// SetTextboxText implements platform.WidgetAPI.
func (t *Toolkit) SetTextboxText(h platform.Handle, text string) {
	t.lib.textboxSetText(uint64(h), text)
}

// CheckboxChecked implements platform.WidgetAPI.
func (t *Toolkit) CheckboxChecked(h platform.Handle) bool {
	return t.lib.checkboxGetChecked(uint64(h)) != 0
}

// SetCheckboxChecked implements platform.WidgetAPI.
func (t *Toolkit) SetCheckboxChecked(h platform.Handle, checked bool) {
	t.lib.checkboxSetChecked(uint64(h), cbool(checked))
}

// ScrollOffset implements platform.WidgetAPI.
func (t *Toolkit) ScrollOffset(h platform.Handle) (x, y int) {
	var cx, cy int32
	t.lib.scrollAreaGetOffset(uint64(h), &cx, &cy)
	return int(cx), int(cy)
}

// SetScroll implements platform.WidgetAPI.
func (t *Toolkit) SetScroll(h platform.Handle, x, y int) {
	t.lib.scrollAreaSetScroll(uint64(h), int32(x), int32(y))
}
