package widgets

import (
	"sync"

	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/errors"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

// Window defaults.
const (
	DefaultWindowTitle  = "hyprbind"
	DefaultWindowWidth  = 640
	DefaultWindowHeight = 480
)

// WindowConfig describes a top-level window.
//
// Example:
//
//	win, err := widgets.WindowOf("Settings").
//	    WithSize(800, 600).
//	    WithOnClose(func(w *widgets.Window) { w.Close() }).
//	    Build(backend)
type WindowConfig struct {
	// Title defaults to "hyprbind" if empty.
	Title string
	// Class is the application class reported to the compositor.
	Class string
	// Width and Height default to 640x480 if <= 0.
	Width  int
	Height int
	// Size limits; <= 0 leaves a dimension unbounded.
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
	// OnClose is called when the compositor asks the window to close. A
	// window without OnClose is closed by the toolkit.
	OnClose func(*Window)
	// Resize is notified of size changes.
	Resize ResizeListener
	// Keyboard is notified of key events.
	Keyboard KeyboardListener
}

// WindowOf returns a 640x480 window config with the given title.
func WindowOf(title string) WindowConfig {
	return WindowConfig{Title: title, Width: DefaultWindowWidth, Height: DefaultWindowHeight}
}

// WithClass returns a copy of the config with the given application class.
func (c WindowConfig) WithClass(class string) WindowConfig {
	c.Class = class
	return c
}

// WithSize returns a copy of the config with the given size.
func (c WindowConfig) WithSize(width, height int) WindowConfig {
	c.Width, c.Height = width, height
	return c
}

// WithMinSize returns a copy of the config with the given minimum size.
func (c WindowConfig) WithMinSize(width, height int) WindowConfig {
	c.MinWidth, c.MinHeight = width, height
	return c
}

// WithMaxSize returns a copy of the config with the given maximum size.
func (c WindowConfig) WithMaxSize(width, height int) WindowConfig {
	c.MaxWidth, c.MaxHeight = width, height
	return c
}

// WithOnClose returns a copy of the config with the given close handler.
func (c WindowConfig) WithOnClose(fn func(*Window)) WindowConfig {
	c.OnClose = fn
	return c
}

// WithResizeListener returns a copy of the config with the given resize listener.
func (c WindowConfig) WithResizeListener(l ResizeListener) WindowConfig {
	c.Resize = l
	return c
}

// WithKeyboardListener returns a copy of the config with the given keyboard listener.
func (c WindowConfig) WithKeyboardListener(l KeyboardListener) WindowConfig {
	c.Keyboard = l
	return c
}

func (c WindowConfig) params() platform.WindowParams {
	title := c.Title
	if title == "" {
		title = DefaultWindowTitle
	}
	return platform.WindowParams{
		Title:     title,
		Class:     c.Class,
		Width:     orInt(c.Width, DefaultWindowWidth),
		Height:    orInt(c.Height, DefaultWindowHeight),
		MinWidth:  max(c.MinWidth, 0),
		MinHeight: max(c.MinHeight, 0),
		MaxWidth:  max(c.MaxWidth, 0),
		MaxHeight: max(c.MaxHeight, 0),
	}
}

// Build creates the native window. It is not opened.
func (c WindowConfig) Build(b *engine.Backend) (*Window, error) {
	const op = "widgets.WindowConfig.Build"
	if err := b.Live(); err != nil {
		return nil, errors.New(op, errors.KindNotInitialized, 0, err)
	}
	tk := b.Toolkit()
	h := tk.CreateWindow(c.params())
	if !h.Valid() {
		return nil, errors.New(op, errors.KindCreation, 0, &errors.CreationError{Widget: platform.KindWindow.String()})
	}
	w := &Window{backend: b, handle: h}
	if err := b.Registry().Register(h, w); err != nil {
		tk.DestroyWindow(h)
		return nil, err
	}
	if c.OnClose != nil {
		w.setOnClose(c.OnClose)
	}
	if c.Resize != nil {
		w.setResize(c.Resize)
	}
	if c.Keyboard != nil {
		w.setKeyboard(c.Keyboard)
	}
	b.Logger().Debug("window created", "handle", h, "title", c.params().Title)
	return w, nil
}

// Window is the proxy for a native top-level window. Listener closures
// installed on it stay reachable until it is destroyed.
type Window struct {
	backend *engine.Backend
	handle  platform.Handle

	mu   sync.Mutex
	root *Element

	listeners listenerSet
}

// Handle returns the native handle.
func (w *Window) Handle() platform.Handle { return w.handle }

// Backend returns the backend the window was created on.
func (w *Window) Backend() *engine.Backend { return w.backend }

// Valid reports whether the window can still be used.
func (w *Window) Valid() bool { return w.live("") == nil }

func (w *Window) live(op string) error {
	if w == nil || w.backend == nil {
		return errors.New(op, errors.KindInvalidHandle, 0, errors.ErrInvalidHandle)
	}
	if !w.backend.Registry().Is(w.handle, w) {
		return errors.New(op, errors.KindInvalidHandle, uint64(w.handle), errors.ErrInvalidHandle)
	}
	return nil
}

// Root returns the window's root element, creating its proxy on first use.
// Repeated calls return the same *Element.
func (w *Window) Root() (*Element, error) {
	const op = "widgets.Window.Root"
	if err := w.live(op); err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.root != nil {
		if err := w.root.live(op); err != nil {
			return nil, err
		}
		return w.root, nil
	}

	h := w.backend.Toolkit().WindowRoot(w.handle)
	if !h.Valid() {
		return nil, errors.New(op, errors.KindCreation, uint64(w.handle), &errors.CreationError{Widget: "root element"})
	}
	reg := w.backend.Registry()
	e := &Element{backend: w.backend, handle: h, kind: platform.KindElement, root: true}
	e.self = e
	if err := reg.Register(h, e); err != nil {
		return nil, err
	}
	if _, err := reg.Attach(w.handle, h); err != nil {
		reg.Unregister(h)
		return nil, err
	}
	w.root = e
	return e, nil
}

// Open maps the window.
func (w *Window) Open() error {
	if err := w.live("widgets.Window.Open"); err != nil {
		return err
	}
	w.backend.Toolkit().OpenWindow(w.handle)
	return nil
}

// Close unmaps the window. It stays valid and may be opened again.
func (w *Window) Close() error {
	if err := w.live("widgets.Window.Close"); err != nil {
		return err
	}
	w.backend.Toolkit().CloseWindow(w.handle)
	return nil
}

// Size returns the current drawable size.
func (w *Window) Size() (width, height int, err error) {
	if err := w.live("widgets.Window.Size"); err != nil {
		return 0, 0, err
	}
	width, height = w.backend.Toolkit().WindowSize(w.handle)
	return width, height, nil
}

// SetResizeListener replaces the resize listener. Nil removes it.
func (w *Window) SetResizeListener(l ResizeListener) error {
	if err := w.live("widgets.Window.SetResizeListener"); err != nil {
		return err
	}
	if l == nil {
		w.listeners.clear(w.backend, w.handle, platform.EventResize)
		return nil
	}
	w.setResize(l)
	return nil
}

// SetKeyboardListener replaces the keyboard listener. Nil removes it.
func (w *Window) SetKeyboardListener(l KeyboardListener) error {
	if err := w.live("widgets.Window.SetKeyboardListener"); err != nil {
		return err
	}
	if l == nil {
		w.listeners.clear(w.backend, w.handle, platform.EventKey)
		return nil
	}
	w.setKeyboard(l)
	return nil
}

// SetOnClose replaces the close handler. Nil removes it, letting the
// toolkit close the window on request.
func (w *Window) SetOnClose(fn func(*Window)) error {
	if err := w.live("widgets.Window.SetOnClose"); err != nil {
		return err
	}
	if fn == nil {
		w.listeners.clear(w.backend, w.handle, platform.EventClose)
		return nil
	}
	w.setOnClose(fn)
	return nil
}

func (w *Window) setResize(l ResizeListener) {
	w.listeners.set(w.backend, w.handle, platform.EventResize, func(ev platform.Event) {
		l.OnResize(ev.Width, ev.Height)
	})
}

func (w *Window) setKeyboard(l KeyboardListener) {
	w.listeners.set(w.backend, w.handle, platform.EventKey, func(ev platform.Event) {
		l.OnKey(ev.KeyCode, ev.Pressed, ev.Text, ev.Modifiers)
	})
}

func (w *Window) setOnClose(fn func(*Window)) {
	w.listeners.set(w.backend, w.handle, platform.EventClose, func(platform.Event) { fn(w) })
}

// Destroy releases the native window. The window, its root element and
// everything attached below it become invalid.
func (w *Window) Destroy() error {
	if err := w.live("widgets.Window.Destroy"); err != nil {
		return err
	}
	removed := w.backend.Registry().Unregister(w.handle)
	w.backend.Toolkit().DestroyWindow(w.handle)
	releaseOwners(w.backend, removed)
	w.listeners.forget()

	w.mu.Lock()
	w.root = nil
	w.mu.Unlock()
	w.backend.Logger().Debug("window destroyed", "handle", w.handle, "handles", len(removed))
	return nil
}
