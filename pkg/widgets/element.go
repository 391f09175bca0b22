package widgets

import (
	"fmt"
	"sync"

	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/errors"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

// Widget is any proxy with element capabilities.
type Widget interface {
	platform.Proxy
	// Base returns the element capability set of the widget.
	Base() *Element
}

// Element is the proxy for one native element. Every widget kind embeds it.
//
// An Element is valid from the Build that created it until it, an ancestor,
// its window or the backend is destroyed. Every mutator checks validity
// first and returns an error wrapping ErrInvalidHandle without touching the
// native object once that has happened.
type Element struct {
	backend *engine.Backend
	handle  platform.Handle
	kind    platform.Kind
	// self is the proxy registered for handle, e.g. the *Button embedding
	// this Element.
	self Widget
	// root marks a window's root element; its native parent is the window.
	root bool

	listeners listenerSet
}

// Base implements Widget.
func (e *Element) Base() *Element { return e }

// Handle returns the native handle.
func (e *Element) Handle() platform.Handle { return e.handle }

// Kind returns the native object kind.
func (e *Element) Kind() platform.Kind { return e.kind }

// Backend returns the backend the element was created on.
func (e *Element) Backend() *engine.Backend { return e.backend }

// Valid reports whether the element can still be used.
func (e *Element) Valid() bool {
	return e.live("") == nil
}

func (e *Element) live(op string) error {
	if e == nil || e.backend == nil {
		return errors.New(op, errors.KindInvalidHandle, 0, errors.ErrInvalidHandle)
	}
	if !e.backend.Registry().Is(e.handle, e.self) {
		return errors.New(op, errors.KindInvalidHandle, uint64(e.handle), errors.ErrInvalidHandle)
	}
	return nil
}

func (e *Element) toolkit() platform.Toolkit { return e.backend.Toolkit() }

// AddChild attaches child below e. A child attached elsewhere is detached
// from its previous parent first; adding it to e again is a no-op.
// Attaching e below itself or one of its descendants fails with
// ErrInvalidTree, and so does attaching a window's root element, which stays
// with its window.
func (e *Element) AddChild(child Widget) error {
	const op = "widgets.Element.AddChild"
	if err := e.live(op); err != nil {
		return err
	}
	c, err := childBase(op, child)
	if err != nil {
		return err
	}
	if c.backend != e.backend {
		return errors.New(op, errors.KindTree, uint64(c.handle), errors.ErrInvalidTree)
	}
	if c.root {
		return errors.New(op, errors.KindTree, uint64(c.handle),
			fmt.Errorf("%w: window root cannot be reparented", errors.ErrInvalidTree))
	}
	prev, err := e.backend.Registry().Attach(e.handle, c.handle)
	if err != nil {
		return err
	}
	if prev == e.handle {
		return nil
	}
	tk := e.toolkit()
	if prev.Valid() {
		tk.RemoveChild(prev, c.handle)
	}
	tk.AddChild(e.handle, c.handle)
	return nil
}

// RemoveChild detaches child from e. The child stays valid and may be
// attached again.
func (e *Element) RemoveChild(child Widget) error {
	const op = "widgets.Element.RemoveChild"
	if err := e.live(op); err != nil {
		return err
	}
	c, err := childBase(op, child)
	if err != nil {
		return err
	}
	if err := e.backend.Registry().Detach(e.handle, c.handle); err != nil {
		return err
	}
	e.toolkit().RemoveChild(e.handle, c.handle)
	return nil
}

// ClearChildren detaches every child of e.
func (e *Element) ClearChildren() error {
	if err := e.live("widgets.Element.ClearChildren"); err != nil {
		return err
	}
	e.toolkit().ClearChildren(e.handle)
	e.backend.Registry().Clear(e.handle)
	return nil
}

func childBase(op string, child Widget) (*Element, error) {
	if child == nil {
		return nil, errors.New(op, errors.KindInvalidHandle, 0, errors.ErrInvalidHandle)
	}
	c := child.Base()
	if err := c.live(op); err != nil {
		return nil, err
	}
	return c, nil
}

// Parent returns the widget e is attached to, or nil. A window's root
// element has no widget parent.
func (e *Element) Parent() (Widget, error) {
	const op = "widgets.Element.Parent"
	if err := e.live(op); err != nil {
		return nil, err
	}
	reg := e.backend.Registry()
	ph, ok := reg.Parent(e.handle)
	if !ok {
		return nil, nil
	}
	p, err := reg.Lookup(ph)
	if err != nil {
		return nil, errors.New(op, errors.KindTree, uint64(ph), err)
	}
	w, _ := p.(Widget)
	return w, nil
}

// Children returns the attached children in attach order.
func (e *Element) Children() ([]Widget, error) {
	const op = "widgets.Element.Children"
	if err := e.live(op); err != nil {
		return nil, err
	}
	reg := e.backend.Registry()
	hs := reg.Children(e.handle)
	out := make([]Widget, 0, len(hs))
	for _, h := range hs {
		p, err := reg.Lookup(h)
		if err != nil {
			return nil, errors.New(op, errors.KindTree, uint64(h), err)
		}
		if w, ok := p.(Widget); ok {
			out = append(out, w)
		}
	}
	return out, nil
}

// SetSize sets the preferred size. Values <= 0 mean auto.
func (e *Element) SetSize(width, height int) error {
	if err := e.live("widgets.Element.SetSize"); err != nil {
		return err
	}
	e.toolkit().SetSize(e.handle, width, height)
	return nil
}

// SetMargin sets the outer margins in pixels.
func (e *Element) SetMargin(top, right, bottom, left int) error {
	if err := e.live("widgets.Element.SetMargin"); err != nil {
		return err
	}
	e.toolkit().SetMargin(e.handle, top, right, bottom, left)
	return nil
}

// SetGrow lets the element take up spare space along each axis.
func (e *Element) SetGrow(horizontal, vertical bool) error {
	if err := e.live("widgets.Element.SetGrow"); err != nil {
		return err
	}
	e.toolkit().SetGrow(e.handle, horizontal, vertical)
	return nil
}

// SetAlign sets the position flag inside the parent.
func (e *Element) SetAlign(a platform.Align) error {
	if err := e.live("widgets.Element.SetAlign"); err != nil {
		return err
	}
	e.toolkit().SetAlign(e.handle, a)
	return nil
}

// SetPositionMode selects automatic or absolute placement.
func (e *Element) SetPositionMode(m platform.PositionMode) error {
	if err := e.live("widgets.Element.SetPositionMode"); err != nil {
		return err
	}
	e.toolkit().SetPositionMode(e.handle, m)
	return nil
}

// SetAbsolutePosition sets the offset used in PositionAbsolute mode.
func (e *Element) SetAbsolutePosition(x, y int) error {
	if err := e.live("widgets.Element.SetAbsolutePosition"); err != nil {
		return err
	}
	e.toolkit().SetAbsolutePosition(e.handle, x, y)
	return nil
}

// SetMouseHandlers installs the non-nil handlers of h. Fields left nil keep
// whatever handler was installed before. OnClick fires on button press.
func (e *Element) SetMouseHandlers(h MouseHandlers) error {
	if err := e.live("widgets.Element.SetMouseHandlers"); err != nil {
		return err
	}
	if fn := h.OnClick; fn != nil {
		e.listen(platform.EventMouseButton, func(ev platform.Event) {
			if ev.Pressed {
				fn(mouseEvent(ev))
			}
		})
	}
	if fn := h.OnEnter; fn != nil {
		e.listen(platform.EventMouseEnter, func(ev platform.Event) { fn(mouseEvent(ev)) })
	}
	if fn := h.OnLeave; fn != nil {
		e.listen(platform.EventMouseLeave, func(ev platform.Event) { fn(mouseEvent(ev)) })
	}
	return nil
}

// RemoveMouseHandlers uninstalls every mouse handler.
func (e *Element) RemoveMouseHandlers() error {
	if err := e.live("widgets.Element.RemoveMouseHandlers"); err != nil {
		return err
	}
	e.unlisten(platform.EventMouseButton)
	e.unlisten(platform.EventMouseEnter)
	e.unlisten(platform.EventMouseLeave)
	return nil
}

// Destroy releases the native element. The element and every descendant
// attached below it become invalid, and their handlers are released.
func (e *Element) Destroy() error {
	if err := e.live("widgets.Element.Destroy"); err != nil {
		return err
	}
	reg := e.backend.Registry()
	parent, attached := reg.Parent(e.handle)
	removed := reg.Unregister(e.handle)

	tk := e.toolkit()
	if attached && !e.root {
		tk.RemoveChild(parent, e.handle)
	}
	tk.DestroyElement(e.handle)
	releaseOwners(e.backend, removed)
	e.listeners.forget()
	return nil
}

func (e *Element) listen(kind platform.EventKind, fn platform.Handler) {
	e.listeners.set(e.backend, e.handle, kind, fn)
}

func (e *Element) unlisten(kind platform.EventKind) {
	e.listeners.clear(e.backend, e.handle, kind)
}

// releaseOwners drops the bridge entries of objects the native side has
// already forgotten.
func releaseOwners(b *engine.Backend, handles []platform.Handle) {
	bridge := b.Bridge()
	for _, h := range handles {
		bridge.ReleaseOwner(h)
	}
}

// listenerSet tracks the token installed per event kind on one native
// object. The Bridge entry behind a token is what keeps the handler alive.
type listenerSet struct {
	mu     sync.Mutex
	tokens map[platform.EventKind]platform.Token
}

// set installs fn for kind. The new token is handed to native before the
// old one is released, so a delivery in flight never finds a freed handler.
func (s *listenerSet) set(b *engine.Backend, h platform.Handle, kind platform.EventKind, fn platform.Handler) {
	bridge := b.Bridge()
	tok := bridge.Register(h, kind, fn)
	b.Toolkit().Listen(h, kind, tok)

	s.mu.Lock()
	if s.tokens == nil {
		s.tokens = make(map[platform.EventKind]platform.Token)
	}
	old, had := s.tokens[kind]
	s.tokens[kind] = tok
	s.mu.Unlock()

	if had {
		bridge.Release(old)
	}
}

func (s *listenerSet) clear(b *engine.Backend, h platform.Handle, kind platform.EventKind) {
	s.mu.Lock()
	old, had := s.tokens[kind]
	delete(s.tokens, kind)
	s.mu.Unlock()
	if !had {
		return
	}
	b.Toolkit().Unlisten(h, kind)
	b.Bridge().Release(old)
}

func (s *listenerSet) forget() {
	s.mu.Lock()
	s.tokens = nil
	s.mu.Unlock()
}
