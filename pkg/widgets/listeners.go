package widgets

import "github.com/hyprbind/hyprbind/pkg/platform"

// MouseEvent is delivered to mouse handlers. Coordinates are relative to
// the element.
type MouseEvent struct {
	X, Y   float64
	Button int
}

func mouseEvent(ev platform.Event) MouseEvent {
	return MouseEvent{X: ev.X, Y: ev.Y, Button: ev.Button}
}

// MouseHandlers groups the mouse callbacks of an element. Nil fields are
// left untouched by SetMouseHandlers.
type MouseHandlers struct {
	OnClick func(MouseEvent)
	OnEnter func(MouseEvent)
	OnLeave func(MouseEvent)
}

// ResizeListener is notified with a window's new drawable size.
type ResizeListener interface {
	OnResize(width, height int)
}

// ResizeFunc adapts a function to ResizeListener.
type ResizeFunc func(width, height int)

// OnResize calls f(width, height).
func (f ResizeFunc) OnResize(width, height int) { f(width, height) }

// KeyboardListener is notified of key presses and releases on a window.
// text is the UTF-8 fragment the key produced, if any; modifiers is the
// toolkit's modifier mask.
type KeyboardListener interface {
	OnKey(keyCode uint32, pressed bool, text string, modifiers uint32)
}

// KeyFunc adapts a function to KeyboardListener.
type KeyFunc func(keyCode uint32, pressed bool, text string, modifiers uint32)

// OnKey calls f.
func (f KeyFunc) OnKey(keyCode uint32, pressed bool, text string, modifiers uint32) {
	f(keyCode, pressed, text, modifiers)
}
