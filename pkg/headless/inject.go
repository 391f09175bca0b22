package headless

import "github.com/hyprbind/hyprbind/pkg/platform"

// emit applies update to the node behind h and delivers ev to the token
// listening for ev.Kind. update may veto the event by returning false. emit
// reports whether a handler was invoked; the lock is released before
// delivery.
func (t *Toolkit) emit(h platform.Handle, ev platform.Event, update func(n *Node, ev *platform.Event) bool) bool {
	t.mu.Lock()
	n, ok := t.nodes[h]
	if !ok {
		t.mu.Unlock()
		return false
	}
	if update != nil && !update(n, &ev) {
		t.mu.Unlock()
		return false
	}
	tok, listening := n.Listeners[ev.Kind]
	t.mu.Unlock()
	if !listening {
		return false
	}
	t.deliver(tok, ev)
	return true
}

// Click activates a button.
func (t *Toolkit) Click(h platform.Handle) bool {
	return t.emit(h, platform.Event{Kind: platform.EventClick, Button: 1, Pressed: true}, nil)
}

// RightClick raises a secondary activation on a button.
func (t *Toolkit) RightClick(h platform.Handle) bool {
	return t.emit(h, platform.Event{Kind: platform.EventRightClick, Button: 3, Pressed: true}, nil)
}

// MouseButton raises a raw mouse button event on any element.
func (t *Toolkit) MouseButton(h platform.Handle, x, y float64, button int, pressed bool) bool {
	return t.emit(h, platform.Event{Kind: platform.EventMouseButton, X: x, Y: y, Button: button, Pressed: pressed}, nil)
}

// MouseEnter raises a pointer-enter event.
func (t *Toolkit) MouseEnter(h platform.Handle, x, y float64) bool {
	return t.emit(h, platform.Event{Kind: platform.EventMouseEnter, X: x, Y: y}, nil)
}

// MouseLeave raises a pointer-leave event.
func (t *Toolkit) MouseLeave(h platform.Handle, x, y float64) bool {
	return t.emit(h, platform.Event{Kind: platform.EventMouseLeave, X: x, Y: y}, nil)
}

// Key raises a keyboard event on a window.
func (t *Toolkit) Key(window platform.Handle, code uint32, pressed bool, text string, modifiers uint32) bool {
	return t.emit(window, platform.Event{
		Kind:      platform.EventKey,
		KeyCode:   code,
		Pressed:   pressed,
		Text:      text,
		Modifiers: modifiers,
	}, nil)
}

// Resize changes a window's size and reports it.
func (t *Toolkit) Resize(window platform.Handle, width, height int) bool {
	return t.emit(window, platform.Event{Kind: platform.EventResize, Width: width, Height: height},
		func(n *Node, _ *platform.Event) bool {
			n.Width, n.Height = width, height
			return true
		})
}

// RequestClose asks a window to close the way a compositor would. A window
// with a close listener leaves the decision to the listener; one without is
// closed directly.
func (t *Toolkit) RequestClose(window platform.Handle) bool {
	if t.emit(window, platform.Event{Kind: platform.EventClose}, nil) {
		return true
	}
	t.CloseWindow(window)
	return false
}

// Type replaces a textbox's text as if the user edited it.
func (t *Toolkit) Type(h platform.Handle, text string) bool {
	return t.emit(h, platform.Event{Kind: platform.EventTextChange, Text: text},
		func(n *Node, _ *platform.Event) bool {
			n.Text = text
			return true
		})
}

// Submit submits a textbox with its current text.
func (t *Toolkit) Submit(h platform.Handle) bool {
	return t.emit(h, platform.Event{Kind: platform.EventTextSubmit},
		func(n *Node, ev *platform.Event) bool {
			ev.Text = n.Text
			return true
		})
}

// Toggle flips a checkbox as if the user clicked it.
func (t *Toolkit) Toggle(h platform.Handle) bool {
	return t.emit(h, platform.Event{Kind: platform.EventCheckChange},
		func(n *Node, ev *platform.Event) bool {
			n.Checked = !n.Checked
			ev.Checked = n.Checked
			return true
		})
}

// Scroll moves a scroll area as if the user scrolled it. Areas that block
// user scrolling ignore it.
func (t *Toolkit) Scroll(h platform.Handle, x, y int) bool {
	return t.emit(h, platform.Event{Kind: platform.EventScroll},
		func(n *Node, ev *platform.Event) bool {
			if n.BlockUserScroll {
				return false
			}
			n.OffsetX, n.OffsetY = max(x, 0), max(y, 0)
			ev.X, ev.Y = float64(n.OffsetX), float64(n.OffsetY)
			return true
		})
}
