package headless

import (
	"slices"

	"github.com/hyprbind/hyprbind/pkg/platform"
)

func (t *Toolkit) create(op string, kind platform.Kind, init func(n *Node)) platform.Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.alloc(kind)
	if n == nil {
		t.record(op, platform.NullHandle, 0)
		return platform.NullHandle
	}
	init(n)
	t.record(op, n.Handle, 0)
	return n.Handle
}

// with runs fn on the node behind h under the lock, recording op. Calls on
// unknown handles are recorded and otherwise ignored.
func (t *Toolkit) with(op string, h platform.Handle, fn func(n *Node)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record(op, h, 0)
	if n, ok := t.nodes[h]; ok {
		fn(n)
	}
}

// CreateWindow implements platform.WindowAPI. The root element is created
// with the window.
func (t *Toolkit) CreateWindow(p platform.WindowParams) platform.Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	w := t.alloc(platform.KindWindow)
	if w == nil {
		t.record("CreateWindow", platform.NullHandle, 0)
		return platform.NullHandle
	}
	w.Title, w.Class = p.Title, p.Class
	w.Width, w.Height = p.Width, p.Height
	w.MinWidth, w.MinHeight = p.MinWidth, p.MinHeight
	w.MaxWidth, w.MaxHeight = p.MaxWidth, p.MaxHeight
	if root := t.alloc(platform.KindElement); root != nil {
		root.Parent = w.Handle
		root.GrowH, root.GrowV = true, true
		w.Root = root.Handle
		w.Children = []platform.Handle{root.Handle}
	}
	t.record("CreateWindow", w.Handle, 0)
	return w.Handle
}

// WindowRoot implements platform.WindowAPI.
func (t *Toolkit) WindowRoot(window platform.Handle) platform.Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("WindowRoot", window, 0)
	if w, ok := t.nodes[window]; ok {
		return w.Root
	}
	return platform.NullHandle
}

// OpenWindow implements platform.WindowAPI.
func (t *Toolkit) OpenWindow(window platform.Handle) {
	t.with("OpenWindow", window, func(w *Node) {
		if !w.Open {
			w.Open = true
			t.openCount++
			t.everOpened = true
		}
	})
}

// CloseWindow implements platform.WindowAPI.
func (t *Toolkit) CloseWindow(window platform.Handle) {
	t.with("CloseWindow", window, t.closeLocked)
}

func (t *Toolkit) closeLocked(w *Node) {
	if w.Open {
		w.Open = false
		t.openCount--
	}
}

// WindowSize implements platform.WindowAPI.
func (t *Toolkit) WindowSize(window platform.Handle) (width, height int) {
	t.with("WindowSize", window, func(w *Node) {
		width, height = w.Width, w.Height
	})
	return width, height
}

// DestroyWindow implements platform.WindowAPI.
func (t *Toolkit) DestroyWindow(window platform.Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("DestroyWindow", window, 0)
	if w, ok := t.nodes[window]; ok {
		t.closeLocked(w)
		t.removeLocked(window)
	}
}

// removeLocked deletes h and every attached descendant.
func (t *Toolkit) removeLocked(h platform.Handle) {
	n, ok := t.nodes[h]
	if !ok {
		return
	}
	if p, ok := t.nodes[n.Parent]; ok {
		p.Children = slices.DeleteFunc(p.Children, func(c platform.Handle) bool { return c == h })
	}
	queue := []platform.Handle{h}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cn, ok := t.nodes[cur]; ok {
			queue = append(queue, cn.Children...)
			delete(t.nodes, cur)
		}
	}
}

// DestroyElement implements platform.ElementAPI.
func (t *Toolkit) DestroyElement(h platform.Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("DestroyElement", h, 0)
	t.removeLocked(h)
}

// AddChild implements platform.ElementAPI. A child attached elsewhere is
// moved.
func (t *Toolkit) AddChild(parent, child platform.Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("AddChild", parent, child)
	p, ok := t.nodes[parent]
	c, ok2 := t.nodes[child]
	if !ok || !ok2 {
		return
	}
	if old, ok := t.nodes[c.Parent]; ok {
		old.Children = slices.DeleteFunc(old.Children, func(h platform.Handle) bool { return h == child })
	}
	c.Parent = parent
	p.Children = append(p.Children, child)
}

// RemoveChild implements platform.ElementAPI.
func (t *Toolkit) RemoveChild(parent, child platform.Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.record("RemoveChild", parent, child)
	p, ok := t.nodes[parent]
	if !ok {
		return
	}
	p.Children = slices.DeleteFunc(p.Children, func(h platform.Handle) bool { return h == child })
	if c, ok := t.nodes[child]; ok && c.Parent == parent {
		c.Parent = platform.NullHandle
	}
}

// ClearChildren implements platform.ElementAPI.
func (t *Toolkit) ClearChildren(parent platform.Handle) {
	t.with("ClearChildren", parent, func(p *Node) {
		for _, h := range p.Children {
			if c, ok := t.nodes[h]; ok {
				c.Parent = platform.NullHandle
			}
		}
		p.Children = nil
	})
}

// SetSize implements platform.ElementAPI.
func (t *Toolkit) SetSize(h platform.Handle, width, height int) {
	t.with("SetSize", h, func(n *Node) { n.Width, n.Height = width, height })
}

// SetMargin implements platform.ElementAPI.
func (t *Toolkit) SetMargin(h platform.Handle, top, right, bottom, left int) {
	t.with("SetMargin", h, func(n *Node) { n.Margin = [4]int{top, right, bottom, left} })
}

// SetGrow implements platform.ElementAPI.
func (t *Toolkit) SetGrow(h platform.Handle, horizontal, vertical bool) {
	t.with("SetGrow", h, func(n *Node) { n.GrowH, n.GrowV = horizontal, vertical })
}

// SetAlign implements platform.ElementAPI.
func (t *Toolkit) SetAlign(h platform.Handle, a platform.Align) {
	t.with("SetAlign", h, func(n *Node) { n.Align = a })
}

// SetPositionMode implements platform.ElementAPI.
func (t *Toolkit) SetPositionMode(h platform.Handle, m platform.PositionMode) {
	t.with("SetPositionMode", h, func(n *Node) { n.Position = m })
}

// SetAbsolutePosition implements platform.ElementAPI.
func (t *Toolkit) SetAbsolutePosition(h platform.Handle, x, y int) {
	t.with("SetAbsolutePosition", h, func(n *Node) { n.X, n.Y = x, y })
}

// Listen implements platform.ElementAPI.
func (t *Toolkit) Listen(h platform.Handle, kind platform.EventKind, token platform.Token) {
	t.with("Listen", h, func(n *Node) { n.Listeners[kind] = token })
}

// Unlisten implements platform.ElementAPI.
func (t *Toolkit) Unlisten(h platform.Handle, kind platform.EventKind) {
	t.with("Unlisten", h, func(n *Node) { delete(n.Listeners, kind) })
}

// CreateButton implements platform.WidgetAPI.
func (t *Toolkit) CreateButton(p platform.ButtonParams) platform.Handle {
	return t.create("CreateButton", platform.KindButton, func(n *Node) {
		n.Label = p.Label
		n.Width, n.Height = p.Width, p.Height
		n.NoBorder, n.NoBackground = p.NoBorder, p.NoBackground
		n.FontSize = p.FontSize
	})
}

// CreateText implements platform.WidgetAPI.
func (t *Toolkit) CreateText(p platform.TextParams) platform.Handle {
	return t.create("CreateText", platform.KindText, func(n *Node) {
		n.Content = p.Content
		n.FontSize, n.FontFamily = p.FontSize, p.FontFamily
		n.Color = p.Color
		n.Align = p.Align
		n.Alpha = p.Alpha
	})
}

// CreateRectangle implements platform.WidgetAPI.
func (t *Toolkit) CreateRectangle(p platform.RectangleParams) platform.Handle {
	return t.create("CreateRectangle", platform.KindRectangle, func(n *Node) {
		n.Color, n.BorderColor = p.Color, p.BorderColor
		n.BorderThickness, n.Rounding = p.BorderThickness, p.Rounding
		n.Width, n.Height = p.Width, p.Height
	})
}

// CreateLine implements platform.WidgetAPI.
func (t *Toolkit) CreateLine(p platform.LineParams) platform.Handle {
	return t.create("CreateLine", platform.KindLine, func(n *Node) {
		n.Color, n.Thickness = p.Color, p.Thickness
		n.Points = slices.Clone(p.Points)
		n.Width, n.Height = p.Width, p.Height
	})
}

// CreateCheckbox implements platform.WidgetAPI.
func (t *Toolkit) CreateCheckbox(p platform.CheckboxParams) platform.Handle {
	return t.create("CreateCheckbox", platform.KindCheckbox, func(n *Node) {
		n.Label, n.Checked = p.Label, p.Checked
	})
}

// CreateTextbox implements platform.WidgetAPI.
func (t *Toolkit) CreateTextbox(p platform.TextboxParams) platform.Handle {
	return t.create("CreateTextbox", platform.KindTextbox, func(n *Node) {
		n.Placeholder, n.Text = p.Placeholder, p.Text
		n.Width, n.Height = p.Width, p.Height
	})
}

// CreateScrollArea implements platform.WidgetAPI.
func (t *Toolkit) CreateScrollArea(p platform.ScrollAreaParams) platform.Handle {
	return t.create("CreateScrollArea", platform.KindScrollArea, func(n *Node) {
		n.ScrollX, n.ScrollY = p.ScrollX, p.ScrollY
		n.BlockUserScroll = p.BlockUserScroll
		n.Width, n.Height = p.Width, p.Height
	})
}

// CreateColumnLayout implements platform.WidgetAPI.
func (t *Toolkit) CreateColumnLayout(p platform.LayoutParams) platform.Handle {
	return t.create("CreateColumnLayout", platform.KindColumnLayout, func(n *Node) {
		n.Gap, n.Width, n.Height = p.Gap, p.Width, p.Height
	})
}

// CreateRowLayout implements platform.WidgetAPI.
func (t *Toolkit) CreateRowLayout(p platform.LayoutParams) platform.Handle {
	return t.create("CreateRowLayout", platform.KindRowLayout, func(n *Node) {
		n.Gap, n.Width, n.Height = p.Gap, p.Width, p.Height
	})
}

// SetButtonLabel implements platform.WidgetAPI.
func (t *Toolkit) SetButtonLabel(h platform.Handle, label string) {
	t.with("SetButtonLabel", h, func(n *Node) { n.Label = label })
}

// SetTextContent implements platform.WidgetAPI.
func (t *Toolkit) SetTextContent(h platform.Handle, content string) {
	t.with("SetTextContent", h, func(n *Node) { n.Content = content })
}

// SetTextFontSize implements platform.WidgetAPI.
func (t *Toolkit) SetTextFontSize(h platform.Handle, size int) {
	t.with("SetTextFontSize", h, func(n *Node) { n.FontSize = size })
}

// TextboxText implements platform.WidgetAPI.
func (t *Toolkit) TextboxText(h platform.Handle) (text string) {
	t.with("TextboxText", h, func(n *Node) { text = n.Text })
	return text
}

// SetTextboxText implements platform.WidgetAPI.
func (t *Toolkit) SetTextboxText(h platform.Handle, text string) {
	t.with("SetTextboxText", h, func(n *Node) { n.Text = text })
}

// CheckboxChecked implements platform.WidgetAPI.
func (t *Toolkit) CheckboxChecked(h platform.Handle) (checked bool) {
	t.with("CheckboxChecked", h, func(n *Node) { checked = n.Checked })
	return checked
}

// SetCheckboxChecked implements platform.WidgetAPI.
func (t *Toolkit) SetCheckboxChecked(h platform.Handle, checked bool) {
	t.with("SetCheckboxChecked", h, func(n *Node) { n.Checked = checked })
}

// ScrollOffset implements platform.WidgetAPI.
func (t *Toolkit) ScrollOffset(h platform.Handle) (x, y int) {
	t.with("ScrollOffset", h, func(n *Node) { x, y = n.OffsetX, n.OffsetY })
	return x, y
}

// SetScroll implements platform.WidgetAPI.
func (t *Toolkit) SetScroll(h platform.Handle, x, y int) {
	t.with("SetScroll", h, func(n *Node) { n.OffsetX, n.OffsetY = max(x, 0), max(y, 0) })
}
