package markup

import (
	"fmt"
	"slices"

	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/platform"
	"github.com/hyprbind/hyprbind/pkg/widgets"
)

// Event describes the user action that triggered an Action.
type Event struct {
	Scene *Scene
	// Source is the widget that raised the event, or nil for the window.
	Source widgets.Widget
	// ID is the source node's id, or empty.
	ID string
	// Handler is the key that named the action, e.g. "onClick".
	Handler string

	Text    string
	Checked bool
	X, Y    int
}

// Action handles an event raised by a built widget.
type Action func(Event)

// Actions maps the names used in handler keys to their implementation.
type Actions map[string]Action

// Scene is a built document.
type Scene struct {
	Window *widgets.Window
	byID   map[string]widgets.Widget
}

// Widget returns the widget built for the node with the given id.
func (s *Scene) Widget(id string) (widgets.Widget, bool) {
	w, ok := s.byID[id]
	return w, ok
}

// IDs returns the ids of the scene's widgets in sorted order.
func (s *Scene) IDs() []string {
	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Lookup returns the widget with the given id if it has type W.
func Lookup[W widgets.Widget](s *Scene, id string) (W, bool) {
	w, ok := s.byID[id].(W)
	return w, ok
}

// Destroy destroys the scene's window and every widget in it.
func (s *Scene) Destroy() error {
	return s.Window.Destroy()
}

// Build validates d against actions, then creates its window and widget tree
// on b. On failure nothing built so far survives.
func Build(b *engine.Backend, d *Document, actions Actions) (*Scene, error) {
	if err := Validate(d, actions); err != nil {
		return nil, err
	}
	s := &Scene{byID: make(map[string]widgets.Widget)}
	bl := builder{b: b, scene: s, actions: actions}

	win, err := bl.window(d.Window)
	if err != nil {
		return nil, err
	}
	s.Window = win
	root, err := win.Root()
	if err != nil {
		_ = win.Destroy()
		return nil, err
	}
	for i := range d.Root {
		path := fmt.Sprintf("root[%d]", i)
		if err := bl.attach(root, path, &d.Root[i]); err != nil {
			_ = win.Destroy()
			return nil, err
		}
	}
	return s, nil
}

type builder struct {
	b       *engine.Backend
	scene   *Scene
	actions Actions
}

func (bl *builder) emit(name string, ev Event) {
	if name == "" {
		return
	}
	ev.Scene = bl.scene
	bl.actions[name](ev)
}

func (bl *builder) window(w Window) (*widgets.Window, error) {
	cfg := widgets.WindowOf(w.Title).WithClass(w.Class)
	if !w.Size.IsZero() {
		cfg = cfg.WithSize(w.Size.Width, w.Size.Height)
	}
	cfg = cfg.WithMinSize(w.MinSize.Width, w.MinSize.Height).
		WithMaxSize(w.MaxSize.Width, w.MaxSize.Height)
	if w.OnClose != "" {
		cfg = cfg.WithOnClose(func(*widgets.Window) {
			bl.emit(w.OnClose, Event{Handler: "onClose"})
		})
	}
	return cfg.Build(bl.b)
}

// attach builds n with its children and adds it to parent. If anything
// fails the partially built subtree is destroyed.
func (bl *builder) attach(parent *widgets.Element, path string, n *Node) error {
	w, err := bl.node(n)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fail := func(err error) error {
		_ = w.Base().Destroy()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := bl.common(w.Base(), n); err != nil {
		return fail(err)
	}
	for i := range n.Children {
		if err := bl.attach(w.Base(), fmt.Sprintf("%s.children[%d]", path, i), &n.Children[i]); err != nil {
			return fail(err)
		}
	}
	if err := parent.AddChild(w); err != nil {
		return fail(err)
	}
	if n.ID != "" {
		bl.scene.byID[n.ID] = w
	}
	return nil
}

func (bl *builder) common(e *widgets.Element, n *Node) error {
	if !n.Size.IsZero() && n.Type != TypeTextbox {
		if err := e.SetSize(n.Size.Width, n.Size.Height); err != nil {
			return err
		}
	}
	if n.Margin.Set {
		m := n.Margin
		if err := e.SetMargin(m.Top, m.Right, m.Bottom, m.Left); err != nil {
			return err
		}
	}
	if n.Grow.Set {
		if err := e.SetGrow(n.Grow.Horizontal, n.Grow.Vertical); err != nil {
			return err
		}
	}
	if n.Align != "" {
		a, _ := platform.ParseAlign(n.Align)
		if err := e.SetAlign(a); err != nil {
			return err
		}
	}
	return nil
}

func (bl *builder) node(n *Node) (widgets.Widget, error) {
	switch n.Type {
	case TypeColumn:
		return widgets.LayoutOf(n.Gap).BuildColumn(bl.b)
	case TypeRow:
		return widgets.LayoutOf(n.Gap).BuildRow(bl.b)
	case TypeText:
		return bl.text(n)
	case TypeButton:
		return bl.button(n)
	case TypeRectangle:
		fill := widgets.DefaultColor
		if n.Color.Set {
			fill = n.Color.RGBA
		}
		cfg := widgets.RectangleOf(fill).WithRounding(n.Rounding)
		if n.BorderColor.Set || n.BorderThickness > 0 {
			border := widgets.DefaultBorderColor
			if n.BorderColor.Set {
				border = n.BorderColor.RGBA
			}
			cfg = cfg.WithBorder(border, n.BorderThickness)
		}
		return cfg.Build(bl.b)
	case TypeLine:
		pts := make([]widgets.Point, len(n.Points))
		for i, p := range n.Points {
			pts[i] = widgets.Point{X: p[0], Y: p[1]}
		}
		cfg := widgets.LineOf(pts...).WithThickness(n.Thickness)
		if n.Color.Set {
			cfg = cfg.WithColor(n.Color.RGBA)
		}
		return cfg.Build(bl.b)
	case TypeCheckbox:
		var onChange func(*widgets.Checkbox, bool)
		if n.OnChange != "" {
			onChange = func(c *widgets.Checkbox, v bool) {
				bl.emit(n.OnChange, Event{Source: c, ID: n.ID, Handler: "onChange", Checked: v})
			}
		}
		return widgets.CheckboxOf(n.Label, onChange).WithChecked(n.Checked).Build(bl.b)
	case TypeTextbox:
		return bl.textbox(n)
	case TypeScroll:
		cfg := widgets.ScrollAreaOf().WithBlockUserScroll(n.BlockUserScroll)
		if n.ScrollX != nil || n.ScrollY != nil {
			x, y := false, true
			if n.ScrollX != nil {
				x = *n.ScrollX
			}
			if n.ScrollY != nil {
				y = *n.ScrollY
			}
			cfg = cfg.WithScroll(x, y)
		}
		if n.OnScroll != "" {
			cfg = cfg.WithOnScroll(func(s *widgets.ScrollArea, x, y int) {
				bl.emit(n.OnScroll, Event{Source: s, ID: n.ID, Handler: "onScroll", X: x, Y: y})
			})
		}
		return cfg.Build(bl.b)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, n.Type)
}

func (bl *builder) text(n *Node) (*widgets.Text, error) {
	cfg := widgets.TextOf(n.Content).WithFontFamily(n.FontFamily)
	if n.FontSize > 0 {
		cfg = cfg.WithFontSize(n.FontSize)
	}
	if n.Color.Set {
		cfg = cfg.WithColor(n.Color.RGBA)
	}
	if n.Alpha != nil {
		cfg = cfg.WithAlpha(*n.Alpha)
	}
	if n.TextAlign != "" {
		a, _ := platform.ParseAlign(n.TextAlign)
		cfg = cfg.WithAlign(a)
	}
	return cfg.Build(bl.b)
}

func (bl *builder) button(n *Node) (*widgets.Button, error) {
	var onClick func(*widgets.Button)
	if n.OnClick != "" {
		onClick = func(btn *widgets.Button) {
			bl.emit(n.OnClick, Event{Source: btn, ID: n.ID, Handler: "onClick"})
		}
	}
	cfg := widgets.ButtonOf(n.Label, onClick).
		WithNoBorder(n.NoBorder).
		WithNoBackground(n.NoBackground)
	if n.FontSize > 0 {
		cfg = cfg.WithFontSize(n.FontSize)
	}
	if n.OnRightClick != "" {
		cfg = cfg.WithOnRightClick(func(btn *widgets.Button) {
			bl.emit(n.OnRightClick, Event{Source: btn, ID: n.ID, Handler: "onRightClick"})
		})
	}
	return cfg.Build(bl.b)
}

func (bl *builder) textbox(n *Node) (*widgets.Textbox, error) {
	cfg := widgets.TextboxOf(n.Placeholder).WithText(n.Text)
	if !n.Size.IsZero() {
		cfg = cfg.WithSize(n.Size.Width, n.Size.Height)
	}
	if n.OnChange != "" {
		cfg = cfg.WithOnChange(func(tb *widgets.Textbox, s string) {
			bl.emit(n.OnChange, Event{Source: tb, ID: n.ID, Handler: "onChange", Text: s})
		})
	}
	if n.OnSubmit != "" {
		cfg = cfg.WithOnSubmit(func(tb *widgets.Textbox, s string) {
			bl.emit(n.OnSubmit, Event{Source: tb, ID: n.ID, Handler: "onSubmit", Text: s})
		})
	}
	return cfg.Build(bl.b)
}
