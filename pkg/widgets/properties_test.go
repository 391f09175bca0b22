package widgets_test

import (
	"slices"
	"testing"

	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/errors"
	"github.com/hyprbind/hyprbind/pkg/headless"
	"github.com/hyprbind/hyprbind/pkg/platform"
	"github.com/hyprbind/hyprbind/pkg/widgets"
)

func TestLookupReturnsSameProxy(t *testing.T) {
	b, _ := newBackend(t)
	btn := must[*widgets.Button](t)(widgets.ButtonOf("x", nil).Build(b))

	first, err := b.Registry().Lookup(btn.Handle())
	if err != nil {
		t.Fatal(err)
	}
	second, _ := b.Registry().Lookup(btn.Handle())
	if first != second || first != platform.Proxy(btn) {
		t.Error("lookups must return the registered proxy instance")
	}

	win := must[*widgets.Window](t)(widgets.WindowOf("w").Build(b))
	r1 := must[*widgets.Element](t)(win.Root())
	r2 := must[*widgets.Element](t)(win.Root())
	if r1 != r2 {
		t.Error("Root must be memoized")
	}
	if got, _ := b.Registry().Lookup(r1.Handle()); got != platform.Proxy(r1) {
		t.Error("root element must be registered")
	}
}

func TestCreationFailureRegistersNothing(t *testing.T) {
	tests := []struct {
		kind  platform.Kind
		name  string
		build func(b *engine.Backend) error
	}{
		{platform.KindWindow, "window", func(b *engine.Backend) error {
			_, err := widgets.WindowOf("w").Build(b)
			return err
		}},
		{platform.KindButton, "button", func(b *engine.Backend) error {
			_, err := widgets.ButtonOf("b", nil).Build(b)
			return err
		}},
		{platform.KindText, "text", func(b *engine.Backend) error {
			_, err := widgets.TextOf("t").Build(b)
			return err
		}},
		{platform.KindRectangle, "rectangle", func(b *engine.Backend) error {
			_, err := widgets.RectangleConfig{}.Build(b)
			return err
		}},
		{platform.KindLine, "line", func(b *engine.Backend) error {
			_, err := widgets.LineOf(widgets.Point{}, widgets.Point{X: 1, Y: 1}).Build(b)
			return err
		}},
		{platform.KindCheckbox, "checkbox", func(b *engine.Backend) error {
			_, err := widgets.CheckboxOf("c", nil).Build(b)
			return err
		}},
		{platform.KindTextbox, "textbox", func(b *engine.Backend) error {
			_, err := widgets.TextboxOf("p").Build(b)
			return err
		}},
		{platform.KindScrollArea, "scroll area", func(b *engine.Backend) error {
			_, err := widgets.ScrollAreaOf().Build(b)
			return err
		}},
		{platform.KindColumnLayout, "column layout", func(b *engine.Backend) error {
			_, err := widgets.LayoutOf(0).BuildColumn(b)
			return err
		}},
		{platform.KindRowLayout, "row layout", func(b *engine.Backend) error {
			_, err := widgets.LayoutOf(0).BuildRow(b)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, tk := newBackend(t)
			tk.FailNext(tt.kind)

			err := tt.build(b)

			if !errors.Is(err, errors.ErrCreationFailed) {
				t.Fatalf("err = %v, want ErrCreationFailed", err)
			}
			var ce *errors.CreationError
			if !errors.As(err, &ce) || ce.Widget != tt.name {
				t.Errorf("CreationError = %+v, want widget %q", ce, tt.name)
			}
			var be *errors.BindError
			if !errors.As(err, &be) || be.Kind != errors.KindCreation {
				t.Errorf("BindError = %+v, want KindCreation", be)
			}
			if n := b.Registry().Len(); n != 0 {
				t.Errorf("registry holds %d handles after failed creation", n)
			}
			if n := b.Bridge().Len(); n != 0 {
				t.Errorf("bridge holds %d callbacks after failed creation", n)
			}
		})
	}
}

func TestRootCreationFailure(t *testing.T) {
	b, tk := newBackend(t)
	tk.FailNext(platform.KindElement)
	win := must[*widgets.Window](t)(widgets.WindowOf("w").Build(b))

	_, err := win.Root()

	var ce *errors.CreationError
	if !errors.As(err, &ce) || ce.Widget != "root element" {
		t.Fatalf("Root() = %v, want CreationError for the root element", err)
	}
	if b.Registry().Len() != 1 {
		t.Errorf("registry Len = %d, want only the window", b.Registry().Len())
	}
}

// repeatToolkit hands out the same button handle for every creation, which
// a correct native side never does.
type repeatToolkit struct {
	*headless.Toolkit
	first platform.Handle
}

func (r *repeatToolkit) CreateButton(p platform.ButtonParams) platform.Handle {
	h := r.Toolkit.CreateButton(p)
	if r.first == platform.NullHandle {
		r.first = h
	}
	return r.first
}

func TestDuplicateHandleRejected(t *testing.T) {
	tk := &repeatToolkit{Toolkit: headless.New()}
	rt := engine.NewRuntime(tk, engine.WithLogger(engine.DiscardLogger()))
	b, err := rt.Create()
	if err != nil {
		t.Fatal(err)
	}
	defer b.Destroy()

	first := must[*widgets.Button](t)(widgets.ButtonOf("a", nil).Build(b))
	_, err = widgets.ButtonOf("b", nil).Build(b)

	if !errors.Is(err, errors.ErrDuplicateHandle) {
		t.Fatalf("second Build = %v, want ErrDuplicateHandle", err)
	}
	if p, _ := b.Registry().Lookup(first.Handle()); p != platform.Proxy(first) {
		t.Error("the original proxy must stay registered")
	}
	if tk.CallCount("DestroyElement") != 1 {
		t.Errorf("DestroyElement calls = %d, want 1", tk.CallCount("DestroyElement"))
	}
}

func TestReparent(t *testing.T) {
	b, tk := newBackend(t)
	parentA := must[*widgets.ColumnLayout](t)(widgets.LayoutOf(0).BuildColumn(b))
	parentB := must[*widgets.RowLayout](t)(widgets.LayoutOf(0).BuildRow(b))
	child := must[*widgets.Text](t)(widgets.TextOf("c").Build(b))

	if err := parentA.AddChild(child); err != nil {
		t.Fatal(err)
	}
	if err := parentB.AddChild(child); err != nil {
		t.Fatal(err)
	}

	aKids := must[[]widgets.Widget](t)(parentA.Children())
	bKids := must[[]widgets.Widget](t)(parentB.Children())
	if len(aKids) != 0 {
		t.Errorf("parentA children = %d, want 0", len(aKids))
	}
	if len(bKids) != 1 || bKids[0] != widgets.Widget(child) {
		t.Errorf("parentB children = %v, want [child]", bKids)
	}
	if p := must[widgets.Widget](t)(child.Parent()); p != widgets.Widget(parentB) {
		t.Errorf("Parent = %v, want parentB", p)
	}

	if n := mustNode(t, tk, parentA.Handle()); len(n.Children) != 0 {
		t.Errorf("native parentA children = %v", n.Children)
	}
	if n := mustNode(t, tk, parentB.Handle()); !slices.Equal(n.Children, []platform.Handle{child.Handle()}) {
		t.Errorf("native parentB children = %v", n.Children)
	}

	calls := tk.Calls()
	i := slices.IndexFunc(calls, func(c headless.Call) bool {
		return c.Op == "RemoveChild" && c.Handle == parentA.Handle() && c.Other == child.Handle()
	})
	j := slices.IndexFunc(calls, func(c headless.Call) bool {
		return c.Op == "AddChild" && c.Handle == parentB.Handle()
	})
	if i < 0 || j < 0 || i > j {
		t.Errorf("want native remove from old parent before add; calls = %v", calls)
	}
}

func TestAddChildSameParentIsNoop(t *testing.T) {
	b, tk := newBackend(t)
	col := must[*widgets.ColumnLayout](t)(widgets.LayoutOf(0).BuildColumn(b))
	child := must[*widgets.Text](t)(widgets.TextOf("c").Build(b))

	for range 2 {
		if err := col.AddChild(child); err != nil {
			t.Fatal(err)
		}
	}
	if n := tk.CallCount("AddChild"); n != 1 {
		t.Errorf("native AddChild calls = %d, want 1", n)
	}
	if kids := must[[]widgets.Widget](t)(col.Children()); len(kids) != 1 {
		t.Errorf("children = %d, want 1", len(kids))
	}
}

func TestAddChildRejectsCycles(t *testing.T) {
	b, tk := newBackend(t)
	outer := must[*widgets.ColumnLayout](t)(widgets.LayoutOf(0).BuildColumn(b))
	inner := must[*widgets.RowLayout](t)(widgets.LayoutOf(0).BuildRow(b))
	if err := outer.AddChild(inner); err != nil {
		t.Fatal(err)
	}
	before := len(tk.Calls())

	if err := inner.AddChild(outer); !errors.Is(err, errors.ErrInvalidTree) {
		t.Errorf("cycle = %v, want ErrInvalidTree", err)
	}
	if err := outer.AddChild(outer); !errors.Is(err, errors.ErrInvalidTree) {
		t.Errorf("self attach = %v, want ErrInvalidTree", err)
	}
	if after := len(tk.Calls()); after != before {
		t.Errorf("rejected attach made %d native calls", after-before)
	}
}

func TestAddChildRejectsWindowRoot(t *testing.T) {
	b, tk := newBackend(t)
	win := must[*widgets.Window](t)(widgets.WindowOf("w").Build(b))
	root := must[*widgets.Element](t)(win.Root())
	col := must[*widgets.ColumnLayout](t)(widgets.LayoutOf(0).BuildColumn(b))
	before := len(tk.Calls())

	if err := col.AddChild(root); !errors.Is(err, errors.ErrInvalidTree) {
		t.Fatalf("AddChild(root) = %v, want ErrInvalidTree", err)
	}
	if after := len(tk.Calls()); after != before {
		t.Errorf("rejected attach made %d native calls", after-before)
	}
	if parent, ok := b.Registry().Parent(root.Handle()); !ok || parent != win.Handle() {
		t.Error("root must stay linked under its window")
	}

	// The root still goes with its window.
	if err := win.Destroy(); err != nil {
		t.Fatal(err)
	}
	if root.Valid() {
		t.Error("root must be invalid after its window is destroyed")
	}
	if err := root.SetSize(1, 1); !errors.Is(err, errors.ErrInvalidHandle) {
		t.Errorf("SetSize on destroyed root = %v, want ErrInvalidHandle", err)
	}
}

func TestRemoveChildNotAttached(t *testing.T) {
	b, _ := newBackend(t)
	col := must[*widgets.ColumnLayout](t)(widgets.LayoutOf(0).BuildColumn(b))
	child := must[*widgets.Text](t)(widgets.TextOf("c").Build(b))

	if err := col.RemoveChild(child); !errors.Is(err, errors.ErrInvalidTree) {
		t.Errorf("RemoveChild = %v, want ErrInvalidTree", err)
	}
	if err := col.AddChild(nil); !errors.Is(err, errors.ErrInvalidHandle) {
		t.Errorf("AddChild(nil) = %v, want ErrInvalidHandle", err)
	}
}

func TestMutatorsFailAfterDestroy(t *testing.T) {
	b, tk := newBackend(t)
	col := must[*widgets.ColumnLayout](t)(widgets.LayoutOf(0).BuildColumn(b))
	btn := must[*widgets.Button](t)(widgets.ButtonOf("x", nil).Build(b))
	tb := must[*widgets.Textbox](t)(widgets.TextboxOf("").Build(b))
	other := must[*widgets.Text](t)(widgets.TextOf("o").Build(b))
	if err := col.AddChild(tb); err != nil {
		t.Fatal(err)
	}
	if err := btn.Destroy(); err != nil {
		t.Fatal(err)
	}
	if err := col.Destroy(); err != nil {
		t.Fatal(err)
	}
	before := len(tk.Calls())

	ops := map[string]func() error{
		"SetLabel":            func() error { return btn.SetLabel("y") },
		"SetSize":             func() error { return btn.SetSize(1, 1) },
		"SetMargin":           func() error { return btn.SetMargin(1, 1, 1, 1) },
		"SetGrow":             func() error { return btn.SetGrow(true, true) },
		"SetAlign":            func() error { return btn.SetAlign(platform.AlignCenter) },
		"SetPositionMode":     func() error { return btn.SetPositionMode(platform.PositionAbsolute) },
		"SetAbsolutePosition": func() error { return btn.SetAbsolutePosition(1, 1) },
		"SetMouseHandlers": func() error {
			return btn.SetMouseHandlers(widgets.MouseHandlers{OnEnter: func(widgets.MouseEvent) {}})
		},
		"RemoveMouseHandlers": btn.RemoveMouseHandlers,
		"SetOnClick":          func() error { return btn.SetOnClick(func(*widgets.Button) {}) },
		"AddChild":            func() error { return btn.AddChild(other) },
		"AddChild(destroyed)": func() error { return other.AddChild(btn) },
		"ClearChildren":       btn.ClearChildren,
		"Destroy":             btn.Destroy,
		"descendant SetText":  func() error { return tb.SetText("z") },
		"descendant Clear":    tb.Clear,
		"descendant Text": func() error {
			_, err := tb.Text()
			return err
		},
		"Parent": func() error {
			_, err := tb.Parent()
			return err
		},
	}
	for name, op := range ops {
		err := op()
		if !errors.Is(err, errors.ErrInvalidHandle) {
			t.Errorf("%s = %v, want ErrInvalidHandle", name, err)
		}
		var be *errors.BindError
		if errors.As(err, &be) && be.Kind != errors.KindInvalidHandle {
			t.Errorf("%s kind = %s, want invalid-handle", name, be.Kind)
		}
	}
	if after := len(tk.Calls()); after != before {
		t.Errorf("%d native calls made through destroyed proxies", after-before)
	}
}

func TestAlphaClamping(t *testing.T) {
	b, tk := newBackend(t)
	tests := []struct{ in, want float64 }{
		{-0.5, 0.0},
		{0.0, 0.0},
		{0.5, 0.5},
		{1.0, 1.0},
		{2.0, 1.0},
	}
	for _, tt := range tests {
		txt := must[*widgets.Text](t)(widgets.TextOf("a").WithAlpha(tt.in).Build(b))
		if got := txt.Alpha(); got != tt.want {
			t.Errorf("Alpha(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if n := mustNode(t, tk, txt.Handle()); n.Alpha != tt.want {
			t.Errorf("native alpha for %v = %v, want %v", tt.in, n.Alpha, tt.want)
		}
	}
}

func TestBuildWithoutBackend(t *testing.T) {
	b, tk := newBackend(t)
	if err := b.Destroy(); err != nil {
		t.Fatal(err)
	}
	before := len(tk.Calls())

	for name, build := range map[string]func(*engine.Backend) error{
		"window": func(b *engine.Backend) error { _, err := widgets.WindowOf("w").Build(b); return err },
		"button": func(b *engine.Backend) error { _, err := widgets.ButtonOf("b", nil).Build(b); return err },
		"text":   func(b *engine.Backend) error { _, err := widgets.TextOf("t").Build(b); return err },
	} {
		if err := build(b); !errors.Is(err, errors.ErrNotInitialized) {
			t.Errorf("%s on destroyed backend = %v, want ErrNotInitialized", name, err)
		}
		if err := build(nil); !errors.Is(err, errors.ErrNotInitialized) {
			t.Errorf("%s on nil backend = %v, want ErrNotInitialized", name, err)
		}
	}
	if after := len(tk.Calls()); after != before {
		t.Errorf("construction without a backend made %d native calls", after-before)
	}
}
