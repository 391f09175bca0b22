package widgets

import (
	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

// LayoutConfig describes a column or row layout.
type LayoutConfig struct {
	// Gap is the spacing between children in pixels.
	Gap int
	// Width and Height <= 0 mean auto.
	Width  int
	Height int
}

// LayoutOf returns a layout config with the given gap.
func LayoutOf(gap int) LayoutConfig {
	return LayoutConfig{Gap: gap}
}

// WithSize returns a copy of the config with the given size.
func (c LayoutConfig) WithSize(width, height int) LayoutConfig {
	c.Width, c.Height = width, height
	return c
}

func (c LayoutConfig) params() platform.LayoutParams {
	return platform.LayoutParams{Gap: max(c.Gap, 0), Width: c.Width, Height: c.Height}
}

// BuildColumn creates a native layout stacking children vertically.
func (c LayoutConfig) BuildColumn(b *engine.Backend) (*ColumnLayout, error) {
	p := c.params()
	return construct("widgets.LayoutConfig.BuildColumn", b, platform.KindColumnLayout,
		func(tk platform.Toolkit) platform.Handle { return tk.CreateColumnLayout(p) },
		func(e *Element) *ColumnLayout { return &ColumnLayout{Element: e} })
}

// BuildRow creates a native layout placing children side by side.
func (c LayoutConfig) BuildRow(b *engine.Backend) (*RowLayout, error) {
	p := c.params()
	return construct("widgets.LayoutConfig.BuildRow", b, platform.KindRowLayout,
		func(tk platform.Toolkit) platform.Handle { return tk.CreateRowLayout(p) },
		func(e *Element) *RowLayout { return &RowLayout{Element: e} })
}

// ColumnLayout is the proxy for a native column layout.
type ColumnLayout struct {
	*Element
}

// RowLayout is the proxy for a native row layout.
type RowLayout struct {
	*Element
}

// Column builds a column layout with the given gap and attaches children to
// it in order. On error the layout is destroyed.
func Column(b *engine.Backend, gap int, children ...Widget) (*ColumnLayout, error) {
	col, err := LayoutOf(gap).BuildColumn(b)
	if err != nil {
		return nil, err
	}
	if err := attachAll(col.Element, children); err != nil {
		return nil, err
	}
	return col, nil
}

// Row builds a row layout with the given gap and attaches children to it in
// order. On error the layout is destroyed.
func Row(b *engine.Backend, gap int, children ...Widget) (*RowLayout, error) {
	row, err := LayoutOf(gap).BuildRow(b)
	if err != nil {
		return nil, err
	}
	if err := attachAll(row.Element, children); err != nil {
		return nil, err
	}
	return row, nil
}

func attachAll(parent *Element, children []Widget) error {
	for _, c := range children {
		if err := parent.AddChild(c); err != nil {
			_ = parent.ClearChildren()
			_ = parent.Destroy()
			return err
		}
	}
	return nil
}
