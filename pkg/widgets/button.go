package widgets

import (
	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

// ButtonConfig describes a push button.
//
// Example using struct literal:
//
//	widgets.ButtonConfig{
//	    Label:   "Submit",
//	    OnClick: handleSubmit,
//	}.Build(backend)
//
// Example using the XxxOf helper:
//
//	widgets.ButtonOf("Submit", handleSubmit).
//	    WithSize(120, 32).
//	    WithNoBorder(true).
//	    Build(backend)
type ButtonConfig struct {
	// Label is the text displayed on the button.
	Label string
	// Width and Height <= 0 size the button to its label.
	Width  int
	Height int
	// NoBorder hides the border.
	NoBorder bool
	// NoBackground hides the background.
	NoBackground bool
	// FontSize is the label size. Defaults to 12 if <= 0.
	FontSize int
	// OnClick is called when the button is activated.
	OnClick func(*Button)
	// OnRightClick is called on secondary activation.
	OnRightClick func(*Button)
}

// ButtonOf returns a button config with the given label and click handler.
func ButtonOf(label string, onClick func(*Button)) ButtonConfig {
	return ButtonConfig{Label: label, OnClick: onClick, FontSize: DefaultFontSize}
}

// WithSize returns a copy of the config with the given size.
func (c ButtonConfig) WithSize(width, height int) ButtonConfig {
	c.Width, c.Height = width, height
	return c
}

// WithNoBorder returns a copy of the config with the border hidden or shown.
func (c ButtonConfig) WithNoBorder(v bool) ButtonConfig {
	c.NoBorder = v
	return c
}

// WithNoBackground returns a copy of the config with the background hidden or shown.
func (c ButtonConfig) WithNoBackground(v bool) ButtonConfig {
	c.NoBackground = v
	return c
}

// WithFontSize returns a copy of the config with the given label size.
func (c ButtonConfig) WithFontSize(size int) ButtonConfig {
	c.FontSize = size
	return c
}

// WithOnRightClick returns a copy of the config with the given secondary handler.
func (c ButtonConfig) WithOnRightClick(fn func(*Button)) ButtonConfig {
	c.OnRightClick = fn
	return c
}

// Build creates the native button.
func (c ButtonConfig) Build(b *engine.Backend) (*Button, error) {
	p := platform.ButtonParams{
		Label:        c.Label,
		Width:        c.Width,
		Height:       c.Height,
		NoBorder:     c.NoBorder,
		NoBackground: c.NoBackground,
		FontSize:     orInt(c.FontSize, DefaultFontSize),
	}
	btn, err := construct("widgets.ButtonConfig.Build", b, platform.KindButton,
		func(tk platform.Toolkit) platform.Handle { return tk.CreateButton(p) },
		func(e *Element) *Button { return &Button{Element: e} })
	if err != nil {
		return nil, err
	}
	if c.OnClick != nil {
		btn.setOnClick(c.OnClick)
	}
	if c.OnRightClick != nil {
		btn.setOnRightClick(c.OnRightClick)
	}
	return btn, nil
}

// Button is the proxy for a native push button.
type Button struct {
	*Element
}

// SetLabel replaces the label text.
func (b *Button) SetLabel(label string) error {
	if err := b.live("widgets.Button.SetLabel"); err != nil {
		return err
	}
	b.toolkit().SetButtonLabel(b.handle, label)
	return nil
}

// SetOnClick replaces the click handler. Nil removes it.
func (b *Button) SetOnClick(fn func(*Button)) error {
	if err := b.live("widgets.Button.SetOnClick"); err != nil {
		return err
	}
	if fn == nil {
		b.unlisten(platform.EventClick)
		return nil
	}
	b.setOnClick(fn)
	return nil
}

// SetOnRightClick replaces the secondary click handler. Nil removes it.
func (b *Button) SetOnRightClick(fn func(*Button)) error {
	if err := b.live("widgets.Button.SetOnRightClick"); err != nil {
		return err
	}
	if fn == nil {
		b.unlisten(platform.EventRightClick)
		return nil
	}
	b.setOnRightClick(fn)
	return nil
}

func (b *Button) setOnClick(fn func(*Button)) {
	b.listen(platform.EventClick, func(platform.Event) { fn(b) })
}

func (b *Button) setOnRightClick(fn func(*Button)) {
	b.listen(platform.EventRightClick, func(platform.Event) { fn(b) })
}

var _ Widget = (*Button)(nil)
