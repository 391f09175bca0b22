package widgets

import (
	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

// TextboxConfig describes a single line text input.
type TextboxConfig struct {
	Placeholder string
	// Text is the initial content.
	Text string
	// Width and Height default to 200x40 if <= 0.
	Width  int
	Height int
	// OnSubmit is called with the current text when the user submits.
	OnSubmit func(tb *Textbox, text string)
	// OnChange is called with the new text after every edit.
	OnChange func(tb *Textbox, text string)
}

// TextboxOf returns a 200x40 textbox config with the given placeholder.
func TextboxOf(placeholder string) TextboxConfig {
	return TextboxConfig{Placeholder: placeholder, Width: DefaultTextboxWidth, Height: DefaultTextboxHeight}
}

// WithText returns a copy of the config with the given initial text.
func (c TextboxConfig) WithText(text string) TextboxConfig {
	c.Text = text
	return c
}

// WithSize returns a copy of the config with the given size.
func (c TextboxConfig) WithSize(width, height int) TextboxConfig {
	c.Width, c.Height = width, height
	return c
}

// WithOnSubmit returns a copy of the config with the given submit handler.
func (c TextboxConfig) WithOnSubmit(fn func(*Textbox, string)) TextboxConfig {
	c.OnSubmit = fn
	return c
}

// WithOnChange returns a copy of the config with the given change handler.
func (c TextboxConfig) WithOnChange(fn func(*Textbox, string)) TextboxConfig {
	c.OnChange = fn
	return c
}

// Build creates the native textbox.
func (c TextboxConfig) Build(b *engine.Backend) (*Textbox, error) {
	p := platform.TextboxParams{
		Placeholder: c.Placeholder,
		Text:        c.Text,
		Width:       orInt(c.Width, DefaultTextboxWidth),
		Height:      orInt(c.Height, DefaultTextboxHeight),
	}
	tb, err := construct("widgets.TextboxConfig.Build", b, platform.KindTextbox,
		func(tk platform.Toolkit) platform.Handle { return tk.CreateTextbox(p) },
		func(e *Element) *Textbox { return &Textbox{Element: e} })
	if err != nil {
		return nil, err
	}
	if c.OnSubmit != nil {
		tb.setOnSubmit(c.OnSubmit)
	}
	if c.OnChange != nil {
		tb.setOnChange(c.OnChange)
	}
	return tb, nil
}

// Textbox is the proxy for a native text input.
type Textbox struct {
	*Element
}

// Text returns the current content.
func (t *Textbox) Text() (string, error) {
	if err := t.live("widgets.Textbox.Text"); err != nil {
		return "", err
	}
	return t.toolkit().TextboxText(t.handle), nil
}

// SetText replaces the content without notifying OnChange.
func (t *Textbox) SetText(text string) error {
	if err := t.live("widgets.Textbox.SetText"); err != nil {
		return err
	}
	t.toolkit().SetTextboxText(t.handle, text)
	return nil
}

// Clear empties the textbox.
func (t *Textbox) Clear() error {
	if err := t.live("widgets.Textbox.Clear"); err != nil {
		return err
	}
	t.toolkit().SetTextboxText(t.handle, "")
	return nil
}

// SetOnSubmit replaces the submit handler. Nil removes it.
func (t *Textbox) SetOnSubmit(fn func(*Textbox, string)) error {
	if err := t.live("widgets.Textbox.SetOnSubmit"); err != nil {
		return err
	}
	if fn == nil {
		t.unlisten(platform.EventTextSubmit)
		return nil
	}
	t.setOnSubmit(fn)
	return nil
}

// SetOnChange replaces the change handler. Nil removes it.
func (t *Textbox) SetOnChange(fn func(*Textbox, string)) error {
	if err := t.live("widgets.Textbox.SetOnChange"); err != nil {
		return err
	}
	if fn == nil {
		t.unlisten(platform.EventTextChange)
		return nil
	}
	t.setOnChange(fn)
	return nil
}

func (t *Textbox) setOnSubmit(fn func(*Textbox, string)) {
	t.listen(platform.EventTextSubmit, func(ev platform.Event) { fn(t, ev.Text) })
}

func (t *Textbox) setOnChange(fn func(*Textbox, string)) {
	t.listen(platform.EventTextChange, func(ev platform.Event) { fn(t, ev.Text) })
}
