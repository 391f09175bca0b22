package widgets

import (
	"image/color"

	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

// TextConfig describes a text label.
//
// Example:
//
//	widgets.TextOf("Hello").
//	    WithFontSize(18).
//	    WithColor(colornames.Gold).
//	    Build(backend)
type TextConfig struct {
	Content string
	// FontSize defaults to 12 if <= 0.
	FontSize int
	// FontFamily empty selects the toolkit default.
	FontFamily string
	// Color defaults to opaque white if zero.
	Color color.RGBA
	// Align defaults to AlignLeft if AlignNone.
	Align platform.Align
	// Alpha is the opacity, clamped to [0, 1] at build. TextOf sets it to 1;
	// a struct literal leaving it zero builds invisible text.
	Alpha float64
}

// TextOf returns an opaque white, left aligned, 12px text config.
func TextOf(content string) TextConfig {
	return TextConfig{
		Content:  content,
		FontSize: DefaultFontSize,
		Color:    DefaultColor,
		Align:    platform.AlignLeft,
		Alpha:    1,
	}
}

// WithFontSize returns a copy of the config with the given font size.
func (c TextConfig) WithFontSize(size int) TextConfig {
	c.FontSize = size
	return c
}

// WithFontFamily returns a copy of the config with the given font family.
func (c TextConfig) WithFontFamily(family string) TextConfig {
	c.FontFamily = family
	return c
}

// WithColor returns a copy of the config with the given color.
func (c TextConfig) WithColor(col color.RGBA) TextConfig {
	c.Color = col
	return c
}

// WithAlign returns a copy of the config with the given alignment.
func (c TextConfig) WithAlign(a platform.Align) TextConfig {
	c.Align = a
	return c
}

// WithAlpha returns a copy of the config with the given opacity.
func (c TextConfig) WithAlpha(alpha float64) TextConfig {
	c.Alpha = alpha
	return c
}

// Build creates the native text element.
func (c TextConfig) Build(b *engine.Backend) (*Text, error) {
	align := c.Align
	if align == platform.AlignNone {
		align = platform.AlignLeft
	}
	p := platform.TextParams{
		Content:    c.Content,
		FontSize:   orInt(c.FontSize, DefaultFontSize),
		FontFamily: c.FontFamily,
		Color:      orColor(c.Color, DefaultColor),
		Align:      align,
		Alpha:      clamp01(c.Alpha),
	}
	return construct("widgets.TextConfig.Build", b, platform.KindText,
		func(tk platform.Toolkit) platform.Handle { return tk.CreateText(p) },
		func(e *Element) *Text { return &Text{Element: e, alpha: p.Alpha} })
}

// Text is the proxy for a native text element.
type Text struct {
	*Element
	alpha float64
}

// SetContent replaces the displayed text.
func (t *Text) SetContent(content string) error {
	if err := t.live("widgets.Text.SetContent"); err != nil {
		return err
	}
	t.toolkit().SetTextContent(t.handle, content)
	return nil
}

// SetFontSize changes the font size. Values <= 0 select the default.
func (t *Text) SetFontSize(size int) error {
	if err := t.live("widgets.Text.SetFontSize"); err != nil {
		return err
	}
	t.toolkit().SetTextFontSize(t.handle, orInt(size, DefaultFontSize))
	return nil
}

// Alpha returns the opacity the text was built with, after clamping.
func (t *Text) Alpha() float64 { return t.alpha }
