package widgets

import (
	"image/color"

	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

// RectangleConfig describes a filled, optionally bordered rectangle.
type RectangleConfig struct {
	// Color defaults to opaque white if zero.
	Color color.RGBA
	// BorderColor is only drawn when BorderThickness > 0. RectangleOf sets
	// it to opaque black.
	BorderColor     color.RGBA
	BorderThickness int
	Rounding        int
	// Width and Height <= 0 mean auto.
	Width  int
	Height int
}

// RectangleOf returns a rectangle config with the given fill color and an
// opaque black border color.
func RectangleOf(fill color.RGBA) RectangleConfig {
	return RectangleConfig{Color: fill, BorderColor: DefaultBorderColor}
}

// WithBorder returns a copy of the config with the given border.
func (c RectangleConfig) WithBorder(col color.RGBA, thickness int) RectangleConfig {
	c.BorderColor, c.BorderThickness = col, thickness
	return c
}

// WithRounding returns a copy of the config with the given corner radius.
func (c RectangleConfig) WithRounding(radius int) RectangleConfig {
	c.Rounding = radius
	return c
}

// WithSize returns a copy of the config with the given size.
func (c RectangleConfig) WithSize(width, height int) RectangleConfig {
	c.Width, c.Height = width, height
	return c
}

// Build creates the native rectangle.
func (c RectangleConfig) Build(b *engine.Backend) (*Rectangle, error) {
	p := platform.RectangleParams{
		Color:           orColor(c.Color, DefaultColor),
		BorderColor:     c.BorderColor,
		BorderThickness: max(c.BorderThickness, 0),
		Rounding:        max(c.Rounding, 0),
		Width:           c.Width,
		Height:          c.Height,
	}
	return construct("widgets.RectangleConfig.Build", b, platform.KindRectangle,
		func(tk platform.Toolkit) platform.Handle { return tk.CreateRectangle(p) },
		func(e *Element) *Rectangle { return &Rectangle{Element: e} })
}

// Rectangle is the proxy for a native rectangle.
type Rectangle struct {
	*Element
}

// Point is a line vertex in coordinates normalized to the element size:
// (0, 0) is the top left corner and (1, 1) the bottom right.
type Point struct {
	X, Y float64
}

// LineConfig describes a polyline.
type LineConfig struct {
	// Color defaults to opaque white if zero.
	Color color.RGBA
	// Thickness defaults to 1 if <= 0.
	Thickness int
	Points    []Point
	// Width and Height <= 0 mean auto.
	Width  int
	Height int
}

// LineOf returns a white, 1px line config through points.
func LineOf(points ...Point) LineConfig {
	return LineConfig{Color: DefaultColor, Thickness: DefaultLineThickness, Points: points}
}

// WithColor returns a copy of the config with the given color.
func (c LineConfig) WithColor(col color.RGBA) LineConfig {
	c.Color = col
	return c
}

// WithThickness returns a copy of the config with the given thickness.
func (c LineConfig) WithThickness(thickness int) LineConfig {
	c.Thickness = thickness
	return c
}

// WithSize returns a copy of the config with the given size.
func (c LineConfig) WithSize(width, height int) LineConfig {
	c.Width, c.Height = width, height
	return c
}

// Build creates the native line. Points are flattened to x,y pairs.
func (c LineConfig) Build(b *engine.Backend) (*Line, error) {
	flat := make([]float64, 0, 2*len(c.Points))
	for _, pt := range c.Points {
		flat = append(flat, pt.X, pt.Y)
	}
	p := platform.LineParams{
		Color:     orColor(c.Color, DefaultColor),
		Thickness: orInt(c.Thickness, DefaultLineThickness),
		Points:    flat,
		Width:     c.Width,
		Height:    c.Height,
	}
	return construct("widgets.LineConfig.Build", b, platform.KindLine,
		func(tk platform.Toolkit) platform.Handle { return tk.CreateLine(p) },
		func(e *Element) *Line { return &Line{Element: e} })
}

// Line is the proxy for a native polyline.
type Line struct {
	*Element
}
