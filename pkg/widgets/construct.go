package widgets

import (
	"image/color"

	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/errors"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

// Defaults applied by the XxxOf constructors and by Build for zero fields.
var (
	DefaultColor       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	DefaultBorderColor = color.RGBA{A: 0xff}
)

const (
	DefaultFontSize      = 12
	DefaultLineThickness = 1
	DefaultTextboxWidth  = 200
	DefaultTextboxHeight = 40
)

// construct runs the creation protocol shared by every element kind: the
// backend must be live, create makes exactly one native call, a null handle
// is a CreationError and nothing is registered, and on success the proxy
// returned by wrap is registered for the handle. Callbacks are wired by the
// caller afterwards, once the concrete proxy exists.
func construct[W Widget](op string, b *engine.Backend, kind platform.Kind,
	create func(platform.Toolkit) platform.Handle, wrap func(*Element) W) (W, error) {
	var zero W
	if err := b.Live(); err != nil {
		return zero, errors.New(op, errors.KindNotInitialized, 0, err)
	}
	tk := b.Toolkit()
	h := create(tk)
	if !h.Valid() {
		return zero, errors.New(op, errors.KindCreation, 0, &errors.CreationError{Widget: kind.String()})
	}
	e := &Element{backend: b, handle: h, kind: kind}
	w := wrap(e)
	e.self = w
	if err := b.Registry().Register(h, w); err != nil {
		tk.DestroyElement(h)
		return zero, err
	}
	b.Logger().Debug("element created", "kind", kind, "handle", h)
	return w, nil
}

func orColor(c, def color.RGBA) color.RGBA {
	if c == (color.RGBA{}) {
		return def
	}
	return c
}

func orInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func clamp01(v float64) float64 {
	if v != v {
		return 0
	}
	return min(max(v, 0), 1)
}
