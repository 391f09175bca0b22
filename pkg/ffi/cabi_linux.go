//go:build linux

package ffi

import (
	"image/color"
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/hyprbind/hyprbind/pkg/platform"
)

// Go mirrors of the structs in include/hyprbind.h. Field order and padding
// must match the C layout exactly.

type cColor struct {
	R, G, B, A uint8
}

func toColor(c color.RGBA) cColor {
	return cColor{R: c.R, G: c.G, B: c.B, A: c.A}
}

type cEvent struct {
	Kind      int32
	Button    int32
	X         float64
	Y         float64
	Width     int32
	Height    int32
	KeyCode   uint32
	Modifiers uint32
	Pressed   uint8
	Checked   uint8
	_         [6]byte
	Text      *byte
}

func (e *cEvent) event() platform.Event {
	ev := platform.Event{
		Kind:      platform.EventKind(e.Kind),
		X:         e.X,
		Y:         e.Y,
		Button:    int(e.Button),
		Pressed:   e.Pressed != 0,
		Width:     int(e.Width),
		Height:    int(e.Height),
		KeyCode:   e.KeyCode,
		Modifiers: e.Modifiers,
		Checked:   e.Checked != 0,
	}
	if e.Text != nil {
		ev.Text = unix.BytePtrToString(e.Text)
	}
	return ev
}

type cWindowParams struct {
	Title     *byte
	Class     *byte
	Width     int32
	Height    int32
	MinWidth  int32
	MinHeight int32
	MaxWidth  int32
	MaxHeight int32
}

type cButtonParams struct {
	Label        *byte
	Width        int32
	Height       int32
	FontSize     int32
	NoBorder     uint8
	NoBackground uint8
	_            [2]byte
}

type cTextParams struct {
	Content    *byte
	FontFamily *byte
	FontSize   int32
	Color      cColor
	Align      int32
	Alpha      float32
}

type cRectangleParams struct {
	Color           cColor
	BorderColor     cColor
	BorderThickness int32
	Rounding        int32
	Width           int32
	Height          int32
}

type cLineParams struct {
	Color     cColor
	Thickness int32
	Points    *float64
	NumPoints int32
	Width     int32
	Height    int32
}

type cCheckboxParams struct {
	Label   *byte
	Checked uint8
	_       [7]byte
}

type cTextboxParams struct {
	Placeholder *byte
	Text        *byte
	Width       int32
	Height      int32
}

type cScrollAreaParams struct {
	ScrollX         uint8
	ScrollY         uint8
	BlockUserScroll uint8
	_               uint8
	Width           int32
	Height          int32
}

type cLayoutParams struct {
	Gap    int32
	Width  int32
	Height int32
}

// pins keeps Go memory referenced from a params struct in place for the
// duration of one native call.
type pins struct {
	p runtime.Pinner
}

// str returns a pinned NUL-terminated copy of s.
func (p *pins) str(s string) *byte {
	b := append([]byte(s), 0)
	p.p.Pin(&b[0])
	return &b[0]
}

// floats returns a pinned pointer to the first element of f, or nil.
func (p *pins) floats(f []float64) *float64 {
	if len(f) == 0 {
		return nil
	}
	p.p.Pin(&f[0])
	return &f[0]
}

func (p *pins) release() {
	p.p.Unpin()
}

func cbool(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
