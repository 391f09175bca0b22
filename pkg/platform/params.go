package platform

import (
	"image/color"
	"strings"
)

// Align is an element position flag.
type Align int

const (
	AlignNone Align = iota
	AlignLeft
	AlignRight
	AlignTop
	AlignBottom
	AlignHCenter
	AlignVCenter
	AlignCenter
)

var alignNames = map[Align]string{
	AlignNone:    "none",
	AlignLeft:    "left",
	AlignRight:   "right",
	AlignTop:     "top",
	AlignBottom:  "bottom",
	AlignHCenter: "hcenter",
	AlignVCenter: "vcenter",
	AlignCenter:  "center",
}

func (a Align) String() string {
	if s, ok := alignNames[a]; ok {
		return s
	}
	return "unknown"
}

// ParseAlign maps a flag name ("center", "left", ...) to an Align.
// Unknown names yield AlignNone and false.
func ParseAlign(s string) (Align, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range alignNames {
		if name == s {
			return a, true
		}
	}
	return AlignNone, false
}

// PositionMode selects how an element is placed inside its parent.
type PositionMode int

const (
	// PositionAuto lets the parent layout place the element.
	PositionAuto PositionMode = iota
	// PositionAbsolute places the element at its absolute position.
	PositionAbsolute
)

func (m PositionMode) String() string {
	if m == PositionAbsolute {
		return "absolute"
	}
	return "auto"
}

// SizeAuto lets the toolkit pick a dimension. Any value <= 0 means auto.
const SizeAuto = -1

// WindowParams configures a native window.
type WindowParams struct {
	Title     string
	Class     string
	Width     int
	Height    int
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
}

// ButtonParams configures a native button.
type ButtonParams struct {
	Label        string
	Width        int
	Height       int
	NoBorder     bool
	NoBackground bool
	FontSize     int
}

// TextParams configures a native text element.
type TextParams struct {
	Content    string
	FontSize   int
	FontFamily string
	Color      color.RGBA
	Align      Align
	Alpha      float64
}

// RectangleParams configures a native rectangle.
type RectangleParams struct {
	Color           color.RGBA
	BorderColor     color.RGBA
	BorderThickness int
	Rounding        int
	Width           int
	Height          int
}

// LineParams configures a native polyline. Points holds x,y pairs in
// coordinates normalized to the element size.
type LineParams struct {
	Color     color.RGBA
	Thickness int
	Points    []float64
	Width     int
	Height    int
}

// CheckboxParams configures a native checkbox.
type CheckboxParams struct {
	Label   string
	Checked bool
}

// TextboxParams configures a native text input.
type TextboxParams struct {
	Placeholder string
	Text        string
	Width       int
	Height      int
}

// ScrollAreaParams configures a native scroll container.
type ScrollAreaParams struct {
	ScrollX         bool
	ScrollY         bool
	BlockUserScroll bool
	Width           int
	Height          int
}

// LayoutParams configures a native column or row layout.
type LayoutParams struct {
	Gap    int
	Width  int
	Height int
}
