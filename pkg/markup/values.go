package markup

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Color is a color value. It accepts an SVG color name ("gold"), a hex
// string ("#rrggbb" or "#rrggbbaa") or a sequence of three or four 0-255
// channels.
type Color struct {
	RGBA color.RGBA
	Set  bool
}

// ParseColor parses the scalar forms of Color.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		b, err := hex.DecodeString(s[1:])
		if err != nil || (len(b) != 3 && len(b) != 4) {
			return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
		c := color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}
		if len(b) == 4 {
			c.A = b[3]
		}
		return c, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}

func (c *Color) UnmarshalYAML(v *yaml.Node) error {
	switch v.Kind {
	case yaml.ScalarNode:
		rgba, err := ParseColor(v.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", v.Line, err)
		}
		c.RGBA, c.Set = rgba, true
		return nil
	case yaml.SequenceNode:
		var ch []int
		if err := v.Decode(&ch); err != nil {
			return err
		}
		if len(ch) != 3 && len(ch) != 4 {
			return fmt.Errorf("line %d: color needs 3 or 4 channels, got %d", v.Line, len(ch))
		}
		if len(ch) == 3 {
			ch = append(ch, 0xff)
		}
		for _, x := range ch {
			if x < 0 || x > 0xff {
				return fmt.Errorf("line %d: color channel %d out of range", v.Line, x)
			}
		}
		c.RGBA = color.RGBA{R: uint8(ch[0]), G: uint8(ch[1]), B: uint8(ch[2]), A: uint8(ch[3])}
		c.Set = true
		return nil
	}
	return fmt.Errorf("line %d: invalid color", v.Line)
}

// Size is a [width, height] pair. Zero means auto.
type Size struct {
	Width, Height int
}

func (s *Size) UnmarshalYAML(v *yaml.Node) error {
	var wh []int
	if err := v.Decode(&wh); err != nil {
		return err
	}
	if len(wh) != 2 {
		return fmt.Errorf("line %d: size needs [width, height]", v.Line)
	}
	s.Width, s.Height = wh[0], wh[1]
	return nil
}

// IsZero reports whether no size was given.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// Margin is top, right, bottom, left. In YAML it is a single number, a
// [vertical, horizontal] pair or all four values.
type Margin struct {
	Top, Right, Bottom, Left int
	Set                      bool
}

func (m *Margin) UnmarshalYAML(v *yaml.Node) error {
	var vals []int
	if v.Kind == yaml.ScalarNode {
		var one int
		if err := v.Decode(&one); err != nil {
			return err
		}
		vals = []int{one}
	} else if err := v.Decode(&vals); err != nil {
		return err
	}
	switch len(vals) {
	case 1:
		*m = Margin{vals[0], vals[0], vals[0], vals[0], true}
	case 2:
		*m = Margin{vals[0], vals[1], vals[0], vals[1], true}
	case 4:
		*m = Margin{vals[0], vals[1], vals[2], vals[3], true}
	default:
		return fmt.Errorf("line %d: margin takes 1, 2 or 4 values, got %d", v.Line, len(vals))
	}
	return nil
}

// Grow selects the axes an element expands along. In YAML it is a bool
// (both axes) or one of "horizontal", "vertical", "both", "none".
type Grow struct {
	Horizontal, Vertical bool
	Set                  bool
}

func (g *Grow) UnmarshalYAML(v *yaml.Node) error {
	if v.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: invalid grow", v.Line)
	}
	var both bool
	if v.Decode(&both) == nil {
		*g = Grow{both, both, true}
		return nil
	}
	switch strings.ToLower(v.Value) {
	case "horizontal", "h":
		*g = Grow{true, false, true}
	case "vertical", "v":
		*g = Grow{false, true, true}
	case "both":
		*g = Grow{true, true, true}
	case "none":
		*g = Grow{false, false, true}
	default:
		return fmt.Errorf("line %d: unknown grow %q", v.Line, v.Value)
	}
	return nil
}
