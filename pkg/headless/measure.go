package headless

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/image/font"

	"github.com/hyprbind/hyprbind/pkg/platform"
)

const (
	buttonPadX = 16
	buttonPadY = 8
	checkGap   = 6
)

// Measure returns the size h would get: its requested size where one was
// given and a content-derived size otherwise. Text is measured with the
// toolkit's font face scaled to the element's font size.
func (t *Toolkit) Measure(h platform.Handle) (width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.nodes[h]
	if !ok {
		return 0, 0
	}
	return t.measureLocked(n)
}

func (t *Toolkit) measureLocked(n *Node) (width, height int) {
	cw, ch := t.contentLocked(n)
	width, height = n.Width, n.Height
	if width <= 0 {
		width = cw
	}
	if height <= 0 {
		height = ch
	}
	return width, height
}

// outerLocked adds margins to the measured size.
func (t *Toolkit) outerLocked(n *Node) (width, height int) {
	w, h := t.measureLocked(n)
	return w + n.Margin[1] + n.Margin[3], h + n.Margin[0] + n.Margin[2]
}

func (t *Toolkit) contentLocked(n *Node) (width, height int) {
	switch n.Kind {
	case platform.KindText:
		return t.textSize(n.Content, n.FontSize)
	case platform.KindButton:
		w, h := t.textSize(n.Label, n.FontSize)
		return w + 2*buttonPadX, h + 2*buttonPadY
	case platform.KindCheckbox:
		w, h := t.textSize(n.Label, 0)
		return h + checkGap + w, h
	case platform.KindColumnLayout, platform.KindRowLayout:
		row := n.Kind == platform.KindRowLayout
		for i, c := range n.Children {
			cn, ok := t.nodes[c]
			if !ok {
				continue
			}
			w, h := t.outerLocked(cn)
			if i > 0 {
				if row {
					width += n.Gap
				} else {
					height += n.Gap
				}
			}
			if row {
				width += w
				height = max(height, h)
			} else {
				height += h
				width = max(width, w)
			}
		}
		return width, height
	default:
		for _, c := range n.Children {
			if cn, ok := t.nodes[c]; ok {
				w, h := t.outerLocked(cn)
				width, height = max(width, w), max(height, h)
			}
		}
		return width, height
	}
}

func (t *Toolkit) textSize(s string, size int) (width, height int) {
	lineHeight := t.face.Metrics().Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = 1
	}
	if size <= 0 {
		size = lineHeight
	}
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		width = max(width, font.MeasureString(t.face, line).Ceil())
	}
	return width * size / lineHeight, size * len(lines)
}

// Dump writes the native tree rooted at h, one object per line, indented by
// depth, with measured sizes.
func (t *Toolkit) Dump(w io.Writer, h platform.Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dumpLocked(w, h, 0)
}

func (t *Toolkit) dumpLocked(w io.Writer, h platform.Handle, depth int) error {
	n, ok := t.nodes[h]
	if !ok {
		return fmt.Errorf("headless: no object %s", h)
	}
	width, height := t.measureLocked(n)
	line := fmt.Sprintf("%s%s %s %dx%d", strings.Repeat("  ", depth), n.Kind, n.Handle, width, height)
	if label := describe(n); label != "" {
		line += " " + label
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := t.dumpLocked(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func describe(n *Node) string {
	switch n.Kind {
	case platform.KindWindow:
		return fmt.Sprintf("%q", n.Title)
	case platform.KindButton, platform.KindCheckbox:
		return fmt.Sprintf("%q", n.Label)
	case platform.KindText:
		return fmt.Sprintf("%q", n.Content)
	case platform.KindTextbox:
		return fmt.Sprintf("%q", n.Text)
	}
	return ""
}
