package widgets

import (
	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

// ScrollAreaConfig describes a scrolling container.
type ScrollAreaConfig struct {
	ScrollX bool
	// ScrollY is set by ScrollAreaOf.
	ScrollY bool
	// BlockUserScroll ignores user input; SetScroll still works.
	BlockUserScroll bool
	// Width and Height <= 0 mean auto.
	Width  int
	Height int
	// OnScroll is called with the new offsets after the user scrolls.
	OnScroll func(sa *ScrollArea, x, y int)
}

// ScrollAreaOf returns a vertically scrolling area config.
func ScrollAreaOf() ScrollAreaConfig {
	return ScrollAreaConfig{ScrollY: true}
}

// WithScroll returns a copy of the config scrolling along the given axes.
func (c ScrollAreaConfig) WithScroll(x, y bool) ScrollAreaConfig {
	c.ScrollX, c.ScrollY = x, y
	return c
}

// WithBlockUserScroll returns a copy of the config with user scrolling blocked or allowed.
func (c ScrollAreaConfig) WithBlockUserScroll(block bool) ScrollAreaConfig {
	c.BlockUserScroll = block
	return c
}

// WithSize returns a copy of the config with the given size.
func (c ScrollAreaConfig) WithSize(width, height int) ScrollAreaConfig {
	c.Width, c.Height = width, height
	return c
}

// WithOnScroll returns a copy of the config with the given scroll handler.
func (c ScrollAreaConfig) WithOnScroll(fn func(*ScrollArea, int, int)) ScrollAreaConfig {
	c.OnScroll = fn
	return c
}

// Build creates the native scroll area.
func (c ScrollAreaConfig) Build(b *engine.Backend) (*ScrollArea, error) {
	p := platform.ScrollAreaParams{
		ScrollX:         c.ScrollX,
		ScrollY:         c.ScrollY,
		BlockUserScroll: c.BlockUserScroll,
		Width:           c.Width,
		Height:          c.Height,
	}
	sa, err := construct("widgets.ScrollAreaConfig.Build", b, platform.KindScrollArea,
		func(tk platform.Toolkit) platform.Handle { return tk.CreateScrollArea(p) },
		func(e *Element) *ScrollArea { return &ScrollArea{Element: e} })
	if err != nil {
		return nil, err
	}
	if c.OnScroll != nil {
		sa.setOnScroll(c.OnScroll)
	}
	return sa, nil
}

// ScrollArea is the proxy for a native scroll container.
type ScrollArea struct {
	*Element
}

// CurrentScroll returns the scroll offsets in pixels.
func (s *ScrollArea) CurrentScroll() (x, y int, err error) {
	if err := s.live("widgets.ScrollArea.CurrentScroll"); err != nil {
		return 0, 0, err
	}
	x, y = s.toolkit().ScrollOffset(s.handle)
	return x, y, nil
}

// SetScroll moves the content to the given offsets without notifying
// OnScroll.
func (s *ScrollArea) SetScroll(x, y int) error {
	if err := s.live("widgets.ScrollArea.SetScroll"); err != nil {
		return err
	}
	s.toolkit().SetScroll(s.handle, x, y)
	return nil
}

// SetOnScroll replaces the scroll handler. Nil removes it.
func (s *ScrollArea) SetOnScroll(fn func(*ScrollArea, int, int)) error {
	if err := s.live("widgets.ScrollArea.SetOnScroll"); err != nil {
		return err
	}
	if fn == nil {
		s.unlisten(platform.EventScroll)
		return nil
	}
	s.setOnScroll(fn)
	return nil
}

func (s *ScrollArea) setOnScroll(fn func(*ScrollArea, int, int)) {
	s.listen(platform.EventScroll, func(ev platform.Event) { fn(s, int(ev.X), int(ev.Y)) })
}
