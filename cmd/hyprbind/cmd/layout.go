package cmd

import (
	"github.com/hyprbind/hyprbind/pkg/markup"
	"github.com/hyprbind/hyprbind/pkg/widgets"
)

// loadLayout reads a layout file and fills window settings it leaves out
// from the project config.
func (a *app) loadLayout(path string) (*markup.Document, error) {
	doc, err := markup.Load(path)
	if err != nil {
		return nil, err
	}
	if doc.Window.Title == "" {
		doc.Window.Title = a.cfg.Window.Title
	}
	if doc.Window.Size.IsZero() {
		doc.Window.Size = markup.Size{Width: a.cfg.Window.Width, Height: a.cfg.Window.Height}
	}
	if doc.Window.Class == "" {
		doc.Window.Class = a.cfg.AppID
	}
	return doc, nil
}

// actions returns the built-in actions layouts may name. quit is called for
// the "quit" action.
func (a *app) actions(quit func()) markup.Actions {
	return markup.Actions{
		"quit": func(markup.Event) { quit() },
		"log": func(ev markup.Event) {
			kv := []any{"handler", ev.Handler}
			if ev.ID != "" {
				kv = append(kv, "id", ev.ID)
			}
			switch ev.Handler {
			case "onChange", "onSubmit":
				if _, ok := ev.Source.(*widgets.Checkbox); ok {
					kv = append(kv, "checked", ev.Checked)
				} else {
					kv = append(kv, "text", ev.Text)
				}
			case "onScroll":
				kv = append(kv, "x", ev.X, "y", ev.Y)
			}
			a.logger.Info("action", kv...)
		},
	}
}
