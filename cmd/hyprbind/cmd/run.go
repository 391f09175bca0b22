package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/ffi"
	"github.com/hyprbind/hyprbind/pkg/markup"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

func init() {
	RegisterCommand(func(a *app) *cobra.Command {
		return &cobra.Command{
			Use:   "run <layout.yaml>",
			Short: "Open a layout in a native window",
			Long: `Load the native toolkit library, build the layout, open its window
and run the event loop until the window closes or a "quit" action runs.

The library is looked up from --library, then HYPRBIND_LIBRARY, then
library.path in hyprbind.yaml, then libhyprbind.so on the loader path.

Usage:
  hyprbind run layouts/main.yaml`,
			Args: cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return a.run(args[0])
			},
		}
	})
}

func (a *app) run(path string) error {
	doc, err := a.loadLayout(path)
	if err != nil {
		return err
	}

	tk, err := ffi.Open(ffi.WithLibrary(a.cfg.LibraryPath), ffi.WithLogger(a.logger.WithPrefix("ffi")))
	if err != nil {
		return err
	}
	defer tk.Close()
	return a.serve(tk, doc, path)
}

// serve builds doc on tk and runs the event loop until every window it
// opened has closed.
func (a *app) serve(tk platform.Toolkit, doc *markup.Document, path string) error {
	rt := engine.NewRuntime(tk, engine.WithLogger(a.logger.WithPrefix("engine")))
	b, err := rt.Create()
	if err != nil {
		return err
	}
	defer b.Destroy()

	// The loop returns once the window is closed; teardown happens after that.
	var scene *markup.Scene
	quit := func() {
		if err := scene.Window.Close(); err != nil {
			a.logger.Warn("close window", "err", err)
		}
	}
	scene, err = markup.Build(b, doc, a.actions(quit))
	if err != nil {
		return err
	}
	if err := scene.Window.Open(); err != nil {
		return err
	}

	a.logger.Info("running", "layout", path, "app", a.cfg.AppID)
	if err := b.EnterLoop(); err != nil {
		return fmt.Errorf("event loop: %w", err)
	}
	a.logger.Debug("event loop exited")
	return nil
}
