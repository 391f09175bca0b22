package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hyprbind/hyprbind/pkg/engine"
	"github.com/hyprbind/hyprbind/pkg/headless"
	"github.com/hyprbind/hyprbind/pkg/markup"
)

func init() {
	RegisterCommand(func(a *app) *cobra.Command {
		return &cobra.Command{
			Use:   "check <layout.yaml>",
			Short: "Validate a layout and print its widget tree",
			Long: `Build a layout on the in-memory toolkit, without loading the native
library, and print the resulting tree with measured sizes.

Usage:
  hyprbind check layouts/main.yaml`,
			Args: cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.check(cmd.OutOrStdout(), args[0])
			},
		}
	})
}

func (a *app) check(w io.Writer, path string) error {
	doc, err := a.loadLayout(path)
	if err != nil {
		return err
	}

	tk := headless.New(headless.WithLogger(a.logger.WithPrefix("headless")))
	rt := engine.NewRuntime(tk, engine.WithLogger(a.logger.WithPrefix("engine")))
	b, err := rt.Create()
	if err != nil {
		return err
	}
	defer b.Destroy()

	scene, err := markup.Build(b, doc, a.actions(func() {}))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s: ok\n", path); err != nil {
		return err
	}
	return tk.Dump(w, scene.Window.Handle())
}
