// Command hyprbind builds and runs YAML window layouts on the native toolkit.
package main

import (
	"os"

	"github.com/hyprbind/hyprbind/cmd/hyprbind/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
