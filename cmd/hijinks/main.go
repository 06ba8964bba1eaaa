package main

import (
	"fmt"
	"os"

	"github.com/hijinks/hijinks/cmd/hijinks/commands"
	"github.com/hijinks/hijinks/internal/ui"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.RenderError(err))
		os.Exit(1)
	}
}
