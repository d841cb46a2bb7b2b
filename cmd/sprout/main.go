// Command sprout manages git worktrees from one central home directory.
package main

import (
	"os"

	"github.com/sprout-cli/sprout/internal/cli/commands"
	"github.com/sprout-cli/sprout/internal/cli/ui"
)

func main() {
	if err := commands.Execute(); err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
}
