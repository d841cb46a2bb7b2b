package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sprout-cli/sprout/internal/cli/ui"
)

// Version information - these will be set at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		if ui.GlobalFormatter.IsStructured() {
			versionInfo := map[string]string{
				"version":   Version,
				"gitCommit": GitCommit,
				"buildDate": BuildDate,
				"goVersion": runtime.Version(),
				"os":        runtime.GOOS,
				"arch":      runtime.GOARCH,
			}
			if err := ui.GlobalFormatter.Output(versionInfo); err != nil {
				return
			}
			return
		}

		fmt.Printf("sprout version %s\n", Version)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		fmt.Printf("  Build date: %s\n", BuildDate)
		fmt.Printf("  Go version: %s\n", runtime.Version())
		fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
