package commands

import (
	"github.com/spf13/cobra"

	"github.com/sprout-cli/sprout/internal/cli/ui"
)

var pruneDryRun bool

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop registry entries whose directories no longer exist",
	Args:  cobra.NoArgs,
	RunE:  runPrune,
}

func init() {
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "Show what would be pruned without pruning")
}

func runPrune(cmd *cobra.Command, args []string) error {
	_, manager, err := createManagers()
	if err != nil {
		return err
	}

	stale, err := manager.Prune(cmd.Context(), pruneDryRun)
	if err != nil {
		return err
	}

	if ui.GlobalFormatter.IsStructured() {
		return ui.GlobalFormatter.Output(map[string]interface{}{
			"dry_run": pruneDryRun,
			"pruned":  stale,
		})
	}

	if len(stale) == 0 {
		ui.Info("Nothing to prune")
		return nil
	}

	for _, entry := range stale {
		if pruneDryRun {
			ui.Warning("Would prune %s (%s)", entry.Name, entry.Path)
		} else {
			ui.Success("Pruned %s (%s)", entry.Name, entry.Path)
		}
	}
	return nil
}
