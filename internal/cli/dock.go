package cli

import (
	"os"

	"github.com/dotup-cli/dotup/internal/apply"
	"github.com/dotup-cli/dotup/internal/dock"
	"github.com/dotup-cli/dotup/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(dockCmd)
}

var dockCmd = &cobra.Command{
	Use:   "dock",
	Short: "Add declared apps and folders to the macOS Dock",
	Long: `Add every declared app and folder that is not already in the Dock
using dockutil. Entries whose app bundle is not installed are skipped.
The Dock is restarted once, and only when something was added.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.Header(os.Stdout, "Dock layout")
		summary, err := dock.NewApplier(runner, dock.DefaultEntries).Apply(cmd.Context(), os.Stdout)
		if err != nil {
			return err
		}
		apply.PrintSummary(os.Stdout, summary)
		return nil
	},
}
