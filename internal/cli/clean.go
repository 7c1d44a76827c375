package cli

import (
	"fmt"
	"os"

	"github.com/dotup-cli/dotup/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove broken links, backups and stale Homebrew downloads",
	Long: `Delete managed symlinks whose target is gone and the ` + "`.pre-dotup`" + `
backup files created when links replaced existing dotfiles, then run
'brew cleanup'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !assumeYes && !ui.Confirm("Remove link backups and run brew cleanup?", true) {
			fmt.Println("Aborted.")
			return nil
		}

		l, err := newLinker()
		if err != nil {
			return err
		}
		broken, err := l.PruneBroken()
		if err != nil {
			return err
		}
		backups, err := l.PruneBackups()
		if err != nil {
			return err
		}
		for _, path := range append(broken, backups...) {
			fmt.Printf("  ✓ removed %s\n", path)
		}
		if len(broken)+len(backups) == 0 {
			fmt.Println("  nothing to remove")
		}

		if _, err := runner.LookPath("brew"); err == nil {
			if err := runner.Run(cmd.Context(), "brew", "cleanup"); err != nil {
				ui.Warn(os.Stdout, fmt.Sprintf("! brew cleanup failed: %v", err))
			} else {
				fmt.Println("  ✓ brew cleanup")
			}
		}
		return nil
	},
}
