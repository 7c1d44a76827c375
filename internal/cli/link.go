package cli

import (
	"os"

	"github.com/dotup-cli/dotup/internal/apply"
	"github.com/dotup-cli/dotup/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(linkCmd)
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Symlink dotfiles from the repo into the home directory",
	Long: `Create symlinks for every declared dotfile and editor settings file.
Regular files in the way are backed up with a ` + "`.pre-dotup`" + ` suffix
before being replaced. Correct links are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLinker()
		if err != nil {
			return err
		}

		ui.Header(os.Stdout, "Dotfile links")
		summary, err := l.Apply(cmd.Context(), os.Stdout)
		if err != nil {
			return err
		}
		apply.PrintSummary(os.Stdout, summary)
		return nil
	},
}
