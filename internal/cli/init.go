package cli

import (
	"fmt"
	"os"

	"github.com/dotup-cli/dotup/internal/apply"
	"github.com/dotup-cli/dotup/internal/scaffold"
	"github.com/dotup-cli/dotup/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [project-path]",
	Short: "Add agent rails to an existing project",
	Long: `Render only the agent rails (AGENTS.md, .agents/, .architecture/)
into a project, defaulting to the current directory. Files that already
exist are left untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		data := scaffold.NewData(dir, "", "", author())

		ui.Header(os.Stdout, fmt.Sprintf("Adding agent rails to %s", data.Name))
		summary, err := scaffold.InitRails(cmd.Context(), os.Stdout, dir, data)
		if err != nil {
			return err
		}
		apply.PrintSummary(os.Stdout, summary)
		return nil
	},
}
