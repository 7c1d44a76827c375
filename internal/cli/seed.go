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
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed <recipe> <project-path>",
	Short: "Add a recipe's starter docs to an existing project",
	Long: `Render only the recipe's documentation files into a project that
already exists, without touching agent rails. Files that already exist
are left untouched.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		recipeName, dir := args[0], args[1]
		data := scaffold.NewData(dir, recipeName, "", author())

		ui.Header(os.Stdout, fmt.Sprintf("Seeding %s docs into %s", recipeName, data.Name))
		summary, err := scaffold.Seed(cmd.Context(), os.Stdout, recipeName, dir, data)
		if err != nil {
			return err
		}
		apply.PrintSummary(os.Stdout, summary)
		return nil
	},
}
