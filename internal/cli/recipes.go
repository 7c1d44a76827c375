package cli

import (
	"os"
	"strings"

	"github.com/dotup-cli/dotup/internal/scaffold"
	"github.com/dotup-cli/dotup/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(recipesCmd)
}

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List available scaffolding recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := scaffold.Names()
		if err != nil {
			return err
		}

		t := ui.NewTable(os.Stdout, "Recipe", "App Types", "Description")
		for _, name := range names {
			r, err := scaffold.Load(name)
			if err != nil {
				return err
			}
			t.AppendRow([]interface{}{name, strings.Join(r.AppTypes, ", "), r.Description})
		}
		t.Render()
		return nil
	},
}
