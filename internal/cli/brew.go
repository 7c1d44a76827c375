package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dotup-cli/dotup/internal/apply"
	"github.com/dotup-cli/dotup/internal/brew"
	"github.com/dotup-cli/dotup/internal/ui"
	"github.com/spf13/cobra"
)

var brewList bool

func init() {
	brewCmd.Flags().BoolVar(&brewList, "list", false, "List declared packages without installing")
	if m, err := brew.Default(); err == nil {
		for _, name := range m.GroupNames() {
			brewCmd.Flags().Bool(name, false, fmt.Sprintf("Include the %s cask group", name))
		}
	}
	rootCmd.AddCommand(brewCmd)
}

var brewCmd = &cobra.Command{
	Use:   "brew",
	Short: "Install Homebrew taps, formulae and casks",
	Long: `Install every declared tap, formula and cask that is not already
present. Optional cask groups are enabled with flags (--ai), bare
environment variables (AI=1) or config keys.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := brew.Default()
		if err != nil {
			return err
		}

		if brewList {
			printManifest(manifest)
			return nil
		}

		enabled := resolveGroups(cmd, manifest)

		ui.Header(os.Stdout, "Homebrew packages")
		summary, err := brew.NewApplier(runner, manifest).Apply(cmd.Context(), os.Stdout, enabled)
		if err != nil {
			return err
		}
		apply.PrintSummary(os.Stdout, summary)
		return nil
	},
}

func printManifest(m *brew.Manifest) {
	t := ui.NewTable(os.Stdout, "Kind", "Name", "Group")
	for _, tap := range m.Taps {
		t.AppendRow([]interface{}{"tap", tap, ""})
	}
	for _, f := range m.Formulae {
		t.AppendRow([]interface{}{"formula", f, ""})
	}
	for _, c := range m.Casks {
		t.AppendRow([]interface{}{"cask", c, ""})
	}
	for _, name := range m.GroupNames() {
		for _, c := range m.Groups[name].Casks {
			t.AppendRow([]interface{}{"cask", c, name})
		}
	}
	t.Render()

	if len(m.Groups) > 0 {
		fmt.Printf("\nGroups: %s (enable with --<group>, <GROUP>=1 or config)\n", strings.Join(m.GroupNames(), ", "))
	}
}
