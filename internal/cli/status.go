package cli

import (
	"fmt"
	"os"

	"github.com/dotup-cli/dotup/internal/branding"
	"github.com/dotup-cli/dotup/internal/doctor"
	"github.com/dotup-cli/dotup/internal/dotfiles"
	"github.com/dotup-cli/dotup/internal/sshkey"
	"github.com/dotup-cli/dotup/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current state of tools, repo and links",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ui.Header(os.Stdout, "Tools")
		checks := append(append([]doctor.ToolCheck{}, doctor.RequiredTools...), doctor.OptionalTools...)
		tt := ui.NewTable(os.Stdout, "Tool", "State", "Version")
		for _, st := range doctor.CheckTools(ctx, runner, checks) {
			version := st.Version
			if version == "" {
				version = "-"
			}
			tt.AppendRow([]interface{}{st.Check.Name, st.State.String(), version})
		}
		tt.Render()

		ui.Header(os.Stdout, "Dotfiles repo")
		repo, err := newRepo()
		if err != nil {
			return err
		}
		if !repo.Exists() {
			fmt.Printf("  not cloned (expected at %s)\n", repo.Path())
		} else if repo.IsStale(dotfiles.DefaultMaxAge) {
			fmt.Printf("  %s (stale, run '%s update')\n", repo.Path(), branding.CLIName())
		} else {
			fmt.Printf("  %s (fresh)\n", repo.Path())
		}

		ui.Header(os.Stdout, "Links")
		l, err := newLinker()
		if err != nil {
			return err
		}
		lt := ui.NewTable(os.Stdout, "Link", "State")
		for _, st := range l.Check() {
			lt.AppendRow([]interface{}{st.Link.Target, st.State.String()})
		}
		lt.Render()

		ui.Header(os.Stdout, "SSH key")
		sshDir, err := sshkey.DefaultDir()
		if err != nil {
			return err
		}
		setup := sshkey.NewSetup(runner, sshDir, "")
		if _, err := os.Stat(setup.KeyPath()); err != nil {
			fmt.Printf("  not generated (expected at %s)\n", setup.KeyPath())
		} else {
			fmt.Printf("  %s\n", setup.KeyPath())
		}
		return nil
	},
}
