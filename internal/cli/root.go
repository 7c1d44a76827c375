// Package cli wires the cobra command tree: install, brew, dock, ssh,
// link, scaffold, seed, init, update, clean, doctor, status, config,
// recipes, version.
package cli

import (
	"fmt"
	"os"

	"github.com/dotup-cli/dotup/internal/branding"
	"github.com/dotup-cli/dotup/internal/config"
	"github.com/dotup-cli/dotup/internal/dotfiles"
	"github.com/dotup-cli/dotup/internal/execx"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	// runner is the process-wide command runner. Tests swap it for a fake.
	runner execx.Runner = execx.NewSystem()

	assumeYes bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` bootstraps a macOS development machine: Homebrew packages,
Dock layout, SSH keys, symlinked dotfiles, and project scaffolding from
opinionated recipes. Every command is idempotent: run it as often as
you like.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()

		// Staleness nudge, skipped for commands that manage the repo.
		name := cmd.Name()
		if name == "update" || name == "version" || name == "doctor" {
			return
		}
		dir, err := dotfiles.Dir()
		if err != nil {
			return
		}
		repo := dotfiles.NewRepo(runner, dir)
		if repo.Exists() && repo.IsStale(dotfiles.DefaultMaxAge) {
			fmt.Fprintf(os.Stderr, "Dotfiles repo is more than 7 days old. Run '%s update'.\n", branding.CLIName())
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Assume yes for confirmation prompts")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
