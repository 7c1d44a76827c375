package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dotup-cli/dotup/internal/apply"
	"github.com/dotup-cli/dotup/internal/brew"
	"github.com/dotup-cli/dotup/internal/config"
	"github.com/dotup-cli/dotup/internal/dock"
	"github.com/dotup-cli/dotup/internal/sshkey"
	"github.com/dotup-cli/dotup/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	if m, err := brew.Default(); err == nil {
		for _, name := range m.GroupNames() {
			installCmd.Flags().Bool(name, false, fmt.Sprintf("Include the %s cask group", name))
		}
	}
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Run the full machine bootstrap",
	Long: `Run every bootstrap step in order: clone or update the dotfiles
repo, install Homebrew packages, lay out the Dock, set up the SSH key
and symlink dotfiles. Each step only applies what is missing, so
install is safe to re-run at any time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !assumeYes && !ui.Confirm("Bootstrap this machine? Existing files are never overwritten.", true) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := config.EnsureDir(); err != nil {
			return err
		}

		ctx := cmd.Context()
		total := &apply.Summary{}
		failedSteps := 0

		ui.Header(os.Stdout, "Dotfiles repo")
		repo, err := newRepo()
		if err != nil {
			return err
		}
		if err := repo.Update(ctx); err != nil {
			ui.Warn(os.Stdout, fmt.Sprintf("! dotfiles repo: %v", err))
			failedSteps++
		} else {
			fmt.Printf("  ✓ repo: %s\n", repo.Path())
			repo.WriteFreshnessMarker()
		}

		manifest, err := brew.Default()
		if err != nil {
			return err
		}
		ui.Header(os.Stdout, "Homebrew packages")
		if s, err := brew.NewApplier(runner, manifest).Apply(ctx, os.Stdout, resolveGroups(cmd, manifest)); err != nil {
			ui.Warn(os.Stdout, fmt.Sprintf("! homebrew: %v", err))
			failedSteps++
		} else {
			accumulate(total, s)
		}

		ui.Header(os.Stdout, "Dock layout")
		if s, err := dock.NewApplier(runner, dock.DefaultEntries).Apply(ctx, os.Stdout); err != nil {
			ui.Warn(os.Stdout, fmt.Sprintf("! dock: %v", err))
			failedSteps++
		} else {
			accumulate(total, s)
		}

		ui.Header(os.Stdout, "SSH key")
		if s, err := sshStep(ctx); err != nil {
			ui.Warn(os.Stdout, fmt.Sprintf("! ssh: %v", err))
			failedSteps++
		} else {
			accumulate(total, s)
		}

		ui.Header(os.Stdout, "Dotfile links")
		if l, err := newLinker(); err != nil {
			ui.Warn(os.Stdout, fmt.Sprintf("! links: %v", err))
			failedSteps++
		} else if s, err := l.Apply(ctx, os.Stdout); err != nil {
			ui.Warn(os.Stdout, fmt.Sprintf("! links: %v", err))
			failedSteps++
		} else {
			accumulate(total, s)
		}

		fmt.Println()
		apply.PrintSummary(os.Stdout, total)
		if failedSteps > 0 {
			return fmt.Errorf("%d step(s) failed", failedSteps)
		}
		return nil
	},
}

func sshStep(ctx context.Context) (*apply.Summary, error) {
	dir, err := sshkey.DefaultDir()
	if err != nil {
		return nil, err
	}
	comment := config.Get("email")
	if comment == "" {
		host, _ := os.Hostname()
		comment = fmt.Sprintf("%s@%s", os.Getenv("USER"), host)
	}
	return sshkey.NewSetup(runner, dir, comment).Apply(ctx, os.Stdout)
}

func accumulate(total, s *apply.Summary) {
	total.Applied += s.Applied
	total.Skipped += s.Skipped
	total.Failed += s.Failed
	total.Results = append(total.Results, s.Results...)
}
