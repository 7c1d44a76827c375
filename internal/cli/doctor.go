package cli

import (
	"fmt"
	"os"

	"github.com/dotup-cli/dotup/internal/doctor"
	"github.com/dotup-cli/dotup/internal/sshkey"
	"github.com/spf13/cobra"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair problems where possible")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of the bootstrap",
	Long: `Verify required tools, the config directory, the dotfiles repo,
every symlink and the SSH setup. With --fix, repairable problems
(broken or missing links, loose permissions) are corrected in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLinker()
		if err != nil {
			return err
		}
		repo, err := newRepo()
		if err != nil {
			return err
		}
		sshDir, err := sshkey.DefaultDir()
		if err != nil {
			return err
		}

		d := &doctor.Doctor{
			Runner: runner,
			Linker: l,
			Repo:   repo,
			SSHDir: sshDir,
			Fix:    doctorFix,
		}
		problems := d.Run(cmd.Context(), os.Stdout)
		if problems > 0 {
			return fmt.Errorf("%d problem(s) found", problems)
		}
		fmt.Println("\nEverything looks good.")
		return nil
	},
}
