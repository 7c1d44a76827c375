package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dotup-cli/dotup/internal/apply"
	"github.com/dotup-cli/dotup/internal/config"
	"github.com/dotup-cli/dotup/internal/sshkey"
	"github.com/dotup-cli/dotup/internal/ui"
	"github.com/spf13/cobra"
)

var sshEmail string

func init() {
	sshCmd.Flags().StringVar(&sshEmail, "email", "", "Comment for the generated key (defaults to the 'email' config key)")
	rootCmd.AddCommand(sshCmd)
}

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Generate an SSH key and load it into the agent",
	Long: `Generate an ed25519 key if none exists, append a managed block to
~/.ssh/config and add the key to the agent with keychain integration.
Existing keys and config blocks are never touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := sshkey.DefaultDir()
		if err != nil {
			return err
		}
		comment := sshEmail
		if comment == "" {
			comment = config.Get("email")
		}
		if comment == "" {
			host, _ := os.Hostname()
			comment = fmt.Sprintf("%s@%s", os.Getenv("USER"), host)
		}

		ui.Header(os.Stdout, "SSH key")
		setup := sshkey.NewSetup(runner, dir, comment)
		summary, err := setup.Apply(cmd.Context(), os.Stdout)
		if err != nil {
			return err
		}
		apply.PrintSummary(os.Stdout, summary)

		if pub, err := setup.PublicKey(); err == nil {
			fmt.Println("\nPublic key (add to GitHub if new):")
			fmt.Println("  " + strings.TrimSpace(pub))
		}
		return nil
	},
}
