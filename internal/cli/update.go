package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Clone or pull the dotfiles repo",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := newRepo()
		if err != nil {
			return err
		}
		fresh := !repo.Exists()
		if err := repo.Update(cmd.Context()); err != nil {
			return err
		}
		repo.WriteFreshnessMarker()
		if fresh {
			fmt.Printf("Cloned dotfiles repo to %s\n", repo.Path())
		} else {
			fmt.Printf("Updated dotfiles repo at %s\n", repo.Path())
		}
		return nil
	},
}
