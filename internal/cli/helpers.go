package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dotup-cli/dotup/internal/brew"
	"github.com/dotup-cli/dotup/internal/dotfiles"
	"github.com/dotup-cli/dotup/internal/linker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newRepo resolves the dotfiles directory and wraps it in a Repo.
func newRepo() (*dotfiles.Repo, error) {
	dir, err := dotfiles.Dir()
	if err != nil {
		return nil, err
	}
	return dotfiles.NewRepo(runner, dir), nil
}

// newLinker builds a Linker over the default link set, rooted at the
// dotfiles repo and the current home directory.
func newLinker() (*linker.Linker, error) {
	dir, err := dotfiles.Dir()
	if err != nil {
		return nil, err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	return linker.New(dir, home, linker.DefaultLinks), nil
}

// resolveGroups decides which cask groups are enabled. Precedence:
// command flag, bare environment variable (AI=1), prefixed environment
// variable or config file key via viper.
func resolveGroups(cmd *cobra.Command, m *brew.Manifest) map[string]bool {
	enabled := make(map[string]bool, len(m.Groups))
	for _, name := range m.GroupNames() {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			enabled[name] = f.Value.String() == "true"
			continue
		}
		if v, ok := os.LookupEnv(strings.ToUpper(name)); ok {
			enabled[name] = isTruthy(v)
			continue
		}
		enabled[name] = viper.GetBool(name)
	}
	return enabled
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
