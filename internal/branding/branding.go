// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml, rebuild, and get a renamed tool without
// touching any other package. Go's //go:embed bakes the file into the
// binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	HomeDir         string `yaml:"home_dir"`
	EnvPrefix       string `yaml:"env_prefix"`
	GoModule        string `yaml:"go_module"`
	GitHubRepo      string `yaml:"github_repo"`
	DotfilesRepoURL string `yaml:"dotfiles_repo_url"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:         "dotup",
			DisplayName:     "Dotup",
			Description:     "Idempotent macOS development-environment bootstrapper",
			HomeDir:         ".dotup",
			EnvPrefix:       "DOTUP",
			GoModule:        "github.com/dotup-cli/dotup",
			GitHubRepo:      "dotup-cli/dotup",
			DotfilesRepoURL: "https://github.com/dotup-cli/dotfiles.git",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "dotup").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Dotup").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".dotup").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "DOTUP").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Used by release scripts, not at runtime.
func GoModule() string { load(); return defaults.GoModule }

// GitHubRepo returns the "owner/repo" string (e.g., "dotup-cli/dotup").
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// DotfilesRepoURL returns the default git URL for the dotfiles repository.
func DotfilesRepoURL() string { load(); return defaults.DotfilesRepoURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "DOTUP_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
