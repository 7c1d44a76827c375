// Package dotfiles manages the dotfiles repository that the linker reads
// from: locating it, cloning it on first run, pulling updates, and
// tracking freshness for the staleness banner.
package dotfiles

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dotup-cli/dotup/internal/branding"
	"github.com/dotup-cli/dotup/internal/config"
	"github.com/dotup-cli/dotup/internal/execx"
)

const (
	// freshnessFile is the timestamp marker written after clone/update.
	freshnessFile = ".dotup-updated"

	// DefaultMaxAge is the staleness threshold for the banner.
	DefaultMaxAge = 7 * 24 * time.Hour

	// tmpSuffix is appended to the target dir during atomic clone.
	tmpSuffix = ".tmp"
)

// Dir returns the dotfiles repo location, checking (in order):
// 1. DOTFILES_DIR env var (legacy, from the shell scripts)
// 2. DOTUP_DOTFILES_DIR env var
// 3. config key "dotfiles_dir"
// 4. ~/.dotfiles
func Dir() (string, error) {
	if v := os.Getenv("DOTFILES_DIR"); v != "" {
		return v, nil
	}
	if v := os.Getenv(branding.EnvVar("DOTFILES_DIR")); v != "" {
		return v, nil
	}
	if v := config.Get("dotfiles_dir"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".dotfiles"), nil
}

// RepoURL returns the dotfiles repository URL, checking (in order):
// 1. DOTUP_DOTFILES_REPO_URL env var
// 2. config key "dotfiles_repo"
// 3. branding.DotfilesRepoURL()
func RepoURL() string {
	if v := os.Getenv(branding.EnvVar("DOTFILES_REPO_URL")); v != "" {
		return v
	}
	if v := config.Get("dotfiles_repo"); v != "" {
		return v
	}
	return branding.DotfilesRepoURL()
}

// Repo wraps git operations against the dotfiles repository.
type Repo struct {
	runner execx.Runner
	dir    string
}

// NewRepo returns a Repo rooted at dir.
func NewRepo(runner execx.Runner, dir string) *Repo {
	return &Repo{runner: runner, dir: dir}
}

// Path returns the repository directory.
func (r *Repo) Path() string {
	return r.dir
}

// Exists reports whether the directory looks like a git checkout.
func (r *Repo) Exists() bool {
	_, err := os.Stat(filepath.Join(r.dir, ".git"))
	return err == nil
}

// Clone performs a shallow clone into the repo directory. The clone is
// atomic: it writes to a .tmp directory first and renames on success.
func (r *Repo) Clone(ctx context.Context) error {
	if err := r.ensureGit(); err != nil {
		return err
	}

	tmpDir := r.dir + tmpSuffix

	// Clean up any leftover tmp dir from a previous failed attempt.
	_ = os.RemoveAll(tmpDir)

	if err := os.MkdirAll(filepath.Dir(tmpDir), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	if err := r.runner.Run(ctx, "git", "clone", "--depth=1", RepoURL(), tmpDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("cloning dotfiles: %w", err)
	}

	if err := os.RemoveAll(r.dir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("removing existing dotfiles dir: %w", err)
	}
	if err := os.Rename(tmpDir, r.dir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing dotfiles clone: %w", err)
	}

	r.WriteFreshnessMarker()
	return nil
}

// Update pulls the latest changes, cloning first if the repo is missing.
func (r *Repo) Update(ctx context.Context) error {
	if err := r.ensureGit(); err != nil {
		return err
	}

	if !r.Exists() {
		return r.Clone(ctx)
	}

	if err := r.runner.Run(ctx, "git", "-C", r.dir, "pull", "--rebase"); err != nil {
		return fmt.Errorf("pulling dotfiles updates: %w", err)
	}

	r.WriteFreshnessMarker()
	return nil
}

// WriteFreshnessMarker writes the current Unix timestamp to the marker
// file. Best-effort.
func (r *Repo) WriteFreshnessMarker() {
	markerPath := filepath.Join(r.dir, freshnessFile)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	_ = os.WriteFile(markerPath, []byte(ts), 0644)
}

// IsStale reports whether the repo hasn't been updated within maxAge.
// A missing or unreadable marker counts as stale.
func (r *Repo) IsStale(maxAge time.Duration) bool {
	data, err := os.ReadFile(filepath.Join(r.dir, freshnessFile))
	if err != nil {
		return true
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return true
	}
	return time.Since(time.Unix(ts, 0)) > maxAge
}

func (r *Repo) ensureGit() error {
	if _, err := r.runner.LookPath("git"); err != nil {
		return fmt.Errorf("git not found on PATH")
	}
	return nil
}
