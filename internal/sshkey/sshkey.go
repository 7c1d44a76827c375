// Package sshkey manages the ~/.ssh bootstrap: an ed25519 keypair that
// is generated once and never overwritten, a managed config block, and
// keychain registration with the ssh agent.
package sshkey

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotup-cli/dotup/internal/apply"
	"github.com/dotup-cli/dotup/internal/execx"
	"github.com/dotup-cli/dotup/internal/platform"
)

const (
	// KeyFileName is the private key file managed by dotup.
	KeyFileName = "id_ed25519"

	// managedBlockMarker identifies the dotup-owned section of
	// ~/.ssh/config. Its presence means the block was already applied.
	managedBlockMarker = "# managed by dotup"
)

// managedConfigBlock is appended to ~/.ssh/config exactly once.
const managedConfigBlock = managedBlockMarker + `
Host *
  UseKeychain yes
  AddKeysToAgent yes
  IdentityFile ~/.ssh/` + KeyFileName + `
`

// Setup applies SSH state into sshDir (normally ~/.ssh) for the given
// key comment (usually the user's email).
type Setup struct {
	runner  execx.Runner
	sshDir  string
	comment string
}

// NewSetup returns a Setup targeting sshDir.
func NewSetup(runner execx.Runner, sshDir, comment string) *Setup {
	return &Setup{runner: runner, sshDir: sshDir, comment: comment}
}

// DefaultDir returns ~/.ssh.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".ssh"), nil
}

// KeyPath returns the private key path inside the setup's ssh dir.
func (s *Setup) KeyPath() string {
	return filepath.Join(s.sshDir, KeyFileName)
}

// ConfigPath returns the ssh config path inside the setup's ssh dir.
func (s *Setup) ConfigPath() string {
	return filepath.Join(s.sshDir, "config")
}

// Apply ensures the key, config block, and agent registration exist.
// The keypair is never regenerated: an existing key always skips.
func (s *Setup) Apply(ctx context.Context, w io.Writer) (*apply.Summary, error) {
	if err := os.MkdirAll(s.sshDir, 0700); err != nil {
		return nil, fmt.Errorf("creating %s: %w", s.sshDir, err)
	}
	// MkdirAll leaves an existing dir's mode alone; tighten it.
	if err := platform.Chmod(s.sshDir, 0700); err != nil {
		return nil, fmt.Errorf("securing %s: %w", s.sshDir, err)
	}

	items := []apply.Item{
		{
			Name: KeyFileName,
			Kind: "ssh key",
			Exists: func(ctx context.Context) (bool, error) {
				_, err := os.Stat(s.KeyPath())
				if err == nil {
					return true, nil
				}
				if os.IsNotExist(err) {
					return false, nil
				}
				return false, err
			},
			Apply: s.generateKey,
		},
		{
			Name: "config block",
			Kind: "ssh config",
			Exists: func(ctx context.Context) (bool, error) {
				return s.hasManagedBlock()
			},
			Apply: s.appendManagedBlock,
		},
		{
			Name: "agent keychain",
			Kind: "ssh agent",
			Exists: func(ctx context.Context) (bool, error) {
				return s.keyInAgent(ctx), nil
			},
			Apply: func(ctx context.Context) error {
				return s.runner.Run(ctx, "ssh-add", "--apple-use-keychain", s.KeyPath())
			},
		},
	}

	return apply.Run(ctx, w, items)
}

func (s *Setup) generateKey(ctx context.Context) error {
	if err := s.runner.Run(ctx, "ssh-keygen",
		"-t", "ed25519",
		"-C", s.comment,
		"-f", s.KeyPath(),
		"-N", ""); err != nil {
		return fmt.Errorf("generating key: %w", err)
	}
	// ssh-keygen writes 0600 itself; enforce anyway.
	if err := platform.Chmod(s.KeyPath(), 0600); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Setup) hasManagedBlock() (bool, error) {
	data, err := os.ReadFile(s.ConfigPath())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.Contains(string(data), managedBlockMarker), nil
}

func (s *Setup) appendManagedBlock(ctx context.Context) error {
	f, err := os.OpenFile(s.ConfigPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("opening ssh config: %w", err)
	}
	defer f.Close()

	block := managedConfigBlock
	if info, err := f.Stat(); err == nil && info.Size() > 0 {
		block = "\n" + block
	}
	if _, err := f.WriteString(block); err != nil {
		return fmt.Errorf("appending managed block: %w", err)
	}
	return f.Close()
}

// keyInAgent reports whether the agent already holds the key. Any error
// (agent not running, no identities) means the add should be attempted.
func (s *Setup) keyInAgent(ctx context.Context) bool {
	out, err := s.runner.Output(ctx, "ssh-add", "-l")
	if err != nil {
		return false
	}
	return strings.Contains(out, s.comment)
}

// PublicKey returns the contents of the public key file, for printing
// after a fresh generation.
func (s *Setup) PublicKey() (string, error) {
	data, err := os.ReadFile(s.KeyPath() + ".pub")
	if err != nil {
		return "", fmt.Errorf("reading public key: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
