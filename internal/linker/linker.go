// Package linker symlinks dotfiles and editor settings from the dotfiles
// repository into their live locations under $HOME. A correct link is
// skipped, a wrong or broken link is repointed, and a plain file is
// backed up with a .pre-dotup suffix before being replaced.
package linker

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dotup-cli/dotup/internal/apply"
	"github.com/dotup-cli/dotup/internal/platform"
)

// BackupSuffix is appended to plain files displaced by a managed link.
const BackupSuffix = ".pre-dotup"

// Link declares one managed symlink.
type Link struct {
	// Source is the path inside the dotfiles repo, relative to its root
	// ("zsh/zshrc", "editors/settings.json").
	Source string

	// Target is the link location relative to $HOME (".zshrc",
	// "Library/Application Support/Code/User/settings.json").
	Target string
}

// DefaultLinks is the link set dotup manages: shell and git dotfiles plus
// VS Code and Cursor settings, which share one settings source.
var DefaultLinks = []Link{
	{Source: "zsh/zshrc", Target: ".zshrc"},
	{Source: "zsh/zprofile", Target: ".zprofile"},
	{Source: "git/gitconfig", Target: ".gitconfig"},
	{Source: "git/gitignore_global", Target: ".gitignore_global"},
	{Source: "editors/settings.json", Target: "Library/Application Support/Code/User/settings.json"},
	{Source: "editors/keybindings.json", Target: "Library/Application Support/Code/User/keybindings.json"},
	{Source: "editors/settings.json", Target: "Library/Application Support/Cursor/User/settings.json"},
	{Source: "editors/keybindings.json", Target: "Library/Application Support/Cursor/User/keybindings.json"},
}

// LinkState classifies a managed link's current condition.
type LinkState int

const (
	StateOK LinkState = iota
	StateMissing
	StateWrongTarget
	StateBroken
	StateFileInWay
	StateSourceMissing
)

func (s LinkState) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateMissing:
		return "missing"
	case StateWrongTarget:
		return "wrong target"
	case StateBroken:
		return "broken"
	case StateFileInWay:
		return "file in the way"
	case StateSourceMissing:
		return "source missing"
	default:
		return "unknown"
	}
}

// Status reports one link's condition for doctor/status output.
type Status struct {
	Link   Link
	State  LinkState
	Target string // link path on disk
}

// Linker applies a link set from repoDir into homeDir.
type Linker struct {
	repoDir string
	homeDir string
	links   []Link
}

// New returns a Linker for the given repo and home directories.
func New(repoDir, homeDir string, links []Link) *Linker {
	return &Linker{repoDir: repoDir, homeDir: homeDir, links: links}
}

func (l *Linker) sourcePath(link Link) string {
	return filepath.Join(l.repoDir, link.Source)
}

func (l *Linker) targetPath(link Link) string {
	return filepath.Join(l.homeDir, link.Target)
}

// state inspects a single link without touching anything.
func (l *Linker) state(link Link) LinkState {
	source := l.sourcePath(link)
	target := l.targetPath(link)

	if _, err := os.Stat(source); os.IsNotExist(err) {
		return StateSourceMissing
	}

	info, err := os.Lstat(target)
	if os.IsNotExist(err) {
		return StateMissing
	}
	if err != nil {
		return StateBroken
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return StateFileInWay
	}

	current, err := platform.ReadSymlinkTarget(target)
	if err != nil {
		return StateBroken
	}
	if current == source {
		return StateOK
	}
	if platform.IsBrokenSymlink(target) {
		return StateBroken
	}
	return StateWrongTarget
}

// Check reports the condition of every managed link.
func (l *Linker) Check() []Status {
	statuses := make([]Status, 0, len(l.links))
	for _, link := range l.links {
		statuses = append(statuses, Status{
			Link:   link,
			State:  l.state(link),
			Target: l.targetPath(link),
		})
	}
	return statuses
}

// Apply ensures every managed link points at its source. Displaced plain
// files are kept as <target>.pre-dotup.
func (l *Linker) Apply(ctx context.Context, w io.Writer) (*apply.Summary, error) {
	var items []apply.Item
	for _, link := range l.links {
		link := link
		items = append(items, apply.Item{
			Name: link.Target,
			Kind: "symlink",
			Exists: func(ctx context.Context) (bool, error) {
				switch l.state(link) {
				case StateOK:
					return true, nil
				case StateSourceMissing:
					return false, fmt.Errorf("source %s missing from dotfiles repo", link.Source)
				default:
					return false, nil
				}
			},
			Apply: func(ctx context.Context) error {
				return l.fix(link)
			},
		})
	}

	return apply.Run(ctx, w, items)
}

func (l *Linker) fix(link Link) error {
	source := l.sourcePath(link)
	target := l.targetPath(link)

	switch l.state(link) {
	case StateMissing:
		return platform.CreateSymlink(source, target)
	case StateFileInWay:
		if _, err := platform.BackupFile(target, BackupSuffix); err != nil {
			return err
		}
		return platform.CreateSymlink(source, target)
	case StateWrongTarget, StateBroken:
		return platform.ReplaceSymlink(source, target)
	default:
		return nil
	}
}

// PruneBackups removes .pre-dotup backup files for links that are now
// healthy. Used by `dotup clean`. Returns the removed paths.
func (l *Linker) PruneBackups() ([]string, error) {
	var removed []string
	for _, link := range l.links {
		if l.state(link) != StateOK {
			continue
		}
		backup := l.targetPath(link) + BackupSuffix
		if _, err := os.Lstat(backup); err != nil {
			continue
		}
		if err := os.Remove(backup); err != nil {
			return removed, fmt.Errorf("removing %s: %w", backup, err)
		}
		removed = append(removed, backup)
	}
	return removed, nil
}

// PruneBroken removes managed symlinks whose target no longer exists.
// Used by `dotup clean`. Returns the removed paths.
func (l *Linker) PruneBroken() ([]string, error) {
	var removed []string
	for _, link := range l.links {
		if l.state(link) != StateBroken {
			continue
		}
		target := l.targetPath(link)
		if err := os.Remove(target); err != nil {
			return removed, fmt.Errorf("removing %s: %w", target, err)
		}
		removed = append(removed, target)
	}
	return removed, nil
}
