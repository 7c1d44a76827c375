package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dotup-cli/dotup/internal/config"
	"github.com/dotup-cli/dotup/internal/dotfiles"
	"github.com/dotup-cli/dotup/internal/execx"
	"github.com/dotup-cli/dotup/internal/linker"
	"github.com/dotup-cli/dotup/internal/platform"
	"github.com/dotup-cli/dotup/internal/sshkey"
)

// Doctor bundles the pieces the checks inspect.
type Doctor struct {
	Runner execx.Runner
	Linker *linker.Linker
	Repo   *dotfiles.Repo
	SSHDir string
	Fix    bool
}

// Run executes every check section, writing one status line per check.
// It returns the number of problems found (missing required tools,
// broken links, bad permissions).
func (d *Doctor) Run(ctx context.Context, w io.Writer) int {
	problems := 0
	problems += d.checkTools(ctx, w)
	problems += d.checkHome(w)
	problems += d.checkRepo(w)
	problems += d.checkLinks(w)
	problems += d.checkSSH(w)

	fmt.Fprintln(w)
	if problems == 0 {
		fmt.Fprintln(w, "Everything looks good.")
	} else {
		fmt.Fprintf(w, "%d problem(s) found.\n", problems)
	}
	return problems
}

func (d *Doctor) checkTools(ctx context.Context, w io.Writer) int {
	fmt.Fprintln(w, "Tools:")
	problems := 0

	for _, status := range CheckTools(ctx, d.Runner, RequiredTools) {
		switch status.State {
		case ToolOK:
			fmt.Fprintf(w, "  [ OK ] %s (%s)\n", status.Check.Name, status.Path)
		case ToolMissing:
			fmt.Fprintf(w, "  [MISS] %s not found on PATH\n", status.Check.Name)
			problems++
		case ToolOutdated:
			fmt.Fprintf(w, "  [WARN] %s %s is older than required %s\n",
				status.Check.Name, status.Version, status.Check.MinVersion)
			problems++
		case ToolVersionUnknown:
			fmt.Fprintf(w, "  [WARN] %s version could not be determined\n", status.Check.Name)
		}
	}

	for _, status := range CheckTools(ctx, d.Runner, OptionalTools) {
		if status.State == ToolMissing {
			fmt.Fprintf(w, "  [    ] %s not installed (optional)\n", status.Check.Name)
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s (%s)\n", status.Check.Name, status.Path)
	}

	return problems
}

func (d *Doctor) checkHome(w io.Writer) int {
	fmt.Fprintln(w, "Home:")
	problems := 0

	dir := config.Dir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if d.Fix {
			if err := os.MkdirAll(dir, 0755); err != nil {
				fmt.Fprintf(w, "  [FAIL] could not create %s: %v\n", dir, err)
				return problems + 1
			}
			fmt.Fprintf(w, "  [FIX ] created %s\n", dir)
		} else {
			fmt.Fprintf(w, "  [MISS] %s does not exist (run with --fix)\n", dir)
			problems++
		}
	} else {
		fmt.Fprintf(w, "  [ OK ] %s\n", dir)
	}

	cfg := config.FilePath()
	if _, err := os.Stat(cfg); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [    ] %s not present (defaults in use)\n", cfg)
	} else {
		fmt.Fprintf(w, "  [ OK ] %s\n", cfg)
	}

	return problems
}

func (d *Doctor) checkRepo(w io.Writer) int {
	fmt.Fprintln(w, "Dotfiles repo:")

	if d.Repo == nil {
		fmt.Fprintln(w, "  [    ] not configured")
		return 0
	}

	if !d.Repo.Exists() {
		fmt.Fprintf(w, "  [MISS] %s is not a git checkout (run `dotup update`)\n", d.Repo.Path())
		return 1
	}

	fmt.Fprintf(w, "  [ OK ] %s\n", d.Repo.Path())
	if d.Repo.IsStale(dotfiles.DefaultMaxAge) {
		fmt.Fprintln(w, "  [WARN] repo is more than 7 days old (run `dotup update`)")
	}
	return 0
}

func (d *Doctor) checkLinks(w io.Writer) int {
	fmt.Fprintln(w, "Links:")

	if d.Linker == nil {
		fmt.Fprintln(w, "  [    ] dotfiles repo missing, skipping link checks")
		return 0
	}

	problems := 0
	for _, status := range d.Linker.Check() {
		switch status.State {
		case linker.StateOK:
			fmt.Fprintf(w, "  [ OK ] %s\n", status.Link.Target)
		case linker.StateMissing:
			fmt.Fprintf(w, "  [MISS] %s (run `dotup link`)\n", status.Link.Target)
			problems++
		default:
			fmt.Fprintf(w, "  [WARN] %s: %s (run `dotup link`)\n", status.Link.Target, status.State)
			problems++
		}
	}
	return problems
}

func (d *Doctor) checkSSH(w io.Writer) int {
	fmt.Fprintln(w, "SSH:")
	problems := 0

	keyPath := filepath.Join(d.SSHDir, sshkey.KeyFileName)
	info, err := os.Stat(keyPath)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s (run `dotup ssh`)\n", keyPath)
		return 1
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", keyPath, err)
		return 1
	}

	if perm := info.Mode().Perm(); perm != 0600 {
		if d.Fix {
			if err := platform.Chmod(keyPath, 0600); err != nil {
				fmt.Fprintf(w, "  [FAIL] could not fix permissions on %s: %v\n", keyPath, err)
				return 1
			}
			fmt.Fprintf(w, "  [FIX ] fixed permissions on %s to 600\n", keyPath)
		} else {
			fmt.Fprintf(w, "  [WARN] %s has permissions %o (expected 600)\n", keyPath, perm)
			problems++
		}
	} else {
		fmt.Fprintf(w, "  [ OK ] %s (permissions 600)\n", keyPath)
	}

	return problems
}
