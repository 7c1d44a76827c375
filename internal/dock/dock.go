// Package dock applies a declarative macOS Dock layout through dockutil.
// Entries already in the Dock are skipped; the Dock restarts at most once
// per run, and only when something changed.
package dock

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dotup-cli/dotup/internal/apply"
	"github.com/dotup-cli/dotup/internal/execx"
)

// Entry is one desired Dock tile.
type Entry struct {
	// Label is the name dockutil reports for the tile ("Ghostty").
	Label string

	// Path is the app bundle or folder on disk
	// ("/Applications/Ghostty.app", "~/Downloads").
	Path string

	// Folder marks the entry as a folder tile (added to the others
	// section).
	Folder bool
}

// DefaultEntries is the Dock layout dotup manages. Apps missing on disk
// are reported and skipped, so optional casks don't fail the run.
var DefaultEntries = []Entry{
	{Label: "Ghostty", Path: "/Applications/Ghostty.app"},
	{Label: "Visual Studio Code", Path: "/Applications/Visual Studio Code.app"},
	{Label: "Cursor", Path: "/Applications/Cursor.app"},
	{Label: "Google Chrome", Path: "/Applications/Google Chrome.app"},
	{Label: "Slack", Path: "/Applications/Slack.app"},
	{Label: "Downloads", Path: "~/Downloads", Folder: true},
}

// Applier applies a Dock layout with dockutil.
type Applier struct {
	runner  execx.Runner
	entries []Entry

	// statApp overrides app-bundle existence checks in tests.
	statApp func(path string) bool
}

// NewApplier returns an Applier for the given entries.
func NewApplier(runner execx.Runner, entries []Entry) *Applier {
	return &Applier{
		runner:  runner,
		entries: entries,
		statApp: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
	}
}

// Apply adds missing Dock entries. It never removes tiles the user added
// themselves.
func (a *Applier) Apply(ctx context.Context, w io.Writer) (*apply.Summary, error) {
	if _, err := a.runner.LookPath("dockutil"); err != nil {
		return nil, fmt.Errorf("dockutil not found on PATH; run `dotup brew` first")
	}

	current, err := a.currentLabels(ctx)
	if err != nil {
		return nil, err
	}

	var items []apply.Item
	for _, entry := range a.entries {
		entry := entry
		items = append(items, apply.Item{
			Name: entry.Label,
			Kind: "dock entry",
			Exists: func(ctx context.Context) (bool, error) {
				return current[entry.Label], nil
			},
			Apply: func(ctx context.Context) error {
				return a.add(ctx, entry)
			},
		})
	}

	summary, err := apply.Run(ctx, w, items)
	if err != nil {
		return summary, err
	}

	// A single restart picks up every added tile.
	if summary.Changed() {
		if err := a.runner.Run(ctx, "killall", "Dock"); err != nil {
			fmt.Fprintf(w, "  ! could not restart the Dock (%v)\n", err)
		}
	}

	return summary, nil
}

// currentLabels parses `dockutil --list` output, which is tab-separated
// with the tile label in the first column.
func (a *Applier) currentLabels(ctx context.Context) (map[string]bool, error) {
	out, err := a.runner.Output(ctx, "dockutil", "--list")
	if err != nil {
		return nil, fmt.Errorf("listing dock entries: %w", err)
	}

	labels := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		fields := strings.SplitN(line, "\t", 2)
		label := strings.TrimSpace(fields[0])
		if label != "" {
			labels[label] = true
		}
	}
	return labels, nil
}

func (a *Applier) add(ctx context.Context, entry Entry) error {
	if entry.Folder {
		return a.runner.Run(ctx, "dockutil", "--add", expandHome(entry.Path),
			"--section", "others", "--no-restart")
	}

	if !a.statApp(entry.Path) {
		return fmt.Errorf("app not installed at %s", entry.Path)
	}
	return a.runner.Run(ctx, "dockutil", "--add", entry.Path, "--no-restart")
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}
