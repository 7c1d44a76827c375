package brew

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dotup-cli/dotup/internal/apply"
	"github.com/dotup-cli/dotup/internal/execx"
)

// Applier turns a package manifest into an idempotent-apply run against
// the local Homebrew installation.
type Applier struct {
	runner   execx.Runner
	manifest *Manifest
}

// NewApplier returns an Applier for the given manifest.
func NewApplier(runner execx.Runner, manifest *Manifest) *Applier {
	return &Applier{runner: runner, manifest: manifest}
}

// snapshot holds brew's current view of installed state, captured once
// per run so each item's existence check is a map lookup.
type snapshot struct {
	taps     map[string]bool
	formulae map[string]bool
	casks    map[string]bool
}

func (a *Applier) snapshot(ctx context.Context) (*snapshot, error) {
	s := &snapshot{
		taps:     make(map[string]bool),
		formulae: make(map[string]bool),
		casks:    make(map[string]bool),
	}

	taps, err := a.runner.Output(ctx, "brew", "tap")
	if err != nil {
		return nil, fmt.Errorf("listing taps: %w", err)
	}
	for _, line := range splitLines(taps) {
		s.taps[line] = true
	}

	formulae, err := a.runner.Output(ctx, "brew", "list", "--formula", "-1")
	if err != nil {
		return nil, fmt.Errorf("listing formulae: %w", err)
	}
	for _, line := range splitLines(formulae) {
		s.formulae[line] = true
	}

	casks, err := a.runner.Output(ctx, "brew", "list", "--cask", "-1")
	if err != nil {
		return nil, fmt.Errorf("listing casks: %w", err)
	}
	for _, line := range splitLines(casks) {
		s.casks[line] = true
	}

	return s, nil
}

// Plan builds the ordered item list: taps first, then formulae, then
// casks (base plus enabled groups).
func (a *Applier) Plan(ctx context.Context, enabled map[string]bool) ([]apply.Item, error) {
	snap, err := a.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var items []apply.Item

	for _, tap := range a.manifest.Taps {
		tap := tap
		items = append(items, apply.Item{
			Name: tap,
			Kind: "tap",
			Exists: func(ctx context.Context) (bool, error) {
				return snap.taps[tap], nil
			},
			Apply: func(ctx context.Context) error {
				return a.runner.Run(ctx, "brew", "tap", tap)
			},
		})
	}

	for _, formula := range a.manifest.Formulae {
		formula := formula
		items = append(items, apply.Item{
			Name: formula,
			Kind: "formula",
			Exists: func(ctx context.Context) (bool, error) {
				// brew lists formulae by short name even when the
				// manifest uses a tap-qualified one.
				return snap.formulae[shortName(formula)], nil
			},
			Apply: func(ctx context.Context) error {
				return a.runner.Run(ctx, "brew", "install", formula)
			},
		})
	}

	for _, cask := range a.manifest.SelectedCasks(enabled) {
		cask := cask
		items = append(items, apply.Item{
			Name: cask,
			Kind: "cask",
			Exists: func(ctx context.Context) (bool, error) {
				return snap.casks[shortName(cask)], nil
			},
			Apply: func(ctx context.Context) error {
				return a.runner.Run(ctx, "brew", "install", "--cask", cask)
			},
		})
	}

	return items, nil
}

// Apply runs the plan, printing per-item status lines to w. brew must be
// on PATH; `brew update` runs best-effort first.
func (a *Applier) Apply(ctx context.Context, w io.Writer, enabled map[string]bool) (*apply.Summary, error) {
	if _, err := a.runner.LookPath("brew"); err != nil {
		return nil, fmt.Errorf("homebrew not found on PATH; install it from https://brew.sh first")
	}

	if err := a.runner.Run(ctx, "brew", "update"); err != nil {
		fmt.Fprintf(w, "  ! brew update failed, continuing with stale index (%v)\n", err)
	}

	items, err := a.Plan(ctx, enabled)
	if err != nil {
		return nil, err
	}

	return apply.Run(ctx, w, items)
}

// shortName strips the tap qualifier from a package name
// ("oven-sh/bun/bun" → "bun").
func shortName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
