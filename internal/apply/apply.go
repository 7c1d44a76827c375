// Package apply implements the idempotent-apply loop shared by every
// dotup surface: given a declared set of items and a per-item existence
// check, apply only what is missing. A failing item is reported and the
// run continues; nothing is ever rolled back.
package apply

import (
	"context"
	"fmt"
	"io"
)

// Status describes the outcome of a single item.
type Status int

const (
	StatusApplied Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Item is one unit of desired state: a Homebrew formula, a dock entry,
// a symlink, a scaffolded file.
type Item struct {
	// Name identifies the item in status output.
	Name string

	// Kind is a short category label ("formula", "cask", "dock entry").
	Kind string

	// Exists reports whether the item is already present on the system.
	// An error here counts as a failed item.
	Exists func(ctx context.Context) (bool, error)

	// Apply creates or installs the item. Only called when Exists
	// returned false.
	Apply func(ctx context.Context) error
}

// Result pairs an item with its outcome.
type Result struct {
	Name   string
	Kind   string
	Status Status
	Err    error
}

// Summary aggregates a run's results.
type Summary struct {
	Applied int
	Skipped int
	Failed  int
	Results []Result
}

// Changed reports whether the run applied at least one item.
func (s *Summary) Changed() bool {
	return s.Applied > 0
}

// Run applies each missing item in order, writing a status line per item
// to w. Item failures are warnings: the run continues and the failure is
// counted in the summary. Run returns an error only when ctx is done.
func Run(ctx context.Context, w io.Writer, items []Item) (*Summary, error) {
	summary := &Summary{}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		exists, err := item.Exists(ctx)
		if err != nil {
			summary.record(item, StatusFailed, err)
			fmt.Fprintf(w, "  ✗ %s: %s (%v)\n", item.Kind, item.Name, err)
			continue
		}
		if exists {
			summary.record(item, StatusSkipped, nil)
			fmt.Fprintf(w, "  - %s: %s (already present)\n", item.Kind, item.Name)
			continue
		}

		if err := item.Apply(ctx); err != nil {
			summary.record(item, StatusFailed, err)
			fmt.Fprintf(w, "  ✗ %s: %s (%v)\n", item.Kind, item.Name, err)
			continue
		}

		summary.record(item, StatusApplied, nil)
		fmt.Fprintf(w, "  ✓ %s: %s\n", item.Kind, item.Name)
	}

	return summary, nil
}

// PrintSummary writes the end-of-run count line.
func PrintSummary(w io.Writer, s *Summary) {
	fmt.Fprintf(w, "\n%d applied, %d already present, %d failed\n",
		s.Applied, s.Skipped, s.Failed)
}

func (s *Summary) record(item Item, status Status, err error) {
	switch status {
	case StatusApplied:
		s.Applied++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
	s.Results = append(s.Results, Result{
		Name:   item.Name,
		Kind:   item.Kind,
		Status: status,
		Err:    err,
	})
}
