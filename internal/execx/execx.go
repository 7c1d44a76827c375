// Package execx wraps external tool invocation (brew, dockutil, ssh-keygen,
// git) behind a small Runner interface so command logic stays testable.
package execx

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner executes external commands. The real implementation shells out;
// tests substitute a fake.
type Runner interface {
	// Run executes a command, discarding its output. Returns an error on
	// non-zero exit.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes a command and returns its combined stdout/stderr,
	// trimmed of trailing whitespace.
	Output(ctx context.Context, name string, args ...string) (string, error)

	// LookPath reports whether a tool is available on PATH, returning its
	// resolved path.
	LookPath(name string) (string, error)
}

// System is the default Runner backed by os/exec.
type System struct{}

// NewSystem returns a Runner that executes real commands.
func NewSystem() *System {
	return &System{}
}

func (s *System) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

func (s *System) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w\n%s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return strings.TrimRight(string(out), "\n"), nil
}

func (s *System) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
