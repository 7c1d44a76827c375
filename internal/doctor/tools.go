// Package doctor runs diagnostic checks on the machine: required CLIs
// and their versions, the dotup home directory, managed symlinks, ssh
// key permissions, and dotfiles repo freshness. With fix enabled it
// repairs directories and permissions, never packages.
package doctor

import (
	"context"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/dotup-cli/dotup/internal/execx"
)

// ToolState classifies a tool check outcome.
type ToolState int

const (
	ToolOK ToolState = iota
	ToolMissing
	ToolOutdated
	ToolVersionUnknown
)

func (s ToolState) String() string {
	switch s {
	case ToolOK:
		return "ok"
	case ToolMissing:
		return "missing"
	case ToolOutdated:
		return "outdated"
	case ToolVersionUnknown:
		return "version unknown"
	default:
		return "unknown"
	}
}

// ToolCheck declares one CLI to verify.
type ToolCheck struct {
	Name       string
	MinVersion string // empty means presence-only
	Optional   bool
}

// ToolStatus is the result of one tool check.
type ToolStatus struct {
	Check   ToolCheck
	State   ToolState
	Path    string
	Version string
}

// RequiredTools are the CLIs dotup itself orchestrates.
var RequiredTools = []ToolCheck{
	{Name: "git"},
	{Name: "brew"},
	{Name: "dockutil"},
	{Name: "ssh-keygen"},
}

// OptionalTools are dev-workflow CLIs worth reporting but not failing on.
var OptionalTools = []ToolCheck{
	{Name: "fnm", Optional: true},
	{Name: "uv", Optional: true},
	{Name: "bun", Optional: true},
	{Name: "code", Optional: true},
	{Name: "cursor", Optional: true},
}

// versionPattern extracts the first semver-looking token from a tool's
// --version output ("git version 2.44.0" → "2.44.0").
var versionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// CheckTool verifies one tool: presence, then minimum version when the
// check declares one.
func CheckTool(ctx context.Context, runner execx.Runner, check ToolCheck) ToolStatus {
	status := ToolStatus{Check: check}

	path, err := runner.LookPath(check.Name)
	if err != nil {
		status.State = ToolMissing
		return status
	}
	status.Path = path
	status.State = ToolOK

	if check.MinVersion == "" {
		return status
	}

	out, err := runner.Output(ctx, check.Name, "--version")
	if err != nil {
		status.State = ToolVersionUnknown
		return status
	}

	raw := versionPattern.FindString(out)
	if raw == "" {
		status.State = ToolVersionUnknown
		return status
	}
	status.Version = raw

	current, err := semver.NewVersion(strings.TrimPrefix(raw, "v"))
	if err != nil {
		status.State = ToolVersionUnknown
		return status
	}
	minimum, err := semver.NewVersion(check.MinVersion)
	if err != nil {
		status.State = ToolVersionUnknown
		return status
	}

	if current.LessThan(minimum) {
		status.State = ToolOutdated
	}
	return status
}

// CheckTools runs CheckTool over a list.
func CheckTools(ctx context.Context, runner execx.Runner, checks []ToolCheck) []ToolStatus {
	statuses := make([]ToolStatus, 0, len(checks))
	for _, check := range checks {
		statuses = append(statuses, CheckTool(ctx, runner, check))
	}
	return statuses
}
