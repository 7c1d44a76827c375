package doctor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dotup-cli/dotup/internal/execx"
)

func TestCheckToolPresence(t *testing.T) {
	f := execx.NewFake()
	f.Missing["dockutil"] = true

	ctx := context.Background()

	if got := CheckTool(ctx, f, ToolCheck{Name: "git"}); got.State != ToolOK {
		t.Errorf("git state = %v, want ok", got.State)
	}
	if got := CheckTool(ctx, f, ToolCheck{Name: "dockutil"}); got.State != ToolMissing {
		t.Errorf("dockutil state = %v, want missing", got.State)
	}
}

func TestCheckToolVersions(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		output  string
		min     string
		want    ToolState
		version string
	}{
		{"meets minimum", "bun 1.2.4", "1.0.0", ToolOK, "1.2.4"},
		{"below minimum", "uv 0.3.1", "0.4.0", ToolOutdated, "0.3.1"},
		{"prefixed output", "git version 2.44.0 (Apple Git)", "2.30.0", ToolOK, "2.44.0"},
		{"two-part version", "go version go1.22 darwin/arm64", "1.21.0", ToolOK, "1.22"},
		{"no version in output", "who knows", "1.0.0", ToolVersionUnknown, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := execx.NewFake()
			f.Outputs["tool --version"] = tc.output

			got := CheckTool(ctx, f, ToolCheck{Name: "tool", MinVersion: tc.min})
			if got.State != tc.want {
				t.Errorf("state = %v, want %v", got.State, tc.want)
			}
			if got.Version != tc.version {
				t.Errorf("version = %q, want %q", got.Version, tc.version)
			}
		})
	}
}

func TestCheckToolVersionCommandFails(t *testing.T) {
	f := execx.NewFake()
	f.StrictMode = true // --version not stubbed → error

	got := CheckTool(context.Background(), f, ToolCheck{Name: "fnm", MinVersion: "1.0.0"})
	if got.State != ToolVersionUnknown {
		t.Errorf("state = %v, want version unknown", got.State)
	}
}

func TestDoctorRunReportsMissingSSHKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	f := execx.NewFake()
	d := &Doctor{
		Runner: f,
		SSHDir: t.TempDir(),
	}

	var buf strings.Builder
	problems := d.Run(context.Background(), &buf)
	if problems == 0 {
		t.Fatal("expected problems with empty ssh dir")
	}
	if !strings.Contains(buf.String(), "run `dotup ssh`") {
		t.Errorf("missing ssh hint:\n%s", buf.String())
	}
}

func TestDoctorFixesKeyPermissions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	sshDir := t.TempDir()
	keyPath := filepath.Join(sshDir, "id_ed25519")
	if err := os.WriteFile(keyPath, []byte("key"), 0644); err != nil {
		t.Fatal(err)
	}

	f := execx.NewFake()

	// Without fix: reported as a problem.
	d := &Doctor{Runner: f, SSHDir: sshDir}
	var buf strings.Builder
	d.Run(context.Background(), &buf)
	if !strings.Contains(buf.String(), "expected 600") {
		t.Errorf("permission warning missing:\n%s", buf.String())
	}

	// With fix: repaired.
	d.Fix = true
	buf.Reset()
	d.Run(context.Background(), &buf)
	if !strings.Contains(buf.String(), "[FIX ]") {
		t.Errorf("fix line missing:\n%s", buf.String())
	}

	info, err := os.Stat(keyPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("key mode = %o after fix, want 0600", info.Mode().Perm())
	}
}

func TestDoctorReportsMissingRequiredTools(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	f := execx.NewFake()
	f.Missing["brew"] = true
	f.Missing["dockutil"] = true

	d := &Doctor{Runner: f, SSHDir: t.TempDir()}
	var buf strings.Builder
	d.Run(context.Background(), &buf)

	out := buf.String()
	if !strings.Contains(out, "[MISS] brew not found") {
		t.Errorf("brew miss line absent:\n%s", out)
	}
	if !strings.Contains(out, "[MISS] dockutil not found") {
		t.Errorf("dockutil miss line absent:\n%s", out)
	}
}
