package brew

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dotup-cli/dotup/internal/execx"
)

const testManifest = `
taps:
  - oven-sh/bun
formulae:
  - git
  - fnm
  - oven-sh/bun/bun
casks:
  - raycast
groups:
  ai:
    description: AI tooling
    casks:
      - claude
  social:
    casks:
      - slack
      - discord
`

func loadTestManifest(t *testing.T) *Manifest {
	t.Helper()
	m, err := LoadManifest([]byte(testManifest))
	if err != nil {
		t.Fatalf("LoadManifest() error: %v", err)
	}
	return m
}

func TestLoadManifestRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"missing formulae": "taps:\n  - oven-sh/bun\n",
		"bad tap format":   "taps:\n  - notatap\nformulae:\n  - git\n",
		"empty group":      "formulae:\n  - git\ngroups:\n  ai:\n    description: x\n",
		"unknown key":      "formulae:\n  - git\nbottles:\n  - nope\n",
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadManifest([]byte(doc)); err == nil {
				t.Errorf("LoadManifest accepted invalid manifest:\n%s", doc)
			}
		})
	}
}

func TestDefaultManifestIsValid(t *testing.T) {
	m, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if len(m.Formulae) == 0 {
		t.Error("embedded manifest has no formulae")
	}
	for _, want := range []string{"ai", "productivity", "social"} {
		if _, ok := m.Groups[want]; !ok {
			t.Errorf("embedded manifest missing group %q", want)
		}
	}
}

func TestSelectedCasks(t *testing.T) {
	m := loadTestManifest(t)

	t.Run("no groups enabled", func(t *testing.T) {
		got := m.SelectedCasks(nil)
		if len(got) != 1 || got[0] != "raycast" {
			t.Errorf("SelectedCasks(nil) = %v, want [raycast]", got)
		}
	})

	t.Run("groups enabled in sorted order", func(t *testing.T) {
		got := m.SelectedCasks(map[string]bool{"ai": true, "social": true})
		want := []string{"raycast", "claude", "slack", "discord"}
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("SelectedCasks = %v, want %v", got, want)
		}
	})
}

func fakeWithSnapshot(taps, formulae, casks string) *execx.Fake {
	f := execx.NewFake()
	f.Outputs["brew tap"] = taps
	f.Outputs["brew list --formula -1"] = formulae
	f.Outputs["brew list --cask -1"] = casks
	return f
}

func TestApplyInstallsOnlyMissing(t *testing.T) {
	f := fakeWithSnapshot("oven-sh/bun", "git\nbun", "")
	a := NewApplier(f, loadTestManifest(t))

	var buf strings.Builder
	summary, err := a.Apply(context.Background(), &buf, map[string]bool{"ai": true})
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	// Missing: fnm formula plus raycast and claude casks. Present: tap,
	// git, bun (tap-qualified matches short name).
	if summary.Applied != 3 {
		t.Errorf("Applied = %d, want 3\n%s", summary.Applied, buf.String())
	}
	if summary.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3\n%s", summary.Skipped, buf.String())
	}

	if !f.CalledWith("brew install fnm") {
		t.Error("fnm was not installed")
	}
	if !f.CalledWith("brew install --cask raycast") {
		t.Error("raycast was not installed as a cask")
	}
	if f.CalledWith("brew install git") {
		t.Error("git reinstalled despite being present")
	}
	if f.CalledWith("brew install --cask slack") {
		t.Error("social group installed without toggle")
	}
}

func TestApplySecondRunSkipsAll(t *testing.T) {
	// Snapshot as brew would report it after a full first run.
	f := fakeWithSnapshot("oven-sh/bun", "git\nfnm\nbun", "raycast\nclaude")
	a := NewApplier(f, loadTestManifest(t))

	var buf strings.Builder
	summary, err := a.Apply(context.Background(), &buf, map[string]bool{"ai": true})
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if summary.Applied != 0 {
		t.Errorf("second run applied %d items, want 0\n%s", summary.Applied, buf.String())
	}
	if f.CallCount("brew install") != 0 {
		t.Error("second run invoked brew install")
	}
}

func TestApplyContinuesPastInstallFailure(t *testing.T) {
	f := fakeWithSnapshot("oven-sh/bun", "git\nbun", "")
	f.Errors["brew install fnm"] = errors.New("exit status 1")
	a := NewApplier(f, loadTestManifest(t))

	var buf strings.Builder
	summary, err := a.Apply(context.Background(), &buf, nil)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1", summary.Failed)
	}
	if !f.CalledWith("brew install --cask raycast") {
		t.Error("run did not continue past the failed formula")
	}
}

func TestApplyRequiresBrew(t *testing.T) {
	f := fakeWithSnapshot("", "", "")
	f.Missing["brew"] = true
	a := NewApplier(f, loadTestManifest(t))

	var buf strings.Builder
	if _, err := a.Apply(context.Background(), &buf, nil); err == nil {
		t.Error("Apply() should fail when brew is not on PATH")
	}
}

func TestApplySurvivesBrewUpdateFailure(t *testing.T) {
	f := fakeWithSnapshot("oven-sh/bun", "git\nfnm\nbun", "raycast")
	f.Errors["brew update"] = errors.New("network down")
	a := NewApplier(f, loadTestManifest(t))

	var buf strings.Builder
	if _, err := a.Apply(context.Background(), &buf, nil); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if !strings.Contains(buf.String(), "brew update failed") {
		t.Errorf("missing update warning:\n%s", buf.String())
	}
}
