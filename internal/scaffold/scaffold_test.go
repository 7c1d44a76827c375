package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readGenerated(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

func TestNames(t *testing.T) {
	names, err := Names()
	if err != nil {
		t.Fatalf("Names() error: %v", err)
	}
	want := []string{"golang", "python", "typescript"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", names, want)
	}
}

func TestLoadEmbeddedManifests(t *testing.T) {
	names, err := Names()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			r, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q) error: %v", name, err)
			}
			if r.Name != name {
				t.Errorf("manifest name %q does not match directory %q", r.Name, name)
			}
			if len(r.Docs) == 0 {
				t.Error("recipe declares no docs")
			}
		})
	}
}

func TestLoadUnknownRecipe(t *testing.T) {
	_, err := Load("rust")
	if err == nil {
		t.Fatal("Load should fail for unknown recipe")
	}
	if !strings.Contains(err.Error(), "available:") {
		t.Errorf("error should list available recipes: %v", err)
	}
}

func TestScaffoldRendersRailsAndDocs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-app")
	data := NewData(dir, "typescript", "", "dev@example.com")

	var buf strings.Builder
	summary, err := Scaffold(context.Background(), &buf, "typescript", "web", dir, data)
	if err != nil {
		t.Fatalf("Scaffold() error: %v", err)
	}
	if summary.Failed != 0 {
		t.Fatalf("failures:\n%s", buf.String())
	}

	for _, name := range []string{
		"AGENTS.md",
		"PROJECT_BRIEF.md",
		".agents/guidelines.md",
		".agents/workflows.md",
		".architecture/overview.md",
		".architecture/decisions/0001-use-decision-records.md",
		"CONVENTIONS.md",
		"TESTING.md",
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not generated: %v", name, err)
		}
	}

	agents := readGenerated(t, dir, "AGENTS.md")
	if !strings.Contains(agents, "my-app") {
		t.Error("AGENTS.md missing project name")
	}
	if !strings.Contains(agents, "web application") {
		t.Error("AGENTS.md missing app type")
	}

	conventions := readGenerated(t, dir, "CONVENTIONS.md")
	if !strings.Contains(conventions, "Web application") {
		t.Errorf("CONVENTIONS.md missing web variant:\n%s", conventions)
	}

	brief := readGenerated(t, dir, "PROJECT_BRIEF.md")
	if !strings.Contains(brief, "dev@example.com") {
		t.Error("PROJECT_BRIEF.md missing author")
	}
}

func TestScaffoldDefaultsAppType(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	data := NewData(dir, "typescript", "", "")

	var buf strings.Builder
	if _, err := Scaffold(context.Background(), &buf, "typescript", "", dir, data); err != nil {
		t.Fatalf("Scaffold() error: %v", err)
	}
	// First declared app type (web) is the default.
	if data.AppType != "web" {
		t.Errorf("AppType = %q, want web", data.AppType)
	}
}

func TestScaffoldRejectsUnknownAppType(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "x")
	data := NewData(dir, "typescript", "", "")

	var buf strings.Builder
	if _, err := Scaffold(context.Background(), &buf, "typescript", "desktop", dir, data); err == nil {
		t.Error("unknown app type accepted")
	}

	if _, err := Scaffold(context.Background(), &buf, "python", "web", dir, data); err == nil {
		t.Error("app type accepted for recipe without app types")
	}
}

func TestScaffoldNeverOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")
	data := NewData(dir, "golang", "", "")

	var buf strings.Builder
	if _, err := Scaffold(context.Background(), &buf, "golang", "", dir, data); err != nil {
		t.Fatal(err)
	}

	// User edits AGENTS.md, then re-runs scaffold.
	edited := filepath.Join(dir, "AGENTS.md")
	if err := os.WriteFile(edited, []byte("my edits"), 0644); err != nil {
		t.Fatal(err)
	}

	buf.Reset()
	second, err := Scaffold(context.Background(), &buf, "golang", "", dir, data)
	if err != nil {
		t.Fatal(err)
	}
	if second.Applied != 0 {
		t.Errorf("second scaffold applied %d files, want 0\n%s", second.Applied, buf.String())
	}

	content, err := os.ReadFile(edited)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "my edits" {
		t.Error("scaffold overwrote a user-edited file")
	}
}

func TestSeedRendersDocsOnly(t *testing.T) {
	dir := t.TempDir()
	data := NewData(dir, "python", "", "")

	var buf strings.Builder
	if _, err := Seed(context.Background(), &buf, "python", dir, data); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "CONVENTIONS.md")); err != nil {
		t.Error("CONVENTIONS.md not seeded")
	}
	if _, err := os.Stat(filepath.Join(dir, "AGENTS.md")); !os.IsNotExist(err) {
		t.Error("seed rendered rails files")
	}
}

func TestInitRailsOnly(t *testing.T) {
	dir := t.TempDir()
	data := NewData(dir, "", "", "")

	var buf strings.Builder
	if _, err := InitRails(context.Background(), &buf, dir, data); err != nil {
		t.Fatalf("InitRails() error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, ".agents/guidelines.md")); err != nil {
		t.Error("rails not initialized")
	}
	if _, err := os.Stat(filepath.Join(dir, "CONVENTIONS.md")); !os.IsNotExist(err) {
		t.Error("init rendered recipe docs")
	}
}
