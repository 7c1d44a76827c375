package dotfiles

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/dotup-cli/dotup/internal/execx"
)

func TestDirResolutionOrder(t *testing.T) {
	t.Run("legacy env var wins", func(t *testing.T) {
		t.Setenv("DOTFILES_DIR", "/tmp/legacy")
		t.Setenv("DOTUP_DOTFILES_DIR", "/tmp/prefixed")

		dir, err := Dir()
		if err != nil {
			t.Fatal(err)
		}
		if dir != "/tmp/legacy" {
			t.Errorf("Dir() = %q, want /tmp/legacy", dir)
		}
	})

	t.Run("prefixed env var", func(t *testing.T) {
		t.Setenv("DOTFILES_DIR", "")
		t.Setenv("DOTUP_DOTFILES_DIR", "/tmp/prefixed")

		dir, err := Dir()
		if err != nil {
			t.Fatal(err)
		}
		if dir != "/tmp/prefixed" {
			t.Errorf("Dir() = %q, want /tmp/prefixed", dir)
		}
	})

	t.Run("default under home", func(t *testing.T) {
		t.Setenv("DOTFILES_DIR", "")
		t.Setenv("DOTUP_DOTFILES_DIR", "")

		dir, err := Dir()
		if err != nil {
			t.Fatal(err)
		}
		if filepath.Base(dir) != ".dotfiles" {
			t.Errorf("Dir() = %q, want ~/.dotfiles", dir)
		}
	})
}

func TestUpdateClonesWhenMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dotfiles")
	f := execx.NewFake()
	// Simulate git creating the checkout in the tmp dir.
	f.OnRun = func(name string, args []string) error {
		if name == "git" && args[0] == "clone" {
			return os.MkdirAll(filepath.Join(args[len(args)-1], ".git"), 0755)
		}
		return nil
	}
	r := NewRepo(f, dir)

	if err := r.Update(context.Background()); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if !f.CalledWith("git clone --depth=1") {
		t.Errorf("clone not invoked: %v", f.Calls)
	}
	if !r.Exists() {
		t.Error("repo dir not in place after clone")
	}
}

func TestUpdatePullsWhenPresent(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatal(err)
	}

	f := execx.NewFake()
	r := NewRepo(f, dir)

	if err := r.Update(context.Background()); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if !f.CalledWith("git -C " + dir + " pull --rebase") {
		t.Errorf("pull not invoked: %v", f.Calls)
	}
	if f.CalledWith("git clone") {
		t.Error("clone invoked for existing repo")
	}
	if r.IsStale(DefaultMaxAge) {
		t.Error("repo stale right after update")
	}
}

func TestUpdateRequiresGit(t *testing.T) {
	f := execx.NewFake()
	f.Missing["git"] = true
	r := NewRepo(f, t.TempDir())

	if err := r.Update(context.Background()); err == nil {
		t.Error("Update() should fail without git")
	}
}

func TestIsStale(t *testing.T) {
	dir := t.TempDir()
	r := NewRepo(execx.NewFake(), dir)

	t.Run("no marker", func(t *testing.T) {
		if !r.IsStale(DefaultMaxAge) {
			t.Error("missing marker should be stale")
		}
	})

	t.Run("fresh marker", func(t *testing.T) {
		r.WriteFreshnessMarker()
		if r.IsStale(DefaultMaxAge) {
			t.Error("fresh marker reported stale")
		}
	})

	t.Run("old marker", func(t *testing.T) {
		old := strconv.FormatInt(time.Now().Add(-8*24*time.Hour).Unix(), 10)
		if err := os.WriteFile(filepath.Join(dir, ".dotup-updated"), []byte(old), 0644); err != nil {
			t.Fatal(err)
		}
		if !r.IsStale(DefaultMaxAge) {
			t.Error("old marker not reported stale")
		}
	})

	t.Run("garbage marker", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(dir, ".dotup-updated"), []byte("yesterday"), 0644); err != nil {
			t.Fatal(err)
		}
		if !r.IsStale(DefaultMaxAge) {
			t.Error("unparseable marker not reported stale")
		}
	})
}
