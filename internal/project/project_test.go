package project_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fanvault/internal/logging"
	"fanvault/internal/project"
	"fanvault/internal/testsupport"
)

func TestInitAndOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	p, err := project.Init(dir, logging.NewNop())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !project.IsProject(dir) {
		t.Error("initialized directory should be a valid project")
	}

	reopened, err := project.Open(dir, logging.NewNop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if reopened.Path != p.Path {
		t.Errorf("Path = %q, want %q", reopened.Path, p.Path)
	}
}

func TestInitRejectsNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "occupied.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := project.Init(dir, nil); !errors.Is(err, project.ErrDirectoryNotEmpty) {
		t.Fatalf("error = %v, want ErrDirectoryNotEmpty", err)
	}
}

func TestInitRejectsExistingProject(t *testing.T) {
	p := testsupport.NewProject(t)
	if _, err := project.Init(p.Path, nil); !errors.Is(err, project.ErrAlreadyExists) {
		t.Fatalf("error = %v, want ErrAlreadyExists", err)
	}
}

func TestOpenRejectsInvalidPath(t *testing.T) {
	if _, err := project.Open(t.TempDir(), nil); !errors.Is(err, project.ErrNotAProject) {
		t.Fatalf("error = %v, want ErrNotAProject", err)
	}
}

func TestOptionsRoundTrip(t *testing.T) {
	p := testsupport.NewProject(t)

	if got := p.GetOptionString("build", "title", "fallback"); got != "fallback" {
		t.Errorf("unset option = %q, want fallback", got)
	}
	if err := p.SetOption("build", "title", "My Archive"); err != nil {
		t.Fatalf("SetOption failed: %v", err)
	}
	if got := p.GetOptionString("build", "title", "fallback"); got != "My Archive" {
		t.Errorf("option = %q, want My Archive", got)
	}

	if err := p.SetOption("download", "include_images", false); err != nil {
		t.Fatal(err)
	}
	if p.GetOptionBool("download", "include_images", true) {
		t.Error("include_images should read back false")
	}
}

func TestLockExcludesSecondHolder(t *testing.T) {
	p := testsupport.NewProject(t)

	release, err := p.Lock()
	if err != nil {
		t.Fatalf("first Lock failed: %v", err)
	}
	defer release()

	if _, err := p.Lock(); !errors.Is(err, project.ErrLocked) {
		t.Fatalf("second Lock error = %v, want ErrLocked", err)
	}
}
