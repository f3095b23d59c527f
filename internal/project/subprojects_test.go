package project_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fanvault/internal/project"
	"fanvault/internal/testsupport"
)

func TestSubprojectsPreOrder(t *testing.T) {
	root := testsupport.NewProject(t)
	childA := testsupport.AddSubproject(t, root, "sub-a")
	childB := testsupport.AddSubproject(t, root, "sub-b")
	grandchild := testsupport.AddSubproject(t, childA, "nested")

	subs, err := root.Subprojects()
	if err != nil {
		t.Fatalf("Subprojects failed: %v", err)
	}

	want := []string{childA.Path, grandchild.Path, childB.Path}
	if len(subs) != len(want) {
		t.Fatalf("got %d subprojects, want %d", len(subs), len(want))
	}
	for i, sub := range subs {
		if sub.Path != want[i] {
			t.Errorf("subs[%d].Path = %q, want %q", i, sub.Path, want[i])
		}
	}
}

func TestSubprojectsEmptyWithoutFile(t *testing.T) {
	root := testsupport.NewProject(t)
	subs, err := root.Subprojects()
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 0 {
		t.Errorf("expected no subprojects, got %d", len(subs))
	}
}

func TestSubprojectsCycleDetected(t *testing.T) {
	root := testsupport.NewProject(t)
	child := testsupport.AddSubproject(t, root, "child")

	// The child points back at the root, closing a cycle.
	line := "..\n"
	if err := os.WriteFile(filepath.Join(child.Path, "subprojects.txt"), []byte(line), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := root.Subprojects()
	if !errors.Is(err, project.ErrCyclicSubproject) {
		t.Fatalf("error = %v, want ErrCyclicSubproject", err)
	}
}

func TestSubprojectsSelfReferenceDetected(t *testing.T) {
	root := testsupport.NewProject(t)
	if err := os.WriteFile(filepath.Join(root.Path, "subprojects.txt"), []byte(".\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := root.Subprojects()
	if !errors.Is(err, project.ErrCyclicSubproject) {
		t.Fatalf("error = %v, want ErrCyclicSubproject", err)
	}
}

func TestAddSubprojectValidatesTarget(t *testing.T) {
	root := testsupport.NewProject(t)
	if err := root.AddSubproject("missing"); !errors.Is(err, project.ErrNotAProject) {
		t.Fatalf("error = %v, want ErrNotAProject", err)
	}
}
