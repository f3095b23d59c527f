// Package testsupport provides helpers for seeding temp projects and story
// artifacts in tests.
package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"fanvault/internal/logging"
	"fanvault/internal/project"
	"fanvault/internal/target"
)

// NewProject initializes a fresh project in a per-test temp directory.
func NewProject(t testing.TB) *project.Project {
	t.Helper()
	p, err := project.Init(filepath.Join(t.TempDir(), "proj"), logging.NewNop())
	if err != nil {
		t.Fatalf("init test project: %v", err)
	}
	return p
}

// NewProjectAt initializes a project at the given path.
func NewProjectAt(t testing.TB, path string) *project.Project {
	t.Helper()
	p, err := project.Init(path, logging.NewNop())
	if err != nil {
		t.Fatalf("init test project at %s: %v", path, err)
	}
	return p
}

// SeedStory writes a downloaded-story artifact directory (metadata.json and
// a stub story.html) for the given identity.
func SeedStory(t testing.TB, p *project.Project, id target.Identity, raw map[string]any) {
	t.Helper()
	dir := p.TargetDir(id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("seed story dir: %v", err)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("marshal seed metadata: %v", err)
	}
	if err := os.WriteFile(p.MetadataPath(id), data, 0o644); err != nil {
		t.Fatalf("write seed metadata: %v", err)
	}
	html := "<html><body><a name=\"section0001\">Chapter 1</a><div>content</div></body></html>"
	if err := os.WriteFile(p.StoryHTMLPath(id), []byte(html), 0o644); err != nil {
		t.Fatalf("write seed story: %v", err)
	}
}

// SeedStoryDirOnly creates a target artifact directory without a metadata
// file, for missing-metadata scenarios.
func SeedStoryDirOnly(t testing.TB, p *project.Project, id target.Identity) {
	t.Helper()
	if err := os.MkdirAll(p.TargetDir(id), 0o755); err != nil {
		t.Fatalf("seed story dir: %v", err)
	}
}

// AddSubproject creates a child project under the parent directory and
// registers it in the parent's subproject list.
func AddSubproject(t testing.TB, parent *project.Project, name string) *project.Project {
	t.Helper()
	child := NewProjectAt(t, filepath.Join(parent.Path, name))
	if err := parent.AddSubproject(name); err != nil {
		t.Fatalf("register subproject: %v", err)
	}
	return child
}
