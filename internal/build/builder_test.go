package build_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fanvault/internal/build"
	"fanvault/internal/project"
	"fanvault/internal/services/zimwriterfs"
	"fanvault/internal/target"
	"fanvault/internal/testsupport"
)

type fakePackager struct {
	req      zimwriterfs.BuildRequest
	seen     map[string]bool
	buildErr error
}

func (f *fakePackager) Build(_ context.Context, req zimwriterfs.BuildRequest, _ func(string)) error {
	f.req = req
	// Record the staged tree while it still exists.
	f.seen = map[string]bool{}
	for _, rel := range []string{
		"index.html",
		"stats.html",
		"resources/styles.css",
		"resources/favicon.icon",
		"stories/ffnet-1/story.html",
		"stories/ffnet-1/images/cover.jpg",
	} {
		if _, err := os.Stat(filepath.Join(req.SourceDir, rel)); err == nil {
			f.seen[rel] = true
		}
	}
	return f.buildErr
}

func seedBuildProject(t *testing.T) *project.Project {
	t.Helper()
	p := testsupport.NewProject(t)
	id := target.Identity{Source: "ffnet", ID: "1"}
	testsupport.SeedStory(t, p, id, map[string]any{
		"storyId":     "1",
		"title":       "First Story",
		"author":      "alice",
		"authorId":    "a1",
		"category":    "Fandom A",
		"numWords":    "1,000",
		"numChapters": "2",
	})
	imgDir := filepath.Join(p.TargetDir(id), "images")
	if err := os.MkdirAll(imgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(imgDir, "cover.jpg"), []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunStagesAndPackages(t *testing.T) {
	p := seedBuildProject(t)
	fake := &fakePackager{}

	builder, err := build.New(t.TempDir(), fake, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	out := filepath.Join(t.TempDir(), "archive.zim")
	result, err := builder.Run(context.Background(), p, build.Request{
		OutputPath:         out,
		IncludeSubprojects: true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.OutputPath != out {
		t.Errorf("OutputPath = %q, want %q", result.OutputPath, out)
	}
	if result.Stats.Stories != 1 {
		t.Errorf("Stats.Stories = %d, want 1", result.Stats.Stories)
	}

	if fake.req.OutputPath != out {
		t.Errorf("packager output = %q, want %q", fake.req.OutputPath, out)
	}
	if fake.req.Welcome != "index.html" {
		t.Errorf("welcome page = %q", fake.req.Welcome)
	}
	for _, rel := range []string{
		"index.html",
		"stats.html",
		"resources/styles.css",
		"resources/favicon.icon",
		"stories/ffnet-1/story.html",
		"stories/ffnet-1/images/cover.jpg",
	} {
		if !fake.seen[rel] {
			t.Errorf("staged tree missing %s", rel)
		}
	}
	if _, err := os.Stat(fake.req.SourceDir); !os.IsNotExist(err) {
		t.Errorf("staging dir %s should be removed after the run", fake.req.SourceDir)
	}
}

func TestRunUsesProjectBuildOptions(t *testing.T) {
	p := seedBuildProject(t)
	for key, value := range map[string]string{
		"title":       "My Archive",
		"language":    "DE",
		"description": "Testing",
		"creator":     "me",
		"publisher":   "nobody",
	} {
		if err := p.SetOption("build", key, value); err != nil {
			t.Fatal(err)
		}
	}

	fake := &fakePackager{}
	builder, err := build.New(t.TempDir(), fake, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := builder.Run(context.Background(), p, build.Request{
		OutputPath: filepath.Join(t.TempDir(), "archive.zim"),
	}); err != nil {
		t.Fatal(err)
	}

	if fake.req.Title != "My Archive" || fake.req.Language != "deu" ||
		fake.req.Description != "Testing" || fake.req.Creator != "me" ||
		fake.req.Publisher != "nobody" {
		t.Errorf("packager request did not honour build options: %+v", fake.req)
	}
}

func TestRunRejectsDirectoryOutput(t *testing.T) {
	p := seedBuildProject(t)
	builder, err := build.New(t.TempDir(), &fakePackager{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = builder.Run(context.Background(), p, build.Request{OutputPath: t.TempDir()})
	if !errors.Is(err, project.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestRunPropagatesPackagerFailure(t *testing.T) {
	p := seedBuildProject(t)
	fake := &fakePackager{buildErr: errors.New("exit status 1")}
	builder, err := build.New(t.TempDir(), fake, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := builder.Run(context.Background(), p, build.Request{
		OutputPath: filepath.Join(t.TempDir(), "archive.zim"),
	}); err == nil {
		t.Fatal("Run ignored a packager failure")
	}
}
