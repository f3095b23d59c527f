package render_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fanvault/internal/catalog"
	"fanvault/internal/render"
	"fanvault/internal/target"
	"fanvault/internal/testsupport"
)

func buildIndex(t *testing.T) *catalog.Index {
	t.Helper()
	p := testsupport.NewProject(t)
	testsupport.SeedStory(t, p, target.Identity{Source: "ffnet", ID: "1"}, map[string]any{
		"storyId":     "1",
		"title":       "First Story",
		"author":      "alice",
		"authorId":    "a1",
		"authorUrl":   "https://example.org/u/a1",
		"category":    "Fandom A",
		"status":      "Completed",
		"numWords":    "1,000",
		"numChapters": "2",
	})
	testsupport.SeedStory(t, p, target.Identity{Source: "ffnet", ID: "2"}, map[string]any{
		"storyId":     "2",
		"title":       "Second Story",
		"author":      "bob",
		"authorId":    "b1",
		"category":    "Fandom B",
		"numWords":    "2,000",
		"numChapters": "4",
	})

	idx, err := catalog.NewEngine(nil).Aggregate(p, false)
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestRenderSite(t *testing.T) {
	idx := buildIndex(t)
	dir := t.TempDir()

	renderer, err := render.New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := renderer.RenderSite(dir, "test archive", idx); err != nil {
		t.Fatalf("RenderSite failed: %v", err)
	}

	indexHTML := readFile(t, filepath.Join(dir, "index.html"))
	for _, want := range []string{
		"<title>test archive</title>",
		"Fandom A</a>",
		"Fandom B</a>",
		"/list.html",
	} {
		if !strings.Contains(indexHTML, want) {
			t.Errorf("index.html missing %q", want)
		}
	}

	statsHTML := readFile(t, filepath.Join(dir, "stats.html"))
	if !strings.Contains(statsHTML, "Words per Chapter") {
		t.Error("stats.html missing derived statistics")
	}

	if _, err := os.Stat(filepath.Join(dir, "resources", "styles.css")); err != nil {
		t.Errorf("style sheet missing: %v", err)
	}

	catHTML := readFile(t, filepath.Join(dir, "category", "Fandom A", "list.html"))
	if !strings.Contains(catHTML, "First Story") {
		t.Error("category page missing its story")
	}
	if strings.Contains(catHTML, "Second Story") {
		t.Error("category page lists a story from another category")
	}
	if !strings.Contains(catHTML, "../../stories/ffnet-1/story.html") {
		t.Error("category page missing story link")
	}

	authorHTML := readFile(t, filepath.Join(dir, "author", "ffnet-a1", "author.html"))
	if !strings.Contains(authorHTML, "alice") || !strings.Contains(authorHTML, "https://example.org/u/a1") {
		t.Error("author page missing author details")
	}
}

func TestRenderWritesStoriesJSON(t *testing.T) {
	idx := buildIndex(t)
	dir := t.TempDir()

	renderer, err := render.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := renderer.RenderSite(dir, "test archive", idx); err != nil {
		t.Fatal(err)
	}

	data := readFile(t, filepath.Join(dir, "category", "ALL", "stories.json"))
	var entries []map[string]any
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		t.Fatalf("stories.json is not valid JSON: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ALL stories.json has %d entries, want 2", len(entries))
	}
	for _, entry := range entries {
		if entry["siteabbrev"] != "ffnet" {
			t.Errorf("entry missing source: %v", entry)
		}
		if _, ok := entry["storyId"]; !ok {
			t.Errorf("entry missing story id: %v", entry)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
