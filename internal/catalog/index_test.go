package catalog_test

import (
	"testing"

	"fanvault/internal/catalog"
	"fanvault/internal/target"
	"fanvault/internal/testsupport"
)

func TestComputeStats(t *testing.T) {
	p := testsupport.NewProject(t)
	testsupport.SeedStory(t, p, target.Identity{Source: "ffnet", ID: "1"}, map[string]any{
		"storyId":     "1",
		"title":       "One",
		"author":      "alice",
		"authorId":    "a1",
		"category":    "Fandom A",
		"numWords":    "1,500",
		"numChapters": "3",
	})
	testsupport.SeedStory(t, p, target.Identity{Source: "ao3", ID: "2"}, map[string]any{
		"storyId":     "2",
		"title":       "Two",
		"author":      "bob",
		"authorId":    "b1",
		"category":    "Fandom A",
		"numWords":    "2k",
		"numChapters": "5",
	})

	idx, err := catalog.NewEngine(nil).Aggregate(p, false)
	if err != nil {
		t.Fatal(err)
	}

	stats := idx.ComputeStats()
	if stats.Stories != 2 {
		t.Errorf("Stories = %d, want 2", stats.Stories)
	}
	if stats.Sources != 2 {
		t.Errorf("Sources = %d, want 2", stats.Sources)
	}
	// The ALL bucket is a view over every category and must not count as one.
	if stats.Categories != 1 {
		t.Errorf("Categories = %d, want 1", stats.Categories)
	}
	if stats.Authors != 2 {
		t.Errorf("Authors = %d, want 2", stats.Authors)
	}
	if stats.Chapters != 8 {
		t.Errorf("Chapters = %d, want 8", stats.Chapters)
	}
	if stats.Words != 3500 {
		t.Errorf("Words = %d, want 3500", stats.Words)
	}
}

func TestCategoryNamesSorted(t *testing.T) {
	p := testsupport.NewProject(t)
	for i, cat := range []string{"Zeta", "alpha", "Midway"} {
		id := string(rune('1' + i))
		testsupport.SeedStory(t, p, target.Identity{Source: "ffnet", ID: id}, map[string]any{
			"storyId":  id,
			"title":    "Story " + id,
			"author":   "alice",
			"authorId": "a1",
			"category": cat,
		})
	}

	idx, err := catalog.NewEngine(nil).Aggregate(p, false)
	if err != nil {
		t.Fatal(err)
	}

	names := idx.CategoryNames()
	if len(names) != 4 {
		t.Fatalf("names = %v, want ALL plus three categories", names)
	}
	if names[0] != catalog.AllCategory {
		t.Errorf("names[0] = %q, want %q first", names[0], catalog.AllCategory)
	}
	// Collation is case insensitive, unlike a bare byte sort.
	want := []string{"alpha", "Midway", "Zeta"}
	for i, name := range names[1:] {
		if name != want[i] {
			t.Errorf("names[%d] = %q, want %q", i+1, name, want[i])
		}
	}
}
