package catalog_test

import (
	"testing"

	"fanvault/internal/catalog"
	"fanvault/internal/target"
	"fanvault/internal/testsupport"
)

func story(storyID, title, author, authorID, category string) map[string]any {
	return map[string]any{
		"storyId":     storyID,
		"title":       title,
		"author":      author,
		"authorId":    authorID,
		"category":    category,
		"numWords":    "1,000",
		"numChapters": "2",
	}
}

func TestAggregateSingleProject(t *testing.T) {
	p := testsupport.NewProject(t)
	testsupport.SeedStory(t, p, target.Identity{Source: "ffnet", ID: "1"},
		story("1", "First", "alice", "a1", "Fandom A"))
	testsupport.SeedStory(t, p, target.Identity{Source: "ffnet", ID: "2"},
		story("2", "Second", "alice", "a1", "Fandom B"))

	idx, err := catalog.NewEngine(nil).Aggregate(p, true)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if len(idx.Stories) != 2 {
		t.Fatalf("stories = %d, want 2", len(idx.Stories))
	}
	if got := len(idx.ByCategory[catalog.AllCategory]); got != 2 {
		t.Errorf("ALL bucket has %d stories, want 2", got)
	}
	author := idx.ByAuthor[catalog.AuthorKey{Source: "ffnet", AuthorID: "a1"}]
	if author == nil {
		t.Fatal("author entry missing")
	}
	if author.Name != "alice" || len(author.Stories) != 2 {
		t.Errorf("author = %+v", author)
	}
}

func TestAggregateFirstWriteWins(t *testing.T) {
	root := testsupport.NewProject(t)
	sub := testsupport.AddSubproject(t, root, "sub")

	shared := target.Identity{Source: "ffnet", ID: "42"}
	testsupport.SeedStory(t, root, shared, story("42", "Root Version", "alice", "a1", "Fandom A"))
	testsupport.SeedStory(t, sub, shared, story("42", "Sub Version", "bob", "b1", "Fandom B"))

	idx, err := catalog.NewEngine(nil).Aggregate(root, true)
	if err != nil {
		t.Fatal(err)
	}

	if len(idx.Stories) != 1 {
		t.Fatalf("stories = %d, want 1 after dedup", len(idx.Stories))
	}
	if got := idx.Stories[shared].Title; got != "Root Version" {
		t.Errorf("title = %q, want the root project's version", got)
	}
	if got := len(idx.ByCategory[catalog.AllCategory]); got != 1 {
		t.Errorf("ALL bucket has %d entries, want 1", got)
	}
	if got := idx.Origins[shared]; got != root.TargetDir(shared) {
		t.Errorf("origin = %q, want the root project's artifact dir", got)
	}
}

func TestAggregateSubprojectStoriesIncluded(t *testing.T) {
	root := testsupport.NewProject(t)
	sub := testsupport.AddSubproject(t, root, "sub")
	testsupport.SeedStory(t, root, target.Identity{Source: "ffnet", ID: "1"},
		story("1", "Root Story", "alice", "a1", "Fandom A"))
	testsupport.SeedStory(t, sub, target.Identity{Source: "ao3", ID: "2"},
		story("2", "Sub Story", "bob", "b1", "Fandom B"))

	idx, err := catalog.NewEngine(nil).Aggregate(root, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(idx.Stories) != 2 {
		t.Fatalf("stories = %d, want 2", len(idx.Stories))
	}

	// Without subprojects only the root's story appears.
	idx, err = catalog.NewEngine(nil).Aggregate(root, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(idx.Stories) != 1 {
		t.Fatalf("stories without subprojects = %d, want 1", len(idx.Stories))
	}
}

func TestAggregateAliasesArePerProject(t *testing.T) {
	root := testsupport.NewProject(t)
	sub := testsupport.AddSubproject(t, root, "sub")

	// Only the root maps Fandom A onto Canonical. The subproject's story
	// keeps its own category because alias tables are not inherited.
	if err := root.AddAlias("Fandom A", "Canonical"); err != nil {
		t.Fatal(err)
	}
	testsupport.SeedStory(t, root, target.Identity{Source: "ffnet", ID: "1"},
		story("1", "Root Story", "alice", "a1", "Fandom A"))
	testsupport.SeedStory(t, sub, target.Identity{Source: "ffnet", ID: "2"},
		story("2", "Sub Story", "bob", "b1", "Fandom A"))

	idx, err := catalog.NewEngine(nil).Aggregate(root, true)
	if err != nil {
		t.Fatal(err)
	}

	if got := len(idx.ByCategory["Canonical"]); got != 1 {
		t.Errorf("Canonical has %d stories, want 1", got)
	}
	if got := len(idx.ByCategory["Fandom A"]); got != 1 {
		t.Errorf("Fandom A has %d stories, want 1 (subproject story unaliased)", got)
	}
}

func TestAggregateSkipsMissingMetadata(t *testing.T) {
	p := testsupport.NewProject(t)
	testsupport.SeedStory(t, p, target.Identity{Source: "ffnet", ID: "1"},
		story("1", "Good", "alice", "a1", "Fandom A"))
	testsupport.SeedStoryDirOnly(t, p, target.Identity{Source: "ffnet", ID: "2"})

	idx, err := catalog.NewEngine(nil).Aggregate(p, false)
	if err != nil {
		t.Fatalf("missing metadata must not abort aggregation: %v", err)
	}
	if len(idx.Stories) != 1 {
		t.Fatalf("stories = %d, want 1", len(idx.Stories))
	}
}

func TestAggregateCategoryCompleteness(t *testing.T) {
	p := testsupport.NewProject(t)
	testsupport.SeedStory(t, p, target.Identity{Source: "ffnet", ID: "1"},
		story("1", "One", "alice", "a1", "Fandom A"))
	testsupport.SeedStory(t, p, target.Identity{Source: "ffnet", ID: "2"},
		story("2", "Two", "bob", "b1", "Fandom B"))
	testsupport.SeedStory(t, p, target.Identity{Source: "ao3", ID: "3"},
		story("3", "Three", "carol", "c1", "Fandom A"))

	idx, err := catalog.NewEngine(nil).Aggregate(p, false)
	if err != nil {
		t.Fatal(err)
	}

	for id, c := range idx.Stories {
		if countOf(idx.ByCategory[catalog.AllCategory], id) != 1 {
			t.Errorf("%s appears %d times in ALL, want exactly once",
				id, countOf(idx.ByCategory[catalog.AllCategory], id))
		}
		if countOf(idx.ByCategory[c.Category], id) != 1 {
			t.Errorf("%s appears %d times in %q, want exactly once",
				id, countOf(idx.ByCategory[c.Category], id), c.Category)
		}
	}
	for name, ids := range idx.ByCategory {
		for _, id := range ids {
			if _, ok := idx.Stories[id]; !ok {
				t.Errorf("category %q references %s which is not in the story set", name, id)
			}
		}
	}
}

func countOf(ids []target.Identity, want target.Identity) int {
	n := 0
	for _, id := range ids {
		if id == want {
			n++
		}
	}
	return n
}
