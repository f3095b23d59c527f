package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"fanvault/internal/metadata"
	"fanvault/internal/target"
)

// AllCategory is the synthetic bucket holding every indexed story.
const AllCategory = "ALL"

// AuthorKey identifies an author by source site and site-local author ID.
type AuthorKey struct {
	Source   string
	AuthorID string
}

// AuthorEntry accumulates catalog data for one author.
type AuthorEntry struct {
	Name    string
	ID      string
	URL     string
	HTML    string
	Stories []target.Identity
}

// Index is the aggregation result: the deduplicated story set plus the
// category and author indexes. Every identity referenced by ByCategory or
// ByAuthor has an entry in Stories.
type Index struct {
	Stories    map[target.Identity]metadata.Canonical
	ByCategory map[string][]target.Identity
	ByAuthor   map[AuthorKey]*AuthorEntry

	// Origins maps each story to the artifact directory it was read from,
	// which may live in a subproject.
	Origins map[target.Identity]string
}

// NewIndex returns an empty index with the ALL bucket prepared.
func NewIndex() *Index {
	return &Index{
		Stories:    make(map[target.Identity]metadata.Canonical),
		Origins:    make(map[target.Identity]string),
		ByCategory: map[string][]target.Identity{AllCategory: {}},
		ByAuthor:   make(map[AuthorKey]*AuthorEntry),
	}
}

// insert adds a story under first-write-wins dedup. It reports whether the
// story was inserted; a later occurrence of an already-present identity is
// discarded.
func (idx *Index) insert(id target.Identity, c metadata.Canonical) bool {
	if _, exists := idx.Stories[id]; exists {
		return false
	}
	idx.Stories[id] = c

	idx.ByCategory[c.Category] = append(idx.ByCategory[c.Category], id)
	if c.Category != AllCategory {
		idx.ByCategory[AllCategory] = append(idx.ByCategory[AllCategory], id)
	}

	key := AuthorKey{Source: id.Source, AuthorID: c.AuthorID}
	entry, ok := idx.ByAuthor[key]
	if !ok {
		entry = &AuthorEntry{
			Name: c.Author,
			ID:   c.AuthorID,
			URL:  c.AuthorURL,
			HTML: c.AuthorHTML,
		}
		idx.ByAuthor[key] = entry
	}
	entry.Stories = append(entry.Stories, id)
	return true
}

// CategoryNames returns every category (including ALL) in collated order.
func (idx *Index) CategoryNames() []string {
	names := make([]string, 0, len(idx.ByCategory))
	for name := range idx.ByCategory {
		names = append(names, name)
	}
	collate.New(language.Und).SortStrings(names)
	return names
}

// AuthorKeys returns the author keys ordered by (source, author id).
func (idx *Index) AuthorKeys() []AuthorKey {
	keys := make([]AuthorKey, 0, len(idx.ByAuthor))
	for key := range idx.ByAuthor {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Source != keys[j].Source {
			return keys[i].Source < keys[j].Source
		}
		return keys[i].AuthorID < keys[j].AuthorID
	})
	return keys
}

// CategoryStories returns the canonical metadata of every story in the
// category, in insertion order.
func (idx *Index) CategoryStories(category string) []metadata.Canonical {
	ids := idx.ByCategory[category]
	stories := make([]metadata.Canonical, 0, len(ids))
	for _, id := range ids {
		stories = append(stories, idx.Stories[id])
	}
	return stories
}

// AuthorStories returns the canonical metadata of every story by the author,
// in insertion order.
func (idx *Index) AuthorStories(key AuthorKey) []metadata.Canonical {
	entry, ok := idx.ByAuthor[key]
	if !ok {
		return nil
	}
	stories := make([]metadata.Canonical, 0, len(entry.Stories))
	for _, id := range entry.Stories {
		stories = append(stories, idx.Stories[id])
	}
	return stories
}

// Stats summarizes the catalog for the index and statistics pages.
type Stats struct {
	Sources    int
	Categories int
	Authors    int
	Stories    int
	Chapters   int
	Words      int
}

// ComputeStats computes aggregate counts over the index. Categories excludes the
// synthetic ALL bucket.
func (idx *Index) ComputeStats() Stats {
	stats := Stats{
		Authors: len(idx.ByAuthor),
		Stories: len(idx.Stories),
	}
	for name := range idx.ByCategory {
		if name != AllCategory {
			stats.Categories++
		}
	}
	sources := make(map[string]struct{})
	for id, c := range idx.Stories {
		sources[id.Source] = struct{}{}
		stats.Chapters += c.NumChapters
		stats.Words += c.NumWords
	}
	stats.Sources = len(sources)
	return stats
}
