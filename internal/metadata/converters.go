package metadata

import (
	"errors"
	"fmt"

	"fanvault/internal/target"
)

// ErrMalformedSource reports a raw record whose identity cannot be
// established even with the caller's identity hint.
var ErrMalformedSource = errors.New("malformed source metadata")

// Converter transforms one raw record into canonical form. The identity hint
// names the work the record belongs to (usually derived from its artifact
// directory); converters use it to recover identity fields the record
// itself is missing.
type Converter func(hint target.Identity, raw Raw) (Canonical, error)

// converters maps source abbreviations to their converter. Sources not
// listed here fall back to convertDefault.
var converters = map[string]Converter{
	target.SourceFFNet:        convertFFNet,
	target.SourceFictionPress: convertFFNet,
	target.SourceAO3:          convertAO3,
	target.SourceSpaceBattles: convertSpaceBattles,
}

// ConverterFor returns the converter registered for the given source
// abbreviation, or the default converter when the source is unrecognized.
func ConverterFor(source string) Converter {
	if c, ok := converters[source]; ok {
		return c
	}
	return convertDefault
}

// Convert runs the converter selected by the hint's source.
func Convert(hint target.Identity, raw Raw) (Canonical, error) {
	return ConverterFor(hint.Source)(hint, raw)
}

// base builds the fields every converter shares: identity, display fields,
// extras, and the character/ship normalization.
func base(hint target.Identity, raw Raw) (Canonical, error) {
	source := stringField(raw, "siteabbrev", hint.Source)
	if source == "" {
		return Canonical{}, fmt.Errorf("%w: source abbreviation missing", ErrMalformedSource)
	}
	storyID := stringField(raw, "storyId", hint.ID)
	if storyID == "" {
		return Canonical{}, fmt.Errorf("%w: story id missing for source %s", ErrMalformedSource, source)
	}

	characters := ParseCharacters(stringField(raw, "characters", ""))

	c := Canonical{
		Source:        source,
		StoryID:       storyID,
		Title:         stringField(raw, "title", Unknown),
		Author:        stringField(raw, "author", Unknown),
		AuthorID:      stringField(raw, "authorId", Unknown),
		AuthorURL:     stringField(raw, "authorUrl", ""),
		AuthorHTML:    stringField(raw, "authorHTML", ""),
		Category:      stringField(raw, "category", ""),
		Status:        stringField(raw, "status", ""),
		Rating:        stringField(raw, "rating", ""),
		Language:      stringField(raw, "language", ""),
		Description:   stringField(raw, "description", ""),
		DatePublished: stringField(raw, "datePublished", ""),
		DateUpdated:   stringField(raw, "dateUpdated", ""),
		DateCreated:   stringField(raw, "dateCreated", ""),
		NumWords:      countField(raw, "numWords"),
		NumChapters:   countField(raw, "numChapters"),
		Characters:    characters,
		Ships:         ParseShips(stringField(raw, "ships", ""), characters),
	}

	extra := make(map[string]any)
	for k, v := range raw {
		if _, owned := canonicalKeys[k]; owned {
			continue
		}
		extra[k] = v
	}
	c.Extra = extra
	return c, nil
}

// convertDefault handles sources without a dedicated converter.
func convertDefault(hint target.Identity, raw Raw) (Canonical, error) {
	return base(hint, raw)
}

// convertFFNet covers fanfiction.net and its fictionpress sibling.
func convertFFNet(hint target.Identity, raw Raw) (Canonical, error) {
	c, err := base(hint, raw)
	if err != nil {
		return Canonical{}, err
	}
	c.Favs = countField(raw, "favs")
	c.Follows = countField(raw, "follows")
	c.Reviews = countField(raw, "reviews")
	return c, nil
}

// convertAO3 maps kudos to favs, bookmarks to follows, and comments to
// reviews. Bookmarks are not exactly follows, but subscriptions are not
// exposed by the site.
func convertAO3(hint target.Identity, raw Raw) (Canonical, error) {
	c, err := base(hint, raw)
	if err != nil {
		return Canonical{}, err
	}
	c.Favs = countField(raw, "kudos")
	c.Follows = countField(raw, "bookmarks")
	c.Reviews = countField(raw, "comments")
	return c, nil
}

// convertSpaceBattles sums the word count from per-chapter metadata; the
// forum does not report a story total.
func convertSpaceBattles(hint target.Identity, raw Raw) (Canonical, error) {
	c, err := base(hint, raw)
	if err != nil {
		return Canonical{}, err
	}
	c.Status = "Unknown"
	c.NumWords = sumChapterWords(raw)
	return c, nil
}

// sumChapterWords totals the "kwords" field across the zchapters list. Each
// entry is a [index, metadata] pair; malformed entries are skipped.
func sumChapterWords(raw Raw) int {
	chapters, ok := raw["zchapters"].([]any)
	if !ok {
		return 0
	}
	total := 0
	for _, entry := range chapters {
		pair, ok := entry.([]any)
		if !ok || len(pair) < 2 {
			continue
		}
		meta, ok := pair[1].(map[string]any)
		if !ok {
			continue
		}
		if words, ok := meta["kwords"].(string); ok {
			total += ParseCount(words)
		}
	}
	return total
}
