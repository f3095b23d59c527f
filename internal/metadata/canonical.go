package metadata

import "encoding/json"

// Raw is the open string-keyed record produced by the retrieval tool for one
// work. No field is assumed present.
type Raw map[string]any

// Canonical is the normalized description of one work. Numeric fields are
// always non-negative, identity fields carry the "???" placeholder when
// unknown, characters are distinct non-empty names, and every ship is the
// lexicographically sorted list of its member names.
type Canonical struct {
	Source      string
	StoryID     string
	Title       string
	Author      string
	AuthorID    string
	AuthorURL   string
	AuthorHTML  string
	Category    string
	Status      string
	Rating      string
	Language    string
	Description string

	DatePublished string
	DateUpdated   string
	DateCreated   string

	NumWords    int
	NumChapters int
	Favs        int
	Follows     int
	Reviews     int

	Characters []string
	Ships      [][]string

	// Extra preserves raw fields not covered by the canonical schema.
	Extra map[string]any
}

// Unknown is the placeholder for identity fields that could not be
// determined.
const Unknown = "???"

// canonicalKeys are the raw-record keys owned by the typed fields above.
var canonicalKeys = map[string]struct{}{
	"siteabbrev":    {},
	"storyId":       {},
	"title":         {},
	"author":        {},
	"authorId":      {},
	"authorUrl":     {},
	"authorHTML":    {},
	"category":      {},
	"status":        {},
	"rating":        {},
	"language":      {},
	"description":   {},
	"datePublished": {},
	"dateUpdated":   {},
	"dateCreated":   {},
	"numWords":      {},
	"numChapters":   {},
	"favs":          {},
	"follows":       {},
	"reviews":       {},
	"characters":    {},
	"ships":         {},
}

// MarshalJSON flattens the canonical fields and the preserved extras into a
// single object using the retrieval tool's key names, so downstream dumps
// look like enriched raw records.
func (c Canonical) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+22)
	for k, v := range c.Extra {
		if _, owned := canonicalKeys[k]; owned {
			continue
		}
		out[k] = v
	}
	out["siteabbrev"] = c.Source
	out["storyId"] = c.StoryID
	out["title"] = c.Title
	out["author"] = c.Author
	out["authorId"] = c.AuthorID
	out["authorUrl"] = c.AuthorURL
	out["authorHTML"] = c.AuthorHTML
	out["category"] = c.Category
	out["status"] = c.Status
	out["rating"] = c.Rating
	out["language"] = c.Language
	out["description"] = c.Description
	out["datePublished"] = c.DatePublished
	out["dateUpdated"] = c.DateUpdated
	out["dateCreated"] = c.DateCreated
	out["numWords"] = c.NumWords
	out["numChapters"] = c.NumChapters
	out["favs"] = c.Favs
	out["follows"] = c.Follows
	out["reviews"] = c.Reviews
	out["ships"] = c.Ships
	characters := c.Characters
	if characters == nil {
		characters = []string{}
	}
	out["characters"] = characters
	return json.Marshal(out)
}

// stringField reads a raw field as a string, returning fallback when the
// field is absent or not a string.
func stringField(raw Raw, key, fallback string) string {
	if v, ok := raw[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// countField reads a raw field through the count-string parser, defaulting
// to 0 when absent or unparseable. JSON numbers are accepted as-is.
func countField(raw Raw, key string) int {
	v, ok := raw[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case string:
		return ParseCount(n)
	case float64:
		if n < 0 {
			return 0
		}
		return int(n)
	case int:
		if n < 0 {
			return 0
		}
		return n
	default:
		return 0
	}
}
