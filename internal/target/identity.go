package target

import (
	"path/filepath"
	"strings"
)

// Identity uniquely identifies a work by its source site abbreviation and
// site-local story ID. Two references to the same work resolve to the same
// Identity regardless of how the work was referenced.
type Identity struct {
	Source string
	ID     string
}

// String renders the identity as "source/id".
func (id Identity) String() string {
	return id.Source + "/" + id.ID
}

// Subpath returns the artifact directory path for this identity relative to
// a project's story root.
func (id Identity) Subpath() string {
	return filepath.Join(id.Source, id.ID)
}

// Key returns a flat "source-id" form used for page paths and JSON dumps.
func (id Identity) Key() string {
	return id.Source + "-" + id.ID
}

// Compare orders identities by (source, id). It returns a negative value if
// id sorts before other, zero if equal, positive otherwise.
func (id Identity) Compare(other Identity) int {
	if c := strings.Compare(id.Source, other.Source); c != 0 {
		return c
	}
	return strings.Compare(id.ID, other.ID)
}

// Target couples an identity with the canonical URL handed to the retrieval
// tool.
type Target struct {
	Identity
	URL string
}
