package metadata

import (
	"sort"
	"strings"
)

// slashSentinel stands in for slashes embedded in character names while a
// ship entry is split on "/". Control characters cannot appear in site
// metadata, so the token never collides with a real name.
const slashSentinel = "\x1fSLASH\x1f"

// ParseCharacters splits a comma-separated free-text character field into
// the ordered set of distinct, trimmed, non-empty names.
func ParseCharacters(field string) []string {
	parts := strings.Split(field, ",")
	seen := make(map[string]struct{}, len(parts))
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// ParseShips splits a comma-separated ships field into structured pairings.
// Each entry is a "/"-delimited list of character names, but names may
// themselves contain "/" (for example "Max/Jax" as a single character).
// Every known character name containing a slash is substituted with a
// sentinel form before the entry is split, and the sentinel is restored in
// each resulting member afterwards. Members are sorted lexicographically so
// that equivalent pairings normalize identically regardless of input order.
func ParseShips(field string, characters []string) [][]string {
	slashed := make([]string, 0, 2)
	for _, name := range characters {
		if strings.Contains(name, "/") {
			slashed = append(slashed, name)
		}
	}

	ships := make([][]string, 0, 4)
	for _, entry := range strings.Split(field, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		for _, name := range slashed {
			if strings.Contains(entry, name) {
				entry = strings.ReplaceAll(entry, name, strings.ReplaceAll(name, "/", slashSentinel))
			}
		}
		members := strings.Split(entry, "/")
		for i, member := range members {
			members[i] = strings.ReplaceAll(member, slashSentinel, "/")
		}
		sort.Strings(members)
		ships = append(ships, members)
	}
	return ships
}
