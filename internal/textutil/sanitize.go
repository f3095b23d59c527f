package textutil

import "strings"

// safeNameReplacer replaces characters that are unsafe in directory names or
// that carry URL syntax meaning with underscores.
var safeNameReplacer = strings.NewReplacer(
	"\x00", "_",
	"/", "_",
	"\\", "_",
	"#", "_",
	"?", "_",
	"&", "_",
	"=", "_",
	":", "_",
)

// SafeName makes a name safe for use as a filesystem path component. The
// mapping is deterministic: equal inputs always produce equal outputs.
func SafeName(name string) string {
	return safeNameReplacer.Replace(name)
}

// SourceToken converts a string to a lowercase token suitable as a synthetic
// source abbreviation. Letters are lowercased, digits kept, everything else
// collapses to nothing. Returns "unknown" when nothing usable remains.
func SourceToken(value string) string {
	value = strings.TrimSpace(value)
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return "unknown"
	}
	return out
}
