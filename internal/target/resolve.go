package target

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"fanvault/internal/textutil"
)

// ErrInvalidReference reports a reference that matches no supported pattern.
var ErrInvalidReference = errors.New("invalid target reference")

// Source abbreviations for the supported sites.
const (
	SourceFFNet        = "ffnet"
	SourceFictionPress = "fpcom"
	SourceAO3          = "ao3"
	SourceSpaceBattles = "fsb"
)

type sitePattern struct {
	source  string
	pattern *regexp.Regexp
	url     func(id string) string
}

// Site URL patterns. The first capture group is the story ID.
var sitePatterns = []sitePattern{
	{
		source:  SourceFFNet,
		pattern: regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?fanfiction\.net/s/([0-9]+)(?:/.*)?$`),
		url:     func(id string) string { return "https://www.fanfiction.net/s/" + id },
	},
	{
		source:  SourceFictionPress,
		pattern: regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?fictionpress\.com/s/([0-9]+)(?:/.*)?$`),
		url:     func(id string) string { return "https://www.fictionpress.com/s/" + id },
	},
	{
		source:  SourceAO3,
		pattern: regexp.MustCompile(`^(?:https?://)?(?:www\.)?archiveofourown\.org/works/([0-9]+)(?:[/?].*)?$`),
		url:     func(id string) string { return "https://archiveofourown.org/works/" + id },
	},
	{
		source:  SourceSpaceBattles,
		pattern: regexp.MustCompile(`^(?:https?://)?forums\.spacebattles\.com/threads/(?:[^/]*\.)?([0-9]+)/?.*$`),
		url:     func(id string) string { return "https://forums.spacebattles.com/threads/" + id + "/" },
	},
}

// referenceFinder locates known story URLs embedded in free text.
var referenceFinder = regexp.MustCompile(
	`(?:https?://)?(?:www\.|m\.)?fanfiction\.net/s/[0-9]+` +
		`|(?:https?://)?(?:www\.|m\.)?fictionpress\.com/s/[0-9]+` +
		`|(?:https?://)?(?:www\.)?archiveofourown\.org/works/[0-9]+` +
		`|(?:https?://)?forums\.spacebattles\.com/threads/[^/\s]+/?`)

// Resolve maps a reference string (URL or bare numeric ID) to a Target. Bare
// numeric IDs are treated as fanfiction.net story IDs. Unrecognized URLs
// fall back to a synthetic identity derived from the reference string;
// anything else fails with ErrInvalidReference.
//
// Resolve is a pure function: identical inputs yield identical targets.
func Resolve(reference string) (Target, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return Target{}, fmt.Errorf("%w: empty reference", ErrInvalidReference)
	}

	if isDigits(ref) {
		return Target{
			Identity: Identity{Source: SourceFFNet, ID: ref},
			URL:      "https://www.fanfiction.net/s/" + ref,
		}, nil
	}

	for _, site := range sitePatterns {
		if m := site.pattern.FindStringSubmatch(ref); m != nil {
			return Target{
				Identity: Identity{Source: site.source, ID: m[1]},
				URL:      site.url(m[1]),
			}, nil
		}
	}

	return resolveSynthetic(ref)
}

// resolveSynthetic builds a deterministic identity for a URL from an
// unrecognized site: the source tag comes from the normalized host and the
// ID from the bleached reference string.
func resolveSynthetic(ref string) (Target, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Target{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	host := parsed.Hostname()
	if host == "" {
		return Target{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	return Target{
		Identity: Identity{
			Source: textutil.SourceToken(strings.TrimPrefix(host, "www.")),
			ID:     textutil.SafeName(ref),
		},
		URL: ref,
	}, nil
}

// FindReferences extracts every recognizable story reference from free text,
// in order of appearance and deduplicated.
func FindReferences(text string) []string {
	matches := referenceFinder.FindAllString(text, -1)
	seen := make(map[Identity]struct{}, len(matches))
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		t, err := Resolve(m)
		if err != nil {
			continue
		}
		if _, ok := seen[t.Identity]; ok {
			continue
		}
		seen[t.Identity] = struct{}{}
		refs = append(refs, t.URL)
	}
	return refs
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
