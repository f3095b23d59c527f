// Package metadata normalizes per-site story metadata into a canonical
// schema.
//
// Each supported source has a converter that maps the raw key/value record
// emitted by the retrieval tool into a Canonical value with guaranteed
// numeric fields, identity placeholders, and structured character and ship
// lists. Converter selection is a static registry keyed by source
// abbreviation with a default fallback; converters build new values and
// never mutate their input.
package metadata
