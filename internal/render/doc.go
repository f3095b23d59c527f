// Package render writes the static archive site consumed by the packager:
// the welcome page with its category overview, the statistics page, one list
// page per category, and one page per author. Pages are produced from
// html/template files embedded in the binary.
package render
