// Package build turns a project into a packaged ZIM archive: it aggregates
// the catalog, renders the static site into a staging directory, copies the
// downloaded stories in, and hands the tree to the packager.
package build
