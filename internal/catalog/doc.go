// Package catalog aggregates a project tree into a single consistent
// catalog index.
//
// The engine walks a root project and, optionally, its subproject tree in
// pre-order, converts every locally stored story through the per-source
// metadata converters, resolves category aliases against the owning
// project's own alias table, and deduplicates stories across the tree by
// target identity with a first-write-wins policy. The resulting index feeds
// page rendering and archive packaging; it is rebuilt from scratch on every
// aggregation and never persisted directly.
package catalog
