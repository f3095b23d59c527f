// Package history records download and build runs in a per-project SQLite
// journal so past activity can be inspected after the fact.
package history
