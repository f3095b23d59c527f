// Package project manages a directory-backed collection of download targets.
//
// A project directory is recognized by its project.json marker file and owns
// the target list, per-category options, the category alias table, the
// update-mark set, an optional list of subprojects, and one artifact
// directory per downloaded story (stories/SOURCE/ID).
//
// All persisted files are whole-file read-modify-write; the package assumes
// a single active process per project directory. Concurrent writers from two
// processes can race and lose updates. Long-running batch commands hold an
// advisory lock (see Lock) to serialize fanvault's own invocations, but the
// individual file mutations carry no atomicity guarantee.
package project
