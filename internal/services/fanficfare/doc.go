// Package fanficfare wraps the fanficfare CLI, the retrieval tool that
// downloads a story into the project's story tree and prints the story's
// metadata as JSON on stdout.
package fanficfare
