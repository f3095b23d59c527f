// Package services defines shared plumbing for the external tools the archive
// depends on: the retrieval tool, the book converter, and the packager.
//
// It provides the Executor abstraction that makes command execution testable
// and the error markers plus Wrap helper that keep failure messages uniform
// across the tool clients.
package services
