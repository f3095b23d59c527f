// Package ebookconvert wraps the ebook-convert CLI used to turn a downloaded
// story's HTML into an EPUB.
package ebookconvert
