// Package zimwriterfs wraps the zimwriterfs CLI that packs the rendered
// archive tree into a ZIM file.
package zimwriterfs
