// Package textutil provides small string normalization helpers shared by
// target resolution, catalog rendering, and the build pipeline.
package textutil
