// Package logging assembles the structured slog loggers used across fanvault.
//
// It centralizes level parsing, output format selection, and component
// tagging so every subsystem emits log lines with the same shape. The
// package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
