package ebookconvert

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"fanvault/internal/services"
)

// DefaultBinary is used when the configuration names no converter.
const DefaultBinary = "ebook-convert"

// BookMeta carries the metadata stamped into the converted book.
type BookMeta struct {
	Title   string
	Authors string
	Comment string
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec services.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithTimeout caps how long one conversion may run. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client wraps ebook-convert CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    services.Executor
}

// New constructs an ebook-convert client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ebook-convert binary required")
	}
	client := &Client{
		binary: binary,
		exec:   services.CommandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Convert turns inputPath into outputPath, stamping the given metadata. The
// conversion fails when the tool exits nonzero or reports success without
// producing the output file.
func (c *Client) Convert(ctx context.Context, inputPath, outputPath string, meta BookMeta) error {
	if strings.TrimSpace(inputPath) == "" {
		return services.Wrap(services.ErrValidation, "ebook-convert", "convert", "input path required", nil)
	}
	if strings.TrimSpace(outputPath) == "" {
		return services.Wrap(services.ErrValidation, "ebook-convert", "convert", "output path required", nil)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{inputPath, outputPath}
	if meta.Title != "" {
		args = append(args, "--title", meta.Title)
	}
	if meta.Authors != "" {
		args = append(args, "--authors", meta.Authors)
	}
	if meta.Comment != "" {
		args = append(args, "--comments", meta.Comment)
	}

	if err := c.exec.Run(ctx, services.Command{Binary: c.binary, Args: args}, nil); err != nil {
		return services.Wrap(services.ErrExternalTool, "ebook-convert", "convert", inputPath, err)
	}
	if _, err := os.Stat(outputPath); err != nil {
		return services.Wrap(services.ErrExternalTool, "ebook-convert", "convert",
			"tool reported success but produced no output file", nil)
	}
	return nil
}
