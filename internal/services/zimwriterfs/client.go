package zimwriterfs

import (
	"context"
	"errors"
	"strings"
	"time"

	"fanvault/internal/services"
)

// DefaultBinary is used when the configuration names no packager.
const DefaultBinary = "zimwriterfs"

// BuildRequest describes one packaging run over a rendered archive tree.
type BuildRequest struct {
	SourceDir   string
	OutputPath  string
	Welcome     string
	Favicon     string
	Language    string
	Title       string
	Description string
	Creator     string
	Publisher   string
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

// WithTimeout caps how long one build may run. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client wraps zimwriterfs CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    services.Executor
}

// New constructs a zimwriterfs client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("zimwriterfs binary required")
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

// Build packs req.SourceDir into req.OutputPath.
func (c *Client) Build(ctx context.Context, req BuildRequest, onProgress func(string)) error {
	if strings.TrimSpace(req.SourceDir) == "" {
		return services.Wrap(services.ErrValidation, "zimwriterfs", "build", "source directory required", nil)
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return services.Wrap(services.ErrValidation, "zimwriterfs", "build", "output path required", nil)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{
		"-w", req.Welcome,
		"-f", req.Favicon,
		"-l", req.Language,
		"-t", req.Title,
		"-d", req.Description,
		"-c", req.Creator,
		"-p", req.Publisher,
		"-i",
		req.SourceDir,
		req.OutputPath,
	}

	if err := c.exec.Run(ctx, services.Command{Binary: c.binary, Args: args}, onProgress); err != nil {
		return services.Wrap(services.ErrExternalTool, "zimwriterfs", "build", req.OutputPath, err)
	}
	return nil
}
